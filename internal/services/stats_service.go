package services

import (
	"sort"

	"messbook/internal/models"
	"messbook/internal/utils"
)

// The aggregation engine reduces the four ledger collections for one month
// into display-ready statistics. All arithmetic is plain float64; nothing is
// rounded here, rounding happens at the presentation boundary.

// MemberStat is one member's position for a month.
//
// MealBalance is the headline balance (deposit minus meal bill);
// ExpenseBalance is reported alongside it and deliberately never netted
// into a single figure.
type MemberStat struct {
	MemberID       string  `json:"memberId"`
	Name           string  `json:"name"`
	Meals          float64 `json:"meals"`
	Deposit        float64 `json:"deposit"`
	MealBill       float64 `json:"mealBill"`
	MealBalance    float64 `json:"mealBalance"`
	ExpensePaid    float64 `json:"expensePaid"`
	ExpenseShare   float64 `json:"expenseShare"`
	ExpenseBalance float64 `json:"expenseBalance"`
	TotalBill      float64 `json:"totalBill"`
}

// DashboardData is the household summary for one month.
type DashboardData struct {
	Month        string       `json:"month"`
	TotalMeals   float64      `json:"totalMeals"`
	TotalGrocery float64      `json:"totalGrocery"`
	TotalDeposit float64      `json:"totalDeposit"`
	TotalExpense float64      `json:"totalExpense"`
	MealRate     float64      `json:"mealRate"`
	TotalBalance float64      `json:"totalBalance"`
	Members      []MemberStat `json:"members"`
}

// MemberExpense is an expense row enriched with one member's position in it.
type MemberExpense struct {
	models.Expense
	MemberPaid    float64 `json:"memberPaid"`
	MemberShare   float64 `json:"memberShare"`
	MemberBalance float64 `json:"memberBalance"`
}

// MemberProfileData is one member's month in full: their summary stat plus
// the raw rows behind it, newest first.
type MemberProfileData struct {
	Member   models.User      `json:"member"`
	Month    string           `json:"month"`
	MealRate float64          `json:"mealRate"`
	Stat     MemberStat       `json:"stat"`
	Meals    []models.Meal    `json:"meals"`
	Deposits []models.Deposit `json:"deposits"`
	Expenses []MemberExpense  `json:"expenses"`
}

// expenseShare is the even fraction a member owes for one expense, zero when
// the member is not named in the split set.
func expenseShare(e models.Expense, memberID string) float64 {
	for _, id := range e.SplitAmong {
		if id.Hex() == memberID {
			return e.Amount / float64(len(e.SplitAmong))
		}
	}
	return 0
}

// buildDashboard is the pure reduction core: O(n) over the month's rows,
// no storage access.
func buildDashboard(monthKey string, users []models.User,
	meals []models.Meal, groceries []models.Grocery,
	deposits []models.Deposit, expenses []models.Expense) DashboardData {

	data := DashboardData{Month: monthKey, Members: []MemberStat{}}

	for _, g := range groceries {
		data.TotalGrocery += g.Amount
	}
	for _, m := range meals {
		data.TotalMeals += m.Count
	}
	for _, d := range deposits {
		data.TotalDeposit += d.Amount
	}
	for _, e := range expenses {
		data.TotalExpense += e.Amount
	}

	// Zero-meal months yield a zero rate, not a division by zero.
	if data.TotalMeals > 0 {
		data.MealRate = data.TotalGrocery / data.TotalMeals
	}
	data.TotalBalance = data.TotalDeposit - data.TotalGrocery

	for _, user := range users {
		stat := MemberStat{MemberID: user.ID.Hex(), Name: user.Name}
		for _, m := range meals {
			if m.MemberID == user.ID {
				stat.Meals += m.Count
			}
		}
		for _, d := range deposits {
			if d.MemberID == user.ID {
				stat.Deposit += d.Amount
			}
		}
		for _, e := range expenses {
			if e.PaidBy == user.ID {
				stat.ExpensePaid += e.Amount
			}
			stat.ExpenseShare += expenseShare(e, stat.MemberID)
		}
		stat.MealBill = stat.Meals * data.MealRate
		stat.MealBalance = stat.Deposit - stat.MealBill
		stat.ExpenseBalance = stat.ExpensePaid - stat.ExpenseShare
		stat.TotalBill = stat.MealBill + stat.ExpenseShare
		data.Members = append(data.Members, stat)
	}

	return data
}

// monthRows is everything the engine needs for one month, fetched in
// parallel.
type monthRows struct {
	users     []models.User
	meals     []models.Meal
	groceries []models.Grocery
	deposits  []models.Deposit
	expenses  []models.Expense
}

func fetchMonthRows(monthKey string) (monthRows, error) {
	tasks := []utils.ParallelTask{
		func() (interface{}, error) { return ListActiveMembers() },
		func() (interface{}, error) { return ListMeals(monthKey) },
		func() (interface{}, error) { return ListGroceries(monthKey) },
		func() (interface{}, error) { return ListDeposits(monthKey) },
		func() (interface{}, error) { return ListExpenses(monthKey) },
	}
	results, errs := utils.RunParallelTasks(tasks)
	for _, err := range errs {
		if err != nil {
			return monthRows{}, err
		}
	}
	return monthRows{
		users:     results[0].([]models.User),
		meals:     results[1].([]models.Meal),
		groceries: results[2].([]models.Grocery),
		deposits:  results[3].([]models.Deposit),
		expenses:  results[4].([]models.Expense),
	}, nil
}

// SummarizeMonth computes the household dashboard for one month. Absent rows
// reduce to zeros, never errors.
func SummarizeMonth(monthKey string) (DashboardData, error) {
	rows, err := fetchMonthRows(monthKey)
	if err != nil {
		return DashboardData{}, err
	}
	return buildDashboard(monthKey, rows.users, rows.meals, rows.groceries, rows.deposits, rows.expenses), nil
}

// buildMemberProfile scopes the same primitives to one member and attaches
// the raw history rows, date descending.
func buildMemberProfile(member models.User, dashboard DashboardData, rows monthRows) MemberProfileData {
	profile := MemberProfileData{
		Member:   member,
		Month:    dashboard.Month,
		MealRate: dashboard.MealRate,
		Meals:    []models.Meal{},
		Deposits: []models.Deposit{},
		Expenses: []MemberExpense{},
	}

	memberID := member.ID.Hex()
	for _, s := range dashboard.Members {
		if s.MemberID == memberID {
			profile.Stat = s
			break
		}
	}

	for _, m := range rows.meals {
		if m.MemberID == member.ID {
			profile.Meals = append(profile.Meals, m)
		}
	}
	for _, d := range rows.deposits {
		if d.MemberID == member.ID {
			profile.Deposits = append(profile.Deposits, d)
		}
	}
	for _, e := range rows.expenses {
		share := expenseShare(e, memberID)
		paid := 0.0
		if e.PaidBy == member.ID {
			paid = e.Amount
		}
		if share == 0 && paid == 0 {
			continue
		}
		profile.Expenses = append(profile.Expenses, MemberExpense{
			Expense:       e,
			MemberPaid:    paid,
			MemberShare:   share,
			MemberBalance: paid - share,
		})
	}

	sort.Slice(profile.Meals, func(i, j int) bool { return profile.Meals[i].Date.After(profile.Meals[j].Date) })
	sort.Slice(profile.Deposits, func(i, j int) bool { return profile.Deposits[i].Date.After(profile.Deposits[j].Date) })
	sort.Slice(profile.Expenses, func(i, j int) bool { return profile.Expenses[i].Date.After(profile.Expenses[j].Date) })

	return profile
}

// SummarizeMember computes one member's profile for a month.
func SummarizeMember(memberID, monthKey string) (MemberProfileData, error) {
	member, err := GetUser(memberID)
	if err != nil {
		return MemberProfileData{}, err
	}

	rows, err := fetchMonthRows(monthKey)
	if err != nil {
		return MemberProfileData{}, err
	}

	// The dashboard reduction covers active members; a deactivated member's
	// profile still needs a stat row, so fold them in when absent.
	users := rows.users
	found := false
	for _, u := range users {
		if u.ID == member.ID {
			found = true
			break
		}
	}
	if !found {
		users = append(users, member)
	}

	dashboard := buildDashboard(monthKey, users, rows.meals, rows.groceries, rows.deposits, rows.expenses)
	return buildMemberProfile(member, dashboard, rows), nil
}
