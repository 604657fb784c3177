package services

import (
	"math"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"messbook/internal/models"
)

const tolerance = 1e-9

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildDashboardScenario(t *testing.T) {
	// Household: A ate 20 meals, B ate 10; grocery total 300 so the rate is
	// 10 per meal. A deposited 250, B deposited 80.
	a := models.User{ID: primitive.NewObjectID(), Name: "A", Role: models.RoleGeneral, Active: true}
	b := models.User{ID: primitive.NewObjectID(), Name: "B", Role: models.RoleGeneral, Active: true}

	meals := []models.Meal{
		{Date: day(1), MemberID: a.ID, Count: 12, Month: "2025-01"},
		{Date: day(2), MemberID: a.ID, Count: 8, Month: "2025-01"},
		{Date: day(1), MemberID: b.ID, Count: 10, Month: "2025-01"},
	}
	groceries := []models.Grocery{
		{Date: day(3), DoneBy: a.ID, Description: "rice", Amount: 180, Month: "2025-01"},
		{Date: day(9), DoneBy: b.ID, Description: "vegetables", Amount: 120, Month: "2025-01"},
	}
	deposits := []models.Deposit{
		{Date: day(1), MemberID: a.ID, Amount: 250, Month: "2025-01"},
		{Date: day(1), MemberID: b.ID, Amount: 80, Month: "2025-01"},
	}

	data := buildDashboard("2025-01", []models.User{a, b}, meals, groceries, deposits, nil)

	if data.TotalMeals != 30 {
		t.Errorf("TotalMeals = %v, want 30", data.TotalMeals)
	}
	if data.MealRate != 10 {
		t.Errorf("MealRate = %v, want 10", data.MealRate)
	}
	if data.TotalBalance != 330-300 {
		t.Errorf("TotalBalance = %v, want 30", data.TotalBalance)
	}

	statA, statB := data.Members[0], data.Members[1]
	if statA.MealBill != 200 || statB.MealBill != 100 {
		t.Errorf("meal bills = %v/%v, want 200/100", statA.MealBill, statB.MealBill)
	}
	if statA.MealBalance != 50 {
		t.Errorf("A mealBalance = %v, want +50", statA.MealBalance)
	}
	if statB.MealBalance != -20 {
		t.Errorf("B mealBalance = %v, want -20", statB.MealBalance)
	}
}

func TestBuildDashboardZeroMeals(t *testing.T) {
	a := models.User{ID: primitive.NewObjectID(), Name: "A", Active: true}
	groceries := []models.Grocery{
		{Date: day(1), DoneBy: a.ID, Description: "stock-up", Amount: 500, Month: "2025-01"},
	}

	data := buildDashboard("2025-01", []models.User{a}, nil, groceries, nil, nil)
	if data.MealRate != 0 {
		t.Errorf("MealRate with zero meals = %v, want 0", data.MealRate)
	}
	if data.Members[0].MealBill != 0 {
		t.Errorf("MealBill with zero meals = %v, want 0", data.Members[0].MealBill)
	}
}

func TestBuildDashboardMealPartition(t *testing.T) {
	users := []models.User{
		{ID: primitive.NewObjectID(), Name: "A", Active: true},
		{ID: primitive.NewObjectID(), Name: "B", Active: true},
		{ID: primitive.NewObjectID(), Name: "C", Active: true},
	}
	meals := []models.Meal{
		{Date: day(1), MemberID: users[0].ID, Count: 1.5, Month: "2025-01"},
		{Date: day(1), MemberID: users[1].ID, Count: 2, Month: "2025-01"},
		{Date: day(2), MemberID: users[1].ID, Count: 3, Month: "2025-01"},
		{Date: day(2), MemberID: users[2].ID, Count: 0.5, Month: "2025-01"},
	}

	data := buildDashboard("2025-01", users, meals, nil, nil, nil)

	var sum float64
	for _, s := range data.Members {
		sum += s.Meals
	}
	if math.Abs(sum-data.TotalMeals) > tolerance {
		t.Errorf("member meals sum to %v, total is %v", sum, data.TotalMeals)
	}
}

func TestExpenseShareReconstruction(t *testing.T) {
	members := []primitive.ObjectID{
		primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(),
	}
	e := models.Expense{
		ID:         primitive.NewObjectID(),
		Date:       day(5),
		PaidBy:     members[0],
		SplitAmong: members,
		Amount:     100,
		Month:      "2025-01",
	}

	var sum float64
	for _, id := range members {
		sum += expenseShare(e, id.Hex())
	}
	if math.Abs(sum-e.Amount) > 1e-6 {
		t.Errorf("shares sum to %v, want %v", sum, e.Amount)
	}

	outsider := primitive.NewObjectID()
	if got := expenseShare(e, outsider.Hex()); got != 0 {
		t.Errorf("outsider share = %v, want 0", got)
	}
}

func TestBuildDashboardExpensePositions(t *testing.T) {
	a := models.User{ID: primitive.NewObjectID(), Name: "A", Active: true}
	b := models.User{ID: primitive.NewObjectID(), Name: "B", Active: true}

	expenses := []models.Expense{
		// A fronts 90 split three ways... only two members live here, the
		// third share belongs to no active member and stays unassigned.
		{Date: day(4), PaidBy: a.ID, SplitAmong: []primitive.ObjectID{a.ID, b.ID}, Description: "gas", Amount: 90, Month: "2025-01"},
	}

	data := buildDashboard("2025-01", []models.User{a, b}, nil, nil, nil, expenses)
	statA, statB := data.Members[0], data.Members[1]

	if statA.ExpensePaid != 90 {
		t.Errorf("A expensePaid = %v, want 90", statA.ExpensePaid)
	}
	if math.Abs(statA.ExpenseShare-45) > tolerance || math.Abs(statB.ExpenseShare-45) > tolerance {
		t.Errorf("shares = %v/%v, want 45/45", statA.ExpenseShare, statB.ExpenseShare)
	}
	if math.Abs(statA.ExpenseBalance-45) > tolerance {
		t.Errorf("A expenseBalance = %v, want +45", statA.ExpenseBalance)
	}
	if math.Abs(statB.ExpenseBalance+45) > tolerance {
		t.Errorf("B expenseBalance = %v, want -45", statB.ExpenseBalance)
	}
	// The two balances stay separate: totalBill folds in the expense share,
	// the headline balance does not.
	if math.Abs(statB.TotalBill-45) > tolerance {
		t.Errorf("B totalBill = %v, want 45", statB.TotalBill)
	}
	if statB.MealBalance != 0 {
		t.Errorf("B mealBalance = %v, want 0 (expense position not netted in)", statB.MealBalance)
	}
}

func TestBuildMemberProfile(t *testing.T) {
	a := models.User{ID: primitive.NewObjectID(), Name: "A", Active: true}
	b := models.User{ID: primitive.NewObjectID(), Name: "B", Active: true}

	rows := monthRows{
		users: []models.User{a, b},
		meals: []models.Meal{
			{Date: day(2), MemberID: a.ID, Count: 2, Month: "2025-01"},
			{Date: day(5), MemberID: a.ID, Count: 3, Month: "2025-01"},
			{Date: day(3), MemberID: b.ID, Count: 1, Month: "2025-01"},
		},
		groceries: []models.Grocery{
			{Date: day(1), DoneBy: b.ID, Description: "market", Amount: 60, Month: "2025-01"},
		},
		deposits: []models.Deposit{
			{Date: day(1), MemberID: a.ID, Amount: 100, Month: "2025-01"},
		},
		expenses: []models.Expense{
			{Date: day(4), PaidBy: b.ID, SplitAmong: []primitive.ObjectID{a.ID, b.ID}, Description: "gas", Amount: 30, Month: "2025-01"},
			{Date: day(6), PaidBy: a.ID, SplitAmong: []primitive.ObjectID{b.ID}, Description: "repair", Amount: 20, Month: "2025-01"},
		},
	}

	dashboard := buildDashboard("2025-01", rows.users, rows.meals, rows.groceries, rows.deposits, rows.expenses)
	profile := buildMemberProfile(a, dashboard, rows)

	if profile.Stat.Meals != 5 {
		t.Errorf("profile meals = %v, want 5", profile.Stat.Meals)
	}
	if len(profile.Meals) != 2 {
		t.Fatalf("profile meal rows = %d, want 2", len(profile.Meals))
	}
	if !profile.Meals[0].Date.After(profile.Meals[1].Date) {
		t.Error("meal history should be date descending")
	}

	// A is in the gas split and paid for the repair; both rows appear.
	if len(profile.Expenses) != 2 {
		t.Fatalf("profile expense rows = %d, want 2", len(profile.Expenses))
	}
	repair := profile.Expenses[0] // day 6, newest first
	if repair.MemberPaid != 20 || repair.MemberShare != 0 || repair.MemberBalance != 20 {
		t.Errorf("repair row = paid %v share %v balance %v, want 20/0/20",
			repair.MemberPaid, repair.MemberShare, repair.MemberBalance)
	}
	gas := profile.Expenses[1]
	if gas.MemberPaid != 0 || math.Abs(gas.MemberShare-15) > tolerance || math.Abs(gas.MemberBalance+15) > tolerance {
		t.Errorf("gas row = paid %v share %v balance %v, want 0/15/-15",
			gas.MemberPaid, gas.MemberShare, gas.MemberBalance)
	}
}
