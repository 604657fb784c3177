package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"messbook/internal/apperr"
	"messbook/internal/db"
	"messbook/internal/models"
	"messbook/internal/month"
)

// ListExpenses returns expense rows, optionally scoped to one month,
// newest first.
func ListExpenses(monthKey string) ([]models.Expense, error) {
	filter := bson.M{}
	if monthKey != "" {
		filter["month"] = monthKey
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := db.GetCollection(db.ExpensesCollection).Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer cursor.Close(context.TODO())

	expenses := []models.Expense{}
	if err := cursor.All(context.TODO(), &expenses); err != nil {
		return nil, apperr.Internal(err)
	}
	return expenses, nil
}

// GetExpense fetches one expense row by hex id.
func GetExpense(id string) (models.Expense, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Expense{}, apperr.Invalid("invalid expense id")
	}
	var e models.Expense
	err = db.GetCollection(db.ExpensesCollection).FindOne(context.TODO(), bson.M{"_id": objID}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return models.Expense{}, apperr.NotFound("expense not found")
	}
	if err != nil {
		return models.Expense{}, apperr.Internal(err)
	}
	return e, nil
}

// dedupeSplit drops repeated member ids from a split set, first occurrence
// winning. A duplicate would inflate the divisor while each member still
// collects a single share, so the shares would no longer reconstruct the
// amount.
func dedupeSplit(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func validateExpense(e models.Expense) error {
	if e.Date.IsZero() {
		return apperr.Invalid("date is required")
	}
	if e.PaidBy.IsZero() {
		return apperr.Invalid("paidBy is required")
	}
	// The split set divides the amount; it must never be empty.
	if len(e.SplitAmong) == 0 {
		return apperr.Invalid("splitAmong must not be empty")
	}
	if e.Description == "" {
		return apperr.Invalid("description is required")
	}
	if e.Amount <= 0 {
		return apperr.Invalid("amount must be positive")
	}
	return nil
}

// CreateExpense inserts a row, deriving the month key from the date.
func CreateExpense(e models.Expense) (models.Expense, error) {
	e.SplitAmong = dedupeSplit(e.SplitAmong)
	if err := validateExpense(e); err != nil {
		return models.Expense{}, err
	}
	e.ID = primitive.NewObjectID()
	e.Month = month.FromDate(e.Date)
	if _, err := db.GetCollection(db.ExpensesCollection).InsertOne(context.TODO(), e); err != nil {
		return models.Expense{}, apperr.Internal(err)
	}
	return e, nil
}

// mergeExpense fills the omitted fields of an update from the stored row.
// Empty means "unchanged" uniformly, the note included.
func mergeExpense(existing, e models.Expense) models.Expense {
	if e.Date.IsZero() {
		e.Date = existing.Date
	}
	if e.PaidBy.IsZero() {
		e.PaidBy = existing.PaidBy
	}
	if len(e.SplitAmong) == 0 {
		e.SplitAmong = existing.SplitAmong
	}
	if e.Description == "" {
		e.Description = existing.Description
	}
	if e.Amount == 0 {
		e.Amount = existing.Amount
	}
	if e.Note == "" {
		e.Note = existing.Note
	}
	return e
}

// UpdateExpense rewrites a row in place, re-deriving the month key.
func UpdateExpense(id string, e models.Expense) (models.Expense, error) {
	existing, err := GetExpense(id)
	if err != nil {
		return models.Expense{}, err
	}
	e = mergeExpense(existing, e)
	e.SplitAmong = dedupeSplit(e.SplitAmong)
	if err := validateExpense(e); err != nil {
		return models.Expense{}, err
	}
	e.ID = existing.ID
	e.Month = month.FromDate(e.Date)

	_, err = db.GetCollection(db.ExpensesCollection).UpdateOne(
		context.TODO(), bson.M{"_id": existing.ID}, bson.M{"$set": bson.M{
			"date":        e.Date,
			"paid_by":     e.PaidBy,
			"split_among": e.SplitAmong,
			"description": e.Description,
			"amount":      e.Amount,
			"note":        e.Note,
			"month":       e.Month,
		}})
	if err != nil {
		return models.Expense{}, apperr.Internal(err)
	}
	return e, nil
}

// DeleteExpense removes one row by id.
func DeleteExpense(id string) error {
	existing, err := GetExpense(id)
	if err != nil {
		return err
	}
	_, err = db.GetCollection(db.ExpensesCollection).DeleteOne(context.TODO(), bson.M{"_id": existing.ID})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
