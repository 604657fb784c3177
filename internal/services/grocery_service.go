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

// ListGroceries returns grocery rows, optionally scoped to one month,
// newest first.
func ListGroceries(monthKey string) ([]models.Grocery, error) {
	filter := bson.M{}
	if monthKey != "" {
		filter["month"] = monthKey
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := db.GetCollection(db.GroceriesCollection).Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer cursor.Close(context.TODO())

	groceries := []models.Grocery{}
	if err := cursor.All(context.TODO(), &groceries); err != nil {
		return nil, apperr.Internal(err)
	}
	return groceries, nil
}

// GetGrocery fetches one grocery row by hex id.
func GetGrocery(id string) (models.Grocery, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Grocery{}, apperr.Invalid("invalid grocery id")
	}
	var g models.Grocery
	err = db.GetCollection(db.GroceriesCollection).FindOne(context.TODO(), bson.M{"_id": objID}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return models.Grocery{}, apperr.NotFound("grocery not found")
	}
	if err != nil {
		return models.Grocery{}, apperr.Internal(err)
	}
	return g, nil
}

func validateGrocery(g models.Grocery) error {
	if g.Date.IsZero() {
		return apperr.Invalid("date is required")
	}
	if g.DoneBy.IsZero() {
		return apperr.Invalid("doneBy is required")
	}
	if g.Description == "" {
		return apperr.Invalid("description is required")
	}
	if g.Amount <= 0 {
		return apperr.Invalid("amount must be positive")
	}
	return nil
}

// CreateGrocery inserts a row, deriving the month key from the date.
func CreateGrocery(g models.Grocery) (models.Grocery, error) {
	if err := validateGrocery(g); err != nil {
		return models.Grocery{}, err
	}
	g.ID = primitive.NewObjectID()
	g.Month = month.FromDate(g.Date)
	if _, err := db.GetCollection(db.GroceriesCollection).InsertOne(context.TODO(), g); err != nil {
		return models.Grocery{}, apperr.Internal(err)
	}
	return g, nil
}

// mergeGrocery fills the omitted fields of an update from the stored row.
// Empty means "unchanged" uniformly, the note and addedBy included.
func mergeGrocery(existing, g models.Grocery) models.Grocery {
	if g.Date.IsZero() {
		g.Date = existing.Date
	}
	if g.DoneBy.IsZero() {
		g.DoneBy = existing.DoneBy
	}
	if g.AddedBy.IsZero() {
		g.AddedBy = existing.AddedBy
	}
	if g.Description == "" {
		g.Description = existing.Description
	}
	if g.Amount == 0 {
		g.Amount = existing.Amount
	}
	if g.Note == "" {
		g.Note = existing.Note
	}
	return g
}

// UpdateGrocery rewrites a row in place, re-deriving the month key.
func UpdateGrocery(id string, g models.Grocery) (models.Grocery, error) {
	existing, err := GetGrocery(id)
	if err != nil {
		return models.Grocery{}, err
	}
	g = mergeGrocery(existing, g)
	if err := validateGrocery(g); err != nil {
		return models.Grocery{}, err
	}
	g.ID = existing.ID
	g.Month = month.FromDate(g.Date)

	_, err = db.GetCollection(db.GroceriesCollection).UpdateOne(
		context.TODO(), bson.M{"_id": existing.ID}, bson.M{"$set": bson.M{
			"date":        g.Date,
			"done_by":     g.DoneBy,
			"added_by":    g.AddedBy,
			"description": g.Description,
			"amount":      g.Amount,
			"note":        g.Note,
			"month":       g.Month,
		}})
	if err != nil {
		return models.Grocery{}, apperr.Internal(err)
	}
	return g, nil
}

// DeleteGrocery removes one row by id.
func DeleteGrocery(id string) error {
	existing, err := GetGrocery(id)
	if err != nil {
		return err
	}
	_, err = db.GetCollection(db.GroceriesCollection).DeleteOne(context.TODO(), bson.M{"_id": existing.ID})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
