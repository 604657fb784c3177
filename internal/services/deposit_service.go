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

// ListDeposits returns deposit rows, optionally scoped to one month,
// newest first.
func ListDeposits(monthKey string) ([]models.Deposit, error) {
	filter := bson.M{}
	if monthKey != "" {
		filter["month"] = monthKey
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := db.GetCollection(db.DepositsCollection).Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer cursor.Close(context.TODO())

	deposits := []models.Deposit{}
	if err := cursor.All(context.TODO(), &deposits); err != nil {
		return nil, apperr.Internal(err)
	}
	return deposits, nil
}

// GetDeposit fetches one deposit row by hex id.
func GetDeposit(id string) (models.Deposit, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Deposit{}, apperr.Invalid("invalid deposit id")
	}
	var d models.Deposit
	err = db.GetCollection(db.DepositsCollection).FindOne(context.TODO(), bson.M{"_id": objID}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return models.Deposit{}, apperr.NotFound("deposit not found")
	}
	if err != nil {
		return models.Deposit{}, apperr.Internal(err)
	}
	return d, nil
}

func validateDeposit(d models.Deposit) error {
	if d.Date.IsZero() {
		return apperr.Invalid("date is required")
	}
	if d.MemberID.IsZero() {
		return apperr.Invalid("memberId is required")
	}
	if d.Amount <= 0 {
		return apperr.Invalid("amount must be positive")
	}
	return nil
}

// CreateDeposit inserts a row, deriving the month key from the date.
func CreateDeposit(d models.Deposit) (models.Deposit, error) {
	if err := validateDeposit(d); err != nil {
		return models.Deposit{}, err
	}
	d.ID = primitive.NewObjectID()
	d.Month = month.FromDate(d.Date)
	if _, err := db.GetCollection(db.DepositsCollection).InsertOne(context.TODO(), d); err != nil {
		return models.Deposit{}, apperr.Internal(err)
	}
	return d, nil
}

// mergeDeposit fills the omitted fields of an update from the stored row.
func mergeDeposit(existing, d models.Deposit) models.Deposit {
	if d.Date.IsZero() {
		d.Date = existing.Date
	}
	if d.MemberID.IsZero() {
		d.MemberID = existing.MemberID
	}
	if d.Amount == 0 {
		d.Amount = existing.Amount
	}
	return d
}

// UpdateDeposit rewrites a row in place, re-deriving the month key.
func UpdateDeposit(id string, d models.Deposit) (models.Deposit, error) {
	existing, err := GetDeposit(id)
	if err != nil {
		return models.Deposit{}, err
	}
	d = mergeDeposit(existing, d)
	if err := validateDeposit(d); err != nil {
		return models.Deposit{}, err
	}
	d.ID = existing.ID
	d.Month = month.FromDate(d.Date)

	_, err = db.GetCollection(db.DepositsCollection).UpdateOne(
		context.TODO(), bson.M{"_id": existing.ID}, bson.M{"$set": bson.M{
			"date":      d.Date,
			"member_id": d.MemberID,
			"amount":    d.Amount,
			"month":     d.Month,
		}})
	if err != nil {
		return models.Deposit{}, apperr.Internal(err)
	}
	return d, nil
}

// DeleteDeposit removes one row by id.
func DeleteDeposit(id string) error {
	existing, err := GetDeposit(id)
	if err != nil {
		return err
	}
	_, err = db.GetCollection(db.DepositsCollection).DeleteOne(context.TODO(), bson.M{"_id": existing.ID})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
