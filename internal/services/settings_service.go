package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"messbook/internal/apperr"
	"messbook/internal/db"
	"messbook/internal/models"
	"messbook/internal/month"
)

// GetSettings returns the singleton settings document, creating it with the
// present month on first access.
func GetSettings() (models.Settings, error) {
	collection := db.GetCollection(db.SettingsCollection)

	var settings models.Settings
	err := collection.FindOne(context.TODO(), bson.M{}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		settings = models.Settings{
			ID:           primitive.NewObjectID(),
			CurrentMonth: month.Current(),
		}
		if _, err := collection.InsertOne(context.TODO(), settings); err != nil {
			return models.Settings{}, apperr.Internal(err)
		}
		return settings, nil
	}
	if err != nil {
		return models.Settings{}, apperr.Internal(err)
	}
	return settings, nil
}

// UpdateSettings moves the household's current month.
func UpdateSettings(currentMonth string) (models.Settings, error) {
	if !month.Valid(currentMonth) {
		return models.Settings{}, apperr.Invalid("currentMonth must be a YYYY-MM key")
	}

	settings, err := GetSettings()
	if err != nil {
		return models.Settings{}, err
	}
	settings.CurrentMonth = currentMonth

	_, err = db.GetCollection(db.SettingsCollection).UpdateOne(
		context.TODO(), bson.M{"_id": settings.ID},
		bson.M{"$set": bson.M{"current_month": currentMonth}})
	if err != nil {
		return models.Settings{}, apperr.Internal(err)
	}
	return settings, nil
}
