package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"messbook/internal/apperr"
	"messbook/internal/db"
	"messbook/internal/models"
	"messbook/internal/month"
	"messbook/internal/utils"
)

// MealEntry is one member's count in a batch submission for a single day.
type MealEntry struct {
	MemberID string  `json:"memberId"`
	Count    float64 `json:"count"`
}

// normalizeMealEntries validates member ids and collapses duplicates, last
// entry winning, so a batch maps onto one upsert per (day, member) key.
func normalizeMealEntries(entries []MealEntry) ([]MealEntry, error) {
	index := make(map[string]int)
	out := make([]MealEntry, 0, len(entries))
	for _, e := range entries {
		if _, err := primitive.ObjectIDFromHex(e.MemberID); err != nil {
			return nil, apperr.Invalid("invalid member id: " + e.MemberID)
		}
		if i, seen := index[e.MemberID]; seen {
			out[i] = e
			continue
		}
		index[e.MemberID] = len(out)
		out = append(out, e)
	}
	return out, nil
}

// UpsertMeals applies a batch of per-member counts for one day. Each pair is
// upserted independently keyed by (day, member); a count of zero or less
// removes the row instead of storing a zero. The writes run as an unordered
// set, awaited jointly; one failing does not roll back the others.
func UpsertMeals(date time.Time, entries []MealEntry) error {
	if date.IsZero() {
		return apperr.Invalid("date is required")
	}
	if len(entries) == 0 {
		return apperr.Invalid("at least one meal entry is required")
	}
	normalized, err := normalizeMealEntries(entries)
	if err != nil {
		return err
	}

	day := month.DayStart(date)
	monthKey := month.FromDate(day)
	collection := db.GetCollection(db.MealsCollection)

	tasks := make([]utils.ParallelTask, 0, len(normalized))
	for _, entry := range normalized {
		memberID, _ := primitive.ObjectIDFromHex(entry.MemberID)
		count := entry.Count
		tasks = append(tasks, func() (interface{}, error) {
			filter := bson.M{"date": day, "member_id": memberID}
			if count <= 0 {
				_, err := collection.DeleteOne(context.TODO(), filter)
				return nil, err
			}
			update := bson.M{"$set": bson.M{
				"date":      day,
				"member_id": memberID,
				"count":     count,
				"month":     monthKey,
			}}
			_, err := collection.UpdateOne(context.TODO(), filter, update, options.Update().SetUpsert(true))
			return nil, err
		})
	}

	_, errs := utils.RunParallelTasks(tasks)
	var failed []error
	for _, e := range errs {
		if e != nil {
			failed = append(failed, e)
		}
	}
	if len(failed) > 0 {
		return apperr.Internal(errors.Join(failed...))
	}
	return nil
}

// ListMeals returns meal rows, optionally scoped to one month, newest first.
func ListMeals(monthKey string) ([]models.Meal, error) {
	filter := bson.M{}
	if monthKey != "" {
		filter["month"] = monthKey
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := db.GetCollection(db.MealsCollection).Find(context.TODO(), filter, opts)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer cursor.Close(context.TODO())

	meals := []models.Meal{}
	if err := cursor.All(context.TODO(), &meals); err != nil {
		return nil, apperr.Internal(err)
	}
	return meals, nil
}

// GetMeal fetches one meal row by hex id.
func GetMeal(id string) (models.Meal, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Meal{}, apperr.Invalid("invalid meal id")
	}
	var meal models.Meal
	err = db.GetCollection(db.MealsCollection).FindOne(context.TODO(), bson.M{"_id": objID}).Decode(&meal)
	if err == mongo.ErrNoDocuments {
		return models.Meal{}, apperr.NotFound("meal not found")
	}
	if err != nil {
		return models.Meal{}, apperr.Internal(err)
	}
	return meal, nil
}

// mealWrite is the plan for one row update, expressed against the
// (day, member) key rather than the row id.
type mealWrite struct {
	remove   bool
	moved    bool
	day      time.Time
	monthKey string
	count    float64
}

// planMealUpdate maps an update onto the (day, member) key: a non-positive
// count removes the row, and a date landing on a different day is a move
// that must target the destination key, not the row id.
func planMealUpdate(existing models.Meal, date time.Time, count float64) mealWrite {
	day := month.DayStart(existing.Date)
	if !date.IsZero() {
		day = month.DayStart(date)
	}
	w := mealWrite{day: day, monthKey: month.FromDate(day), count: count}
	if count <= 0 {
		w.remove = true
		return w
	}
	w.moved = !day.Equal(month.DayStart(existing.Date))
	return w
}

// UpdateMeal rewrites one row's date and count. The month key is re-derived
// when the date moves; a non-positive count removes the row, keeping the
// no-stored-zeros invariant.
func UpdateMeal(id string, date time.Time, count float64) (models.Meal, error) {
	meal, err := GetMeal(id)
	if err != nil {
		return models.Meal{}, err
	}

	plan := planMealUpdate(meal, date, count)
	collection := db.GetCollection(db.MealsCollection)

	if plan.remove {
		if _, err := collection.DeleteOne(context.TODO(), bson.M{"_id": meal.ID}); err != nil {
			return models.Meal{}, apperr.Internal(err)
		}
		return models.Meal{}, nil
	}

	if !plan.moved {
		meal.Date = plan.day
		meal.Count = plan.count
		meal.Month = plan.monthKey
		_, err = collection.UpdateOne(context.TODO(), bson.M{"_id": meal.ID}, bson.M{"$set": bson.M{
			"date":  meal.Date,
			"count": meal.Count,
			"month": meal.Month,
		}})
		if err != nil {
			return models.Meal{}, apperr.Internal(err)
		}
		return meal, nil
	}

	// Moving days: the destination key may already hold a row for this
	// member. Drop the old row and upsert onto the key so there is never
	// more than one row per (day, member).
	if _, err := collection.DeleteOne(context.TODO(), bson.M{"_id": meal.ID}); err != nil {
		return models.Meal{}, apperr.Internal(err)
	}
	filter := bson.M{"date": plan.day, "member_id": meal.MemberID}
	update := bson.M{"$set": bson.M{
		"date":      plan.day,
		"member_id": meal.MemberID,
		"count":     plan.count,
		"month":     plan.monthKey,
	}}
	if _, err := collection.UpdateOne(context.TODO(), filter, update, options.Update().SetUpsert(true)); err != nil {
		return models.Meal{}, apperr.Internal(err)
	}

	var moved models.Meal
	if err := collection.FindOne(context.TODO(), filter).Decode(&moved); err != nil {
		return models.Meal{}, apperr.Internal(err)
	}
	return moved, nil
}

// DeleteMeal removes one row by id.
func DeleteMeal(id string) error {
	meal, err := GetMeal(id)
	if err != nil {
		return err
	}
	_, err = db.GetCollection(db.MealsCollection).DeleteOne(context.TODO(), bson.M{"_id": meal.ID})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
