package services

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"messbook/internal/models"
)

func TestNormalizeMealEntries(t *testing.T) {
	a := primitive.NewObjectID().Hex()
	b := primitive.NewObjectID().Hex()

	// Duplicate member in one batch: the last entry wins, so the batch still
	// maps to one upsert per (day, member) key.
	entries := []MealEntry{
		{MemberID: a, Count: 2},
		{MemberID: b, Count: 1},
		{MemberID: a, Count: 3},
	}
	out, err := normalizeMealEntries(entries)
	if err != nil {
		t.Fatalf("normalizeMealEntries: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2", len(out))
	}
	if out[0].MemberID != a || out[0].Count != 3 {
		t.Errorf("entry for a = %+v, want count 3", out[0])
	}
	if out[1].MemberID != b || out[1].Count != 1 {
		t.Errorf("entry for b = %+v, want count 1", out[1])
	}
}

func TestNormalizeMealEntriesInvalidID(t *testing.T) {
	if _, err := normalizeMealEntries([]MealEntry{{MemberID: "not-an-id", Count: 1}}); err == nil {
		t.Error("expected error for malformed member id")
	}
}

func TestPlanMealUpdate(t *testing.T) {
	existing := models.Meal{
		ID:       primitive.NewObjectID(),
		Date:     time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC),
		MemberID: primitive.NewObjectID(),
		Count:    2,
		Month:    "2025-01",
	}

	t.Run("count change stays on the row's key", func(t *testing.T) {
		plan := planMealUpdate(existing, time.Time{}, 3)
		if plan.moved || plan.remove {
			t.Errorf("plan = %+v, want in-place update", plan)
		}
		if !plan.day.Equal(existing.Date) || plan.monthKey != "2025-01" {
			t.Errorf("plan key = %v/%q, want unchanged", plan.day, plan.monthKey)
		}
	})

	t.Run("same day restated is not a move", func(t *testing.T) {
		plan := planMealUpdate(existing, time.Date(2025, 1, 9, 20, 15, 0, 0, time.UTC), 3)
		if plan.moved {
			t.Errorf("a timestamp on the row's own day must not count as a move: %+v", plan)
		}
	})

	t.Run("date on another day targets the destination key", func(t *testing.T) {
		// The member may already have a row on Jan 5; the write must land
		// on that (day, member) key instead of leaving two rows.
		plan := planMealUpdate(existing, time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC), 3)
		if !plan.moved {
			t.Fatalf("plan = %+v, want a move", plan)
		}
		want := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
		if !plan.day.Equal(want) {
			t.Errorf("destination day = %v, want %v", plan.day, want)
		}
	})

	t.Run("month re-derived on a cross-month move", func(t *testing.T) {
		plan := planMealUpdate(existing, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 3)
		if plan.monthKey != "2025-02" {
			t.Errorf("monthKey = %q, want 2025-02", plan.monthKey)
		}
	})

	t.Run("non-positive count removes the row", func(t *testing.T) {
		plan := planMealUpdate(existing, time.Time{}, 0)
		if !plan.remove {
			t.Errorf("plan = %+v, want removal", plan)
		}
	})
}

func TestNormalizeMealEntriesKeepsZeroCounts(t *testing.T) {
	// Zero counts survive normalization; the write path turns them into
	// deletes rather than stored zeros.
	a := primitive.NewObjectID().Hex()
	out, err := normalizeMealEntries([]MealEntry{{MemberID: a, Count: 0}})
	if err != nil {
		t.Fatalf("normalizeMealEntries: %v", err)
	}
	if len(out) != 1 || out[0].Count != 0 {
		t.Errorf("zero-count entry dropped: %+v", out)
	}
}
