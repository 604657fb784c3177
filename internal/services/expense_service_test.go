package services

import (
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"messbook/internal/models"
)

func TestDedupeSplit(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	out := dedupeSplit([]primitive.ObjectID{a, b, a, a})
	if len(out) != 2 {
		t.Fatalf("got %d ids, want 2", len(out))
	}
	if out[0] != a || out[1] != b {
		t.Errorf("order not preserved: %v", out)
	}

	if got := dedupeSplit(nil); len(got) != 0 {
		t.Errorf("dedupe of empty set = %v, want empty", got)
	}
}

func TestDedupeSplitRestoresShareReconstruction(t *testing.T) {
	// With a duplicated member the divisor would be 3 while only two
	// members collect a share, so the shares would sum to 66.67 of 100.
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	e := models.Expense{
		PaidBy:     a,
		SplitAmong: dedupeSplit([]primitive.ObjectID{a, a, b}),
		Amount:     100,
		Month:      "2025-01",
	}

	var sum float64
	for _, id := range e.SplitAmong {
		sum += expenseShare(e, id.Hex())
	}
	if math.Abs(sum-e.Amount) > 1e-9 {
		t.Errorf("shares sum to %v, want %v", sum, e.Amount)
	}
}

func TestMergeExpenseKeepsOmittedFields(t *testing.T) {
	existing := models.Expense{
		ID:          primitive.NewObjectID(),
		Date:        day(4),
		PaidBy:      primitive.NewObjectID(),
		SplitAmong:  []primitive.ObjectID{primitive.NewObjectID()},
		Description: "gas refill",
		Amount:      90,
		Note:        "split with the landlord",
		Month:       "2025-01",
	}

	merged := mergeExpense(existing, models.Expense{Amount: 120})
	if merged.Amount != 120 {
		t.Errorf("amount = %v, want 120", merged.Amount)
	}
	if merged.Note != existing.Note {
		t.Errorf("omitted note cleared: %q", merged.Note)
	}
	if merged.Description != existing.Description || merged.PaidBy != existing.PaidBy {
		t.Error("omitted fields should carry over from the stored row")
	}
	if !merged.Date.Equal(existing.Date) {
		t.Errorf("omitted date changed: %v", merged.Date)
	}
}
