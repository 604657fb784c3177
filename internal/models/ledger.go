package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// All ledger rows carry a denormalized Month key ("YYYY-MM", first seven
// characters of the date). It is derived from Date at write time by every
// mutating handler so month-scoped queries never need a date range scan.

// Meal is one member's meal count for one calendar day. There is at most one
// row per (day, member); writing a count of zero removes the row.
type Meal struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date     time.Time          `bson:"date" json:"date"`
	MemberID primitive.ObjectID `bson:"member_id" json:"memberId"`
	Count    float64            `bson:"count" json:"count"`
	Month    string             `bson:"month" json:"month"`
}

type Grocery struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date        time.Time          `bson:"date" json:"date"`
	DoneBy      primitive.ObjectID `bson:"done_by" json:"doneBy"`
	AddedBy     primitive.ObjectID `bson:"added_by,omitempty" json:"addedBy,omitempty"`
	Description string             `bson:"description" json:"description"`
	Amount      float64            `bson:"amount" json:"amount"`
	Note        string             `bson:"note,omitempty" json:"note,omitempty"`
	Month       string             `bson:"month" json:"month"`
}

// Expense is a shared non-grocery cost paid by one member and split evenly
// among the members listed in SplitAmong.
type Expense struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Date        time.Time            `bson:"date" json:"date"`
	PaidBy      primitive.ObjectID   `bson:"paid_by" json:"paidBy"`
	SplitAmong  []primitive.ObjectID `bson:"split_among" json:"splitAmong"`
	Description string               `bson:"description" json:"description"`
	Amount      float64              `bson:"amount" json:"amount"`
	Note        string               `bson:"note,omitempty" json:"note,omitempty"`
	Month       string               `bson:"month" json:"month"`
}

type Deposit struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date     time.Time          `bson:"date" json:"date"`
	MemberID primitive.ObjectID `bson:"member_id" json:"memberId"`
	Amount   float64            `bson:"amount" json:"amount"`
	Month    string             `bson:"month" json:"month"`
}

// Settings is a singleton document; CurrentMonth is the default lens for
// dashboard and profile views.
type Settings struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CurrentMonth string             `bson:"current_month" json:"currentMonth"`
}
