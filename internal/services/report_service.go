package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"messbook/internal/apperr"
	"messbook/internal/month"
	"messbook/internal/storage"
)

// MonthReport is the frozen form of a month's dashboard, written to object
// storage when a super user archives the month.
type MonthReport struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Summary     DashboardData `json:"summary"`
}

// ArchiveMonthReport computes the month summary and stores it as a JSON
// object. Returns the object name.
func ArchiveMonthReport(monthKey string) (string, error) {
	if !month.Valid(monthKey) {
		return "", apperr.Invalid("month must be a YYYY-MM key")
	}
	if storage.MinioClient == nil {
		return "", apperr.Invalid("report archiving is not configured")
	}

	summary, err := SummarizeMonth(monthKey)
	if err != nil {
		return "", err
	}

	report := MonthReport{GeneratedAt: time.Now().UTC(), Summary: summary}
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", apperr.Internal(err)
	}

	name := fmt.Sprintf("reports/%s.json", monthKey)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := storage.PutReport(ctx, name, body); err != nil {
		return "", apperr.Internal(err)
	}
	return name, nil
}
