package month

import (
	"testing"
	"time"
)

func TestFromDate(t *testing.T) {
	d := time.Date(2025, 2, 5, 18, 30, 0, 0, time.UTC)
	if got := FromDate(d); got != "2025-02" {
		t.Errorf("FromDate = %q, want %q", got, "2025-02")
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"2025-01", true},
		{"2025-12", true},
		{"2025-13", false},
		{"2025-1", false},
		{"202501", false},
		{"", false},
		{"2025-01-05", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.key); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestDayStart(t *testing.T) {
	a := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 10, 22, 45, 12, 0, time.UTC)
	if DayStart(a) != DayStart(b) {
		t.Errorf("timestamps on the same day should share a key: %v vs %v", DayStart(a), DayStart(b))
	}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if got := DayStart(a); !got.Equal(want) {
		t.Errorf("DayStart = %v, want %v", got, want)
	}
}
