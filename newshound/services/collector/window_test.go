package collector

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name    string
		earlier time.Time
		later   time.Time
		want    int
	}{
		{"same month", date(2026, time.August, 1), date(2026, time.August, 31), 0},
		{"partial month counts", date(2026, time.January, 31), date(2026, time.February, 1), 1},
		{"one year", date(2025, time.August, 15), date(2026, time.August, 15), 12},
		{"across year end", date(2025, time.November, 20), date(2026, time.February, 2), 3},
		{"negative clamps to zero", date(2026, time.August, 1), date(2026, time.July, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsBetween(tt.earlier, tt.later); got != tt.want {
				t.Errorf("MonthsBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInWindowBoundary(t *testing.T) {
	now := date(2026, time.August, 15)

	// months=3: a record exactly 2 months old qualifies, 3 months does not
	if !InWindow(date(2026, time.June, 1), now, 3) {
		t.Error("record 2 months old should be inside a 3-month window")
	}
	if InWindow(date(2026, time.May, 30), now, 3) {
		t.Error("record 3 months old should be outside a 3-month window")
	}
}

func TestInWindowZeroIsUnbounded(t *testing.T) {
	now := date(2026, time.August, 15)
	if !InWindow(date(1999, time.January, 1), now, 0) {
		t.Error("months=0 must accept every record")
	}
}

func TestInWindowSingleMonth(t *testing.T) {
	now := date(2026, time.August, 15)
	if !InWindow(date(2026, time.August, 1), now, 1) {
		t.Error("same calendar month should qualify for months=1")
	}
	if InWindow(date(2026, time.July, 31), now, 1) {
		t.Error("previous calendar month should not qualify for months=1")
	}
}
