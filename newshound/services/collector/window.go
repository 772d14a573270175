package collector

import "time"

// MonthsBetween returns the whole-month calendar difference between
// earlier and later. A partial month counts as one elapsed month
// (Jan 31 -> Feb 1 is 1), and day-of-month never shrinks the result.
// Negative spans clamp to zero.
func MonthsBetween(earlier, later time.Time) int {
	diff := (later.Year()-earlier.Year())*12 + int(later.Month()) - int(earlier.Month())
	if diff < 0 {
		return 0
	}
	return diff
}

// InWindow reports whether a record published at publishedAt is within
// the last `months` months of now. "Within the last N months" means
// strictly less than N months old, so the month difference must be at
// most N-1. A zero (or negative) window accepts everything.
func InWindow(publishedAt, now time.Time, months int) bool {
	if months <= 0 {
		return true
	}
	return MonthsBetween(publishedAt, now) <= months-1
}
