package catalog

import "time"

// Date buckets are relative windows compared against the event's
// start-of-day date. Windows are derived from the supplied clock on every
// evaluation; nothing here may be memoized across days.
const (
	BucketToday     = "today"
	BucketTomorrow  = "tomorrow"
	BucketThisWeek  = "this_week"
	BucketNextWeek  = "next_week"
	BucketThisMonth = "this_month"
	BucketNextMonth = "next_month"
)

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isoWeekday maps Sunday from 0 to 7 so Monday-based offsets come out
// right: a Sunday is the last day of its week, not the first of the next.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// bucketWindow resolves a bucket name (or a literal YYYY-MM-DD date) into an
// inclusive [from, to] day range. ok is false for unrecognised values, which
// callers treat as a pass-through filter.
func bucketWindow(bucket string, now time.Time) (from, to time.Time, ok bool) {
	today := startOfDay(now)

	switch bucket {
	case BucketToday:
		return today, today, true
	case BucketTomorrow:
		d := today.AddDate(0, 0, 1)
		return d, d, true
	case BucketThisWeek:
		monday := today.AddDate(0, 0, 1-isoWeekday(today))
		return monday, monday.AddDate(0, 0, 6), true
	case BucketNextWeek:
		monday := today.AddDate(0, 0, 1-isoWeekday(today)+7)
		return monday, monday.AddDate(0, 0, 6), true
	case BucketThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return first, first.AddDate(0, 1, -1), true
	case BucketNextMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).AddDate(0, 1, 0)
		return first, first.AddDate(0, 1, -1), true
	}

	if d, err := time.ParseInLocation("2006-01-02", bucket, now.Location()); err == nil {
		return d, d, true
	}
	return time.Time{}, time.Time{}, false
}
