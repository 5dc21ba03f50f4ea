package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tickify/gateway/internal/models"
)

// Wednesday, 12 March 2025. That week runs Mon 10th through Sun 16th.
var wednesday = time.Date(2025, 3, 12, 15, 4, 5, 0, time.UTC)

func eventOn(day string, opts ...func(*models.Event)) models.Event {
	start, _ := time.Parse("2006-01-02", day)
	ev := models.Event{
		ID:        "ev-" + day,
		Title:     "Jazz Night",
		Location:  "Jakarta Convention Center",
		Category:  "music",
		StartTime: start.Add(19 * time.Hour),
		Price:     decimal.NewFromInt(150000),
	}
	for _, opt := range opts {
		opt(&ev)
	}
	return ev
}

func TestMatchKeyword(t *testing.T) {
	ev := eventOn("2025-03-12")

	assert.True(t, Filter{Keyword: "jazz"}.Match(ev, wednesday))
	assert.True(t, Filter{Keyword: "  JAKARTA  "}.Match(ev, wednesday), "keyword also matches location, trimmed and case-insensitive")
	assert.False(t, Filter{Keyword: "techno"}.Match(ev, wednesday))
}

func TestMatchCategory(t *testing.T) {
	ev := eventOn("2025-03-12")

	assert.True(t, Filter{Category: "music"}.Match(ev, wednesday))
	assert.True(t, Filter{Category: "all"}.Match(ev, wednesday))
	assert.True(t, Filter{}.Match(ev, wednesday))
	assert.False(t, Filter{Category: "theater"}.Match(ev, wednesday))
	assert.False(t, Filter{Category: "mus"}.Match(ev, wednesday), "category is an exact match, not a substring")
}

func TestMatchMaxPrice(t *testing.T) {
	ev := eventOn("2025-03-12")

	assert.True(t, Filter{MaxPrice: "150000"}.Match(ev, wednesday), "boundary is inclusive")
	assert.False(t, Filter{MaxPrice: "149999"}.Match(ev, wednesday))
	assert.True(t, Filter{MaxPrice: "cheap"}.Match(ev, wednesday), "non-numeric input behaves as field absent")
}

func TestMatchDateBuckets(t *testing.T) {
	cases := []struct {
		name   string
		bucket string
		day    string
		want   bool
	}{
		{"today matches", BucketToday, "2025-03-12", true},
		{"today excludes tomorrow", BucketToday, "2025-03-13", false},
		{"tomorrow", BucketTomorrow, "2025-03-13", true},
		{"this week monday", BucketThisWeek, "2025-03-10", true},
		{"this week sunday is last day", BucketThisWeek, "2025-03-16", true},
		{"this week excludes next monday", BucketThisWeek, "2025-03-17", false},
		{"next week", BucketNextWeek, "2025-03-17", true},
		{"next week sunday", BucketNextWeek, "2025-03-23", true},
		{"next week excludes this sunday", BucketNextWeek, "2025-03-16", false},
		{"this month", BucketThisMonth, "2025-03-31", true},
		{"this month excludes april", BucketThisMonth, "2025-04-01", false},
		{"next month", BucketNextMonth, "2025-04-30", true},
		{"next month excludes may", BucketNextMonth, "2025-05-01", false},
		{"literal date", "2025-03-20", "2025-03-20", true},
		{"literal date mismatch", "2025-03-20", "2025-03-21", false},
		{"unknown bucket passes", "someday", "2025-07-01", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := Filter{Date: tc.bucket}
			assert.Equal(t, tc.want, f.Match(eventOn(tc.day), wednesday))
		})
	}
}

// An event stored in another zone must be bucketed in the caller's zone,
// or boundary days shift by one.
func TestMatchDateNormalizesEventZone(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	ev := eventOn("2025-03-13")
	// 02:00 on the 13th in Jakarta is still the 12th in UTC.
	ev.StartTime = time.Date(2025, 3, 13, 2, 0, 0, 0, jakarta)

	assert.True(t, Filter{Date: BucketToday}.Match(ev, wednesday))
	assert.False(t, Filter{Date: BucketTomorrow}.Match(ev, wednesday))
}

// A Sunday "now" must resolve as the last day of this week, not the first
// day of a new one.
func TestSundayWeekBoundary(t *testing.T) {
	sunday := time.Date(2025, 3, 16, 10, 0, 0, 0, time.UTC)

	f := Filter{Date: BucketThisWeek}
	assert.True(t, f.Match(eventOn("2025-03-10"), sunday), "monday of the running week still matches")
	assert.True(t, f.Match(eventOn("2025-03-16"), sunday))
	assert.False(t, f.Match(eventOn("2025-03-17"), sunday))

	next := Filter{Date: BucketNextWeek}
	assert.True(t, next.Match(eventOn("2025-03-17"), sunday))
}

// The ANDed predicate must not depend on evaluation order: the conjunction
// of single-field filters always agrees with the combined filter.
func TestMatchIsOrderIndependent(t *testing.T) {
	events := []models.Event{
		eventOn("2025-03-12"),
		eventOn("2025-03-20", func(ev *models.Event) { ev.Category = "theater"; ev.Title = "Hamlet"; ev.Location = "Bandung" }),
		eventOn("2025-03-16", func(ev *models.Event) { ev.Price = decimal.NewFromInt(500000) }),
	}
	combined := Filter{Keyword: "jazz", Category: "music", Location: "jakarta", MaxPrice: "200000", Date: BucketThisWeek}
	fields := []Filter{
		{Keyword: combined.Keyword},
		{Category: combined.Category},
		{Location: combined.Location},
		{MaxPrice: combined.MaxPrice},
		{Date: combined.Date},
	}

	for _, ev := range events {
		conjunction := true
		for _, f := range fields {
			conjunction = conjunction && f.Match(ev, wednesday)
		}
		assert.Equal(t, conjunction, combined.Match(ev, wednesday), "event %s", ev.ID)
	}
}

func TestFingerprintTracksIdentity(t *testing.T) {
	a := Filter{Keyword: "Jazz ", Category: "music"}
	b := Filter{Keyword: "jazz", Category: "music"}
	c := Filter{Keyword: "jazz", Category: "theater"}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "trim and case do not change identity")
	assert.NotEqual(t, b.Fingerprint(), c.Fingerprint())
	assert.True(t, Filter{}.IsZero())
	assert.False(t, c.IsZero())
}
