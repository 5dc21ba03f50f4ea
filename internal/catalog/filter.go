package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tickify/gateway/internal/models"
)

// Filter is the canonical browse filter. Every field is ANDed; empty fields
// pass everything. MaxPrice carries the raw user input so that non-numeric
// values degrade to "field absent" instead of erroring.
type Filter struct {
	Keyword  string `form:"q" json:"keyword"`
	Category string `form:"category" json:"category"`
	Location string `form:"location" json:"location"`
	MaxPrice string `form:"max_price" json:"max_price"`
	Date     string `form:"date" json:"date"`
}

func (f Filter) IsZero() bool {
	return f.Keyword == "" && f.Category == "" && f.Location == "" && f.MaxPrice == "" && f.Date == ""
}

// Fingerprint is the filter's identity. The paginator window resets whenever
// it changes, so any normalization applied here must match what Match sees.
func (f Filter) Fingerprint() string {
	return fmt.Sprintf("q=%s|cat=%s|loc=%s|max=%s|date=%s",
		strings.ToLower(strings.TrimSpace(f.Keyword)),
		strings.ToLower(f.Category),
		strings.ToLower(strings.TrimSpace(f.Location)),
		strings.TrimSpace(f.MaxPrice),
		f.Date,
	)
}

// Match reports whether the event passes every active field. It is pure:
// the only ambient input is the caller-supplied clock value.
func (f Filter) Match(ev models.Event, now time.Time) bool {
	return f.matchKeyword(ev) &&
		f.matchCategory(ev) &&
		f.matchLocation(ev) &&
		f.matchMaxPrice(ev) &&
		f.matchDate(ev, now)
}

func (f Filter) matchKeyword(ev models.Event) bool {
	q := strings.ToLower(strings.TrimSpace(f.Keyword))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(ev.Title), q) ||
		strings.Contains(strings.ToLower(ev.Location), q)
}

func (f Filter) matchCategory(ev models.Event) bool {
	if f.Category == "" || strings.EqualFold(f.Category, "all") {
		return true
	}
	return strings.EqualFold(ev.Category, f.Category)
}

func (f Filter) matchLocation(ev models.Event) bool {
	loc := strings.ToLower(strings.TrimSpace(f.Location))
	if loc == "" {
		return true
	}
	return strings.Contains(strings.ToLower(ev.Location), loc)
}

func (f Filter) matchMaxPrice(ev models.Event) bool {
	raw := strings.TrimSpace(f.MaxPrice)
	if raw == "" {
		return true
	}
	max, err := decimal.NewFromString(raw)
	if err != nil {
		// Non-numeric input behaves as if the field were absent.
		return true
	}
	return ev.Price.LessThanOrEqual(max)
}

func (f Filter) matchDate(ev models.Event, now time.Time) bool {
	if f.Date == "" {
		return true
	}
	from, to, ok := bucketWindow(f.Date, now)
	if !ok {
		return true
	}
	// The window is derived in now's location; the event date must be read
	// in the same location or boundary days shift by one across zones.
	day := startOfDay(ev.StartTime.In(now.Location()))
	return !day.Before(from) && !day.After(to)
}
