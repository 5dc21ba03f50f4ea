package catalog

import (
	"sort"

	"github.com/tickify/gateway/internal/models"
)

const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortLowPrice  = "lowPrice"
	SortHighPrice = "highPrice"
)

// Sort orders events in place. The default (and any unknown key) is
// newest-first: start_time descending, so the latest-starting event leads.
// Ties fall back to ID so the ordering is total and independent of whatever
// order the backend happened to return.
func Sort(events []models.Event, key string) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		switch key {
		case SortOldest:
			if !a.StartTime.Equal(b.StartTime) {
				return a.StartTime.Before(b.StartTime)
			}
		case SortLowPrice:
			if !a.Price.Equal(b.Price) {
				return a.Price.LessThan(b.Price)
			}
		case SortHighPrice:
			if !a.Price.Equal(b.Price) {
				return a.Price.GreaterThan(b.Price)
			}
		default: // SortNewest
			if !a.StartTime.Equal(b.StartTime) {
				return a.StartTime.After(b.StartTime)
			}
		}
		return a.ID < b.ID
	})
}
