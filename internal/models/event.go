package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories the marketplace recognises. The upstream stores category as a
// free string; values outside this list still round-trip, they just never
// match an exact category filter.
var Categories = []string{
	"music",
	"exhibition",
	"theater",
	"talkshow",
	"sports",
	"workshop",
	"competition",
}

type Event struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Location      string          `json:"location"`
	Venue         string          `json:"venue"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	BannerURL     string          `json:"banner_url"`
	OrganizerName string          `json:"organizer_name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	PriceKnown    bool            `json:"price_known"`
}

func IsKnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
