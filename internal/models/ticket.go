package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TicketCategory struct {
	ID      string          `json:"id"`
	EventID string          `json:"event_id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Quota   int             `json:"quota"`
	Sold    int             `json:"sold"`
}

// Available is quota minus sold. The upstream enforces it never goes
// negative; the gateway only reports it.
func (t TicketCategory) Available() int {
	return t.Quota - t.Sold
}

type IssuedTicket struct {
	ID           string    `json:"id"`
	TicketCode   string    `json:"ticket_code"`
	EventTitle   string    `json:"event_title"`
	CategoryName string    `json:"category_name"`
	StartTime    time.Time `json:"start_time"`
	Venue        string    `json:"venue"`
	IsUsed       bool      `json:"is_used"`
}
