package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
	OrderExpired   = "expired"
)

type OrderItem struct {
	CategoryID string          `json:"category_id"`
	EventID    string          `json:"event_id,omitempty"`
	Quantity   int             `json:"quantity"`
	PriceEach  decimal.Decimal `json:"price_each"`
}

type Order struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	Items      []OrderItem     `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
}
