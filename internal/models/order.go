package models

import (
	"fmt"
	"time"
)

// OrderLine represents one item of a finalized order
type OrderLine struct {
	ItemID   string `json:"item_id" db:"menu_item_id"`
	Name     string `json:"name" db:"name"`
	Quantity int    `json:"quantity" db:"quantity"`
	Price    int64  `json:"price" db:"price"`
}

// LineTotal returns price times quantity
func (l OrderLine) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

// FinalizedOrder is the frozen result of a completed checkout
type FinalizedOrder struct {
	ID          string      `json:"id" db:"id"`
	Number      string      `json:"order_number" db:"number"`
	Lines       []OrderLine `json:"items"`
	Subtotal    int64       `json:"subtotal" db:"subtotal"`
	DeliveryFee int64       `json:"delivery_fee" db:"delivery_fee"`
	Total       int64       `json:"total_amount" db:"total"`
	FinalizedAt time.Time   `json:"finalized_at" db:"finalized_at"`
}

// ItemCount returns the number of units across all lines
func (o FinalizedOrder) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// Reservation is a confirmed table booking
type Reservation struct {
	ID          string    `json:"id" db:"id"`
	Day         time.Time `json:"day" db:"day"`
	Slot        string    `json:"slot" db:"slot"`
	ConfirmedAt time.Time `json:"confirmed_at" db:"confirmed_at"`
}

// GenerateOrderNumber generates an order number in format ORD_YYYYMMDD_NNN
func GenerateOrderNumber(date time.Time, sequence int) string {
	dateStr := date.Format("20060102")
	return fmt.Sprintf("ORD_%s_%03d", dateStr, sequence)
}
