package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Routing keys on the session_events exchange
const (
	RoutingOrderFinalized       = "order.finalized"
	RoutingReservationConfirmed = "reservation.confirmed"
)

// DayFormat is the wire format of reservation days
const DayFormat = "2006-01-02"

// OrderFinalizedMessage is published when a checkout reaches success
type OrderFinalizedMessage struct {
	MessageID   string      `json:"message_id"`
	OrderID     string      `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	Items       []OrderLine `json:"items"`
	Subtotal    int64       `json:"subtotal"`
	DeliveryFee int64       `json:"delivery_fee"`
	TotalAmount int64       `json:"total_amount"`
	FinalizedAt time.Time   `json:"finalized_at"`
}

// ReservationConfirmedMessage is published when a table booking is confirmed
type ReservationConfirmedMessage struct {
	MessageID     string    `json:"message_id"`
	ReservationID string    `json:"reservation_id"`
	Day           string    `json:"day"`
	Slot          string    `json:"slot"`
	ConfirmedAt   time.Time `json:"confirmed_at"`
}

// Notification kinds
const (
	NotificationOrderRecorded       = "order_recorded"
	NotificationReservationRecorded = "reservation_recorded"
)

// NotificationMessage is the customer-facing notice sent to the fanout exchange
type NotificationMessage struct {
	Kind      string    `json:"kind"`
	Reference string    `json:"reference"`
	Summary   string    `json:"summary"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateOrderFinalizedMessage creates an OrderFinalizedMessage from a finalized order
func CreateOrderFinalizedMessage(order FinalizedOrder) *OrderFinalizedMessage {
	items := make([]OrderLine, len(order.Lines))
	copy(items, order.Lines)
	return &OrderFinalizedMessage{
		MessageID:   uuid.NewString(),
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Items:       items,
		Subtotal:    order.Subtotal,
		DeliveryFee: order.DeliveryFee,
		TotalAmount: order.Total,
		FinalizedAt: order.FinalizedAt.UTC(),
	}
}

// CreateReservationConfirmedMessage creates a ReservationConfirmedMessage from a reservation
func CreateReservationConfirmedMessage(r Reservation) *ReservationConfirmedMessage {
	return &ReservationConfirmedMessage{
		MessageID:     uuid.NewString(),
		ReservationID: r.ID,
		Day:           r.Day.Format(DayFormat),
		Slot:          r.Slot,
		ConfirmedAt:   r.ConfirmedAt.UTC(),
	}
}

// Order converts the message back into a FinalizedOrder
func (m *OrderFinalizedMessage) Order() FinalizedOrder {
	return FinalizedOrder{
		ID:          m.OrderID,
		Number:      m.OrderNumber,
		Lines:       m.Items,
		Subtotal:    m.Subtotal,
		DeliveryFee: m.DeliveryFee,
		Total:       m.TotalAmount,
		FinalizedAt: m.FinalizedAt,
	}
}

// Reservation converts the message back into a Reservation
func (m *ReservationConfirmedMessage) Reservation() (Reservation, error) {
	day, err := time.Parse(DayFormat, m.Day)
	if err != nil {
		return Reservation{}, err
	}
	return Reservation{
		ID:          m.ReservationID,
		Day:         day,
		Slot:        m.Slot,
		ConfirmedAt: m.ConfirmedAt,
	}, nil
}

// CreateOrderNotification announces that an order reached the kitchen
func CreateOrderNotification(order FinalizedOrder, at time.Time) *NotificationMessage {
	return &NotificationMessage{
		Kind:      NotificationOrderRecorded,
		Reference: order.Number,
		Summary:   fmt.Sprintf("%d item(s), total %d", order.ItemCount(), order.Total),
		Timestamp: at.UTC(),
	}
}

// CreateReservationNotification announces a booked table
func CreateReservationNotification(r Reservation, at time.Time) *NotificationMessage {
	return &NotificationMessage{
		Kind:      NotificationReservationRecorded,
		Reference: r.ID,
		Summary:   fmt.Sprintf("table on %s at %s", r.Day.Format(DayFormat), r.Slot),
		Timestamp: at.UTC(),
	}
}
