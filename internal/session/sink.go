package session

import (
	"context"

	"pizzeria/internal/logger"
	"pizzeria/internal/models"
)

// EventSink receives the outcome of checkout and reservation confirmation.
// The session ignores whether delivery worked; errors are only logged.
type EventSink interface {
	OrderFinalized(ctx context.Context, order models.FinalizedOrder) error
	ReservationConfirmed(ctx context.Context, r models.Reservation) error
}

// NopSink drops every event
type NopSink struct{}

func (NopSink) OrderFinalized(context.Context, models.FinalizedOrder) error   { return nil }
func (NopSink) ReservationConfirmed(context.Context, models.Reservation) error { return nil }

// LogSink writes events to the log instead of a broker
type LogSink struct {
	Logger *logger.Logger
}

func (s LogSink) OrderFinalized(_ context.Context, order models.FinalizedOrder) error {
	s.Logger.Info("order_event_logged", "Finalized order (no broker configured)", "", map[string]interface{}{
		"order_number": order.Number,
		"total_amount": order.Total,
	})
	return nil
}

func (s LogSink) ReservationConfirmed(_ context.Context, r models.Reservation) error {
	s.Logger.Info("reservation_event_logged", "Confirmed reservation (no broker configured)", "", map[string]interface{}{
		"reservation_id": r.ID,
		"day":            r.Day.Format(models.DayFormat),
		"slot":           r.Slot,
	})
	return nil
}
