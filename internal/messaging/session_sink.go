package messaging

import (
	"context"

	"pizzeria/internal/models"
)

// EventPublisher is the part of Publisher the session sink needs
type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey string, msg interface{}) error
}

// SessionSink forwards session outcomes to the session events exchange
type SessionSink struct {
	publisher EventPublisher
}

func NewSessionSink(p EventPublisher) *SessionSink {
	return &SessionSink{publisher: p}
}

func (s *SessionSink) OrderFinalized(ctx context.Context, order models.FinalizedOrder) error {
	return s.publisher.PublishEvent(ctx, models.RoutingOrderFinalized, models.CreateOrderFinalizedMessage(order))
}

func (s *SessionSink) ReservationConfirmed(ctx context.Context, r models.Reservation) error {
	return s.publisher.PublishEvent(ctx, models.RoutingReservationConfirmed, models.CreateReservationConfirmedMessage(r))
}
