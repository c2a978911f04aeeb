// Package recorder is the confirmation backend. It consumes finalized orders
// and confirmed reservations from the broker, stores them, and announces each
// recorded event on the notifications exchange.
package recorder

import (
	"context"
	"fmt"
	"time"

	"pizzeria/internal/logger"
	"pizzeria/internal/messaging"
	"pizzeria/internal/models"
)

// Store persists confirmation events
type Store interface {
	RecordOrder(ctx context.Context, messageID string, order models.FinalizedOrder) (bool, error)
	RecordReservation(ctx context.Context, messageID string, r models.Reservation) (bool, error)
	GetOrderByNumber(ctx context.Context, number string) (*models.FinalizedOrder, error)
	Ping(ctx context.Context) error
}

// Notifier publishes customer notices
type Notifier interface {
	PublishNotification(ctx context.Context, msg interface{}) error
}

// Service turns broker messages into stored records
type Service struct {
	store    Store
	notifier Notifier
	logger   *logger.Logger
	now      func() time.Time
}

// NewService creates a recorder service. notifier may be nil.
func NewService(store Store, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
	}
}

// HandleOrderFinalized records one order.finalized message
func (s *Service) HandleOrderFinalized(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var msg models.OrderFinalizedMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse finalized order", requestID, err, nil)
		return err
	}
	if msg.MessageID == "" || msg.OrderNumber == "" || len(msg.Items) == 0 {
		return fmt.Errorf("%w: incomplete finalized order message", messaging.ErrDiscard)
	}

	order := msg.Order()
	inserted, err := s.store.RecordOrder(ctx, msg.MessageID, order)
	if err != nil {
		return fmt.Errorf("failed to record order %s: %w", order.Number, err)
	}
	if !inserted {
		s.logger.Debug("duplicate_message", "Finalized order already recorded", requestID, map[string]interface{}{
			"message_id":   msg.MessageID,
			"order_number": order.Number,
		})
		return nil
	}

	s.logger.Info("order_recorded", "Recorded finalized order", requestID, map[string]interface{}{
		"order_number": order.Number,
		"total_amount": order.Total,
		"items":        order.ItemCount(),
	})
	s.notify(ctx, models.CreateOrderNotification(order, s.now()), requestID)
	return nil
}

// HandleReservationConfirmed records one reservation.confirmed message
func (s *Service) HandleReservationConfirmed(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var msg models.ReservationConfirmedMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse confirmed reservation", requestID, err, nil)
		return err
	}
	res, err := msg.Reservation()
	if err != nil || msg.MessageID == "" {
		return fmt.Errorf("%w: invalid reservation message", messaging.ErrDiscard)
	}

	inserted, err := s.store.RecordReservation(ctx, msg.MessageID, res)
	if err != nil {
		return fmt.Errorf("failed to record reservation %s: %w", res.ID, err)
	}
	if !inserted {
		s.logger.Debug("duplicate_message", "Reservation already recorded", requestID, map[string]interface{}{
			"message_id": msg.MessageID,
		})
		return nil
	}

	s.logger.Info("reservation_recorded", "Recorded table reservation", requestID, map[string]interface{}{
		"reservation_id": res.ID,
		"day":            msg.Day,
		"slot":           res.Slot,
	})
	s.notify(ctx, models.CreateReservationNotification(res, s.now()), requestID)
	return nil
}

// GetOrder looks an order up by its number
func (s *Service) GetOrder(ctx context.Context, number string) (*models.FinalizedOrder, error) {
	return s.store.GetOrderByNumber(ctx, number)
}

// HealthCheck reports whether the store answers
func (s *Service) HealthCheck(ctx context.Context) bool {
	return s.store.Ping(ctx) == nil
}

// notify is best effort: the record is already committed.
func (s *Service) notify(ctx context.Context, msg *models.NotificationMessage, requestID string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishNotification(ctx, msg); err != nil {
		s.logger.Error("notification_failed", "Failed to publish notification", requestID, err, map[string]interface{}{
			"kind":      msg.Kind,
			"reference": msg.Reference,
		})
	}
}
