// Package notification prints customer notices announced by the recorder.
package notification

import (
	"context"
	"errors"
	"fmt"
	"io"

	"pizzeria/internal/logger"
	"pizzeria/internal/messaging"
	"pizzeria/internal/models"
)

// Source delivers raw notification bodies to a handler
type Source interface {
	StartConsuming(ctx context.Context, handler messaging.MessageHandler) error
	Close() error
}

// Subscriber handles notification messages
type Subscriber struct {
	source Source
	out    io.Writer
	logger *logger.Logger
}

// NewSubscriber creates a new notification subscriber writing notices to out
func NewSubscriber(source Source, out io.Writer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		source: source,
		out:    out,
		logger: log,
	}
}

// Start consumes notifications until ctx is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	err := s.source.StartConsuming(ctx, s.handleNotification)

	s.logger.Info("graceful_shutdown", "Stopping notification subscriber", requestID, nil)
	if cerr := s.source.Close(); cerr != nil {
		s.logger.Error("consumer_close_failed", "Failed to cancel consumer", requestID, cerr, nil)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handleNotification processes one notice
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var msg models.NotificationMessage
	if err := messaging.ParseMessage(body, &msg); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return err
	}

	if _, err := fmt.Fprintln(s.out, formatNotification(&msg)); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}

	s.logger.Debug("notification_displayed", "Notification displayed to user", requestID, map[string]interface{}{
		"kind":      msg.Kind,
		"reference": msg.Reference,
	})
	return nil
}

// formatNotification creates a human-readable notification message
func formatNotification(msg *models.NotificationMessage) string {
	timestamp := msg.Timestamp.Format("2006-01-02 15:04:05")

	switch msg.Kind {
	case models.NotificationOrderRecorded:
		return fmt.Sprintf("🍕 [%s] Order %s is in the kitchen: %s.", timestamp, msg.Reference, msg.Summary)
	case models.NotificationReservationRecorded:
		return fmt.Sprintf("📅 [%s] Booking %s confirmed: %s.", timestamp, msg.Reference, msg.Summary)
	default:
		return fmt.Sprintf("📋 [%s] %s %s: %s", timestamp, msg.Kind, msg.Reference, msg.Summary)
	}
}
