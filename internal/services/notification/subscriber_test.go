package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/logger"
	"pizzeria/internal/messaging"
	"pizzeria/internal/models"
)

type scriptedSource struct {
	bodies [][]byte
	errs   []error
	closed bool
}

func (s *scriptedSource) StartConsuming(ctx context.Context, handler messaging.MessageHandler) error {
	for _, b := range s.bodies {
		s.errs = append(s.errs, handler(ctx, b))
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *scriptedSource) Close() error {
	s.closed = true
	return nil
}

func TestFormatNotification(t *testing.T) {
	at := time.Date(2026, 10, 19, 18, 45, 0, 0, time.UTC)
	order := models.FinalizedOrder{
		Number: "ORD_20261019_001",
		Lines:  []models.OrderLine{{ItemID: "margherita", Quantity: 2, Price: 68}},
		Total:  151,
	}

	assert.Equal(t,
		"🍕 [2026-10-19 18:45:00] Order ORD_20261019_001 is in the kitchen: 2 item(s), total 151.",
		formatNotification(models.CreateOrderNotification(order, at)))

	res := models.Reservation{ID: "r-1", Day: time.Date(2026, 10, 23, 0, 0, 0, 0, time.UTC), Slot: "19:00"}
	assert.Equal(t,
		"📅 [2026-10-19 18:45:00] Booking r-1 confirmed: table on 2026-10-23 at 19:00.",
		formatNotification(models.CreateReservationNotification(res, at)))

	assert.Contains(t, formatNotification(&models.NotificationMessage{Kind: "other", Reference: "x", Timestamp: at}), "other x")
}

func TestSubscriberPrintsNotices(t *testing.T) {
	body, err := json.Marshal(models.CreateReservationNotification(models.Reservation{
		ID:   "r-7",
		Day:  time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC),
		Slot: "20:30",
	}, time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	src := &scriptedSource{bodies: [][]byte{body, []byte("not json")}}
	var out bytes.Buffer
	sub := NewSubscriber(src, &out, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, sub.Start(ctx))

	assert.True(t, src.closed)
	assert.Contains(t, out.String(), "Booking r-7 confirmed: table on 2026-10-24 at 20:30.")
	require.Len(t, src.errs, 2)
	assert.NoError(t, src.errs[0])
	assert.ErrorIs(t, src.errs[1], messaging.ErrDiscard)
}
