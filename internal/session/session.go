// Package session composes the cart, checkout flow, and reservation selector
// into the single aggregate a rendering surface talks to.
//
// Every intent runs under one lock and returns the snapshot taken before the
// lock is released, so a reader never observes a half-applied intent. Events
// for external collaborators are emitted after the state has committed; their
// outcome never feeds back into the session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pizzeria/internal/cart"
	"pizzeria/internal/catalog"
	"pizzeria/internal/logger"
	"pizzeria/internal/models"
	"pizzeria/internal/orderflow"
	"pizzeria/internal/reservation"
)

// Tab selects the top-level mode of the overlay
type Tab string

const (
	TabReserve Tab = "reserve"
	TabOrder   Tab = "order"
)

// Valid reports whether t is a known tab
func (t Tab) Valid() bool {
	return t == TabReserve || t == TabOrder
}

// Options configures a session
type Options struct {
	// DeliveryFee is fixed for the lifetime of the session.
	DeliveryFee int64
	Now         func() time.Time
	Location    *time.Location
	Sink        EventSink
	Logger      *logger.Logger
}

// Session is the resettable aggregate of tab, overlay, cart, flow and reservation
type Session struct {
	mu sync.Mutex

	catalog     *catalog.Catalog
	cart        *cart.Cart
	flow        *orderflow.Flow
	reservation *reservation.Selector

	tab         Tab
	overlayOpen bool
	deliveryFee int64
	lastOrder   *models.FinalizedOrder
	version     uint64

	orderCounter  int
	lastOrderDate string

	now  func() time.Time
	sink EventSink
	log  *logger.Logger
}

// New creates a session over a read-only catalog
func New(cat *catalog.Catalog, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Sink == nil {
		opts.Sink = NopSink{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &Session{
		catalog:     cat,
		cart:        cart.New(),
		flow:        orderflow.New(),
		reservation: reservation.New(opts.Now, opts.Location),
		tab:         TabOrder,
		deliveryFee: opts.DeliveryFee,
		now:         opts.Now,
		sink:        opts.Sink,
		log:         opts.Logger,
	}
}

// Catalog returns the read-only menu
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// Snapshot returns the current state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// AvailableDays returns the bookable days relative to now
func (s *Session) AvailableDays() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservation.AvailableDays()
}

// Slots returns the fixed bookable time slots
func (s *Session) Slots() []reservation.Slot {
	return reservation.Slots()
}

// apply runs fn under the lock and bumps the version when fn reports a change
func (s *Session) apply(fn func() bool) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn() {
		s.version++
	}
	return s.snapshotLocked()
}

// AddItem adds one unit of the catalog item. Unknown ids are ignored, as is
// any cart change while a finalized order awaits acknowledgment.
func (s *Session) AddItem(itemID string) Snapshot {
	return s.apply(func() bool {
		if s.flow.State() == orderflow.Success {
			return false
		}
		item, ok := s.catalog.Lookup(itemID)
		if !ok {
			return false
		}
		s.cart.Add(item)
		return true
	})
}

// RemoveItem removes the whole line for itemID. Emptying the cart on the
// summary step returns the flow to selection in the same change.
func (s *Session) RemoveItem(itemID string) Snapshot {
	return s.apply(func() bool {
		if s.flow.State() == orderflow.Success || s.cart.Quantity(itemID) == 0 {
			return false
		}
		s.cart.Remove(itemID)
		if s.cart.IsEmpty() && s.flow.State() == orderflow.Summary {
			s.flow.Back()
		}
		return true
	})
}

// UpdateQuantity changes a line quantity by delta, never below one
func (s *Session) UpdateQuantity(itemID string, delta int) Snapshot {
	return s.apply(func() bool {
		if s.flow.State() == orderflow.Success {
			return false
		}
		before := s.cart.Quantity(itemID)
		if before == 0 {
			return false
		}
		s.cart.UpdateQuantity(itemID, delta)
		return s.cart.Quantity(itemID) != before
	})
}

// SelectDay picks a reservation day from the current window
func (s *Session) SelectDay(day time.Time) Snapshot {
	return s.apply(func() bool {
		return s.reservation.SelectDay(day)
	})
}

// SelectTime picks a reservation slot
func (s *Session) SelectTime(slot reservation.Slot) Snapshot {
	return s.apply(func() bool {
		return s.reservation.SelectTime(slot)
	})
}

// ConfirmReservation confirms the selected day and slot. Without both it
// does nothing.
func (s *Session) ConfirmReservation(ctx context.Context) Snapshot {
	var (
		confirmed models.Reservation
		ok        bool
	)
	snap := s.apply(func() bool {
		confirmed, ok = s.reservation.Confirm()
		return ok
	})
	if !ok {
		return snap
	}

	requestID := logger.GenerateRequestID()
	s.log.Info("reservation_confirmed", "Reservation confirmed", requestID, map[string]interface{}{
		"reservation_id": confirmed.ID,
		"day":            confirmed.Day.Format(models.DayFormat),
		"slot":           confirmed.Slot,
	})
	if err := s.sink.ReservationConfirmed(ctx, confirmed); err != nil {
		s.log.Error("event_delivery_failed", "Failed to deliver reservation confirmation", requestID, err, map[string]interface{}{
			"reservation_id": confirmed.ID,
		})
	}
	return snap
}

// AdvanceToSummary moves checkout to the summary step when the cart has items
func (s *Session) AdvanceToSummary() Snapshot {
	return s.apply(func() bool {
		return s.flow.Advance(s.cart.IsEmpty())
	})
}

// ReturnToSelection goes back from the summary to the menu. The cart is kept.
func (s *Session) ReturnToSelection() Snapshot {
	return s.apply(func() bool {
		return s.flow.Back()
	})
}

// FinalizeOrder completes checkout from the summary step. Completion always
// succeeds here; the order is handed to the event sink afterwards.
func (s *Session) FinalizeOrder(ctx context.Context) Snapshot {
	var order *models.FinalizedOrder
	snap := s.apply(func() bool {
		if !s.flow.CanFinalize(s.cart.IsEmpty()) {
			return false
		}
		now := s.now()
		order = &models.FinalizedOrder{
			ID:          uuid.NewString(),
			Number:      s.nextOrderNumber(now),
			Lines:       s.cart.OrderLines(),
			Subtotal:    s.cart.Subtotal(),
			DeliveryFee: s.deliveryFee,
			Total:       s.cart.Total(s.deliveryFee),
			FinalizedAt: now,
		}
		s.flow.Finalize(false)
		s.lastOrder = order
		return true
	})
	if order == nil {
		return snap
	}

	requestID := logger.GenerateRequestID()
	s.log.Info("order_finalized", "Order finalized", requestID, map[string]interface{}{
		"order_number": order.Number,
		"total_amount": order.Total,
		"lines":        len(order.Lines),
	})
	if err := s.sink.OrderFinalized(ctx, *order); err != nil {
		s.log.Error("event_delivery_failed", "Failed to deliver finalized order", requestID, err, map[string]interface{}{
			"order_number": order.Number,
		})
	}
	return snap
}

// AcknowledgeSuccessAndReset ends a completed checkout: the cart is emptied,
// the flow returns to selection and the overlay closes, all as one change.
// The reservation selection is left as is. Outside Success it does nothing.
func (s *Session) AcknowledgeSuccessAndReset() Snapshot {
	var number string
	snap := s.apply(func() bool {
		if s.flow.State() != orderflow.Success {
			return false
		}
		if s.lastOrder != nil {
			number = s.lastOrder.Number
		}
		s.cart.Clear()
		s.flow.Reset()
		s.overlayOpen = false
		s.lastOrder = nil
		return true
	})
	if number != "" {
		s.log.Debug("session_reset", "Session reset after order acknowledgment", "", map[string]interface{}{
			"order_number": number,
		})
	}
	return snap
}

// OpenOverlay opens the overlay with tab active in a single change
func (s *Session) OpenOverlay(tab Tab) Snapshot {
	return s.apply(func() bool {
		if !tab.Valid() || (s.overlayOpen && s.tab == tab) {
			return false
		}
		s.tab = tab
		s.overlayOpen = true
		return true
	})
}

// CloseOverlay hides the overlay without touching cart or reservation
func (s *Session) CloseOverlay() Snapshot {
	return s.apply(func() bool {
		if !s.overlayOpen {
			return false
		}
		s.overlayOpen = false
		return true
	})
}

// SetActiveTab switches tabs without touching cart or reservation
func (s *Session) SetActiveTab(tab Tab) Snapshot {
	return s.apply(func() bool {
		if !tab.Valid() || s.tab == tab {
			return false
		}
		s.tab = tab
		return true
	})
}

// nextOrderNumber returns ORD_YYYYMMDD_NNN, restarting the sequence each day
func (s *Session) nextOrderNumber(now time.Time) string {
	today := now.Format("20060102")
	if today != s.lastOrderDate {
		s.orderCounter = 0
		s.lastOrderDate = today
	}
	s.orderCounter++
	return models.GenerateOrderNumber(now, s.orderCounter)
}
