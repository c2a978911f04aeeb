package session

import (
	"time"

	"pizzeria/internal/cart"
	"pizzeria/internal/models"
	"pizzeria/internal/orderflow"
	"pizzeria/internal/reservation"
)

// Snapshot is an immutable copy of the session state. Guard fields tell the
// rendering surface which affordances to offer.
type Snapshot struct {
	// Version increases by one with every intent that changed state.
	Version uint64

	Tab         Tab
	OverlayOpen bool

	Lines       []cart.Line
	ItemCount   int
	Subtotal    int64
	DeliveryFee int64
	Total       int64

	Flow        orderflow.State
	CanAdvance  bool
	CanGoBack   bool
	CanFinalize bool
	// Order is the finalized order while the flow is in Success.
	Order *models.FinalizedOrder

	Day          *time.Time
	Slot         *reservation.Slot
	Confirmable  bool
	Confirmation *models.Reservation
}

// CartEmpty reports whether the snapshot has no cart lines
func (s Snapshot) CartEmpty() bool {
	return len(s.Lines) == 0
}

// Quantity returns the cart quantity for itemID, 0 when absent
func (s Snapshot) Quantity(itemID string) int {
	for _, l := range s.Lines {
		if l.Item.ID == itemID {
			return l.Quantity
		}
	}
	return 0
}

func (s *Session) snapshotLocked() Snapshot {
	empty := s.cart.IsEmpty()
	snap := Snapshot{
		Version:     s.version,
		Tab:         s.tab,
		OverlayOpen: s.overlayOpen,
		Lines:       s.cart.Lines(),
		ItemCount:   s.cart.ItemCount(),
		Subtotal:    s.cart.Subtotal(),
		DeliveryFee: s.deliveryFee,
		Total:       s.cart.Total(s.deliveryFee),
		Flow:        s.flow.State(),
		CanAdvance:  s.flow.CanAdvance(empty),
		CanGoBack:   s.flow.CanGoBack(),
		CanFinalize: s.flow.CanFinalize(empty),
		Confirmable: s.reservation.IsConfirmable(),
	}
	if s.lastOrder != nil {
		order := *s.lastOrder
		order.Lines = append([]models.OrderLine(nil), s.lastOrder.Lines...)
		snap.Order = &order
	}
	if day, ok := s.reservation.Day(); ok {
		snap.Day = &day
	}
	if slot, ok := s.reservation.Slot(); ok {
		snap.Slot = &slot
	}
	if r, ok := s.reservation.Confirmed(); ok {
		snap.Confirmation = &r
	}
	return snap
}
