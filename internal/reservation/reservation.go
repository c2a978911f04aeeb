// Package reservation implements the table-reservation day and time selector.
package reservation

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"pizzeria/internal/models"
)

// WindowDays is the number of bookable days starting today
const WindowDays = 14

// Slot is a bookable time of day
type Slot struct {
	hour   int
	minute int
}

var slots = []Slot{
	{18, 30}, {19, 0}, {19, 30}, {20, 0},
	{20, 30}, {21, 0}, {21, 30}, {22, 0},
}

// Slots returns the fixed bookable slots in order
func Slots() []Slot {
	out := make([]Slot, len(slots))
	copy(out, slots)
	return out
}

// ParseSlot parses "HH:MM" and reports whether it is one of the fixed slots
func ParseSlot(s string) (Slot, bool) {
	for _, slot := range slots {
		if slot.String() == s {
			return slot, true
		}
	}
	return Slot{}, false
}

func (s Slot) String() string {
	return fmt.Sprintf("%02d:%02d", s.hour, s.minute)
}

// Valid reports whether s is one of the fixed slots
func (s Slot) Valid() bool {
	for _, slot := range slots {
		if slot == s {
			return true
		}
	}
	return false
}

// DayLabel renders a day for display, e.g. "Mon 19 Oct"
func DayLabel(day time.Time) string {
	return day.Format("Mon 02 Jan")
}

// Selector holds the optional day and slot picked for a booking.
// Day and slot are independent; neither is validated against the other.
type Selector struct {
	now func() time.Time
	loc *time.Location

	day       *time.Time
	slot      *Slot
	confirmed *models.Reservation
}

// New creates a selector. A nil clock means time.Now, a nil location time.Local.
func New(now func() time.Time, loc *time.Location) *Selector {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Selector{now: now, loc: loc}
}

// AvailableDays returns WindowDays consecutive midnights starting today.
// The window is recomputed from the clock on every call.
func (s *Selector) AvailableDays() []time.Time {
	y, m, d := s.now().In(s.loc).Date()
	days := make([]time.Time, WindowDays)
	for i := range days {
		days[i] = time.Date(y, m, d+i, 0, 0, 0, 0, s.loc)
	}
	return days
}

// SelectDay sets the day when it falls inside the current window
func (s *Selector) SelectDay(day time.Time) bool {
	y, m, d := day.In(s.loc).Date()
	want := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	if !s.inWindow(want) {
		return false
	}
	s.day = &want
	s.confirmed = nil
	return true
}

func (s *Selector) inWindow(day time.Time) bool {
	for _, avail := range s.AvailableDays() {
		if avail.Equal(day) {
			return true
		}
	}
	return false
}

// SelectTime sets the slot when it is one of the fixed slots
func (s *Selector) SelectTime(slot Slot) bool {
	if !slot.Valid() {
		return false
	}
	s.slot = &slot
	s.confirmed = nil
	return true
}

// Day returns the selected day. A day that has since left the window is
// reported as unset.
func (s *Selector) Day() (time.Time, bool) {
	if s.day == nil || !s.inWindow(*s.day) {
		return time.Time{}, false
	}
	return *s.day, true
}

// Slot returns the selected slot
func (s *Selector) Slot() (Slot, bool) {
	if s.slot == nil {
		return Slot{}, false
	}
	return *s.slot, true
}

// IsConfirmable reports whether a day still inside the window and a slot are set
func (s *Selector) IsConfirmable() bool {
	_, ok := s.Day()
	return ok && s.slot != nil
}

// Confirm records a confirmation for the current selection. It does nothing
// and returns false unless IsConfirmable holds.
func (s *Selector) Confirm() (models.Reservation, bool) {
	if !s.IsConfirmable() {
		return models.Reservation{}, false
	}
	day, _ := s.Day()
	r := models.Reservation{
		ID:          uuid.NewString(),
		Day:         day,
		Slot:        s.slot.String(),
		ConfirmedAt: s.now(),
	}
	s.confirmed = &r
	return r, true
}

// Confirmed returns the last confirmation, cleared by any new selection
func (s *Selector) Confirmed() (models.Reservation, bool) {
	if s.confirmed == nil {
		return models.Reservation{}, false
	}
	return *s.confirmed, true
}
