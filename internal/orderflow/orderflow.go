// Package orderflow sequences checkout: Selection -> Summary -> Success.
package orderflow

// State represents a checkout step
type State string

const (
	Selection State = "selection"
	Summary   State = "summary"
	Success   State = "success"
)

// Flow is the checkout state machine. The zero value starts in Selection.
//
// Success is terminal for the flow itself; only Reset, driven by the
// session's acknowledgment, leaves it.
type Flow struct {
	state State
}

// New returns a flow in Selection
func New() *Flow {
	return &Flow{state: Selection}
}

// State returns the current step
func (f *Flow) State() State {
	if f.state == "" {
		return Selection
	}
	return f.state
}

// CanAdvance reports whether Selection -> Summary is allowed
func (f *Flow) CanAdvance(cartEmpty bool) bool {
	return f.State() == Selection && !cartEmpty
}

// CanGoBack reports whether Summary -> Selection is allowed
func (f *Flow) CanGoBack() bool {
	return f.State() == Summary
}

// CanFinalize reports whether Summary -> Success is allowed
func (f *Flow) CanFinalize(cartEmpty bool) bool {
	return f.State() == Summary && !cartEmpty
}

// Advance moves Selection -> Summary when the cart is not empty
func (f *Flow) Advance(cartEmpty bool) bool {
	if !f.CanAdvance(cartEmpty) {
		return false
	}
	f.state = Summary
	return true
}

// Back moves Summary -> Selection
func (f *Flow) Back() bool {
	if !f.CanGoBack() {
		return false
	}
	f.state = Selection
	return true
}

// Finalize moves Summary -> Success. An empty cart is never finalized.
func (f *Flow) Finalize(cartEmpty bool) bool {
	if !f.CanFinalize(cartEmpty) {
		return false
	}
	f.state = Success
	return true
}

// Reset returns the flow to Selection from any state
func (f *Flow) Reset() {
	f.state = Selection
}
