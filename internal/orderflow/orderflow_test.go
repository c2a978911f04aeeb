package orderflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroValueStartsInSelection(t *testing.T) {
	var f Flow
	assert.Equal(t, Selection, f.State())
	assert.Equal(t, Selection, New().State())
}

func TestAdvance_EmptyCartStaysInSelection(t *testing.T) {
	f := New()
	assert.False(t, f.CanAdvance(true))
	assert.False(t, f.Advance(true))
	assert.Equal(t, Selection, f.State())
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name      string
		steps     func(f *Flow) bool
		wantOK    bool
		wantState State
	}{
		{"advance with items", func(f *Flow) bool { return f.Advance(false) }, true, Summary},
		{"back from selection", func(f *Flow) bool { return f.Back() }, false, Selection},
		{"finalize from selection", func(f *Flow) bool { return f.Finalize(false) }, false, Selection},
		{"back from summary", func(f *Flow) bool { f.Advance(false); return f.Back() }, true, Selection},
		{"finalize from summary", func(f *Flow) bool { f.Advance(false); return f.Finalize(false) }, true, Success},
		{"finalize empty cart", func(f *Flow) bool { f.Advance(false); return f.Finalize(true) }, false, Summary},
		{"advance from summary", func(f *Flow) bool { f.Advance(false); return f.Advance(false) }, false, Summary},
		{"back from success", func(f *Flow) bool { f.Advance(false); f.Finalize(false); return f.Back() }, false, Success},
		{"advance from success", func(f *Flow) bool { f.Advance(false); f.Finalize(false); return f.Advance(false) }, false, Success},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New()
			assert.Equal(t, tt.wantOK, tt.steps(f))
			assert.Equal(t, tt.wantState, f.State())
		})
	}
}

func TestReset(t *testing.T) {
	f := New()
	f.Advance(false)
	f.Finalize(false)
	assert.Equal(t, Success, f.State())

	f.Reset()
	assert.Equal(t, Selection, f.State())
	assert.True(t, f.CanAdvance(false))
}
