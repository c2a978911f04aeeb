package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria/internal/catalog"
	"pizzeria/internal/orderflow"
	"pizzeria/internal/session"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	now := time.Date(2026, 10, 19, 17, 0, 0, 0, time.UTC)
	s := session.New(catalog.Default(), session.Options{
		DeliveryFee: 15,
		Now:         func() time.Time { return now },
		Location:    time.UTC,
	})
	return New(context.Background(), s, "zł")
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys to the model and delivers any snapshot produced by a
// returned command. Other commands (cursor blink, quit) are dropped.
func press(m *Model, keys ...string) tea.Cmd {
	var last tea.Cmd
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		last = cmd
		if cmd == nil {
			continue
		}
		if snap, ok := runSnapshotCmd(cmd); ok {
			m.Update(snap)
		}
	}
	return last
}

func runSnapshotCmd(cmd tea.Cmd) (snapshotMsg, bool) {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		snap, ok := msg.(snapshotMsg)
		return snap, ok
	case <-time.After(50 * time.Millisecond):
		return snapshotMsg{}, false
	}
}

func TestLandingOpensOverlay(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "order online")
	assert.Contains(t, m.View(), "reserve a table")

	press(m, "o")
	assert.True(t, m.snap.OverlayOpen)
	assert.Equal(t, session.TabOrder, m.snap.Tab)

	press(m, "esc", "r")
	assert.True(t, m.snap.OverlayOpen)
	assert.Equal(t, session.TabReserve, m.snap.Tab)

	press(m, "tab")
	assert.Equal(t, session.TabOrder, m.snap.Tab)
}

func TestQuitOnlyFromLanding(t *testing.T) {
	m := newTestModel(t)
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = newTestModel(t)
	press(m, "o")
	assert.Nil(t, press(m, "q"))
	assert.True(t, m.snap.OverlayOpen)
}

func TestCheckoutOfferedOnlyWithItems(t *testing.T) {
	m := newTestModel(t)
	press(m, "o")
	assert.NotContains(t, m.View(), "checkout")

	press(m, "c")
	assert.Equal(t, orderflow.Selection, m.snap.Flow)

	press(m, "enter")
	assert.Equal(t, 1, m.snap.Quantity("margherita"))
	assert.Contains(t, m.View(), "checkout")
}

func TestQuantityKeysAdjustHighlightedLine(t *testing.T) {
	m := newTestModel(t)
	press(m, "o", "down", "a", "+", "+")
	assert.Equal(t, 3, m.snap.Quantity("diavola"))

	press(m, "-", "-", "-", "-")
	assert.Equal(t, 1, m.snap.Quantity("diavola"))

	press(m, "x")
	assert.True(t, m.snap.CartEmpty())
}

func TestCheckoutFlow(t *testing.T) {
	m := newTestModel(t)
	press(m, "o", "enter", "enter", "c")
	require.Equal(t, orderflow.Summary, m.snap.Flow)
	view := m.View()
	assert.Contains(t, view, "Order summary")
	assert.Contains(t, view, "136 zł")
	assert.Contains(t, view, "151 zł")
	assert.Contains(t, view, "place order")

	press(m, "b")
	assert.Equal(t, orderflow.Selection, m.snap.Flow)
	assert.Equal(t, 2, m.snap.Quantity("margherita"))

	press(m, "c", "f")
	require.Equal(t, orderflow.Success, m.snap.Flow)
	assert.Contains(t, m.View(), "ORD_20261019_001")
	assert.Contains(t, m.View(), "return to site")

	press(m, "enter")
	assert.False(t, m.snap.OverlayOpen)
	assert.True(t, m.snap.CartEmpty())
	assert.Equal(t, orderflow.Selection, m.snap.Flow)
}

func TestFilterNarrowsMenu(t *testing.T) {
	m := newTestModel(t)
	press(m, "o", "/", "tira")
	assert.True(t, m.filtering)
	item, ok := m.highlighted()
	require.True(t, ok)
	assert.Equal(t, "tiramisu", item.ID)

	press(m, "enter")
	assert.False(t, m.filtering)
	press(m, "enter")
	assert.Equal(t, 1, m.snap.Quantity("tiramisu"))

	press(m, "/", "esc")
	assert.Equal(t, "", m.filter.Value())
	assert.Len(t, m.visibleItems(), catalog.Default().Len())
}

func TestReserveSelectAndConfirm(t *testing.T) {
	m := newTestModel(t)
	press(m, "r")
	assert.NotContains(t, m.View(), "confirm")

	press(m, "c")
	assert.Nil(t, m.snap.Confirmation)

	press(m, "right", "right", "right", "right", "down", "enter")
	require.True(t, m.snap.Confirmable)
	require.NotNil(t, m.snap.Day)
	assert.Equal(t, 23, m.snap.Day.Day())
	assert.Equal(t, "19:00", m.snap.Slot.String())
	assert.Contains(t, m.View(), "confirm")

	press(m, "c")
	require.NotNil(t, m.snap.Confirmation)
	assert.Contains(t, m.View(), "Reserved for Fri 23 Oct at 19:00")
}

func TestClosingOverlayKeepsCartAndReservation(t *testing.T) {
	m := newTestModel(t)
	press(m, "o", "enter", "tab", "down", "enter", "esc")
	assert.False(t, m.snap.OverlayOpen)
	assert.Equal(t, 1, m.snap.Quantity("margherita"))
	assert.True(t, m.snap.Confirmable)
	assert.Contains(t, m.View(), "cart: 1")
}

func TestStaleSnapshotIgnored(t *testing.T) {
	m := newTestModel(t)
	stale := m.snap
	press(m, "o", "enter")
	m.Update(snapshotMsg(stale))
	assert.Equal(t, 1, m.snap.Quantity("margherita"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "68 zł", formatPrice(68, "zł"))
	assert.Equal(t, "0", formatPrice(0, ""))
}

func TestReservePicksDayAndTimeSeparately(t *testing.T) {
	m := newTestModel(t)
	press(m, "r", "right", "d")
	require.NotNil(t, m.snap.Day)
	assert.Equal(t, 20, m.snap.Day.Day())
	assert.Nil(t, m.snap.Slot)
	assert.False(t, m.snap.Confirmable)
	assert.Contains(t, m.View(), "Selected: Tue 20 Oct at no time")

	press(m, "down", "down", "t")
	require.NotNil(t, m.snap.Slot)
	assert.Equal(t, "19:30", m.snap.Slot.String())
	assert.Equal(t, 20, m.snap.Day.Day())
	assert.True(t, m.snap.Confirmable)

	press(m, "right", "d")
	assert.Equal(t, 21, m.snap.Day.Day())
	assert.Equal(t, "19:30", m.snap.Slot.String())
}
