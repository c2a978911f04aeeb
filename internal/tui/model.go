// Package tui is the terminal rendering surface for a session. It renders
// snapshots and forwards key presses to session intents; it never mutates
// session state directly.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pizzeria/internal/models"
	"pizzeria/internal/orderflow"
	"pizzeria/internal/reservation"
	"pizzeria/internal/session"
)

// snapshotMsg carries the result of an intent that ran as a command
type snapshotMsg session.Snapshot

// Model is the bubbletea model over one session
type Model struct {
	ctx      context.Context
	session  *session.Session
	snap     session.Snapshot
	keys     keyMap
	help     help.Model
	currency string

	filter    textinput.Model
	filtering bool

	menuCursor int
	dayCursor  int
	slotCursor int

	width  int
	height int
}

// New creates the model. currency is appended to every rendered amount.
func New(ctx context.Context, s *session.Session, currency string) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "search the menu"
	filter.CharLimit = 32

	return &Model{
		ctx:      ctx,
		session:  s,
		snap:     s.Snapshot(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		currency: currency,
		filter:   filter,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case snapshotMsg:
		m.apply(session.Snapshot(msg))
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		if !m.snap.OverlayOpen {
			return m.updateLanding(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Close):
			m.apply(m.session.CloseOverlay())
			return m, nil
		case key.Matches(msg, m.keys.SwitchTab):
			m.apply(m.session.SetActiveTab(otherTab(m.snap.Tab)))
			return m, nil
		}
		if m.snap.Tab == session.TabReserve {
			return m.updateReserve(msg)
		}
		return m.updateOrder(msg)
	}
	return m, nil
}

func (m *Model) apply(snap session.Snapshot) {
	// Older snapshots can arrive late from commands.
	if snap.Version < m.snap.Version {
		return
	}
	m.snap = snap
	m.clampMenuCursor()
}

func (m *Model) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.OpenOrder):
		m.apply(m.session.OpenOverlay(session.TabOrder))
	case key.Matches(msg, m.keys.OpenReserve):
		m.apply(m.session.OpenOverlay(session.TabReserve))
	}
	return m, nil
}

func (m *Model) updateOrder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.snap.Flow {
	case orderflow.Selection:
		return m.updateSelection(msg)
	case orderflow.Summary:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.apply(m.session.ReturnToSelection())
		case key.Matches(msg, m.keys.Finalize):
			return m, m.finalizeCmd()
		}
	case orderflow.Success:
		if key.Matches(msg, m.keys.Done) {
			m.apply(m.session.AcknowledgeSuccessAndReset())
			m.menuCursor = 0
			m.filter.Reset()
		}
	}
	return m, nil
}

func (m *Model) updateSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(m.visibleItems())-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.Checkout):
		m.apply(m.session.AdvanceToSummary())
	default:
		item, ok := m.highlighted()
		if !ok {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			m.apply(m.session.AddItem(item.ID))
		case key.Matches(msg, m.keys.Inc):
			m.apply(m.session.UpdateQuantity(item.ID, 1))
		case key.Matches(msg, m.keys.Dec):
			m.apply(m.session.UpdateQuantity(item.ID, -1))
		case key.Matches(msg, m.keys.Remove):
			m.apply(m.session.RemoveItem(item.ID))
		}
	}
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Reset()
		m.filter.Blur()
		m.clampMenuCursor()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.menuCursor = 0
	return m, cmd
}

func (m *Model) updateReserve(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.dayCursor > 0 {
			m.dayCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.dayCursor < reservation.WindowDays-1 {
			m.dayCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.slotCursor > 0 {
			m.slotCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.slotCursor < len(m.session.Slots())-1 {
			m.slotCursor++
		}
	case key.Matches(msg, m.keys.PickDay):
		m.apply(m.session.SelectDay(m.session.AvailableDays()[m.dayCursor]))
	case key.Matches(msg, m.keys.PickTime):
		m.apply(m.session.SelectTime(m.session.Slots()[m.slotCursor]))
	case key.Matches(msg, m.keys.Select):
		m.apply(m.session.SelectDay(m.session.AvailableDays()[m.dayCursor]))
		m.apply(m.session.SelectTime(m.session.Slots()[m.slotCursor]))
	case key.Matches(msg, m.keys.Confirm):
		return m, m.confirmCmd()
	}
	return m, nil
}

// finalizeCmd runs the finalize intent off the update loop since the event
// sink may talk to a broker.
func (m *Model) finalizeCmd() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(m.session.FinalizeOrder(m.ctx))
	}
}

func (m *Model) confirmCmd() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(m.session.ConfirmReservation(m.ctx))
	}
}

func (m *Model) visibleItems() []models.MenuItem {
	return m.session.Catalog().Search(m.filter.Value())
}

func (m *Model) highlighted() (models.MenuItem, bool) {
	items := m.visibleItems()
	if m.menuCursor < 0 || m.menuCursor >= len(items) {
		return models.MenuItem{}, false
	}
	return items[m.menuCursor], true
}

func (m *Model) clampMenuCursor() {
	if n := len(m.visibleItems()); m.menuCursor >= n {
		m.menuCursor = max(0, n-1)
	}
}

func otherTab(t session.Tab) session.Tab {
	if t == session.TabOrder {
		return session.TabReserve
	}
	return session.TabOrder
}
