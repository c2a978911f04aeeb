package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"pizzeria/internal/orderflow"
	"pizzeria/internal/session"
)

type keyMap struct {
	Quit        key.Binding
	OpenOrder   key.Binding
	OpenReserve key.Binding
	SwitchTab   key.Binding
	Close       key.Binding

	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Add      key.Binding
	Inc      key.Binding
	Dec      key.Binding
	Remove   key.Binding
	Filter   key.Binding
	Checkout key.Binding
	Back     key.Binding
	Finalize key.Binding
	Done     key.Binding

	Select   key.Binding
	PickDay  key.Binding
	PickTime key.Binding
	Confirm  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		OpenOrder:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "order online")),
		OpenReserve: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reserve a table")),
		SwitchTab:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch tab")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),

		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "move")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "day")),
		Right:    key.NewBinding(key.WithKeys("right", "l")),
		Add:      key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "add")),
		Inc:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "quantity")),
		Dec:      key.NewBinding(key.WithKeys("-")),
		Remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Checkout: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "checkout")),
		Back:     key.NewBinding(key.WithKeys("b", "backspace"), key.WithHelp("b", "back")),
		Finalize: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "place order")),
		Done:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "return to site")),

		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select both")),
		PickDay:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "pick day")),
		PickTime: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "pick time")),
		Confirm:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "confirm")),
	}
}

// helpFor lists the bindings offered for snap. A guarded action is only
// listed while its guard holds.
func (k keyMap) helpFor(snap session.Snapshot) []key.Binding {
	if !snap.OverlayOpen {
		return []key.Binding{k.OpenOrder, k.OpenReserve, k.Quit}
	}

	out := []key.Binding{k.SwitchTab, k.Close}
	if snap.Tab == session.TabReserve {
		out = append(out, k.Left, k.Up, k.PickDay, k.PickTime, k.Select)
		if snap.Confirmable {
			out = append(out, k.Confirm)
		}
		return out
	}

	switch snap.Flow {
	case orderflow.Selection:
		out = append(out, k.Up, k.Add, k.Inc, k.Remove, k.Filter)
		if snap.CanAdvance {
			out = append(out, k.Checkout)
		}
	case orderflow.Summary:
		if snap.CanGoBack {
			out = append(out, k.Back)
		}
		if snap.CanFinalize {
			out = append(out, k.Finalize)
		}
	case orderflow.Success:
		out = append(out, k.Done)
	}
	return out
}
