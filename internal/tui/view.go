package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pizzeria/internal/orderflow"
	"pizzeria/internal/reservation"
	"pizzeria/internal/session"
)

const brandName = "Trattoria Da Nonna"

func (m *Model) View() string {
	var body string
	if m.snap.OverlayOpen {
		body = overlayStyle.Render(m.renderOverlay())
	} else {
		body = m.renderLanding()
	}
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m *Model) renderLanding() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(brandName))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Wood-fired pizza, open every evening from 18:30"))
	b.WriteString("\n\n")
	if n := m.snap.ItemCount; n > 0 {
		b.WriteString(badgeStyle.Render(fmt.Sprintf("cart: %d", n)))
		b.WriteString("\n\n")
	}
	if m.snap.Confirmation != nil {
		b.WriteString(successStyle.Render("Table booked for " + confirmationLabel(m.snap)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.help.ShortHelpView(m.keys.helpFor(m.snap)))
	return b.String()
}

func (m *Model) renderOverlay() string {
	var body string
	if m.snap.Tab == session.TabReserve {
		body = m.renderReserve()
	} else {
		body = m.renderOrder()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		"",
		body,
		"",
		m.help.ShortHelpView(m.keys.helpFor(m.snap)),
	)
}

func (m *Model) renderTabs() string {
	render := func(tab session.Tab, label string) string {
		if m.snap.Tab == tab {
			return activeTabStyle.Render(label)
		}
		return inactiveTabStyle.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		render(session.TabReserve, "Reserve"),
		" ",
		render(session.TabOrder, "Order"),
	)
}

func (m *Model) renderOrder() string {
	switch m.snap.Flow {
	case orderflow.Summary:
		return m.renderSummary()
	case orderflow.Success:
		return m.renderSuccess()
	default:
		return m.renderMenu()
	}
}

func (m *Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Menu"))
	b.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	items := m.visibleItems()
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("No dishes match"))
		b.WriteString("\n")
	}
	for i, item := range items {
		cursor := "  "
		name := textStyle.Render(item.Name)
		if i == m.menuCursor {
			cursor = cursorStyle.Render("› ")
			name = cursorStyle.Render(item.Name)
		}
		line := fmt.Sprintf("%s%-22s %s", cursor, name, priceStyle.Render(formatPrice(item.Price, m.currency)))
		if qty := m.snap.Quantity(item.ID); qty > 0 {
			line += " " + successStyle.Render(fmt.Sprintf("×%d", qty))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.snap.CartEmpty() {
		b.WriteString(mutedStyle.Render("Your cart is empty"))
	} else {
		b.WriteString(m.renderTotals())
	}
	return b.String()
}

func (m *Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Order summary"))
	b.WriteString("\n")
	for _, l := range m.snap.Lines {
		fmt.Fprintf(&b, "%2d × %-20s %s\n", l.Quantity, l.Item.Name, formatPrice(l.LineTotal(), m.currency))
	}
	b.WriteString("\n")
	b.WriteString(m.renderTotals())
	return b.String()
}

func (m *Model) renderTotals() string {
	rows := []string{
		fmt.Sprintf("%-24s %s", "Subtotal", formatPrice(m.snap.Subtotal, m.currency)),
		fmt.Sprintf("%-24s %s", "Delivery", formatPrice(m.snap.DeliveryFee, m.currency)),
		titleStyle.Render(fmt.Sprintf("%-24s %s", "Total", formatPrice(m.snap.Total, m.currency))),
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderSuccess() string {
	order := m.snap.Order
	if order == nil {
		return successStyle.Render("Order placed")
	}
	return strings.Join([]string{
		successStyle.Render("Grazie! Your order is on its way."),
		"",
		fmt.Sprintf("Order number  %s", order.Number),
		fmt.Sprintf("Total paid    %s", formatPrice(order.Total, m.currency)),
	}, "\n")
}

func (m *Model) renderReserve() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Book a table"))
	b.WriteString("\n\n")

	days := m.session.AvailableDays()
	labels := make([]string, len(days))
	for i, day := range days {
		label := day.Format("Mon 02")
		switch {
		case i == m.dayCursor:
			label = selectedStyle.Render(label)
		case m.snap.Day != nil && m.snap.Day.Equal(day):
			label = cursorStyle.Render(label)
		default:
			label = mutedStyle.Render(label)
		}
		labels[i] = label
	}
	b.WriteString(strings.Join(labels[:7], " "))
	b.WriteString("\n")
	b.WriteString(strings.Join(labels[7:], " "))
	b.WriteString("\n\n")

	for i, slot := range m.session.Slots() {
		label := slot.String()
		switch {
		case i == m.slotCursor:
			label = selectedStyle.Render(label)
		case m.snap.Slot != nil && *m.snap.Slot == slot:
			label = cursorStyle.Render(label)
		}
		b.WriteString("  " + label + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.snap.Confirmation != nil:
		b.WriteString(successStyle.Render("Reserved for " + confirmationLabel(m.snap)))
	case m.snap.Day != nil || m.snap.Slot != nil:
		b.WriteString(textStyle.Render("Selected: " + selectionLabel(m.snap)))
	default:
		b.WriteString(mutedStyle.Render("Pick a day and a time"))
	}
	return b.String()
}

func selectionLabel(snap session.Snapshot) string {
	day, slot := "no day", "no time"
	if snap.Day != nil {
		day = reservation.DayLabel(*snap.Day)
	}
	if snap.Slot != nil {
		slot = snap.Slot.String()
	}
	return day + " at " + slot
}

func confirmationLabel(snap session.Snapshot) string {
	c := snap.Confirmation
	return reservation.DayLabel(c.Day) + " at " + c.Slot
}

// formatPrice renders whole currency units, e.g. "68 zł"
func formatPrice(amount int64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%d", amount)
	}
	return fmt.Sprintf("%d %s", amount, currency)
}
