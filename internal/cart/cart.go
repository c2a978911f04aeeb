// Package cart implements the session shopping cart.
//
// Lines keep the order in which their item was first added. Quantities never
// drop below one through UpdateQuantity; a line leaves the cart only through
// Remove or Clear. None of the operations fail: requests against an absent
// line are ignored.
package cart

import "pizzeria/internal/models"

// DefaultDeliveryFee is added to the subtotal of every non-empty order
const DefaultDeliveryFee int64 = 15

// Line is one (item, quantity) pairing
type Line struct {
	Item     models.MenuItem
	Quantity int
}

// LineTotal returns price times quantity
func (l Line) LineTotal() int64 {
	return l.Item.Price * int64(l.Quantity)
}

// Cart is an ordered collection of lines, at most one per item id.
// The zero value is an empty cart ready to use.
type Cart struct {
	lines []Line
}

// New returns an empty cart
func New() *Cart {
	return &Cart{}
}

// Add increments the line for item, appending a new line with quantity 1
// when the item is not in the cart yet.
func (c *Cart) Add(item models.MenuItem) {
	if i := c.find(item.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
}

// Remove deletes the line for itemID regardless of its quantity
func (c *Cart) Remove(itemID string) {
	i := c.find(itemID)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// UpdateQuantity sets the line quantity to max(1, quantity+delta)
func (c *Cart) UpdateQuantity(itemID string, delta int) {
	i := c.find(itemID)
	if i < 0 {
		return
	}
	q := c.lines[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	c.lines[i].Quantity = q
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Quantity returns the quantity for itemID, 0 when absent
func (c *Cart) Quantity(itemID string) int {
	if i := c.find(itemID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// ItemCount returns the sum of all quantities
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal returns the sum of price*quantity over all lines
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.LineTotal()
	}
	return sum
}

// Total returns Subtotal plus deliveryFee. An empty cart totals 0.
func (c *Cart) Total(deliveryFee int64) int64 {
	if c.IsEmpty() {
		return 0
	}
	return c.Subtotal() + deliveryFee
}

// OrderLines converts the cart into order lines for a finalized order
func (c *Cart) OrderLines() []models.OrderLine {
	out := make([]models.OrderLine, len(c.lines))
	for i, l := range c.lines {
		out[i] = models.OrderLine{
			ItemID:   l.Item.ID,
			Name:     l.Item.Name,
			Quantity: l.Quantity,
			Price:    l.Item.Price,
		}
	}
	return out
}

func (c *Cart) find(itemID string) int {
	for i, l := range c.lines {
		if l.Item.ID == itemID {
			return i
		}
	}
	return -1
}
