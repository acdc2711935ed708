package service

import (
	"fmt"
	"math"

	"restaurant-pos/internal/domain"
)

// TaxAndServiceRate is the fixed 11% charge applied on top of the subtotal.
const TaxAndServiceRate = 0.11

// Cart accumulates line items for one checkout. It is per-session, in-memory
// only and never persisted; nothing is written anywhere until payment succeeds.
type Cart struct {
	lines []domain.CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// AddLine adds one unit of item, merging into an existing line by item id.
func (c *Cart) AddLine(item domain.MenuItem) {
	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, domain.CartLine{MenuItem: item, Quantity: 1})
}

// RemoveLine removes one unit; the line is dropped when its quantity hits zero.
func (c *Cart) RemoveLine(itemID int) {
	for i := range c.lines {
		if c.lines[i].ID == itemID {
			c.lines[i].Quantity--
			if c.lines[i].Quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			return
		}
	}
}

func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// Lines returns a copy of the current line items.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Subtotal() int {
	total := 0
	for _, line := range c.lines {
		total += line.Price * line.Quantity
	}
	return total
}

// TaxAndService rounds to the nearest whole currency unit.
func (c *Cart) TaxAndService() int {
	return TaxAndService(c.Subtotal())
}

func (c *Cart) Total() int {
	return c.Subtotal() + c.TaxAndService()
}

// ItemsSummary renders the human-readable "Name x2" strings persisted on orders.
func (c *Cart) ItemsSummary() []string {
	out := make([]string, len(c.lines))
	for i, line := range c.lines {
		out[i] = fmt.Sprintf("%s x%d", line.Name, line.Quantity)
	}
	return out
}

func (c *Cart) Clear() {
	c.lines = nil
}

// TaxAndService computes the 11% charge for a given subtotal.
func TaxAndService(subtotal int) int {
	return int(math.Round(float64(subtotal) * TaxAndServiceRate))
}
