// Package cart implements the cart state engine. All transitions are pure
// over the in-memory line list and return the events to announce; the
// caller owns locking, persistence, and notification dispatch.
package cart

import (
	"fmt"

	"github.com/threadcount/storefront/internal/notice"
)

// Key identifies a cart line. Two adds with the same product ID but a
// different size or color produce distinct lines.
type Key struct {
	ProductID string `json:"id"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// Item is a line candidate: everything but the quantity.
type Item struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Image     string `json:"image"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Category  string `json:"category"`
}

// Line is one purchasable entry. UnitPrice is integer cents.
type Line struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Image     string `json:"image"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
}

// Key returns the identity triple of the line.
func (l Line) Key() Key {
	return Key{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

// Cart holds the ordered line list. Not safe for concurrent use; the
// session container serializes access.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Restore rebuilds a cart from a persisted snapshot. Duplicate triples
// are merged and non-positive quantities dropped, so a loosely validated
// snapshot cannot break the one-line-per-triple invariant.
func Restore(lines []Line) *Cart {
	c := New()
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if i := c.find(l.Key()); i >= 0 {
			c.lines[i].Quantity += l.Quantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

// Add merges item into the cart: an existing line with the same
// (id, size, color) triple gains quantity 1, otherwise a new line with
// quantity 1 is appended.
func (c *Cart) Add(item Item) notice.Event {
	key := Key{ProductID: item.ProductID, Size: item.Size, Color: item.Color}
	if i := c.find(key); i >= 0 {
		c.lines[i].Quantity++
		return notice.Event{
			Kind:    notice.CartUpdated,
			Message: fmt.Sprintf("%s quantity updated in cart", item.Name),
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Image:     item.Image,
		Size:      item.Size,
		Color:     item.Color,
		Category:  item.Category,
		Quantity:  1,
	})
	return notice.Event{
		Kind:    notice.CartAdded,
		Message: fmt.Sprintf("%s added to cart", item.Name),
		Action:  notice.ActionViewCart,
	}
}

// Remove deletes the line identified by key. Removing an absent line is
// a no-op and returns nil.
func (c *Cart) Remove(key Key) *notice.Event {
	i := c.find(key)
	if i < 0 {
		return nil
	}
	name := c.lines[i].Name
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return &notice.Event{
		Kind:    notice.CartRemoved,
		Message: fmt.Sprintf("%s removed from cart", name),
	}
}

// SetQuantity replaces the quantity of the line identified by key.
// A quantity of zero or less removes the line. The adjustment path is
// silent; only the removal delegation announces.
func (c *Cart) SetQuantity(key Key, quantity int) *notice.Event {
	if quantity <= 0 {
		return c.Remove(key)
	}
	if i := c.find(key); i >= 0 {
		c.lines[i].Quantity = quantity
	}
	return nil
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (c *Cart) Clear() *notice.Event {
	if len(c.lines) == 0 {
		return nil
	}
	c.lines = nil
	return &notice.Event{
		Kind:    notice.CartCleared,
		Message: "Cart cleared",
	}
}

// Lines returns a copy of the line list in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total recomputes the cart total in cents on every call.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}

// Count recomputes the total item count on every call.
func (c *Cart) Count() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

func (c *Cart) find(key Key) int {
	for i, l := range c.lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}
