package cart

import (
	"sync"

	"github.com/google/uuid"
)

// ItemKind tags a line as a regular meal or a user-built custom meal.
type ItemKind string

const (
	KindRegular ItemKind = "regular"
	KindCustom  ItemKind = "custom"
)

// ValidKind reports whether k is a known item kind.
func ValidKind(k ItemKind) bool {
	return k == KindRegular || k == KindCustom
}

// ItemRef is a line's business identity: meal id for regular lines, custom
// meal id for custom lines.
type ItemRef struct {
	Kind ItemKind `json:"kind"`
	ID   string   `json:"id"`
}

// LineItem is one cart line. LineID only exists for list rendering; identity
// and de-duplication go through Ref.
type LineItem struct {
	LineID              string  `json:"lineId"`
	Ref                 ItemRef `json:"ref"`
	Name                string  `json:"name"`
	UnitPriceCents      int64   `json:"unitPriceCents"`
	Quantity            int     `json:"quantity"`
	ImageURL            string  `json:"imageUrl,omitempty"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
}

// Restaurant identifies the single restaurant all cart lines belong to.
type Restaurant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Snapshot is an immutable copy of cart state handed to checkout.
type Snapshot struct {
	Items      []LineItem  `json:"items"`
	Restaurant *Restaurant `json:"restaurant,omitempty"`
	TotalCents int64       `json:"totalCents"`
}

// Cart holds the pending order for one user session. All mutation goes
// through the four operations below; each runs to completion under the lock,
// so no partial state is observable. Operations are total: unknown
// identities are no-ops, never errors.
type Cart struct {
	mu         sync.Mutex
	items      []LineItem
	restaurant *Restaurant
	totalCents int64
}

func New() *Cart {
	return &Cart{}
}

// AddItem puts item into the cart for the given restaurant. Adding from a
// different restaurant than the current owner clears the prior lines first.
// An existing line with the same (kind, id) has its quantity incremented
// instead of a second line being appended.
func (c *Cart) AddItem(item LineItem, restaurantID, restaurantName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restaurant != nil && c.restaurant.ID != restaurantID {
		c.items = nil
	}
	c.restaurant = &Restaurant{ID: restaurantID, Name: restaurantName}

	if item.Quantity < 1 {
		item.Quantity = 1
	}

	for i := range c.items {
		if c.items[i].Ref == item.Ref {
			c.items[i].Quantity += item.Quantity
			c.recomputeTotal()
			return
		}
	}

	item.LineID = uuid.NewString()
	c.items = append(c.items, item)
	c.recomputeTotal()
}

// RemoveItem drops the line matching (kind, id). Removing the last line
// unsets the owning restaurant.
func (c *Cart) RemoveItem(ref ItemRef) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, line := range c.items {
		if line.Ref != ref {
			kept = append(kept, line)
		}
	}
	c.items = kept
	if len(c.items) == 0 {
		c.items = nil
		c.restaurant = nil
	}
	c.recomputeTotal()
}

// UpdateQuantity sets the quantity of the line matching (kind, id). A
// quantity of zero or less removes the line. Unknown refs are a no-op.
func (c *Cart) UpdateQuantity(ref ItemRef, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Ref != ref {
			continue
		}
		if quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
			if len(c.items) == 0 {
				c.items = nil
				c.restaurant = nil
			}
		} else {
			c.items[i].Quantity = quantity
		}
		break
	}
	c.recomputeTotal()
}

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.restaurant = nil
	c.totalCents = 0
}

// Snapshot returns a deep copy of the current state.
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{TotalCents: c.totalCents}
	if c.restaurant != nil {
		r := *c.restaurant
		snap.Restaurant = &r
	}
	snap.Items = make([]LineItem, len(c.items))
	copy(snap.Items, c.items)
	return snap
}

// TotalCents returns the derived cart total.
func (c *Cart) TotalCents() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCents
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) recomputeTotal() {
	var total int64
	for _, line := range c.items {
		total += line.UnitPriceCents * int64(line.Quantity)
	}
	c.totalCents = total
}
