package domain

import (
	"errors"
	"time"
)

// CartSnapshotVersion is the current schema version of persisted carts.
// Version 0 payloads (a bare entry array, the legacy shape) are migrated on
// read; anything unparseable is surfaced explicitly, never silently dropped.
const CartSnapshotVersion = 1

var ErrCartItemNotFound = errors.New("cart item not found")

// CartEntry pairs a product snapshot with a requested quantity. Snapshot
// fields reflect the product at the time the entry was added or refreshed;
// clamping against StockSeen is advisory UX only, checkout validation is
// the sole authority on price and stock.
type CartEntry struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url,omitempty"`
	StockSeen int       `json:"stock_seen"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// CartSnapshot is the serializable, restartable cart state for one identity.
type CartSnapshot struct {
	Version   int         `json:"version"`
	Items     []CartEntry `json:"items"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewCartSnapshot returns an empty snapshot at the current schema version.
func NewCartSnapshot() *CartSnapshot {
	return &CartSnapshot{Version: CartSnapshotVersion}
}

// Find returns a pointer to the entry for productID, or nil.
func (c *CartSnapshot) Find(productID string) *CartEntry {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// Add merges entry into the cart. If the product is already present the
// quantities are summed and the snapshot fields refreshed from entry. The
// resulting quantity is clamped to entry.StockSeen.
func (c *CartSnapshot) Add(entry CartEntry) {
	if existing := c.Find(entry.ProductID); existing != nil {
		entry.Quantity += existing.Quantity
		entry.AddedAt = existing.AddedAt
		*existing = clampEntry(entry)
		return
	}
	c.Items = append(c.Items, clampEntry(entry))
}

// SetQuantity sets the quantity of an existing entry, clamped to the
// entry's last-seen stock. A quantity <= 0 removes the entry entirely.
func (c *CartSnapshot) SetQuantity(productID string, quantity int) error {
	existing := c.Find(productID)
	if existing == nil {
		return ErrCartItemNotFound
	}
	if quantity <= 0 {
		c.Remove(productID)
		return nil
	}
	existing.Quantity = quantity
	*existing = clampEntry(*existing)
	return nil
}

// Remove deletes the entry for productID; removing an absent entry is a no-op.
func (c *CartSnapshot) Remove(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *CartSnapshot) Clear() {
	c.Items = nil
}

// Subtotal returns the advisory cart total from snapshot prices, rounded to
// currency precision. It carries no authority over the checkout total.
func (c *CartSnapshot) Subtotal() float64 {
	var sum float64
	for _, e := range c.Items {
		sum += e.Price * float64(e.Quantity)
	}
	return RoundCurrency(sum)
}

func clampEntry(e CartEntry) CartEntry {
	if e.StockSeen >= 0 && e.Quantity > e.StockSeen {
		e.Quantity = e.StockSeen
	}
	return e
}
