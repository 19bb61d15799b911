package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a read-only snapshot of a catalog product, taken at the moment
// it is added to the cart. The catalog service owns the live record; the cart
// never refreshes a snapshot.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url,omitempty"`
}

// CartEntry is one product line in the cart. Quantity is always >= 1 for an
// entry that is present; an update driving it below 1 removes the entry.
type CartEntry struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns unit price times quantity. A snapshot without a price
// contributes zero, never an error.
func (e CartEntry) LineTotal() decimal.Decimal {
	return e.Product.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

const SnapshotVersion = 1

// Cart is the ordered, identity-unique collection of entries for the session.
// Entry order is insertion order and carries no semantic weight.
//
// Version and UpdatedAt travel with the persisted snapshot. Concurrent writers
// against the same persisted key are not coordinated: the last Save wins, and
// UpdatedAt only makes that visible after the fact.
type Cart struct {
	Version   int         `json:"version"`
	UpdatedAt time.Time   `json:"updated_at"`
	Entries   []CartEntry `json:"entries"`
}

// Empty returns a cart with no entries and the current snapshot version.
func Empty() Cart {
	return Cart{Version: SnapshotVersion}
}

// ItemCount is the sum of quantities across all entries.
func (c Cart) ItemCount() int {
	total := 0
	for _, e := range c.Entries {
		total += e.Quantity
	}
	return total
}

// Subtotal is the sum of line totals across all entries.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Entries {
		total = total.Add(e.LineTotal())
	}
	return total
}

// Entry returns the entry for the given product ID, if present.
func (c Cart) Entry(productID string) (CartEntry, bool) {
	for _, e := range c.Entries {
		if e.Product.ID == productID {
			return e, true
		}
	}
	return CartEntry{}, false
}

// Contains reports whether an entry with the given product ID exists.
func (c Cart) Contains(productID string) bool {
	_, ok := c.Entry(productID)
	return ok
}

// Clone returns a deep-enough copy: the entry slice is copied so callers can
// not mutate the original through it. Products are value snapshots already.
func (c Cart) Clone() Cart {
	out := c
	if c.Entries != nil {
		out.Entries = make([]CartEntry, len(c.Entries))
		copy(out.Entries, c.Entries)
	}
	return out
}
