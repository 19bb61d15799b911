// Package store persists the cart snapshot to client-local durable storage.
//
// The store is a cache of convenience, not a durability guarantee: the
// in-memory cart stays authoritative for the session, Save failures are
// tolerated by callers, and a snapshot that fails to decode is discarded
// rather than surfaced.
package store

import (
	"context"

	"shopfront/internal/domain"
)

// CartKey is the well-known key the snapshot lives under.
const CartKey = "cart"

// CartStore reads and writes the serialized cart snapshot.
//
// Load fails soft: a missing record yields an empty cart, and a corrupted
// record is deleted and replaced by an empty cart. Load only returns an error
// when the underlying storage itself is unreachable.
type CartStore interface {
	Load(ctx context.Context) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Close() error
}
