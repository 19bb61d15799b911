// Package cart holds the in-memory session cart and keeps the persistent
// store eventually consistent with it.
package cart

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shopfront/internal/domain"
	"shopfront/internal/store"
)

// persistTimeout bounds the best-effort snapshot write after each mutation.
const persistTimeout = time.Second

// Manager owns the cart for the lifetime of the process. Consumers never hold
// a mutable reference: they read derived values through the query methods and
// mutate through Add/Remove/SetQuantity/Clear.
//
// Mutations are infallible from the caller's perspective. The in-memory cart
// is authoritative; the store write after each mutation is best effort and a
// failure is logged and swallowed, never retried.
type Manager struct {
	mu    sync.RWMutex
	cart  domain.Cart
	store store.CartStore
	log   *zap.Logger
	subs  []func(domain.Cart)
}

// New hydrates the manager from the store. A store that cannot be read leaves
// the session with an empty, ephemeral cart rather than failing construction.
func New(st store.CartStore, log *zap.Logger) *Manager {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	cart, err := st.Load(ctx)
	if err != nil {
		log.Warn("cart hydration failed, starting empty", zap.Error(err))
		cart = domain.Empty()
	}

	return &Manager{cart: cart, store: st, log: log}
}

// Subscribe registers a callback invoked with a read-only snapshot after
// every mutation, in registration order, on the mutating goroutine.
func (m *Manager) Subscribe(fn func(domain.Cart)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Add increments the entry for product's identity by quantity, appending a
// new entry when none exists. Quantities below 1 are clamped to 1 at this
// boundary so the quantity floor invariant holds for every present entry.
func (m *Manager) Add(product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	m.mu.Lock()
	found := false
	for i := range m.cart.Entries {
		if m.cart.Entries[i].Product.ID == product.ID {
			m.cart.Entries[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		m.cart.Entries = append(m.cart.Entries, domain.CartEntry{Product: product, Quantity: quantity})
	}
	snapshot := m.commitLocked()
	m.mu.Unlock()

	m.notify(snapshot)
}

// Remove deletes the entry with the given product ID. Absent IDs are a no-op,
// not an error; the snapshot is persisted either way.
func (m *Manager) Remove(productID string) {
	m.mu.Lock()
	m.removeLocked(productID)
	snapshot := m.commitLocked()
	m.mu.Unlock()

	m.notify(snapshot)
}

// SetQuantity replaces the quantity of an existing entry. A quantity below 1
// removes the entry, identical to Remove. It never creates an entry: only Add
// does that, so an absent ID is a no-op.
func (m *Manager) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		m.Remove(productID)
		return
	}

	m.mu.Lock()
	for i := range m.cart.Entries {
		if m.cart.Entries[i].Product.ID == productID {
			m.cart.Entries[i].Quantity = quantity
			break
		}
	}
	snapshot := m.commitLocked()
	m.mu.Unlock()

	m.notify(snapshot)
}

// Clear empties the cart. The empty snapshot is persisted rather than the
// storage key deleted; both read back as an empty cart.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.cart.Entries = nil
	snapshot := m.commitLocked()
	m.mu.Unlock()

	m.notify(snapshot)
}

// ItemCount returns the sum of quantities across all entries.
func (m *Manager) ItemCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cart.ItemCount()
}

// Subtotal returns the sum of unit price times quantity across all entries.
func (m *Manager) Subtotal() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cart.Subtotal()
}

// Contains reports whether an entry with the given product ID exists.
func (m *Manager) Contains(productID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cart.Contains(productID)
}

// Quantity returns the quantity of the matching entry, or 0 when absent.
func (m *Manager) Quantity(productID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.cart.Entry(productID); ok {
		return e.Quantity
	}
	return 0
}

// Snapshot returns a copy of the current cart for display.
func (m *Manager) Snapshot() domain.Cart {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cart.Clone()
}

func (m *Manager) removeLocked(productID string) {
	for i, e := range m.cart.Entries {
		if e.Product.ID == productID {
			m.cart.Entries = append(m.cart.Entries[:i], m.cart.Entries[i+1:]...)
			return
		}
	}
}

// commitLocked stamps the mutation, writes the snapshot best-effort and
// returns a copy for subscriber delivery. Callers hold the write lock.
func (m *Manager) commitLocked() domain.Cart {
	m.cart.UpdatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := m.store.Save(ctx, m.cart); err != nil {
		// Degrade to ephemeral: the in-memory cart stays authoritative.
		m.log.Warn("failed to persist cart snapshot", zap.Error(err))
	}

	return m.cart.Clone()
}

func (m *Manager) notify(snapshot domain.Cart) {
	m.mu.RLock()
	subs := make([]func(domain.Cart), len(m.subs))
	copy(subs, m.subs)
	m.mu.RUnlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
