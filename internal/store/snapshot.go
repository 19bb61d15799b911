package store

import (
	"encoding/json"
	"errors"

	"shopfront/internal/domain"
)

var errBadSnapshot = errors.New("cart snapshot is corrupted or has an unknown version")

func encodeSnapshot(cart domain.Cart) ([]byte, error) {
	cart.Version = domain.SnapshotVersion
	return json.Marshal(cart)
}

// decodeSnapshot parses a persisted snapshot. An unknown version is treated
// the same as unparseable bytes: there is no migration path, the record is
// simply abandoned.
func decodeSnapshot(raw []byte) (domain.Cart, error) {
	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return domain.Cart{}, errBadSnapshot
	}
	if cart.Version != domain.SnapshotVersion {
		return domain.Cart{}, errBadSnapshot
	}
	for _, e := range cart.Entries {
		if e.Product.ID == "" || e.Quantity < 1 {
			return domain.Cart{}, errBadSnapshot
		}
	}
	return cart, nil
}
