// Package store provides the collection store the façades persist
// through: named JSON blobs behind a small key-value interface, so the
// backend (file, memory, Postgres) is injectable.
package store

import "errors"

// Collection keys. The layout is three entity collections plus the
// shared cart, each persisted as a single JSON array.
const (
	KeyMenuItems = "cafe_menu_items"
	KeyOrders    = "cafe_orders"
	KeyUsers     = "cafe_users"
	KeyCart      = "cafe_cart"
)

// ErrKeyNotFound is returned by Get when a collection has never been
// written. Callers treat it as the empty default.
var ErrKeyNotFound = errors.New("store key not found")

// Store is the persistence contract. Put overwrites the whole
// collection; there are no multi-key transactions, so the discipline is
// read-modify-write with a single logical writer.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
}
