// Package storage provides the persistent snapshot store for session state.
// Each logical key holds one JSON document which is replaced wholesale on
// every write; a snapshot that cannot be read or parsed is treated as
// absent and the offending entry is purged.
package storage

import "context"

// Store reads and writes named JSON snapshots.
type Store interface {
	// Save serializes value and replaces the snapshot stored under key.
	Save(ctx context.Context, key string, value any) error

	// Load unmarshals the snapshot stored under key into dest and reports
	// whether a usable snapshot existed. A missing, unreadable, or corrupt
	// snapshot yields false and leaves dest untouched; corrupt entries are
	// deleted so the next load starts clean. Load never fails.
	Load(ctx context.Context, key string, dest any) bool

	// Delete removes the snapshot stored under key. Removing an absent
	// key is not an error.
	Delete(ctx context.Context, key string) error
}

// Well-known snapshot keys. One document per key, all under the
// configured namespace.
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
	KeyIdentity = "identity"
)
