package domain

import "context"

// KeyValueStore is the host-owned persistence surface for study state.
// Writes are last-write-wins per key; there is no expiry.
type KeyValueStore interface {
	// Get returns ErrNotFound when key has never been set.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes every entry or none of them.
	SetMany(ctx context.Context, entries map[string][]byte) error
}
