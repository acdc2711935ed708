// Package store is the shared persistent key-value medium behind the POS
// repositories. Values are opaque strings; collections serialize themselves
// before writing. Every write raises a change Event on the medium's
// notification channel, delivered to every open handle except the writer
// itself. That self-exclusion is a contract, not an accident: writers are
// expected to refresh their own view synchronously after writing and never
// rely on the channel for self-observation.
package store

import (
	"context"
	"errors"
)

// ErrVersionConflict is returned by CompareAndSwap when the expected version
// no longer matches, i.e. another context wrote the key in between.
var ErrVersionConflict = errors.New("store: version conflict")

// Entry is a stored value plus the sequence number of the write that produced it.
type Entry struct {
	Value   string
	Version uint64
}

// Event announces that a key changed. Listeners should re-read through the
// store rather than trust NewValue; the payload is carried for parity with the
// notification format but may race a newer write.
type Event struct {
	Key      string `json:"key"`
	NewValue string `json:"new_value"`
	Origin   string `json:"origin"`
}

// Store is one context's handle on the shared medium.
type Store interface {
	// Get returns the entry under key, reporting false when the key is absent.
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Set writes unconditionally (last write wins) and returns the new version.
	Set(ctx context.Context, key, value string) (uint64, error)

	// CompareAndSwap writes only if the current version equals expected
	// (0 means the key must be absent). Returns ErrVersionConflict otherwise.
	CompareAndSwap(ctx context.Context, key string, expected uint64, value string) (uint64, error)

	// Subscribe delivers change events for the given keys until cancel is
	// called or ctx ends. Events from this handle's own writes are excluded.
	// Delivery is at-most-once per listener and unordered across keys.
	Subscribe(ctx context.Context, keys ...string) (<-chan Event, func())
}
