// Package session holds per-player state between a simulation run and the
// results view. Entries are scoped to a session id and expire; nothing here
// outlives a play session.
package session

import "context"

// Store keeps one opaque value per session id.
type Store interface {
	// Put overwrites the value for id.
	Put(ctx context.Context, id string, value []byte) error

	// Get returns the value for id. A missing or expired entry is reported
	// with ok=false and a nil error.
	Get(ctx context.Context, id string) (value []byte, ok bool, err error)

	// Ping reports whether the backend can serve requests.
	Ping(ctx context.Context) error
}
