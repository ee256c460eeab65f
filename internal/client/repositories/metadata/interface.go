// Package metadata is the local key/value table behind the credential
// store. Values are opaque strings; interpreting them is up to callers.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	// Snapshot reads the given keys in one query. Absent keys are missing
	// from the result.
	Snapshot(ctx context.Context, keys ...string) (map[string]string, error)
}
