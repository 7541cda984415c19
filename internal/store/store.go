// Package store persists game slices as JSON values under string keys.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// KV is a flat key/value store. Values are JSON documents.
type KV interface {
	// Get returns ErrNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes all entries atomically.
	Put(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}
