package keyvalue

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key was never written
var ErrKeyNotFound = errors.New("key not found")

// Store is the persistence boundary for all fittracker state. Every
// durable value is a JSON string addressed by a well known key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
