// ABOUTME: Durable key-value backend contract for the persistence gateway.
// ABOUTME: Badger, SQLite, and Charm KV implement it; tests use a gomock double.

package storage

import (
	"context"
	"errors"
)

//go:generate mockgen -source=backend.go -destination=../mocks/storage/mock_backend.go -package=mock_storage

var (
	// ErrNotFound is returned by Backend.Get when the key holds no value.
	ErrNotFound = errors.New("key not found")
	// ErrCorrupt wraps blobs that exist but cannot be decoded.
	ErrCorrupt = errors.New("stored page collection is corrupt")
)

// Backend stores opaque blobs under byte keys.
type Backend interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
	Set(ctx context.Context, key, value []byte) error
	Delete(ctx context.Context, key []byte) error
	Close() error
}
