package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidKey is returned for keys no backend can address.
var ErrInvalidKey = errors.New("invalid storage key")

// Ports for the client-local key-value backends.
type (
	// KeyValue is durable storage holding opaque values under string keys.
	// Every write replaces the whole value; there is no partial update.
	KeyValue interface {
		// Get returns the value stored under key. ok is false when the key
		// has never been written or was deleted.
		Get(ctx context.Context, key string) (value []byte, ok bool, err error)

		// Put stores value under key, replacing any previous value.
		Put(ctx context.Context, key string, value []byte) error

		// Delete removes key. Deleting an absent key is not an error.
		Delete(ctx context.Context, key string) error
	}

	// Closer is implemented by backends holding external resources.
	Closer interface {
		Close() error
	}
)

// ValidateKey rejects empty keys and keys that could escape a namespace
// when mapped onto file names.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-', r == '.':
		default:
			return ErrInvalidKey
		}
	}
	if key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}
