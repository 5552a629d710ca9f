package core

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID returns a time-ordered random identifier: a millisecond timestamp
// followed by random bits (UUIDv7).
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate transaction id: %w", err)
	}
	return id.String(), nil
}
