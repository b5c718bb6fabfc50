package util

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// NewShortID returns a random UUID encoded in base58. Request ids and lock tokens use it.
func NewShortID() string {
	id := uuid.New()
	return base58.Encode(id[:])
}

// ParseShortID decodes an id made by NewShortID.
func ParseShortID(s string) (uuid.UUID, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("short id %q: %w", s, err)
	}
	return uuid.FromBytes(raw)
}
