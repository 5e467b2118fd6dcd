package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque identifiers for trained artifacts.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a time-ordered UUIDv7 so ids sort by creation.
func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}

// Static always returns the same id.
type Static string

func (s Static) NewID() (string, error) {
	return string(s), nil
}
