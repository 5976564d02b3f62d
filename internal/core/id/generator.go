// Package id provides ID generation functionality
package id

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique IDs
type Generator interface {
	Generate() string
}

// uuidGenerator generates random version 4 UUIDs
type uuidGenerator struct{}

// NewUUIDGenerator creates a generator of random UUIDs
func NewUUIDGenerator() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) Generate() string {
	return uuid.New().String()
}

// sequentialGenerator generates sequential numeric IDs
type sequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequentialGenerator creates a new sequential ID generator
func NewSequentialGenerator(prefix string) Generator {
	return &sequentialGenerator{
		prefix: prefix,
	}
}

// Generate returns the next ID in sequence
func (g *sequentialGenerator) Generate() string {
	count := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s-%d", g.prefix, count)
	}
	return fmt.Sprintf("%d", count)
}
