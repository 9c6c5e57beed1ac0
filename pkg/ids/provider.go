// Package ids decouples identifier generation from wall-clock and random
// state so core computation stays reproducible.
package ids

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Provider issues unique identifiers with an optional prefix.
type Provider interface {
	NewID(prefix string) string
}

type uuidProvider struct{}

// NewUUIDProvider returns the production provider backed by random UUIDs.
func NewUUIDProvider() Provider {
	return uuidProvider{}
}

func (uuidProvider) NewID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}

type sequenceProvider struct {
	mu   sync.Mutex
	next int
}

// NewSequenceProvider returns a deterministic provider for tests: ids are
// prefix-1, prefix-2, ... in allocation order.
func NewSequenceProvider() Provider {
	return &sequenceProvider{next: 1}
}

func (s *sequenceProvider) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.next
	s.next++
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, n)
}
