package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/core/ports/driven"
)

// Ensure CategoryStore implements the interface.
var _ driven.CategoryStore = (*CategoryStore)(nil)

// CategoryStore is an in-memory implementation of driven.CategoryStore.
type CategoryStore struct {
	mu     sync.RWMutex
	byKind map[domain.CategoryKind][]domain.Category
	seq    int
}

// NewCategoryStore creates a new in-memory category store.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{
		byKind: make(map[domain.CategoryKind][]domain.Category),
	}
}

// List returns all categories of a kind.
func (s *CategoryStore) List(_ context.Context, kind domain.CategoryKind) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, len(s.byKind[kind]))
	copy(out, s.byKind[kind])
	return out, nil
}

// Create inserts a category, enforcing name uniqueness within the kind.
func (s *CategoryStore) Create(_ context.Context, kind domain.CategoryKind, cat domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byKind[kind] {
		if existing.Name == cat.Name {
			return nil, domain.ErrAlreadyExists
		}
	}

	s.seq++
	cat.ID = fmt.Sprintf("%s-cat-%d", kind, s.seq)
	s.byKind[kind] = append(s.byKind[kind], cat)
	return &cat, nil
}
