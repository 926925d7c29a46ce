package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
	"github.com/nsventures/dealflow-cli/internal/core/ports/driven"
)

// Ensure UserStore implements the interface.
var _ driven.UserStore = (*UserStore)(nil)

// UserStore is an in-memory implementation of driven.UserStore.
type UserStore struct {
	mu    sync.RWMutex
	users []domain.User
	seq   int
}

// NewUserStore creates a new in-memory user store.
func NewUserStore() *UserStore {
	return &UserStore{}
}

// List returns all users.
func (s *UserStore) List(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// Create inserts a user, enforcing the email natural key.
func (s *UserStore) Create(_ context.Context, user domain.User) (*domain.User, error) {
	if user.Email == "" {
		return nil, domain.ErrMissingEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, domain.ErrAlreadyExists
		}
	}

	s.seq++
	user.ID = fmt.Sprintf("user-%d", s.seq)
	s.users = append(s.users, user)
	return &user, nil
}
