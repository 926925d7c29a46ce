package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
)

func TestUserStore_CreateAndList(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	created, err := store.Create(ctx, domain.User{
		Email:        "dana@example.com",
		Name:         "Dana",
		SourceUserID: "usr1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	users, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "dana@example.com", users[0].Email)
}

func TestUserStore_EmailIsRequired(t *testing.T) {
	store := NewUserStore()

	_, err := store.Create(context.Background(), domain.User{Name: "No Email"})
	assert.ErrorIs(t, err, domain.ErrMissingEmail)
}

func TestUserStore_EmailIsUnique(t *testing.T) {
	store := NewUserStore()
	ctx := context.Background()

	_, err := store.Create(ctx, domain.User{Email: "dana@example.com", Name: "Dana"})
	require.NoError(t, err)

	_, err = store.Create(ctx, domain.User{Email: "dana@example.com", Name: "Dana Again"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}
