package sqlite

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsventures/dealflow-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "dealflow-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	// All registries start empty but queryable.
	ctx := context.Background()
	for _, kind := range domain.CategoryKinds {
		cats, err := store.CategoryStore().List(ctx, kind)
		require.NoError(t, err)
		assert.Empty(t, cats)
	}

	users, err := store.UserStore().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCategoryStore_CreateAndList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := store.CategoryStore().Create(ctx, domain.KindSLR, domain.Category{Name: "Health"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "gray", created.Color)

	cats, err := store.CategoryStore().List(ctx, domain.KindSLR)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Health", cats[0].Name)

	// Kinds are independent registries.
	cats, err = store.CategoryStore().List(ctx, domain.KindTheme)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestCategoryStore_NameUniqueWithinKind(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.CategoryStore().Create(ctx, domain.KindSource, domain.Category{Name: "Referral"})
	require.NoError(t, err)

	_, err = store.CategoryStore().Create(ctx, domain.KindSource, domain.Category{Name: "Referral"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Same name in a different kind is fine.
	_, err = store.CategoryStore().Create(ctx, domain.KindTheme, domain.Category{Name: "Referral"})
	assert.NoError(t, err)
}

func TestUserStore_CreateAndList(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	created, err := store.UserStore().Create(ctx, domain.User{
		Email:        "dana@example.com",
		Name:         "Dana",
		SourceUserID: "usr1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	users, err := store.UserStore().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "dana@example.com", users[0].Email)
	assert.Equal(t, "usr1", users[0].SourceUserID)
}

func TestUserStore_RejectsMissingEmail(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.UserStore().Create(context.Background(), domain.User{Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrMissingEmail)
}

func TestUserStore_EmailUnique(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.UserStore().Create(ctx, domain.User{Email: "dana@example.com"})
	require.NoError(t, err)

	_, err = store.UserStore().Create(ctx, domain.User{Email: "dana@example.com"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestPipelineStore_InsertAndLink(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	cat, err := store.CategoryStore().Create(ctx, domain.KindSLR, domain.Category{Name: "Health"})
	require.NoError(t, err)
	user, err := store.UserStore().Create(ctx, domain.User{Email: "dana@example.com"})
	require.NoError(t, err)

	entry := &domain.PipelineEntry{
		SourceRecordID: "rec1",
		CompanyName:    "Acme",
		CreatedTime:    "2024-01-01T00:00:00.000Z",
		Values: map[string]any{
			"company_name":    "Acme",
			"status":          "New Company",
			"round_size":      int64(10000),
			"to_review":       true,
			"two_pager_ready": false,
		},
	}

	pipelineID, err := store.PipelineStore().InsertPipeline(ctx, entry, user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pipelineID)

	require.NoError(t, store.PipelineStore().LinkCategory(ctx, domain.KindSLR, pipelineID, cat.ID))
	require.NoError(t, store.PipelineStore().LinkAssignee(ctx, pipelineID, user.ID))
	require.NoError(t, store.PipelineStore().LinkPassCommunicator(ctx, pipelineID, user.ID))

	size := int64(2048)
	require.NoError(t, store.PipelineStore().InsertAttachment(ctx, pipelineID, domain.Attachment{
		FileType:     domain.AttachmentDeck,
		FileName:     "deck.pdf",
		FileURL:      "https://f/deck.pdf",
		FileSize:     &size,
		MimeType:     "application/pdf",
		SourceFileID: "att1",
	}))
}

func TestPipelineStore_DuplicateCategoryLinkRejected(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	cat, err := store.CategoryStore().Create(ctx, domain.KindSLR, domain.Category{Name: "Health"})
	require.NoError(t, err)

	entry := &domain.PipelineEntry{
		SourceRecordID: "rec1",
		CompanyName:    "Acme",
		Values:         map[string]any{"company_name": "Acme"},
	}
	pipelineID, err := store.PipelineStore().InsertPipeline(ctx, entry, "")
	require.NoError(t, err)

	require.NoError(t, store.PipelineStore().LinkCategory(ctx, domain.KindSLR, pipelineID, cat.ID))
	err = store.PipelineStore().LinkCategory(ctx, domain.KindSLR, pipelineID, cat.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestPipelineStore_DuplicateRecordIDRejected(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	entry := &domain.PipelineEntry{
		SourceRecordID: "rec1",
		CompanyName:    "Acme",
		Values:         map[string]any{"company_name": "Acme"},
	}

	_, err := store.PipelineStore().InsertPipeline(ctx, entry, "")
	require.NoError(t, err)

	_, err = store.PipelineStore().InsertPipeline(ctx, entry, "")
	assert.Error(t, err, "airtable_record_id is the idempotency key")
}
