package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipnote/slip-cli/internal/core/domain"
)

func setupStores(t *testing.T) (*SlipStore, *CategoryStore) {
	t.Helper()
	cats := NewCategoryStore()
	require.NoError(t, cats.Seed(context.Background()))
	return NewSlipStore(cats), cats
}

func addSlip(t *testing.T, store *SlipStore, id, content string, categoryID int) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, store.Insert(context.Background(), &domain.Slip{
		ID:         id,
		Title:      domain.DeriveTitle(content),
		Content:    content,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}))
}

func TestSlipStore_MirrorsSQLiteSemantics(t *testing.T) {
	store, _ := setupStores(t)
	ctx := context.Background()

	addSlip(t, store, "a", "Buy milk\nAnd eggs", domain.CategoryInbox)

	// Versioning with pre-edit content.
	require.NoError(t, store.Update(ctx, "a", "Buy oat milk"))
	versions, err := store.Versions(ctx, "a")
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "Buy milk\nAnd eggs", versions[0].Content)

	// Same-content update is a no-op.
	require.NoError(t, store.Update(ctx, "a", "Buy oat milk"))
	versions, err = store.Versions(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, versions, 1)

	// Constraint check on moves.
	assert.ErrorIs(t, store.Move(ctx, "a", 42), domain.ErrConstraint)

	// Trash is excluded from the default listing and from search.
	require.NoError(t, store.Move(ctx, "a", domain.CategoryTrash))
	all, err := store.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)

	results, err := store.Search(ctx, "oat")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSlipStore_SearchPrefixAndTokens(t *testing.T) {
	store, _ := setupStores(t)
	ctx := context.Background()

	addSlip(t, store, "a", "grocery list: milk and bread", domain.CategoryInbox)
	addSlip(t, store, "b", "only milk here", domain.CategoryInbox)

	results, err := store.Search(ctx, "milk bread")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].ID)

	results, err = store.Search(ctx, "groc")
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = store.Search(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}
