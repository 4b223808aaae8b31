package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipnote/slip-cli/internal/adapters/driven/storage/memory"
	"github.com/slipnote/slip-cli/internal/core/domain"
)

func intPtr(i int) *int { return &i }

func setupSlips(t *testing.T) *Slips {
	t.Helper()
	cats := memory.NewCategoryStore()
	require.NoError(t, cats.Seed(context.Background()))
	return NewSlips(memory.NewSlipStore(cats))
}

func TestSlips_InsertDerivesFields(t *testing.T) {
	svc := setupSlips(t)
	ctx := context.Background()

	slip, err := svc.Insert(ctx, "Buy milk\nAnd eggs", domain.CategoryInbox)
	require.NoError(t, err)
	assert.NotEmpty(t, slip.ID)
	assert.NotEmpty(t, slip.Timestamp)
	assert.Equal(t, "Buy milk", slip.Title)
	assert.Equal(t, domain.CategoryInbox, slip.CategoryID)
	assert.False(t, slip.CreatedAt.IsZero())
}

func TestSlips_InsertRejectsEmptyContent(t *testing.T) {
	svc := setupSlips(t)
	ctx := context.Background()

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := svc.Insert(ctx, content, domain.CategoryInbox)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "content %q", content)
	}
}

func TestSlips_InsertUnknownCategory(t *testing.T) {
	svc := setupSlips(t)

	_, err := svc.Insert(context.Background(), "orphan", 42)
	assert.ErrorIs(t, err, domain.ErrConstraint)
}

func TestSlips_EndToEndScenario(t *testing.T) {
	svc := setupSlips(t)
	ctx := context.Background()

	slip, err := svc.Insert(ctx, "Buy milk\nAnd eggs", 0)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", slip.Title)

	list, err := svc.List(ctx, intPtr(0))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, slip.ID, list[0].ID)

	for _, q := range []string{"buy", "eggs"} {
		results, err := svc.Search(ctx, q)
		require.NoError(t, err)
		require.Len(t, results, 1, "query %q", q)
		assert.Equal(t, slip.ID, results[0].ID)
	}

	results, err := svc.Search(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSlips_UpdateHistory(t *testing.T) {
	svc := setupSlips(t)
	ctx := context.Background()

	slip, err := svc.Insert(ctx, "draft 1", domain.CategoryInbox)
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, slip.ID, "draft 2"))
	require.NoError(t, svc.Update(ctx, slip.ID, "draft 3"))
	require.NoError(t, svc.Update(ctx, slip.ID, "draft 4"))

	versions, err := svc.Versions(ctx, slip.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "draft 3", versions[0].Content)
	assert.Equal(t, "draft 2", versions[1].Content)
	assert.Equal(t, "draft 1", versions[2].Content)
}

func TestSlips_TrashRestoreAndEmpty(t *testing.T) {
	svc := setupSlips(t)
	ctx := context.Background()

	keep, err := svc.Insert(ctx, "keeper", domain.CategoryInbox)
	require.NoError(t, err)
	gone, err := svc.Insert(ctx, "goner", domain.CategoryInbox)
	require.NoError(t, err)

	require.NoError(t, svc.Trash(ctx, keep.ID))
	require.NoError(t, svc.Trash(ctx, gone.ID))

	count, err := svc.TrashCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Restore puts the slip back into the Inbox.
	require.NoError(t, svc.Restore(ctx, keep.ID))
	restored, err := svc.Get(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryInbox, restored.CategoryID)

	deleted, err := svc.EmptyTrash(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	count, err = svc.TrashCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = svc.Get(ctx, gone.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSlips_SearchTrimsQuery(t *testing.T) {
	svc := setupSlips(t)
	ctx := context.Background()

	_, err := svc.Insert(ctx, "hello world", domain.CategoryInbox)
	require.NoError(t, err)

	results, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.Search(ctx, "  hello  ")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSlips_ExportMarkdown(t *testing.T) {
	svc := setupSlips(t)
	ctx := context.Background()

	first, err := svc.Insert(ctx, "Older slip\nwith a body", domain.CategoryInbox)
	require.NoError(t, err)
	second, err := svc.Insert(ctx, "Newer slip", domain.CategoryInbox)
	require.NoError(t, err)
	// Force distinct ordering regardless of insert timing.
	require.NoError(t, svc.TogglePin(ctx, first.ID))

	out, err := svc.ExportMarkdown(ctx, nil)
	require.NoError(t, err)

	want := "## Older slip\n\n" + first.Timestamp + "\n\nwith a body\n" +
		"\n---\n\n" +
		"## Newer slip\n\n" + second.Timestamp + "\n"
	assert.Equal(t, want, out)
}

func TestSlips_ExportMarkdownEmptyStore(t *testing.T) {
	svc := setupSlips(t)

	out, err := svc.ExportMarkdown(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSlips_ExportMarkdownExcludesTrash(t *testing.T) {
	svc := setupSlips(t)
	ctx := context.Background()

	slip, err := svc.Insert(ctx, "secret draft", domain.CategoryInbox)
	require.NoError(t, err)
	require.NoError(t, svc.Trash(ctx, slip.ID))

	out, err := svc.ExportMarkdown(ctx, nil)
	require.NoError(t, err)
	assert.NotContains(t, out, "secret draft")

	// An explicit Trash filter exports trashed slips.
	out, err = svc.ExportMarkdown(ctx, intPtr(domain.CategoryTrash))
	require.NoError(t, err)
	assert.Contains(t, out, "secret draft")
}
