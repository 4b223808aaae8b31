package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipnote/slip-cli/internal/adapters/driven/storage/memory"
	"github.com/slipnote/slip-cli/internal/core/domain"
)

func TestCategories_EnsureDefaultsAndList(t *testing.T) {
	svc := NewCategories(memory.NewCategoryStore())
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaults(ctx))
	require.NoError(t, svc.EnsureDefaults(ctx)) // idempotent

	cats, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 11)
	assert.Equal(t, domain.CategoryInbox, cats[0].ID)
	assert.Equal(t, domain.CategoryTrash, cats[len(cats)-1].ID)
}

func TestCategories_Rename(t *testing.T) {
	svc := NewCategories(memory.NewCategoryStore())
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	name := "Projects"
	color := "#123456"
	require.NoError(t, svc.Rename(ctx, 1, &name, &color))

	cats, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Projects", cats[1].Name)
	assert.Equal(t, "#123456", cats[1].Color)

	err = svc.Rename(ctx, 42, &name, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
