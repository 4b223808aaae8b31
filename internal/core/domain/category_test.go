package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	require.Len(t, cats, 11)

	assert.Equal(t, CategoryInbox, cats[0].ID)
	assert.Equal(t, "Inbox", cats[0].Name)

	last := cats[len(cats)-1]
	assert.Equal(t, CategoryTrash, last.ID)
	assert.Equal(t, "Trash", last.Name)

	// Trash sorts after every user-visible category.
	for _, c := range cats[:len(cats)-1] {
		assert.Less(t, c.SortOrder, last.SortOrder)
	}
}

func TestCategoryHidden(t *testing.T) {
	assert.True(t, Category{ID: 3, Name: ""}.Hidden())
	assert.False(t, Category{ID: 3, Name: "Ideas"}.Hidden())
	assert.False(t, Category{ID: CategoryTrash, Name: ""}.Hidden())
}
