package domain

// Reserved category IDs.
const (
	// CategoryInbox is the default target for uncategorized slips.
	CategoryInbox = 0

	// CategoryTrash holds soft-deleted slips. Always exists and is
	// excluded from the default "all slips" view.
	CategoryTrash = -1
)

// Category is a named partition slips belong to. Categories are seeded
// once at first run and never auto-deleted; callers may only rename or
// recolor them. An empty name hides the category from pickers.
type Category struct {
	ID        int
	Name      string
	Emoji     string
	Color     string
	SortOrder int
}

// Hidden reports whether the category should be omitted from pickers.
// The category itself is never deleted, so slips keep their assignment.
func (c Category) Hidden() bool {
	return c.Name == "" && c.ID != CategoryTrash
}

// DefaultCategories returns the fixed starter set seeded on first run:
// Inbox (0), nine user categories, and Trash (-1) sorted last.
func DefaultCategories() []Category {
	return []Category{
		{ID: CategoryInbox, Name: "Inbox", Emoji: "📥", Color: "#8E8E93", SortOrder: 0},
		{ID: 1, Name: "Work", Emoji: "💼", Color: "#007AFF", SortOrder: 1},
		{ID: 2, Name: "Personal", Emoji: "🏠", Color: "#34C759", SortOrder: 2},
		{ID: 3, Name: "Ideas", Emoji: "💡", Color: "#FFCC00", SortOrder: 3},
		{ID: 4, Name: "Reading", Emoji: "📚", Color: "#FF9500", SortOrder: 4},
		{ID: 5, Name: "Journal", Emoji: "📓", Color: "#AF52DE", SortOrder: 5},
		{ID: 6, Name: "Recipes", Emoji: "🍳", Color: "#FF2D55", SortOrder: 6},
		{ID: 7, Name: "Travel", Emoji: "✈️", Color: "#5AC8FA", SortOrder: 7},
		{ID: 8, Name: "Shopping", Emoji: "🛒", Color: "#FF3B30", SortOrder: 8},
		{ID: 9, Name: "Archive", Emoji: "🗄️", Color: "#8E8E93", SortOrder: 9},
		TrashCategory(),
	}
}

// TrashCategory returns the reserved Trash category row. Kept separate
// from DefaultCategories so pre-Trash stores can be repaired idempotently.
func TrashCategory() Category {
	return Category{ID: CategoryTrash, Name: "Trash", Emoji: "🗑️", Color: "#8E8E93", SortOrder: 99}
}
