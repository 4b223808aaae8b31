package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipnote/slip-cli/internal/adapters/driven/storage/memory"
	"github.com/slipnote/slip-cli/internal/core/domain"
	"github.com/slipnote/slip-cli/internal/core/services"
)

// setupCLI wires the command tree to in-memory services so commands run
// without touching disk.
func setupCLI(t *testing.T) {
	t.Helper()

	cats := memory.NewCategoryStore()
	slips := memory.NewSlipStore(cats)

	categories := services.NewCategories(cats)
	require.NoError(t, categories.EnsureDefaults(context.Background()))

	slipService = services.NewSlips(slips)
	categoryService = categories

	t.Cleanup(func() {
		slipService = nil
		categoryService = nil
		backupService = nil
	})
}

// runCLI executes the root command with the given args and returns its
// combined output.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	// Sticky flag state would leak between invocations otherwise.
	listTrash = false
	deleteForce = false
	versionsFull = false
	exportOut = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_AddListShow(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "", "add", "Buy milk\nAnd eggs")
	require.NoError(t, err)
	assert.Contains(t, out, "added")
	assert.Contains(t, out, "Buy milk")

	out, err = runCLI(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")

	ctx := context.Background()
	slips, err := slipService.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, slips, 1)

	out, err = runCLI(t, "", "show", slips[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk\nAnd eggs")
}

func TestCLI_AddFromStdin(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "From a pipe\n", "add")
	require.NoError(t, err)
	assert.Contains(t, out, "From a pipe")
}

func TestCLI_AddEmptyFails(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "", "add", "   \n ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCLI_ShortIDPrefix(t *testing.T) {
	setupCLI(t)

	slip, err := slipService.Insert(context.Background(), "prefix target", domain.CategoryInbox)
	require.NoError(t, err)

	out, err := runCLI(t, "", "show", slip.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "prefix target")
}

func TestCLI_TrashRestoreEmptyTrash(t *testing.T) {
	setupCLI(t)
	ctx := context.Background()

	slip, err := slipService.Insert(ctx, "doomed", domain.CategoryInbox)
	require.NoError(t, err)

	_, err = runCLI(t, "", "trash", slip.ID)
	require.NoError(t, err)

	out, err := runCLI(t, "", "list", "--trash")
	require.NoError(t, err)
	assert.Contains(t, out, "doomed")

	_, err = runCLI(t, "", "restore", slip.ID)
	require.NoError(t, err)
	got, err := slipService.Get(ctx, slip.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryInbox, got.CategoryID)

	_, err = runCLI(t, "", "trash", slip.ID)
	require.NoError(t, err)
	out, err = runCLI(t, "", "empty-trash", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 1 slip(s)")

	_, err = slipService.Get(ctx, slip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCLI_EmptyTrashNeedsConfirmation(t *testing.T) {
	setupCLI(t)
	ctx := context.Background()

	slip, err := slipService.Insert(ctx, "survivor", domain.CategoryInbox)
	require.NoError(t, err)
	require.NoError(t, slipService.Trash(ctx, slip.ID))

	out, err := runCLI(t, "n\n", "empty-trash")
	require.NoError(t, err)
	assert.Contains(t, out, "aborted")

	n, err := slipService.TrashCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCLI_Search(t *testing.T) {
	setupCLI(t)
	ctx := context.Background()

	_, err := slipService.Insert(ctx, "grocery list for the week", domain.CategoryInbox)
	require.NoError(t, err)
	_, err = slipService.Insert(ctx, "meeting notes", domain.CategoryInbox)
	require.NoError(t, err)

	out, err := runCLI(t, "", "search", "groc", "week")
	require.NoError(t, err)
	assert.Contains(t, out, "grocery list")
	assert.NotContains(t, out, "meeting")
}

func TestCLI_Versions(t *testing.T) {
	setupCLI(t)
	ctx := context.Background()

	slip, err := slipService.Insert(ctx, "draft one", domain.CategoryInbox)
	require.NoError(t, err)

	out, err := runCLI(t, "", "versions", slip.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "never been edited")

	require.NoError(t, slipService.Update(ctx, slip.ID, "draft two"))
	out, err = runCLI(t, "", "versions", slip.ID, "--full")
	require.NoError(t, err)
	assert.Contains(t, out, "v1")
	assert.Contains(t, out, "draft one")
}

func TestCLI_CategoryRename(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "", "category", "rename", "1", "--name", "Projects")
	require.NoError(t, err)
	assert.Contains(t, out, "updated category 1")

	out, err = runCLI(t, "", "category", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Projects")
}

func TestCLI_Export(t *testing.T) {
	setupCLI(t)
	ctx := context.Background()

	_, err := slipService.Insert(ctx, "Title here\nbody text", domain.CategoryInbox)
	require.NoError(t, err)

	out, err := runCLI(t, "", "export")
	require.NoError(t, err)
	assert.Contains(t, out, "## Title here")
	assert.Contains(t, out, "body text")
}
