package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarkdownCombine/internal/domain/model"
)

func TestMemoryVault_Root(t *testing.T) {
	vault := NewMemoryVault().
		AddFile("docs/b/c.md", "World").
		AddFile("/docs/a.md", "Hello").
		AddFolder("docs/empty").
		AddFile("readme.txt", "x")

	root, err := vault.Root(context.Background())
	require.NoError(t, err)

	var folders []string
	for _, f := range model.Folders(root) {
		folders = append(folders, f.Path)
	}
	assert.Equal(t, []string{"/", "docs", "docs/b", "docs/empty"}, folders)

	docs, ok := model.Find(root, "docs").(*model.FolderNode)
	require.True(t, ok)
	assert.Equal(t, "docs", docs.Name)
	assert.Len(t, docs.Children, 3)

	assert.ElementsMatch(t, []string{"docs/a.md", "docs/b/c.md"}, model.Paths(model.MarkdownFiles(root)))
}

func TestMemoryVault_ReadCountsAndFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	vault := NewMemoryVault().
		AddFile("a.md", "A").
		AddFile("b.md", "B").
		FailRead("b.md", boom)

	content, err := vault.Read(ctx, model.NewFile("a.md"))
	require.NoError(t, err)
	assert.Equal(t, "A", content)
	assert.Equal(t, 1, vault.ReadCount("a.md"))

	_, err = vault.Read(ctx, model.NewFile("b.md"))
	assert.ErrorIs(t, err, boom)

	_, err = vault.Read(ctx, model.NewFile("missing.md"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryVault_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	vault := NewMemoryVault().AddFile("docs/a.md", "Hello")

	created, err := vault.Create(ctx, "out.md", "body")
	require.NoError(t, err)
	assert.Equal(t, "out.md", created.Path)

	content, ok := vault.Content("out.md")
	require.True(t, ok)
	assert.Equal(t, "body", content)

	_, err = vault.Create(ctx, "out.md", "again")
	assert.True(t, errors.Is(err, fs.ErrExist))

	node, err := vault.Lookup(ctx, "out.md")
	require.NoError(t, err)
	assert.IsType(t, &model.FileNode{}, node)

	_, err = vault.Lookup(ctx, "nothing")
	assert.ErrorIs(t, err, ErrNotFound)
}
