package blog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := NewFileStore(sampleFS())
	posts, err := source.List(ctx)
	require.NoError(t, err)

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "content.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	bodies := map[string]string{"getting-started": "# Hello\n"}
	require.NoError(t, store.Import(ctx, posts, bodies))

	got, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, posts, got)

	post, err := store.GetBySlug(ctx, "styling-the-web")
	require.NoError(t, err)
	assert.Equal(t, "Linus", post.Author)

	body, err := store.Body(ctx, "getting-started")
	require.NoError(t, err)
	assert.Equal(t, "# Hello\n", body)

	_, err = store.Body(ctx, "styling-the-web")
	assert.ErrorIs(t, err, ErrBodyNotFound)

	_, err = store.GetBySlug(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreImportReplaces(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	posts, err := NewFileStore(sampleFS()).List(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Import(ctx, posts, nil))
	require.NoError(t, store.Import(ctx, posts[1:], nil))

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "styling-the-web", got[0].Slug)
}

func TestSQLiteStoreImportRejectsInvalid(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	err = store.Import(context.Background(), []Post{{ID: "1", Title: "x", Slug: "Bad Slug"}}, nil)
	assert.ErrorIs(t, err, ErrInvalidPost)
}
