package assets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/markdown"
)

func TestSampleContentIsConsistent(t *testing.T) {
	store := blog.NewFileStore(Content())
	ctx := context.Background()

	posts, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 7)

	for _, p := range posts {
		raw, err := store.Body(ctx, p.Slug)
		require.NoError(t, err, p.Slug)

		fm, body, err := markdown.ParseFrontmatter(raw)
		require.NoError(t, err, p.Slug)
		assert.Equal(t, p.Slug, fm.Slug)
		assert.Equal(t, p.Title, fm.Title)
		assert.Equal(t, p.Date.String(), fm.Date)
		assert.Equal(t, p.Tags, fm.Tags)
		assert.NotEmpty(t, body)
	}
}
