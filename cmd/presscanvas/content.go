package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/syn-studios/presscanvas-blog/assets"
	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/config"
	"github.com/syn-studios/presscanvas-blog/internal/markdown"
)

// contentFS returns the configured content directory, or the embedded
// sample content when the directory does not exist. local reports which.
func contentFS(c *config.Config) (fsys fs.FS, local bool) {
	if info, err := os.Stat(c.Content.Dir); err == nil && info.IsDir() {
		return os.DirFS(c.Content.Dir), true
	}
	logger.Warn("content directory not found, serving sample content", zap.String("dir", c.Content.Dir))
	return assets.Content(), false
}

// openStore opens the configured post store. An empty SQLite index is
// filled from the content directory first.
func openStore(ctx context.Context, c *config.Config) (blog.Store, func() error, error) {
	fsys, _ := contentFS(c)
	if c.Content.Driver != "sqlite" {
		return blog.NewFileStore(fsys), func() error { return nil }, nil
	}

	store, err := blog.NewSQLiteStore(c.Content.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	posts, err := store.List(ctx)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if len(posts) == 0 {
		logger.Info("importing content into SQLite", zap.String("path", c.Content.SQLitePath))
		if _, err := importContent(ctx, store, blog.NewFileStore(fsys)); err != nil {
			store.Close()
			return nil, nil, err
		}
	}
	return store, store.Close, nil
}

// importContent copies every post and its body from src into dst. Posts
// without a body file are imported without one.
func importContent(ctx context.Context, dst *blog.SQLiteStore, src blog.Store) (int, error) {
	posts, err := src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading content: %w", err)
	}
	bodies := make(map[string]string, len(posts))
	for _, p := range posts {
		body, err := src.Body(ctx, p.Slug)
		if err != nil {
			logger.Warn("post has no body", zap.String("slug", p.Slug), zap.Error(err))
			continue
		}
		bodies[p.Slug] = body
	}
	if err := dst.Import(ctx, posts, bodies); err != nil {
		return 0, err
	}
	return len(posts), nil
}

func newRenderer(c *config.Config) *markdown.Renderer {
	if !c.Render.Sanitize {
		return markdown.NewRenderer(markdown.WithoutSanitizer())
	}
	return markdown.NewRenderer()
}

func postsDir(c *config.Config) string {
	return filepath.Join(c.Content.Dir, blog.PostsDir)
}

func indexPath(c *config.Config) string {
	return filepath.Join(c.Content.Dir, blog.IndexFile)
}
