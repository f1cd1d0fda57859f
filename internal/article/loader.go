// Package article loads a single post for the detail view: metadata from
// the store, the markdown body, and its rendered HTML.
package article

import (
	"context"
	"errors"
	"fmt"
	"html/template"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/metrics"
)

// PlaceholderHTML replaces a body that could not be loaded or rendered.
const PlaceholderHTML template.HTML = `<p class="content-placeholder">Content could not be loaded.</p>`

// DefaultCacheSize is the number of rendered bodies kept in memory.
const DefaultCacheSize = 128

// Article is a post ready for display.
type Article struct {
	Post        blog.Post
	HTML        template.HTML
	Placeholder bool
}

// HTMLRenderer is satisfied by *markdown.Renderer.
type HTMLRenderer interface {
	RenderDocument(raw string) (template.HTML, error)
}

type Loader struct {
	store    blog.Store
	renderer HTMLRenderer
	cache    *lru.Cache[string, template.HTML]
	logger   *zap.Logger
}

func NewLoader(store blog.Store, renderer HTMLRenderer, cacheSize int, logger *zap.Logger) (*Loader, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, template.HTML](cacheSize)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{store: store, renderer: renderer, cache: cache, logger: logger}, nil
}

// Load returns the article for slug. A slug without a post record yields
// blog.ErrNotFound, and so does an index that cannot be read. A record
// whose body is missing or fails to render is returned with the
// placeholder body instead of an error.
func (l *Loader) Load(ctx context.Context, slug string) (Article, error) {
	post, err := l.store.GetBySlug(ctx, slug)
	switch {
	case err == nil:
	case errors.Is(err, blog.ErrNotFound), isContextErr(err):
		return Article{}, err
	default:
		l.logger.Warn("post index unavailable", zap.String("slug", slug), zap.Error(err))
		metrics.ContentFallbacksTotal.WithLabelValues("index").Inc()
		return Article{}, fmt.Errorf("%w: %w", blog.ErrNotFound, err)
	}

	if html, ok := l.cache.Get(slug); ok {
		metrics.RenderCacheTotal.WithLabelValues("hit").Inc()
		return Article{Post: post, HTML: html}, nil
	}
	metrics.RenderCacheTotal.WithLabelValues("miss").Inc()

	raw, err := l.store.Body(ctx, slug)
	if err != nil {
		if isContextErr(err) {
			return Article{}, err
		}
		l.logger.Warn("markdown body unavailable", zap.String("slug", slug), zap.Error(err))
		metrics.ContentFallbacksTotal.WithLabelValues("body").Inc()
		return placeholder(post), nil
	}

	html, err := l.renderer.RenderDocument(raw)
	if err != nil {
		l.logger.Warn("markdown render failed", zap.String("slug", slug), zap.Error(err))
		metrics.ContentFallbacksTotal.WithLabelValues("render").Inc()
		return placeholder(post), nil
	}

	l.cache.Add(slug, html)
	return Article{Post: post, HTML: html}, nil
}

// Purge drops every cached render, used after content changes.
func (l *Loader) Purge() {
	l.cache.Purge()
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func placeholder(post blog.Post) Article {
	return Article{Post: post, HTML: PlaceholderHTML, Placeholder: true}
}
