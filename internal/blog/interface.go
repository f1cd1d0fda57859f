package blog

import "context"

// Store is the read-only post repository. List returns posts in repository
// order; that order is what the feed, filters and featured post rely on.
type Store interface {
	List(ctx context.Context) ([]Post, error)
	GetBySlug(ctx context.Context, slug string) (Post, error)
	Body(ctx context.Context, slug string) (string, error)
}

// Reloader is implemented by stores that can drop cached content.
type Reloader interface {
	Reload()
}
