package web

import (
	"context"
	"errors"
	"html/template"
	"time"

	"go.uber.org/zap"

	"github.com/syn-studios/presscanvas-blog/internal/article"
	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/config"
	"github.com/syn-studios/presscanvas-blog/internal/markdown"
	"github.com/syn-studios/presscanvas-blog/internal/metrics"
)

type Server struct {
	Config    *config.Config
	Store     blog.Store
	Articles  *article.Loader
	Renderer  *markdown.Renderer
	Logger    *zap.Logger
	templates map[string]*template.Template
	now       func() time.Time
}

func NewServer(cfg *config.Config, store blog.Store, renderer *markdown.Renderer, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loader, err := article.NewLoader(store, renderer, cfg.Render.CacheSize, logger)
	if err != nil {
		return nil, err
	}
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Server{
		Config:    cfg,
		Store:     store,
		Articles:  loader,
		Renderer:  renderer,
		Logger:    logger,
		templates: templates,
		now:       time.Now,
	}, nil
}

// Reload drops cached content so the next request reads it again.
func (s *Server) Reload() {
	if r, ok := s.Store.(blog.Reloader); ok {
		r.Reload()
	}
	s.Articles.Purge()
}

// posts lists the repository. A missing or malformed index is logged and
// served as an empty repository.
func (s *Server) posts(ctx context.Context) ([]blog.Post, error) {
	posts, err := s.Store.List(ctx)
	if err == nil {
		return posts, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	s.Logger.Warn("post index unavailable", zap.Error(err))
	metrics.ContentFallbacksTotal.WithLabelValues("index").Inc()
	return []blog.Post{}, nil
}
