package handler

import (
	"log"
	"net/http"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/syn-studios/presscanvas-blog/assets"
	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/config"
	"github.com/syn-studios/presscanvas-blog/internal/logging"
	"github.com/syn-studios/presscanvas-blog/internal/markdown"
	"github.com/syn-studios/presscanvas-blog/internal/web"
)

var (
	handler http.Handler
	once    sync.Once
)

// initApp builds the server over the content embedded in the binary. The
// function filesystem is read-only, so the deployed content directory is
// used only when it is shipped next to the function.
func initApp() {
	cfg, err := config.Load("", nil)
	if err != nil {
		log.Printf("Error loading config: %v", err)
		handler = unavailable()
		return
	}
	cfg.Log.Format = "json"

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		logger = zap.NewNop()
	}

	var store blog.Store
	if info, err := os.Stat(cfg.Content.Dir); err == nil && info.IsDir() {
		store = blog.NewFileStore(os.DirFS(cfg.Content.Dir))
	} else {
		store = blog.NewFileStore(assets.Content())
	}

	renderer := markdown.NewRenderer()
	if !cfg.Render.Sanitize {
		renderer = markdown.NewRenderer(markdown.WithoutSanitizer())
	}

	server, err := web.NewServer(cfg, store, renderer, logger)
	if err != nil {
		logger.Error("Error initializing server", zap.Error(err))
		handler = unavailable()
		return
	}
	handler = server.Routes()
}

func unavailable() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	})
}

// Handler is the entry point for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(initApp)
	handler.ServeHTTP(w, r)
}
