package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syn-studios/presscanvas-blog/internal/watch"
	"github.com/syn-studios/presscanvas-blog/internal/web"
)

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the blog over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("server-addr", ":8084", "address to listen on")
	serveCmd.Flags().String("server-base-url", "", "public base URL (default derived from the address)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload content when files change")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := web.NewServer(cfg, store, newRenderer(cfg), logger)
	if err != nil {
		return err
	}
	e := srv.Routes()

	if serveWatch || cfg.Content.Watch {
		if err := startWatcher(ctx, srv); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr), zap.String("url", cfg.Server.BaseURL))
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func startWatcher(ctx context.Context, srv *web.Server) error {
	if cfg.Content.Driver != "files" {
		logger.Warn("watching is only supported for the files driver")
		return nil
	}
	if _, local := contentFS(cfg); !local {
		return nil
	}
	dirs := []string{cfg.Content.Dir}
	if info, err := os.Stat(postsDir(cfg)); err == nil && info.IsDir() {
		dirs = append(dirs, postsDir(cfg))
	}
	w, err := watch.New(srv.Reload, watch.DefaultDelay, logger, dirs...)
	if err != nil {
		return err
	}
	go func() {
		if err := w.Run(ctx); err != nil {
			logger.Error("watcher stopped", zap.Error(err))
		}
	}()
	logger.Info("watching content", zap.String("dir", cfg.Content.Dir))
	return nil
}
