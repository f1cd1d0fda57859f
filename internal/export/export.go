// Package export renders the site to static files by requesting every
// public route from the HTTP handler in-process.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/listing"
)

// ErrUnsafeOutDir is returned for an output directory whose cleanup would
// remove the working directory or protected content.
var ErrUnsafeOutDir = errors.New("unsafe output directory")

type Result struct {
	Written []string
	Failed  []string
}

// Exporter renders Handler's routes to disk. Protected paths, such as the
// content directory and the index database, must not overlap the output
// directory.
type Exporter struct {
	Handler   http.Handler
	Store     blog.Store
	PageSize  int
	Logger    *zap.Logger
	Protected []string
}

// Routes lists every page of the site: the feed pages, each post, the RSS
// feed and the sitemap.
func (x *Exporter) Routes(ctx context.Context) ([]string, error) {
	posts, err := x.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	routes := []string{"/"}
	for i := 2; i <= listing.PageCount(len(posts), x.PageSize); i++ {
		routes = append(routes, fmt.Sprintf("/page/%d", i))
	}
	for _, p := range posts {
		routes = append(routes, "/posts/"+p.Slug)
	}
	routes = append(routes, "/feed.xml", "/sitemap.xml")
	return routes, nil
}

// Export writes the site into outDir, which is emptied first unless it is
// unsafe to remove (see ErrUnsafeOutDir). Pages become
// <route>/index.html so the output serves with clean URLs. A route that
// does not answer 200 is recorded in Failed and skipped.
func (x *Exporter) Export(ctx context.Context, outDir string) (Result, error) {
	logger := x.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := x.checkOutDir(outDir); err != nil {
		return Result{}, err
	}

	routes, err := x.Routes(ctx)
	if err != nil {
		return Result{}, err
	}

	if err := os.RemoveAll(outDir); err != nil {
		logger.Warn("failed to clean output dir", zap.String("dir", outDir), zap.Error(err))
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output dir: %w", err)
	}

	var res Result
	for _, route := range routes {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		req := httptest.NewRequest(http.MethodGet, route, nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		x.Handler.ServeHTTP(rec, req)

		resp := rec.Result()
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil || resp.StatusCode != http.StatusOK {
			logger.Warn("skipping route", zap.String("route", route), zap.Int("status", resp.StatusCode))
			res.Failed = append(res.Failed, route)
			continue
		}

		rel := OutputPath(route)
		if err := blog.AtomicWriteFile(filepath.Join(outDir, rel), body, 0o644); err != nil {
			return res, fmt.Errorf("writing %s: %w", rel, err)
		}
		logger.Debug("generated", zap.String("route", route), zap.String("file", rel))
		res.Written = append(res.Written, rel)
	}
	return res, nil
}

// checkOutDir refuses output directories that contain the working
// directory, and any that overlap a protected path.
func (x *Exporter) checkOutDir(outDir string) error {
	if strings.TrimSpace(outDir) == "" {
		return fmt.Errorf("%w: empty path", ErrUnsafeOutDir)
	}
	out, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolving output dir: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working dir: %w", err)
	}
	if within(out, wd) {
		return fmt.Errorf("%w: %s contains the working directory", ErrUnsafeOutDir, outDir)
	}
	for _, p := range x.Protected {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		if within(out, abs) || within(abs, out) {
			return fmt.Errorf("%w: %s overlaps %s", ErrUnsafeOutDir, outDir, p)
		}
	}
	return nil
}

// within reports whether path equals dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// OutputPath maps a route to its file below the output directory.
func OutputPath(route string) string {
	clean := strings.TrimPrefix(path.Clean("/"+route), "/")
	if clean == "" {
		return "index.html"
	}
	if path.Ext(clean) != "" {
		return filepath.FromSlash(clean)
	}
	return filepath.FromSlash(clean + "/index.html")
}
