package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8084", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:8084", cfg.Server.BaseURL)
	assert.Equal(t, "content", cfg.Content.Dir)
	assert.Equal(t, "files", cfg.Content.Driver)
	assert.Equal(t, 6, cfg.Listing.PageSize)
	assert.Equal(t, 3, cfg.Listing.Related)
	assert.Equal(t, 128, cfg.Render.CacheSize)
	assert.True(t, cfg.Render.Sanitize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presscanvas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: "127.0.0.1:9000"
  base_url: "https://blog.example.com/"
site:
  title: "Field Notes"
listing:
  page_size: 9
`), 0o644))

	t.Setenv("PRESSCANVAS_SITE_AUTHOR", "Grace")
	t.Setenv("PRESSCANVAS_LISTING_PAGE_SIZE", "4")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("content-dir", "content", "")
	fs.Bool("content-watch", false, "")
	require.NoError(t, fs.Parse([]string{"--content-dir", "/srv/posts", "--content-watch"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "https://blog.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "Field Notes", cfg.Site.Title)
	assert.Equal(t, "Grace", cfg.Site.Author)
	assert.Equal(t, 4, cfg.Listing.PageSize, "env overrides file")
	assert.Equal(t, "/srv/posts", cfg.Content.Dir)
	assert.True(t, cfg.Content.Watch)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := map[string]string{
		"PRESSCANVAS_CONTENT_DRIVER":    "postgres",
		"PRESSCANVAS_LISTING_PAGE_SIZE": "0",
		"PRESSCANVAS_LOG_FORMAT":        "xml",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load("", nil)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestBaseURLFromAddr(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8084", "http://localhost:8084"},
		{"0.0.0.0:80", "http://localhost:80"},
		{"blog.local:8080", "http://blog.local:8080"},
		{"https://example.com/", "https://example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, baseURLFromAddr(tt.addr), tt.addr)
	}
}
