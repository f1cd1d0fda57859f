// Package config loads presscanvas settings from an optional YAML file,
// PRESSCANVAS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "PRESSCANVAS"

var ErrInvalidConfig = errors.New("invalid config")

var flagName = strings.NewReplacer(".", "-", "_", "-")

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Content ContentConfig `mapstructure:"content"`
	Site    SiteConfig    `mapstructure:"site"`
	Listing ListingConfig `mapstructure:"listing"`
	Render  RenderConfig  `mapstructure:"render"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	BaseURL string `mapstructure:"base_url"`
}

// ContentConfig selects where posts are read from. Driver "files" reads
// Dir/posts.json and Dir/posts/*.md; "sqlite" reads the index built by
// `presscanvas index`.
type ContentConfig struct {
	Dir        string `mapstructure:"dir"`
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
	Watch      bool   `mapstructure:"watch"`
}

type SiteConfig struct {
	Title       string `mapstructure:"title"`
	Tagline     string `mapstructure:"tagline"`
	Description string `mapstructure:"description"`
	Author      string `mapstructure:"author"`
}

type ListingConfig struct {
	PageSize int `mapstructure:"page_size"`
	Related  int `mapstructure:"related"`
}

type RenderConfig struct {
	CacheSize int  `mapstructure:"cache_size"`
	Sanitize  bool `mapstructure:"sanitize"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load builds the configuration. cfgFile may be empty, in which case
// presscanvas.yaml is looked up in the working directory and a missing file
// is not an error. Flags in fs named after a key with dots and underscores
// turned into dashes (--server-addr, --content-sqlite-path) override the
// file and environment when set.
func Load(cfgFile string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("presscanvas")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for _, key := range v.AllKeys() {
			if f := fs.Lookup(flagName.Replace(key)); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", f.Name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Server.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Server.BaseURL), "/")
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = baseURLFromAddr(cfg.Server.Addr)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8084")
	v.SetDefault("server.base_url", "")

	v.SetDefault("content.dir", "content")
	v.SetDefault("content.driver", "files")
	v.SetDefault("content.sqlite_path", "data/presscanvas.db")
	v.SetDefault("content.watch", false)

	v.SetDefault("site.title", "PressCanvas")
	v.SetDefault("site.tagline", "Stories, notes and tutorials")
	v.SetDefault("site.description", "A small blog rendered from markdown files.")
	v.SetDefault("site.author", "PressCanvas")

	v.SetDefault("listing.page_size", 6)
	v.SetDefault("listing.related", 3)

	v.SetDefault("render.cache_size", 128)
	v.SetDefault("render.sanitize", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

func (c *Config) Validate() error {
	switch c.Content.Driver {
	case "files", "sqlite":
	default:
		return fmt.Errorf("%w: content.driver must be files or sqlite, got %q", ErrInvalidConfig, c.Content.Driver)
	}
	if c.Listing.PageSize < 1 {
		return fmt.Errorf("%w: listing.page_size must be positive", ErrInvalidConfig)
	}
	if c.Listing.Related < 0 {
		return fmt.Errorf("%w: listing.related must not be negative", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log.format must be console or json, got %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func baseURLFromAddr(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimRight(addr, "/")
	}

	host := ""
	port := ""
	if strings.HasPrefix(addr, ":") {
		host = "localhost"
		port = strings.TrimPrefix(addr, ":")
	} else {
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			port = p
		} else {
			host = addr
		}
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	if port != "" {
		return "http://" + host + ":" + port
	}
	return "http://" + host
}
