package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syn-studios/presscanvas-blog/internal/config"
	"github.com/syn-studios/presscanvas-blog/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "presscanvas",
	Short: "A markdown blog with search, tag filters and a post editor",
	Long: `presscanvas serves a blog from a directory of markdown posts.

The content directory holds posts.json (the post index, newest first) and
posts/<slug>.md (frontmatter followed by the markdown body).

Example usage:
  presscanvas serve --watch          # Serve ./content and reload on change
  presscanvas list --tag go          # Filter posts in the terminal
  presscanvas new --title "Hello"    # Generate a post file from flags
  presscanvas build --out dist       # Export the site as static files`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./presscanvas.yaml)")
	rootCmd.PersistentFlags().String("content-dir", "content", "directory holding posts.json and posts/")
	rootCmd.PersistentFlags().String("content-driver", "files", "content source: files or sqlite")
	rootCmd.PersistentFlags().String("content-sqlite-path", "data/presscanvas.db", "SQLite content index")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
}
