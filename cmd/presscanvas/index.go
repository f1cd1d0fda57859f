package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/markdown"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the SQLite content index from the content directory",
	Long: `Read posts.json and every post body from the content directory and
replace the contents of the SQLite index with them. Post files whose
frontmatter disagrees with posts.json are reported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fsys, _ := contentFS(cfg)
		src := blog.NewFileStore(fsys)

		posts, err := src.List(ctx)
		if err != nil {
			return fmt.Errorf("reading content: %w", err)
		}
		out := cmd.OutOrStdout()
		for _, p := range posts {
			for _, problem := range lintPost(p, src, cmd) {
				fmt.Fprintf(out, "%s %s: %s\n", color.YellowString("warning"), p.Slug, problem)
			}
		}

		dst, err := blog.NewSQLiteStore(cfg.Content.SQLitePath)
		if err != nil {
			return err
		}
		defer dst.Close()

		n, err := importContent(ctx, dst, src)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %d posts indexed in %s\n", color.GreenString("done"), n, cfg.Content.SQLitePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

// lintPost compares the frontmatter of a post file with its index record.
func lintPost(p blog.Post, src blog.Store, cmd *cobra.Command) []string {
	raw, err := src.Body(cmd.Context(), p.Slug)
	if err != nil {
		return []string{"no markdown file"}
	}
	fm, _, err := markdown.ParseFrontmatter(raw)
	if err != nil {
		logger.Debug("frontmatter unreadable", zap.String("slug", p.Slug), zap.Error(err))
		return []string{err.Error()}
	}

	var problems []string
	if fm.Slug != "" && fm.Slug != p.Slug {
		problems = append(problems, fmt.Sprintf("frontmatter slug %q differs from posts.json", fm.Slug))
	}
	if fm.Title != "" && fm.Title != p.Title {
		problems = append(problems, fmt.Sprintf("frontmatter title %q differs from posts.json", fm.Title))
	}
	if fm.Date != "" && fm.Date != p.Date.String() {
		problems = append(problems, fmt.Sprintf("frontmatter date %q differs from posts.json", fm.Date))
	}
	return problems
}
