package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/markdown"
)

var showWidth int

var showCmd = &cobra.Command{
	Use:   "show <slug>",
	Short: "Render a post in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, closeStore, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		post, err := store.GetBySlug(ctx, args[0])
		if errors.Is(err, blog.ErrNotFound) {
			return fmt.Errorf("no post with slug %q", args[0])
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.New(color.Bold).Sprint(post.Title))
		fmt.Fprintf(out, "%s · %s · %s\n\n", post.Author, post.Date, post.ReadTime)

		raw, err := store.Body(ctx, post.Slug)
		if err != nil {
			logger.Warn("markdown body unavailable", zap.String("slug", post.Slug), zap.Error(err))
			fmt.Fprintln(out, color.YellowString("Content could not be loaded."))
			return nil
		}

		tr, err := markdown.NewTerminalRenderer(showWidth)
		if err != nil {
			return err
		}
		fmt.Fprint(out, tr.Render(markdown.StripFrontmatter(raw)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVar(&showWidth, "width", 80, "word wrap width")
}
