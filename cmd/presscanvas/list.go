package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/syn-studios/presscanvas-blog/internal/blog"
	"github.com/syn-studios/presscanvas-blog/internal/listing"
)

var (
	listQuery string
	listTags  []string
	listPage  int
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Search and page through posts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "match title, excerpt, author or tag")
	listCmd.Flags().StringSliceVarP(&listTags, "tag", "t", nil, "only posts with any of these tags")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the page as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	posts, err := store.List(ctx)
	if err != nil {
		return err
	}

	session := listing.NewSession(posts, cfg.Listing.PageSize)
	session.SetQuery(listing.Query{Text: listQuery, Tags: listTags})
	if !session.GoTo(listPage) {
		return fmt.Errorf("page %d out of range (1-%d)", listPage, max(session.PageCount(), 1))
	}
	page := listing.Paginate(session.Filtered(), cfg.Listing.PageSize, session.Page())

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(page.Items)
	}

	fmt.Fprintln(out, color.New(color.Bold).Sprint(listing.Summary(len(session.Filtered()), len(posts))))
	if len(page.Items) == 0 {
		fmt.Fprintln(out, "No posts found")
		return nil
	}
	renderPostTable(out, page.Items)
	if page.PageCount > 1 {
		fmt.Fprintf(out, "page %d of %d\n", page.Number, page.PageCount)
	}
	return nil
}

func renderPostTable(w io.Writer, posts []blog.Post) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{p.Date.String(), p.Slug, p.Title, strings.Join(p.Tags, ", "), p.Author, p.ReadTime})
	}
	table.Header([]string{"Date", "Slug", "Title", "Tags", "Author", "Read"})
	table.Bulk(rows)
	table.Render()
}
