package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syn-studios/presscanvas-blog/internal/export"
	"github.com/syn-studios/presscanvas-blog/internal/web"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the site as static HTML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, closeStore, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		srv, err := web.NewServer(cfg, store, newRenderer(cfg), logger)
		if err != nil {
			return err
		}

		x := &export.Exporter{
			Handler:   srv.Routes(),
			Store:     store,
			PageSize:  cfg.Listing.PageSize,
			Logger:    logger,
			Protected: []string{cfg.Content.Dir, cfg.Content.SQLitePath},
		}
		res, err := x.Export(ctx, buildOut)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, route := range res.Failed {
			fmt.Fprintf(out, "%s %s\n", color.YellowString("skipped"), route)
		}
		fmt.Fprintf(out, "%s %d files written to %s\n", color.GreenString("done"), len(res.Written), buildOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dist", "output directory")
	buildCmd.Flags().String("server-base-url", "", "public base URL used in feeds and canonical links")
}
