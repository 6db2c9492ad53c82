package main

import (
	"github.com/spf13/cobra"

	"github.com/hbeckmann/waex/internal/config"
	"github.com/hbeckmann/waex/internal/index"
	"github.com/hbeckmann/waex/internal/search"
	"github.com/hbeckmann/waex/internal/tui"
)

func browseCmd() *cobra.Command {
	var sender, ctype, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse indexed messages, newest first",
		Long:  `Opens a TUI panel showing the newest indexed messages. Type to search the full text.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			opts := search.Options{
				Sender: sender,
				Type:   ctype,
				Since:  since,
				Limit:  limit,
			}

			return tui.RunBrowse(db, opts)
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "Filter by sender name")
	cmd.Flags().StringVar(&ctype, "type", "", "Filter by content type or family (image/video/audio/document)")
	cmd.Flags().StringVar(&since, "since", "", "Filter messages since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 200, "Max results")

	return cmd
}
