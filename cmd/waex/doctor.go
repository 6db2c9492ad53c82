package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/hbeckmann/waex/internal/config"
	"github.com/hbeckmann/waex/internal/index"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, ffprobe, DB, FTS5, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			// check tools
			fmt.Println("=== Tools ===")
			if path, err := exec.LookPath(cfg.FFProbePath); err != nil {
				fmt.Printf("  ffprobe: %s (NOT FOUND, media durations unavailable)\n", cfg.FFProbePath)
			} else {
				fmt.Printf("  ffprobe: %s (OK)\n", path)
			}

			// check DB
			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'waex index' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			exportCount, err := db.ExportCount()
			if err != nil {
				return fmt.Errorf("count exports: %w", err)
			}

			messageCount, err := db.MessageCount()
			if err != nil {
				return fmt.Errorf("count messages: %w", err)
			}

			fmt.Printf("  Exports:  %d\n", exportCount)
			fmt.Printf("  Messages: %d\n", messageCount)

			// check FTS5
			fmt.Println("\n=== FTS5 ===")
			var ftsCount int
			err = db.Raw().QueryRow("SELECT COUNT(*) FROM messages_fts").Scan(&ftsCount)
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == messageCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (messages=%d, fts=%d)\n", messageCount, ftsCount)
				}
			}

			// indexed exports
			exports, err := db.AllExports()
			if err != nil {
				return fmt.Errorf("list exports: %w", err)
			}
			if len(exports) > 0 {
				fmt.Println("\n=== Exports ===")
				for _, e := range exports {
					fmt.Printf("  %s  %5d msgs  %s\n", e.ExportKey[:12], e.MessageCount, e.SourcePath)
				}
			}

			// check DB file size
			if info, err := os.Stat(cfg.DBPath); err == nil {
				sizeMB := float64(info.Size()) / 1024 / 1024
				fmt.Printf("\n=== DB Size: %.1f MB ===\n", sizeMB)
			}

			return nil
		},
	}
}
