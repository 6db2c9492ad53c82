package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hbeckmann/waex/internal/config"
	"github.com/hbeckmann/waex/internal/index"
)

func indexCmd() *cobra.Command {
	var owner string
	var force, prune bool

	cmd := &cobra.Command{
		Use:   "index <export>...",
		Short: "Parse chat exports and index them for searching",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := newLogger()
			defer log.Sync()

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			seen := make(map[string]struct{})
			indexed, skipped, errs := 0, 0, 0

			for _, path := range args {
				key, err := indexOne(db, cfg, path, owner, force, log, seen)
				switch {
				case err != nil:
					errs++
					fmt.Fprintf(os.Stderr, "  WARN: %s: %v\n", path, err)
				case key == "":
					skipped++
				default:
					indexed++
				}
			}

			pruned := 0
			if prune {
				pruned, err = index.Prune(db, seen)
				if err != nil {
					return fmt.Errorf("prune: %w", err)
				}
			}

			fmt.Fprintf(os.Stderr, "Done. indexed=%d skipped=%d pruned=%d errors=%d\n",
				indexed, skipped, pruned, errs)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Device owner name stored with the export")
	cmd.Flags().BoolVar(&force, "force", false, "Re-index even when the export is unchanged")
	cmd.Flags().BoolVar(&prune, "prune", false, "Remove indexed exports not named on the command line")

	return cmd
}

// indexOne indexes a single export path. It returns the export key, or ""
// when the export was already up to date.
func indexOne(db *index.DB, cfg *config.Config, path, owner string, force bool, log *zap.Logger, seen map[string]struct{}) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	arch, result, err := openAndParse(cfg, path, log)
	if err != nil {
		return "", err
	}
	defer arch.Close()

	meta := index.ExportMeta{
		ExportKey:   arch.MD5(),
		SourcePath:  path,
		ChatFile:    arch.ChatFile(),
		MD5:         arch.MD5(),
		DeviceOwner: resolveOwner(owner, cfg, result),
		Mtime:       fi.ModTime(),
		Size:        fi.Size(),
	}
	seen[meta.ExportKey] = struct{}{}

	if !force {
		needs, err := index.NeedsUpdate(db, meta)
		if err != nil {
			return "", err
		}
		if !needs {
			return "", nil
		}
	}

	if err := index.IndexExport(db, meta, result); err != nil {
		return "", err
	}
	fmt.Fprintf(os.Stderr, "  indexed %s (%d messages)\n", path, len(result.Messages))
	return meta.ExportKey, nil
}
