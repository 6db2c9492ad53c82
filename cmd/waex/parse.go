package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hbeckmann/waex/internal/chat"
	"github.com/hbeckmann/waex/internal/config"
	"github.com/hbeckmann/waex/internal/export"
	"github.com/hbeckmann/waex/internal/index"
	"github.com/hbeckmann/waex/internal/media"
)

// openAndParse runs the full pipeline for one export path: open the archive,
// parse the chat file, classify everything. The caller must Close the
// returned archive.
func openAndParse(cfg *config.Config, path string, log *zap.Logger) (*export.Archive, *chat.Result, error) {
	var openOpts []export.OpenOption
	openOpts = append(openOpts, export.WithLogger(log))
	if cfg.KeepExtracted {
		openOpts = append(openOpts, export.KeepExtracted())
	}

	arch, err := export.Open(path, openOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("open export: %w", err)
	}

	prober := media.Prober{FFProbe: media.FFProbe{Binary: cfg.FFProbePath, Log: log}}
	parser := chat.NewParser(arch, prober, media.TypeByExtension,
		chat.WithLogger(log),
		chat.WithEditMarkers(cfg.EditMarkers),
	)

	f, err := os.Open(arch.ChatFile())
	if err != nil {
		arch.Close()
		return nil, nil, fmt.Errorf("open chat file: %w", err)
	}
	defer f.Close()

	result, err := parser.Parse(f)
	if err != nil {
		arch.Close()
		return nil, nil, fmt.Errorf("parse chat: %w", err)
	}
	return arch, result, nil
}

// resolveOwner picks the device owner: flag beats config beats the
// most-frequent-sender guess.
func resolveOwner(flagOwner string, cfg *config.Config, result *chat.Result) string {
	if flagOwner != "" {
		return flagOwner
	}
	if cfg.DeviceOwner != "" {
		return cfg.DeviceOwner
	}
	return index.DeviceOwner(result)
}
