package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbeckmann/waex/internal/chat"
	"github.com/hbeckmann/waex/internal/config"
)

func statsCmd() *cobra.Command {
	var owner string
	var showMissing bool

	cmd := &cobra.Command{
		Use:   "stats <export>",
		Short: "Parse a chat export and print its statistics",
		Long: `Parses a WhatsApp chat export (zip archive, extracted directory, or bare
chat .txt) and prints message, sender, and media statistics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := newLogger()
			defer log.Sync()

			arch, result, err := openAndParse(cfg, args[0], log)
			if err != nil {
				return err
			}
			defer arch.Close()

			info, err := arch.Info()
			if err != nil {
				return err
			}

			fmt.Printf("Export: %s (%s, %d files, md5 %s, modified %s)\n",
				info.Name, chat.FormatBytes(info.SizeBytes), info.Files, info.MD5,
				info.ModTime.Format("2006-01-02 15:04"))
			fmt.Printf("Chat file: %s\n", arch.ChatFile())
			fmt.Printf("Device owner: %s\n", resolveOwner(owner, cfg, result))
			fmt.Printf("Members (%d): %s\n\n", len(result.Members), strings.Join(result.Members, ", "))

			printStatistics(result.Stats, showMissing)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Device owner name (default: most frequent sender)")
	cmd.Flags().BoolVar(&showMissing, "missing", false, "List missing and unclassifiable attachments")

	return cmd
}

func printStatistics(s *chat.Statistics, showMissing bool) {
	fmt.Printf("Messages: %d\n", s.TotalMessages)
	fmt.Printf("Edited: %d\n", s.EditedMessages)
	fmt.Printf("Multiframe media: %d\n", s.MultiframeCount)
	fmt.Printf("Missing attachments: %d\n", s.MissingAttachments)
	fmt.Printf("Media duration: %s\n", chat.FormatDuration(s.MediaDurationSeconds))

	fmt.Println("\nBy sender:")
	for _, sender := range s.Senders() {
		fmt.Printf("  %-24s %d\n", sender, s.MessagesBySender[sender])
	}

	fmt.Println("\nBy type:")
	for _, t := range s.Types() {
		line := fmt.Sprintf("  %-14s %d", t.String(), s.MessagesByType[t])
		if bytes := s.AttachmentBytes[t]; bytes > 0 {
			line += fmt.Sprintf("  (%s)", chat.FormatBytes(bytes))
		}
		fmt.Println(line)
	}

	if showMissing {
		if len(s.MissingFiles) > 0 {
			fmt.Println("\nMissing files:")
			for _, f := range s.MissingFiles {
				fmt.Printf("  %s\n", f)
			}
		}
		if len(s.UnknownContent) > 0 {
			fmt.Println("\nUnclassified attachments:")
			for _, f := range s.UnknownContent {
				fmt.Printf("  %s\n", f)
			}
		}
	} else if s.MissingAttachments > 0 {
		fmt.Fprintf(os.Stderr, "\nRun with --missing to list missing attachments.\n")
	}
}
