package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

var debugFlag bool

// newLogger returns the diagnostic logger. Quiet by default; --debug turns
// on the development logger.
func newLogger() *zap.Logger {
	if debugFlag {
		l, err := zap.NewDevelopment()
		if err == nil {
			return l
		}
	}
	return zap.NewNop()
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "waex",
		Short:   "WhatsApp export toolkit - parse, classify, index, and search chat exports",
		Version: version,
	}

	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(indexCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
