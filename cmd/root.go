// Package cmd holds the fieldmap command-line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/fieldmap/internal/app"
	"github.com/philipparndt/fieldmap/internal/logging"
	"github.com/philipparndt/fieldmap/version"
)

var (
	genCount int
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "fieldmap [layout-file]",
	Short: "Interactive viewer and editor for field layout documents",
	Long: `Fieldmap renders hierarchical field layouts (areas, blocks, planting rows
and point markers) on a pannable, zoomable canvas. Shapes can be selected,
dragged and resized; viewport culling keeps large layouts responsive.

With a layout file argument the document is imported and re-imported
whenever it changes on disk. Without one, a synthetic layout is generated.`,
	Version: version.GetVersion(),
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		opts := app.Options{GenerateCount: genCount}
		if len(args) == 1 {
			opts.LayoutPath = args[0]
		}
		return app.Run(opts)
	},
}

func init() {
	rootCmd.Flags().IntVar(&genCount, "count", 0,
		"synthetic shape count when no layout file is given (default 10000)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
	rootCmd.SilenceUsage = true
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
