// Root command for the pcaeviz CLI.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

// Global flag values.
var (
	flagConfigFile string
	flagVerbose    bool
	flagJSON       bool
)

// logger is the process-wide logger, configured by PersistentPreRun.
var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "pcaeviz",
	Short: "Latent-space interpolation visualizer for point-cloud autoencoders",
	Long: `pcaeviz loads a trained point-cloud autoencoder, encodes a selection of
training and test shapes, interpolates between consecutive latent codes and
renders the decoded shapes as PNG frames, interactive HTML overlays and an
animated GIF.`,
	Version: vis.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: pcaeviz.yaml in CWD)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(interpolateCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)
}
