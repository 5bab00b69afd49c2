// Runs command: list recorded visualization runs.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ECOLE-ITN/pcaeviz/internal/paths"
	"github.com/ECOLE-ITN/pcaeviz/internal/runcatalog"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded interpolation runs for an experiment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.NetworkDir == "" && (cfg.PCSize <= 0 || cfg.LatentSize <= 0) {
			return fmt.Errorf("either --network-dir or both --pc-size and --latent-size are required")
		}

		networkDir, err := paths.ResolveNetworkDir(cfg.NetworkDir, cfg.ExperimentName())
		if err != nil {
			return err
		}
		catalog, err := runcatalog.Open(networkDir)
		if err != nil {
			return err
		}
		defer catalog.Close()

		runs, err := catalog.List()
		if err != nil {
			return err
		}

		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(runs)
		}
		if len(runs) == 0 {
			fmt.Println("no runs recorded")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  shapes=%d steps=%d frames=%d  %s\n",
				r.CreatedAt.Format(time.RFC3339), r.Experiment, r.Shapes, r.Steps, r.Frames, r.ID)
		}
		return nil
	},
}

func init() {
	addRunFlags(runsCmd)
}
