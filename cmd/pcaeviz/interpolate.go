// Interpolate command: the main visualization sweep.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ECOLE-ITN/pcaeviz/internal/pipeline"
)

var interpolateCmd = &cobra.Command{
	Use:   "interpolate",
	Short: "Encode sampled shapes, interpolate the latent space and render the animation",
	Long: `Interpolate samples shapes from the training and test geometry lists,
encodes them with the trained autoencoder, linearly interpolates between
consecutive latent codes (wrapping back to the first shape) and renders
every step as a PNG frame. Step 0 of each shape additionally produces an
interactive HTML overlay of the original against its reconstruction and a
PCD snapshot. All frames are assembled into interpolation.gif.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		res, err := pipeline.Run(cfg, logger)
		if err != nil {
			return err
		}

		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}
		fmt.Printf("run %s: %d frames, %d overlays\n", res.RunID, res.Frames, res.Overlays)
		fmt.Printf("animation: %s\n", res.GIFPath)
		return nil
	},
}

func init() {
	addRunFlags(interpolateCmd)
}
