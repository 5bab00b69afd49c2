package autoencoder

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ECOLE-ITN/pcaeviz/internal/paths"
)

// WriteCheckpoint stores a meta/weights pair in the network directory. The
// training pipeline uses the same layout when exporting the TensorFlow
// parameters; here it backs fixtures and round-trip checks.
func WriteCheckpoint(networkDir string, vae bool, ckpt *Checkpoint) error {
	if err := ckpt.validate(); err != nil {
		return fmt.Errorf("refusing to write invalid checkpoint: %w", err)
	}
	if err := writeJSON(paths.MetaFile(networkDir, vae), ckpt.Meta); err != nil {
		return err
	}
	return writeJSON(paths.WeightsFile(networkDir, vae), ckpt.Weights)
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
