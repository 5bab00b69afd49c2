// Package autoencoder restores a trained point-cloud autoencoder from the
// weight export written by the training pipeline and exposes it through the
// typed vis.Codec interface.
//
// The upstream TensorFlow checkpoint is opaque outside that runtime; the
// training pipeline therefore exports the dense parameters alongside it as
// a meta/weights JSON pair (see docs/ARCHITECTURE.md § Checkpoint Export).
package autoencoder

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ECOLE-ITN/pcaeviz/internal/paths"
)

// Meta describes the trained network geometry.
type Meta struct {
	// PCSize is the point count every input cloud must have.
	PCSize int `json:"pc_size"`
	// LatentSize is the bottleneck length.
	LatentSize int `json:"latent_size"`
	// Variational marks the VAE variant. Its exported latent layer is the
	// mean head, so inference is deterministic either way.
	Variational bool `json:"variational"`
}

// Layer is one dense layer: out = activation(in*W + B).
// W is row-major, indexed [input][output].
type Layer struct {
	W          [][]float64 `json:"w"`
	B          []float64   `json:"b"`
	Activation string      `json:"activation"`
}

// Weights is the exported parameter set.
//
// The encoder applies PointLayers to every point independently, max-pools
// the features over all points, and maps the pooled vector through
// LatentLayer. The decoder maps the latent code through DecoderLayers; the
// last layer emits pc_size*3 values reshaped row-major to points.
type Weights struct {
	PointLayers   []Layer `json:"point_layers"`
	LatentLayer   Layer   `json:"latent_layer"`
	DecoderLayers []Layer `json:"decoder_layers"`
}

// Checkpoint bundles Meta and Weights after shape validation.
type Checkpoint struct {
	Meta    Meta
	Weights Weights
}

// LoadCheckpoint reads and validates the meta/weights pair for the given
// variant from the network directory.
func LoadCheckpoint(networkDir string, vae bool) (*Checkpoint, error) {
	var meta Meta
	if err := readJSON(paths.MetaFile(networkDir, vae), &meta); err != nil {
		return nil, err
	}
	var weights Weights
	if err := readJSON(paths.WeightsFile(networkDir, vae), &weights); err != nil {
		return nil, err
	}

	ckpt := &Checkpoint{Meta: meta, Weights: weights}
	if err := ckpt.validate(); err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", paths.WeightsFile(networkDir, vae), err)
	}
	return ckpt, nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read checkpoint artifact: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Checkpoint) validate() error {
	if c.Meta.PCSize <= 0 || c.Meta.LatentSize <= 0 {
		return fmt.Errorf("invalid meta: pc_size=%d latent_size=%d", c.Meta.PCSize, c.Meta.LatentSize)
	}
	if len(c.Weights.PointLayers) == 0 {
		return fmt.Errorf("no point layers")
	}
	if len(c.Weights.DecoderLayers) == 0 {
		return fmt.Errorf("no decoder layers")
	}

	// Per-point feature chain starts at the 3 input coordinates.
	width := 3
	for i, l := range c.Weights.PointLayers {
		w, err := layerWidth(l, width)
		if err != nil {
			return fmt.Errorf("point layer %d: %w", i, err)
		}
		width = w
	}
	width, err := layerWidth(c.Weights.LatentLayer, width)
	if err != nil {
		return fmt.Errorf("latent layer: %w", err)
	}
	if width != c.Meta.LatentSize {
		return fmt.Errorf("latent layer emits %d values, meta declares %d", width, c.Meta.LatentSize)
	}

	width = c.Meta.LatentSize
	for i, l := range c.Weights.DecoderLayers {
		w, err := layerWidth(l, width)
		if err != nil {
			return fmt.Errorf("decoder layer %d: %w", i, err)
		}
		width = w
	}
	if want := 3 * c.Meta.PCSize; width != want {
		return fmt.Errorf("decoder emits %d values, want %d (pc_size*3)", width, want)
	}
	return nil
}

// layerWidth checks the layer dimensions against the input width and
// returns the output width.
func layerWidth(l Layer, in int) (int, error) {
	if len(l.W) != in {
		return 0, fmt.Errorf("weight rows %d do not match input width %d", len(l.W), in)
	}
	out := len(l.B)
	if out == 0 {
		return 0, fmt.Errorf("empty bias")
	}
	for r, row := range l.W {
		if len(row) != out {
			return 0, fmt.Errorf("weight row %d has %d columns, bias has %d", r, len(row), out)
		}
	}
	if _, err := activation(l.Activation); err != nil {
		return 0, err
	}
	return out, nil
}
