// Package pipeline runs one end-to-end visualization sweep: shape
// selection, encoding, latent interpolation, frame rendering, scene export,
// GIF assembly and run bookkeeping. Execution is strictly sequential; any
// unrecoverable error aborts the run and leaves already-written frames on
// disk.
// See docs/ARCHITECTURE.md § Pipeline.
package pipeline

import (
	"fmt"
	"image"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ECOLE-ITN/pcaeviz/internal/autoencoder"
	"github.com/ECOLE-ITN/pcaeviz/internal/geometry"
	"github.com/ECOLE-ITN/pcaeviz/internal/interp"
	"github.com/ECOLE-ITN/pcaeviz/internal/paths"
	"github.com/ECOLE-ITN/pcaeviz/internal/render"
	"github.com/ECOLE-ITN/pcaeviz/internal/runcatalog"
	"github.com/ECOLE-ITN/pcaeviz/internal/scene"
	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

// Result summarizes a completed run.
type Result struct {
	RunID      string   `json:"run_id"`
	NetworkDir string   `json:"network_dir"`
	OutputDir  string   `json:"output_dir"`
	Selected   []string `json:"selected"`
	Frames     int      `json:"frames"`
	Overlays   int      `json:"overlays"`
	GIFPath    string   `json:"gif_path"`
}

// Run executes the full sweep for cfg. The caller owns the logger; all
// progress reporting goes through it.
func Run(cfg vis.Config, log zerolog.Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	experiment := cfg.ExperimentName()
	networkDir, err := paths.ResolveNetworkDir(cfg.NetworkDir, experiment)
	if err != nil {
		return nil, err
	}
	log.Info().Str("experiment", experiment).Str("network_dir", networkDir).Msg("starting interpolation run")

	// External runtimes pick the GPU up from the environment; the native
	// codec runs on CPU and only reports it.
	if err := os.Setenv("CUDA_VISIBLE_DEVICES", strconv.Itoa(cfg.Device)); err != nil {
		return nil, fmt.Errorf("export compute device: %w", err)
	}
	log.Debug().Int("device", cfg.Device).Msg("compute device exported")

	rng := rand.New(rand.NewSource(cfg.Seed))

	clouds, colors, selected, err := loadShapes(cfg, networkDir, rng)
	if err != nil {
		return nil, err
	}

	norm, err := geometry.LoadNormParams(filepath.Join(networkDir, paths.NormValuesName))
	if err != nil {
		return nil, err
	}
	clouds = norm.NormalizeAll(clouds, geometry.NormLo, geometry.NormHi)

	logPath := filepath.Join(networkDir, paths.SelectionLogName)
	if err := geometry.WriteSelectionLog(logPath, selected); err != nil {
		return nil, err
	}

	codec, err := autoencoder.Load(networkDir, cfg.VAE)
	if err != nil {
		return nil, err
	}
	defer codec.Close()
	if meta := codec.Meta(); meta.PCSize != cfg.PCSize || meta.LatentSize != cfg.LatentSize {
		return nil, fmt.Errorf("network trained with pc_size=%d latent_size=%d, run requested %d/%d",
			meta.PCSize, meta.LatentSize, cfg.PCSize, cfg.LatentSize)
	}

	latents, err := codec.EncodeAll(clouds)
	if err != nil {
		return nil, err
	}
	log.Info().Int("shapes", len(latents)).Msg("shapes encoded")

	seq, err := interp.NewSequence(latents, colors, clouds, cfg.Steps, cfg.AzimuthRange)
	if err != nil {
		return nil, err
	}

	outputDir, err := paths.EnsureOutputDir(networkDir)
	if err != nil {
		return nil, err
	}

	res := &Result{
		NetworkDir: networkDir,
		OutputDir:  outputDir,
		Selected:   selected,
	}
	frames := make([]image.Image, 0, seq.TotalFrames())
	err = seq.Walk(func(f interp.Frame) error {
		decoded, err := codec.Decode(f.Latent)
		if err != nil {
			return fmt.Errorf("decode frame %d: %w", f.Index, err)
		}

		if f.Step == 0 {
			overlay := filepath.Join(outputDir, scene.OverlayName(f.Shape))
			if err := scene.WriteOverlayHTML(overlay, seq.Cloud(f.Shape), decoded); err != nil {
				return err
			}
			if err := scene.WritePCD(filepath.Join(outputDir, scene.PCDName(f.Shape)), decoded); err != nil {
				return err
			}
			res.Overlays++
		}

		img := render.Frame(decoded, f.Azimuth, f.Color, render.Options{})
		if err := render.WritePNG(filepath.Join(outputDir, render.FrameName(f.Shape, f.Step)), img); err != nil {
			return err
		}
		frames = append(frames, img)
		res.Frames++

		log.Debug().
			Int("shape", f.Shape).
			Int("step", f.Step).
			Float64("azimuth", f.Azimuth).
			Msg("frame rendered")
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.GIFPath = filepath.Join(outputDir, paths.AnimationName)
	if err := render.AssembleGIF(res.GIFPath, frames, render.DefaultFrameDelay); err != nil {
		return nil, err
	}
	log.Info().Int("frames", res.Frames).Str("gif", res.GIFPath).Msg("animation assembled")

	catalog, err := runcatalog.Open(networkDir)
	if err != nil {
		return nil, err
	}
	defer catalog.Close()
	res.RunID, err = catalog.Record(runcatalog.Run{
		Experiment: experiment,
		PCSize:     cfg.PCSize,
		LatentSize: cfg.LatentSize,
		Steps:      cfg.Steps,
		Shapes:     len(latents),
		Frames:     res.Frames,
		GIFPath:    res.GIFPath,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("run_id", res.RunID).Msg("run recorded")
	return res, nil
}

// loadShapes selects, loads and resamples the configured number of shapes
// from each geometry list. Training shapes come first and are labeled
// blue, test shapes red.
func loadShapes(cfg vis.Config, networkDir string, rng *rand.Rand) ([]vis.Cloud, []vis.Color, []string, error) {
	var (
		clouds   []vis.Cloud
		colors   []vis.Color
		selected []string
	)

	sets := []struct {
		list  string
		count int
		color vis.Color
	}{
		{paths.TrainingListName, cfg.TrainShapes, vis.ColorTraining},
		{paths.TestingListName, cfg.TestShapes, vis.ColorTest},
	}
	for _, set := range sets {
		if set.count == 0 {
			continue
		}
		names, err := geometry.LoadList(filepath.Join(networkDir, set.list))
		if err != nil {
			return nil, nil, nil, err
		}
		idx, err := geometry.SelectIndices(len(names), set.count, rng)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%s: %w", set.list, err)
		}
		for _, i := range idx {
			cloud, err := geometry.LoadXYZ(resolveGeometry(networkDir, names[i]))
			if err != nil {
				return nil, nil, nil, err
			}
			resampled, err := geometry.Resample(cloud, cfg.PCSize, rng)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("%s: %w", names[i], err)
			}
			clouds = append(clouds, resampled)
			colors = append(colors, set.color)
			selected = append(selected, names[i])
		}
	}
	return clouds, colors, selected, nil
}

// resolveGeometry resolves relative geometry paths against the network
// directory, so lists written by the training pipeline stay portable.
func resolveGeometry(networkDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(networkDir, name)
}
