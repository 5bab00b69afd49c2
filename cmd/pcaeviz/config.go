// Config loading for the pcaeviz CLI: viper-backed YAML file with flag
// overrides, precedence flag > config file > default.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

const (
	configFileName = "pcaeviz"
	configFileType = "yaml"

	cfgKeyPCSize       = "pc_size"
	cfgKeyLatentSize   = "latent_size"
	cfgKeyDevice       = "device"
	cfgKeyVAE          = "vae"
	cfgKeyTrainShapes  = "train_shapes"
	cfgKeyTestShapes   = "test_shapes"
	cfgKeySteps        = "steps"
	cfgKeyAzimuthRange = "azimuth_range"
	cfgKeyNetworkDir   = "network_dir"
	cfgKeySeed         = "seed"
)

// loadConfig builds the run configuration from defaults, an optional
// pcaeviz.yaml and the command's flags, in ascending precedence.
func loadConfig(cmd *cobra.Command) (vis.Config, error) {
	v := viper.New()
	v.SetDefault(cfgKeyTrainShapes, vis.DefaultTrainShapes)
	v.SetDefault(cfgKeyTestShapes, vis.DefaultTestShapes)
	v.SetDefault(cfgKeySteps, vis.DefaultSteps)
	v.SetDefault(cfgKeyAzimuthRange, vis.DefaultAzimuthRange)
	v.SetDefault(cfgKeySeed, vis.DefaultSeed)

	if flagConfigFile != "" {
		v.SetConfigFile(flagConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return vis.Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// A missing default config file is not an error.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return vis.Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Flags win over the config file.
	bindings := map[string]string{
		cfgKeyPCSize:       "pc-size",
		cfgKeyLatentSize:   "latent-size",
		cfgKeyDevice:       "device",
		cfgKeyVAE:          "vae",
		cfgKeyTrainShapes:  "train-shapes",
		cfgKeyTestShapes:   "test-shapes",
		cfgKeySteps:        "steps",
		cfgKeyAzimuthRange: "azimuth-range",
		cfgKeyNetworkDir:   "network-dir",
		cfgKeySeed:         "seed",
	}
	for key, flag := range bindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return vis.Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	cfg := vis.Config{
		PCSize:       v.GetInt(cfgKeyPCSize),
		LatentSize:   v.GetInt(cfgKeyLatentSize),
		Device:       v.GetInt(cfgKeyDevice),
		VAE:          v.GetBool(cfgKeyVAE),
		TrainShapes:  v.GetInt(cfgKeyTrainShapes),
		TestShapes:   v.GetInt(cfgKeyTestShapes),
		Steps:        v.GetInt(cfgKeySteps),
		AzimuthRange: v.GetFloat64(cfgKeyAzimuthRange),
		NetworkDir:   v.GetString(cfgKeyNetworkDir),
		Seed:         v.GetInt64(cfgKeySeed),
	}
	return cfg, nil
}

// addRunFlags registers the run-parameter flags shared by the commands
// that need a resolved configuration.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("pc-size", "N", 0, "point cloud size N the network was trained with (required)")
	cmd.Flags().Int("latent-size", 0, "number of latent variables (required)")
	cmd.Flags().Int("device", 0, "GPU index exported as CUDA_VISIBLE_DEVICES")
	cmd.Flags().Bool("vae", false, "use the variational autoencoder artifacts")
	cmd.Flags().Int("train-shapes", vis.DefaultTrainShapes, "shapes sampled from the training set")
	cmd.Flags().Int("test-shapes", vis.DefaultTestShapes, "shapes sampled from the test set")
	cmd.Flags().Int("steps", vis.DefaultSteps, "interpolation steps between consecutive shapes")
	cmd.Flags().Float64("azimuth-range", vis.DefaultAzimuthRange, "total camera azimuth sweep in degrees")
	cmd.Flags().String("network-dir", "", "trained network directory (default: $(CWD)/Network_<experiment>)")
	cmd.Flags().Int64("seed", vis.DefaultSeed, "random seed for shape selection")
}
