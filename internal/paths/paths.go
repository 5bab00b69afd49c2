// Package paths resolves the trained-network artifact directory and the
// well-known file names inside it.
// See docs/ARCHITECTURE.md § Artifact Layout.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvNetworkDir overrides the network directory location.
const EnvNetworkDir = "PCAEVIZ_NETWORK_DIR"

// Artifact names inside the network directory, fixed by the training
// pipeline.
const (
	TrainingListName = "geometries_training.csv"
	TestingListName  = "geometries_testing.csv"
	NormValuesName   = "normvalues.csv"
	SelectionLogName = "geometries_reconstruction.csv"
	OutputDirName    = "point_cloud_interpolation"
	RunCatalogName   = "runs.db"
	AnimationName    = "interpolation.gif"
)

// NetworkDirName returns the conventional directory name for an experiment,
// Network_<experiment>.
func NetworkDirName(experiment string) string {
	return "Network_" + experiment
}

// ResolveNetworkDir returns the network directory following the precedence
// chain: flag > PCAEVIZ_NETWORK_DIR env > $(CWD)/Network_<experiment>.
// The directory must already exist: it is produced by the training pipeline
// and a missing directory aborts the run.
func ResolveNetworkDir(flag, experiment string) (string, error) {
	dir, err := candidateNetworkDir(flag, experiment)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("network directory %s does not exist", dir)
	}
	if err != nil {
		return "", fmt.Errorf("stat network directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("network path %s is not a directory", dir)
	}
	return dir, nil
}

func candidateNetworkDir(flag, experiment string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvNetworkDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, NetworkDirName(experiment)), nil
}

// EnsureOutputDir creates the frame output directory inside the network
// directory and returns its path.
func EnsureOutputDir(networkDir string) (string, error) {
	dir := filepath.Join(networkDir, OutputDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return dir, nil
}

// MetaFile returns the network metadata file path for the experiment
// variant (pcae.meta.json or vpcae.meta.json).
func MetaFile(networkDir string, vae bool) string {
	return filepath.Join(networkDir, variantBase(vae)+".meta.json")
}

// WeightsFile returns the exported-weights file path for the experiment
// variant (pcae.weights.json or vpcae.weights.json).
func WeightsFile(networkDir string, vae bool) string {
	return filepath.Join(networkDir, variantBase(vae)+".weights.json")
}

func variantBase(vae bool) string {
	if vae {
		return "vpcae"
	}
	return "pcae"
}
