package integration

import (
	"encoding/json"
	"fmt"
	"image/gif"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ECOLE-ITN/pcaeviz/internal/autoencoder"
	"github.com/ECOLE-ITN/pcaeviz/internal/paths"
	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

const (
	fixturePCSize     = 8
	fixtureLatentSize = 3
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "pcaeviz-integration")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	binaryPath, err = buildBinary(dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.RemoveAll(dir)
		os.Exit(1)
	}
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// fixtureCheckpoint is a linear passthrough network, small enough to be
// exact: identity point features, max-pool, and a decoder repeating the
// latent triple across all points.
func fixtureCheckpoint() *autoencoder.Checkpoint {
	identity := func(n int) [][]float64 {
		w := make([][]float64, n)
		for i := range w {
			w[i] = make([]float64, n)
			w[i][i] = 1
		}
		return w
	}
	repeat := make([][]float64, fixtureLatentSize)
	for i := range repeat {
		repeat[i] = make([]float64, 3*fixturePCSize)
		for p := 0; p < fixturePCSize; p++ {
			repeat[i][3*p+i] = 1
		}
	}
	return &autoencoder.Checkpoint{
		Meta: autoencoder.Meta{PCSize: fixturePCSize, LatentSize: fixtureLatentSize},
		Weights: autoencoder.Weights{
			PointLayers:   []autoencoder.Layer{{W: identity(3), B: make([]float64, 3), Activation: "linear"}},
			LatentLayer:   autoencoder.Layer{W: identity(3), B: make([]float64, 3), Activation: "linear"},
			DecoderLayers: []autoencoder.Layer{{W: repeat, B: make([]float64, 3*fixturePCSize), Activation: "linear"}},
		},
	}
}

// writeNetworkDir lays out a trained-network fixture directory with geometry
// lists, xyz files, normalization values and the exported checkpoint.
func writeNetworkDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	rng := rand.New(rand.NewSource(7))

	writeList := func(listName, prefix string, count int) {
		var rows string
		for i := 0; i < count; i++ {
			name := fmt.Sprintf("%s_%d.xyz", prefix, i)
			var body string
			for p := 0; p < 12; p++ {
				body += fmt.Sprintf("%f %f %f\n", rng.Float64()*4-2, rng.Float64()*4-2, rng.Float64()*4-2)
			}
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
			rows += name + "\n"
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, listName), []byte(rows), 0o644))
	}
	writeList(paths.TrainingListName, "train", 3)
	writeList(paths.TestingListName, "test", 3)

	require.NoError(t, os.WriteFile(filepath.Join(dir, paths.NormValuesName), []byte("2.0\n-2.0\n"), 0o644))
	require.NoError(t, autoencoder.WriteCheckpoint(dir, false, fixtureCheckpoint()))
	return dir
}

func interpolateArgs(networkDir string) []string {
	return []string{
		"interpolate",
		"--pc-size", strconv.Itoa(fixturePCSize),
		"--latent-size", strconv.Itoa(fixtureLatentSize),
		"--train-shapes", "2",
		"--test-shapes", "2",
		"--steps", "5",
		"--network-dir", networkDir,
	}
}

func TestInterpolateProducesArtifacts(t *testing.T) {
	dir := writeNetworkDir(t)
	out, err := runBinary(t.TempDir(), interpolateArgs(dir)...)
	require.NoError(t, err, out)

	outputDir := filepath.Join(dir, paths.OutputDirName)

	pngs, err := filepath.Glob(filepath.Join(outputDir, "PC_*_*.png"))
	require.NoError(t, err)
	assert.Len(t, pngs, 20)

	htmls, err := filepath.Glob(filepath.Join(outputDir, "PC_*_reconstruction.html"))
	require.NoError(t, err)
	assert.Len(t, htmls, 4)

	pcds, err := filepath.Glob(filepath.Join(outputDir, "PC_*_reconstruction.pcd"))
	require.NoError(t, err)
	assert.Len(t, pcds, 4)

	f, err := os.Open(filepath.Join(outputDir, paths.AnimationName))
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 20)

	assert.FileExists(t, filepath.Join(dir, paths.SelectionLogName))
}

func TestInterpolateJSONOutput(t *testing.T) {
	dir := writeNetworkDir(t)
	out, err := runBinary(t.TempDir(), append(interpolateArgs(dir), "--json")...)
	require.NoError(t, err, out)

	var res struct {
		RunID    string   `json:"run_id"`
		Frames   int      `json:"frames"`
		Overlays int      `json:"overlays"`
		Selected []string `json:"selected"`
		GIFPath  string   `json:"gif_path"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 20, res.Frames)
	assert.Equal(t, 4, res.Overlays)
	assert.Len(t, res.Selected, 4)
	assert.FileExists(t, res.GIFPath)
}

func TestRunsListsRecordedRun(t *testing.T) {
	dir := writeNetworkDir(t)
	out, err := runBinary(t.TempDir(), interpolateArgs(dir)...)
	require.NoError(t, err, out)

	out, err = runBinary(t.TempDir(), "runs", "--network-dir", dir, "--json")
	require.NoError(t, err, out)

	var runs []struct {
		ID         string `json:"id"`
		Experiment string `json:"experiment"`
		Frames     int    `json:"frames"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &runs), out)
	require.Len(t, runs, 1)
	assert.Equal(t, "pcae_N8_LR3", runs[0].Experiment)
	assert.Equal(t, 20, runs[0].Frames)
}

func TestInterpolateMissingNetworkDir(t *testing.T) {
	args := interpolateArgs(filepath.Join(t.TempDir(), "Network_pcae_N8_LR3"))
	_, err := runBinary(t.TempDir(), args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestInterpolateInvalidSteps(t *testing.T) {
	dir := writeNetworkDir(t)
	args := append(interpolateArgs(dir), "--steps", "1")
	_, err := runBinary(t.TempDir(), args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps")
}

func TestVersionCommand(t *testing.T) {
	out, err := runBinary(t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, vis.Version)
}
