package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seqsense/pcgol/pc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

func TestOverlayName(t *testing.T) {
	assert.Equal(t, "PC_0_reconstruction.html", OverlayName(0))
	assert.Equal(t, "PC_7_reconstruction.html", OverlayName(7))
}

func TestWriteOverlayHTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, OverlayName(0))

	original := vis.Cloud{{0.1, 0.2, 0.3}, {0.4, 0.5, 0.6}}
	reconstructed := vis.Cloud{{0.15, 0.25, 0.35}}
	require.NoError(t, WriteOverlayHTML(path, original, reconstructed))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(b)

	assert.Contains(t, html, "Plotly.newPlot")
	assert.Contains(t, html, "scatter3d")
	assert.Contains(t, html, "rgb(255, 0, 0)")
	assert.Contains(t, html, "rgb(0, 0, 255)")
	// Both clouds' coordinates must be embedded.
	assert.Contains(t, html, "0.1")
	assert.Contains(t, html, "0.35")
	assert.Contains(t, html, `aspectmode: "data"`)
}

func TestWritePCDRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, PCDName(2))

	cloud := vis.Cloud{{0.1, 0.2, 0.3}, {0.9, 0.8, 0.7}, {0.5, 0.5, 0.5}}
	require.NoError(t, WritePCD(path, cloud))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	pp, err := pc.Unmarshal(f)
	require.NoError(t, err)
	require.Equal(t, len(cloud), pp.Points)

	it, err := pp.Vec3Iterator()
	require.NoError(t, err)
	for i := range cloud {
		assert.Equal(t, cloud[i], it.Vec3(), "point %d", i)
		it.Incr()
	}
}

func TestPCDName(t *testing.T) {
	assert.True(t, strings.HasSuffix(PCDName(3), ".pcd"))
}
