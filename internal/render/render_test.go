package render

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

func testCloud() vis.Cloud {
	// A small normalized cube-ish cloud around 0.5.
	return vis.Cloud{
		{0.1, 0.1, 0.1}, {0.9, 0.1, 0.1}, {0.1, 0.9, 0.1}, {0.1, 0.1, 0.9},
		{0.9, 0.9, 0.1}, {0.9, 0.1, 0.9}, {0.1, 0.9, 0.9}, {0.9, 0.9, 0.9},
		{0.5, 0.5, 0.5},
	}
}

func countNonWhite(img *image.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
				n++
			}
		}
	}
	return n
}

func TestFrameDimensionsAndBackground(t *testing.T) {
	img := Frame(nil, 90, vis.Color{0, 0, 0.5}, Options{Width: 64, Height: 48})
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
	assert.Zero(t, countNonWhite(img), "empty cloud renders a blank frame")
}

func TestFrameDrawsSplats(t *testing.T) {
	img := Frame(testCloud(), 45, vis.Color{0, 0, 0.5}, Options{Width: 128, Height: 96})
	assert.Greater(t, countNonWhite(img), 9, "splats must cover pixels")

	// All drawn pixels carry the requested color.
	want := color.RGBA{0, 0, clamp8(0.5), 0xff}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			got := img.RGBAAt(x, y)
			if got != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
				assert.Equal(t, want, got)
			}
		}
	}
}

func TestFrameDeterministic(t *testing.T) {
	a := Frame(testCloud(), 123.4, vis.Color{0.2, 0, 0.3}, Options{Width: 64, Height: 64})
	b := Frame(testCloud(), 123.4, vis.Color{0.2, 0, 0.3}, Options{Width: 64, Height: 64})
	assert.Equal(t, a.Pix, b.Pix)
}

func TestFrameAzimuthChangesView(t *testing.T) {
	// The cube fixture maps onto itself under 90-degree yaws, so an
	// asymmetric cloud is needed to observe the rotation.
	cloud := vis.Cloud{{0.5, 0.5, 0.5}, {0.9, 0.5, 0.5}, {0.5, 0.5, 0.9}}
	a := Frame(cloud, 0, vis.Color{0, 0, 0.5}, Options{Width: 64, Height: 64})
	b := Frame(cloud, 90, vis.Color{0, 0, 0.5}, Options{Width: 64, Height: 64})
	c := Frame(cloud, 37.5, vis.Color{0, 0, 0.5}, Options{Width: 64, Height: 64})
	assert.NotEqual(t, a.Pix, b.Pix)
	assert.NotEqual(t, a.Pix, c.Pix)
}

func TestFrameName(t *testing.T) {
	assert.Equal(t, "PC_00000_000.png", FrameName(0, 0))
	assert.Equal(t, "PC_00012_004.png", FrameName(12, 4))
}

func TestWritePNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FrameName(0, 0))
	img := Frame(testCloud(), 90, vis.Color{0, 0, 0.5}, Options{Width: 32, Height: 32})
	require.NoError(t, WritePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, decoded.Bounds().Dx())
}

func TestAssembleGIF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "interpolation.gif")

	var frames []image.Image
	for az := 0; az < 3; az++ {
		frames = append(frames, Frame(testCloud(), float64(az*60), vis.Color{0, 0, 0.5}, Options{Width: 64, Height: 64}))
	}
	require.NoError(t, AssembleGIF(path, frames, 40))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 3)
	assert.Equal(t, 0, anim.LoopCount)
	assert.Equal(t, []int{40, 40, 40}, anim.Delay)
	assert.Equal(t, 32, anim.Image[0].Bounds().Dx(), "frames are downscaled 2x")
}

func TestAssembleGIFEmpty(t *testing.T) {
	err := AssembleGIF(filepath.Join(t.TempDir(), "x.gif"), nil, 40)
	assert.Error(t, err)
}
