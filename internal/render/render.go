// Package render rasterizes point clouds into RGBA frames and assembles
// the animated sequence. A small software splat renderer is enough here:
// frames are static, low volume, and written straight to disk.
// See docs/ARCHITECTURE.md § Rendering.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sort"

	"github.com/seqsense/pcgol/mat"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

// Options control the frame geometry. Zero values fall back to defaults.
type Options struct {
	Width       int
	Height      int
	PointRadius int
	// ElevationDeg tilts the camera above the horizontal plane; the
	// default gives the isometric-like view of the upstream plots.
	ElevationDeg float64
	// WorldRadius is the world-space radius mapped onto the frame. Fixed
	// across frames so the animation does not rescale between steps.
	WorldRadius float64
}

// Defaults for Options.
const (
	DefaultWidth        = 640
	DefaultHeight       = 480
	DefaultPointRadius  = 3
	DefaultElevationDeg = 30
	DefaultWorldRadius  = 0.8
)

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.PointRadius <= 0 {
		o.PointRadius = DefaultPointRadius
	}
	if o.ElevationDeg == 0 {
		o.ElevationDeg = DefaultElevationDeg
	}
	if o.WorldRadius <= 0 {
		o.WorldRadius = DefaultWorldRadius
	}
	return o
}

// Frame renders the cloud on a white background, viewed from the given
// azimuth in degrees, with every splat drawn in the given color. Points are
// depth-sorted so nearer splats overdraw farther ones.
func Frame(cloud vis.Cloud, azimuthDeg float64, col vis.Color, opt Options) *image.RGBA {
	opt = opt.withDefaults()

	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	if len(cloud) == 0 {
		return img
	}

	centroid := centroid(cloud)
	rotated := make([]mat.Vec3, len(cloud))
	sinAz, cosAz := math.Sincos(azimuthDeg * math.Pi / 180)
	sinEl, cosEl := math.Sincos(opt.ElevationDeg * math.Pi / 180)
	for i, p := range cloud {
		v := p.Sub(centroid)
		// Yaw about the vertical (z) axis, then pitch the camera up.
		x := float64(v[0])*cosAz - float64(v[1])*sinAz
		y := float64(v[0])*sinAz + float64(v[1])*cosAz
		z := float64(v[2])
		rotated[i] = mat.Vec3{
			float32(x),
			float32(y*cosEl - z*sinEl),
			float32(y*sinEl + z*cosEl),
		}
	}

	// Far-to-near painter order along the depth axis.
	order := make([]int, len(rotated))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return rotated[order[a]][1] > rotated[order[b]][1]
	})

	scale := float64(min(opt.Width, opt.Height)) * 0.45 / opt.WorldRadius
	cx, cy := float64(opt.Width)/2, float64(opt.Height)/2
	c := color.RGBA{
		R: clamp8(col[0]),
		G: clamp8(col[1]),
		B: clamp8(col[2]),
		A: 0xff,
	}
	for _, i := range order {
		px := cx + float64(rotated[i][0])*scale
		py := cy - float64(rotated[i][2])*scale
		splat(img, int(math.Round(px)), int(math.Round(py)), opt.PointRadius, c)
	}
	return img
}

// WritePNG stores the frame at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode frame %s: %w", path, err)
	}
	return nil
}

// FrameName returns the frame file name for a shape/step pair,
// PC_%05d_%03d.png, matching the upstream naming so frames sort in
// animation order.
func FrameName(shape, step int) string {
	return fmt.Sprintf("PC_%05d_%03d.png", shape, step)
}

func centroid(cloud vis.Cloud) mat.Vec3 {
	var sum mat.Vec3
	for _, p := range cloud {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float32(len(cloud)))
}

func splat(img *image.RGBA, x, y, r int, c color.RGBA) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			img.SetRGBA(x+dx, y+dy, c)
		}
	}
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(math.Round(v * 255))
}
