package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/anthonynsimon/bild/transform"
)

// DefaultFrameDelay is the per-frame delay in hundredths of a second,
// matching the upstream 0.4 s animation cadence.
const DefaultFrameDelay = 40

// AssembleGIF encodes the rendered frames into a looping animation at
// path. Frames are downscaled to half resolution before quantization to
// keep the file small; delay is in hundredths of a second.
func AssembleGIF(path string, frames []image.Image, delay int) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to assemble")
	}
	if delay <= 0 {
		delay = DefaultFrameDelay
	}

	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		b := frame.Bounds()
		small := transform.Resize(frame, b.Dx()/2, b.Dy()/2, transform.Linear)

		pal := image.NewPaletted(small.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, small.Bounds(), small, image.Point{})
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create animation %s: %w", path, err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("encode animation %s: %w", path, err)
	}
	return nil
}
