package interp

import (
	"errors"
	"fmt"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

// Sequence errors.
var (
	ErrNoEntries      = errors.New("sequence needs at least one shape")
	ErrStepsTooFew    = errors.New("sequence needs at least two steps per segment")
	ErrLengthMismatch = errors.New("latents, colors and clouds must have equal length")
)

// Sequence orders the selected shapes for interpolation. Entry n (the
// wrap-around) duplicates entry 0 so the animation morphs from the last
// shape back to the first and the sequence closes into a loop.
type Sequence struct {
	latents []vis.Latent
	colors  []vis.Color
	clouds  []vis.Cloud

	steps        int
	azimuthRange float64
}

// Frame is one interpolation step: the blended latent code and color label
// plus the camera azimuth for the global frame index.
type Frame struct {
	// Shape is the segment index (source shape), Step the position within
	// the segment, Index the global frame counter.
	Shape int
	Step  int
	Index int

	Latent  vis.Latent
	Color   vis.Color
	Azimuth float64
}

// NewSequence builds a Sequence over the selected shapes. The three slices
// are parallel (one entry per shape, wrap-around excluded) and steps is the
// per-segment frame count.
func NewSequence(latents []vis.Latent, colors []vis.Color, clouds []vis.Cloud, steps int, azimuthRange float64) (*Sequence, error) {
	if len(latents) == 0 {
		return nil, ErrNoEntries
	}
	if len(latents) != len(colors) || len(latents) != len(clouds) {
		return nil, fmt.Errorf("%w: %d latents, %d colors, %d clouds",
			ErrLengthMismatch, len(latents), len(colors), len(clouds))
	}
	if steps < 2 {
		return nil, ErrStepsTooFew
	}

	n := len(latents)
	s := &Sequence{
		latents:      make([]vis.Latent, n+1),
		colors:       make([]vis.Color, n+1),
		clouds:       make([]vis.Cloud, n+1),
		steps:        steps,
		azimuthRange: azimuthRange,
	}
	copy(s.latents, latents)
	copy(s.colors, colors)
	copy(s.clouds, clouds)
	// Wrap-around entry: the first shape again, latent, color and cloud
	// alike. The upstream script filled this slot with the last loaded
	// test cloud and a hardcoded training color, which was an off-by-one
	// artifact rather than intent; the loop closes on shape 0 here.
	s.latents[n] = latents[0].Clone()
	s.colors[n] = colors[0]
	s.clouds[n] = clouds[0].Clone()
	return s, nil
}

// Segments returns the number of interpolation segments (one per selected
// shape; the wrap-around entry only terminates the last segment).
func (s *Sequence) Segments() int {
	return len(s.latents) - 1
}

// Steps returns the frame count per segment.
func (s *Sequence) Steps() int {
	return s.steps
}

// TotalFrames returns Segments() * Steps().
func (s *Sequence) TotalFrames() int {
	return s.Segments() * s.steps
}

// Cloud returns the normalized input cloud of shape i, used for the
// original-versus-reconstruction overlay.
func (s *Sequence) Cloud(i int) vis.Cloud {
	return s.clouds[i]
}

// Frame computes the interpolation frame for segment shape and step within
// it. Latent and color are blended between the segment endpoints; the
// azimuth follows the single global ramp over all frames.
func (s *Sequence) Frame(shape, step int) Frame {
	idx := shape*s.steps + step
	return Frame{
		Shape:   shape,
		Step:    step,
		Index:   idx,
		Latent:  Lerp(s.latents[shape], s.latents[shape+1], step, s.steps),
		Color:   LerpColor(s.colors[shape], s.colors[shape+1], step, s.steps),
		Azimuth: Azimuth(idx, s.TotalFrames(), s.azimuthRange),
	}
}

// Walk visits every frame in order, shape-major then step, and stops at the
// first error. Rendering is strictly sequential, so a plain callback loop
// is the whole scheduling model.
func (s *Sequence) Walk(fn func(Frame) error) error {
	for i := 0; i < s.Segments(); i++ {
		for j := 0; j < s.steps; j++ {
			if err := fn(s.Frame(i, j)); err != nil {
				return err
			}
		}
	}
	return nil
}
