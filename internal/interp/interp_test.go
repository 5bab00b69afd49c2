package interp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

const tol = 1e-12

func randomLatent(rng *rand.Rand, n int) vis.Latent {
	l := make(vis.Latent, n)
	for i := range l {
		l[i] = rng.NormFloat64()
	}
	return l
}

func TestLerpEndpoints(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, steps := range []int{2, 3, 5, 17} {
		a := randomLatent(rng, 32)
		b := randomLatent(rng, 32)

		first := Lerp(a, b, 0, steps)
		last := Lerp(a, b, steps-1, steps)
		for i := range a {
			assert.InDelta(t, a[i], first[i], tol, "steps=%d component %d at j=0", steps, i)
			assert.InDelta(t, b[i], last[i], tol, "steps=%d component %d at j=S-1", steps, i)
		}
	}
}

func TestLerpMidpoint(t *testing.T) {
	a := vis.Latent{0, 2, -4}
	b := vis.Latent{2, 0, 4}
	mid := Lerp(a, b, 1, 3)
	assert.InDelta(t, 1, mid[0], tol)
	assert.InDelta(t, 1, mid[1], tol)
	assert.InDelta(t, 0, mid[2], tol)
}

func TestLerpWeighting(t *testing.T) {
	// The weight must be the floating-point division j/(steps-1), not a
	// rounded step size accumulated per frame.
	a := vis.Latent{0}
	b := vis.Latent{1}
	steps := 7
	for j := 0; j < steps; j++ {
		got := Lerp(a, b, j, steps)
		assert.InDelta(t, float64(j)/float64(steps-1), got[0], tol)
	}
}

func TestLerpColorHalvesEndpoints(t *testing.T) {
	blue := vis.ColorTraining
	red := vis.ColorTest

	first := LerpColor(blue, red, 0, 5)
	last := LerpColor(blue, red, 4, 5)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 0.5*blue[i], first[i], tol)
		assert.InDelta(t, 0.5*red[i], last[i], tol)
	}
}

func TestAzimuthRampSpansRange(t *testing.T) {
	const total = 25
	const rangeDeg = 180.0

	assert.InDelta(t, 0, Azimuth(0, total, rangeDeg), tol)
	assert.InDelta(t, 180, Azimuth(total-1, total, rangeDeg), tol)

	prev := Azimuth(0, total, rangeDeg)
	for f := 1; f < total; f++ {
		az := Azimuth(f, total, rangeDeg)
		assert.GreaterOrEqual(t, az, prev, "azimuth must be non-decreasing")
		prev = az
	}
}

func TestAzimuthDegenerate(t *testing.T) {
	assert.InDelta(t, 45, Azimuth(0, 1, 90), tol)
	// Zero range pins the camera at 90 degrees.
	for f := 0; f < 5; f++ {
		assert.InDelta(t, 90, Azimuth(f, 5, 0), tol)
	}
}

func newTestSequence(t *testing.T, shapes, latentSize, steps int) *Sequence {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	latents := make([]vis.Latent, shapes)
	colors := make([]vis.Color, shapes)
	clouds := make([]vis.Cloud, shapes)
	for i := range latents {
		latents[i] = randomLatent(rng, latentSize)
		colors[i] = vis.ColorTest
		clouds[i] = vis.Cloud{{float32(i), 0, 0}}
	}
	colors[0] = vis.ColorTraining
	s, err := NewSequence(latents, colors, clouds, steps, 180)
	require.NoError(t, err)
	return s
}

func TestSequenceWrapAround(t *testing.T) {
	s := newTestSequence(t, 4, 16, 5)

	require.Equal(t, 4, s.Segments())
	require.Equal(t, 20, s.TotalFrames())

	// The last frame of the last segment must be one step short of the
	// first shape; the segment endpoint itself is the duplicated entry 0.
	last := s.Frame(3, 4)
	first := s.Frame(0, 0)
	for i := range first.Latent {
		assert.InDelta(t, first.Latent[i], last.Latent[i], tol)
	}
	for i := 0; i < 3; i++ {
		assert.InDelta(t, first.Color[i], last.Color[i], tol)
	}
}

func TestSequenceFrameCountAndAzimuth(t *testing.T) {
	// 2 training + 2 test shapes, 5 steps: the wrap-around entry adds no
	// extra segment, so (2+2+1)*5 collapses to 20 frames, and the final
	// frame reaches the upper azimuth bound.
	s := newTestSequence(t, 4, 8, 5)

	var frames []Frame
	err := s.Walk(func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, frames, 20)

	for i, f := range frames {
		assert.Equal(t, i, f.Index)
	}
	assert.InDelta(t, 90-90, frames[0].Azimuth, tol)
	assert.InDelta(t, 90+90, frames[len(frames)-1].Azimuth, tol)
}

func TestSequenceWalkStopsOnError(t *testing.T) {
	s := newTestSequence(t, 3, 4, 2)
	count := 0
	err := s.Walk(func(f Frame) error {
		count++
		if f.Index == 2 {
			return assert.AnError
		}
		return nil
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 3, count)
}

func TestNewSequenceValidation(t *testing.T) {
	l := []vis.Latent{{1}}
	c := []vis.Color{{1, 0, 0}}
	p := []vis.Cloud{{{0, 0, 0}}}

	_, err := NewSequence(nil, nil, nil, 5, 180)
	assert.ErrorIs(t, err, ErrNoEntries)

	_, err = NewSequence(l, c, p, 1, 180)
	assert.ErrorIs(t, err, ErrStepsTooFew)

	_, err = NewSequence(l, append(c, vis.Color{}), p, 5, 180)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}
