// Package interp implements the latent-space interpolation engine: linear
// blending of latent codes and color labels, the global camera azimuth ramp,
// and the frame sequencing with wrap-around back to the first shape.
// See docs/ARCHITECTURE.md § Interpolation.
package interp

import (
	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

// Weight returns the blend factor for step j of steps, j/(steps-1) as a
// floating-point division of the integer indices. Step 0 yields 0 and step
// steps-1 yields 1, so both endpoints are reproduced exactly.
func Weight(j, steps int) float64 {
	return float64(j) / float64(steps-1)
}

// Lerp blends two latent codes at step j of steps. The inputs must have
// equal length; the result is a*(1-t) + b*t with t = Weight(j, steps).
func Lerp(a, b vis.Latent, j, steps int) vis.Latent {
	t := Weight(j, steps)
	out := make(vis.Latent, len(a))
	for i := range a {
		out[i] = a[i]*(1-t) + b[i]*t
	}
	return out
}

// LerpColor blends two color labels with the same weighting as Lerp and
// scales the result by 0.5, dimming the intermediate frames.
func LerpColor(a, b vis.Color, j, steps int) vis.Color {
	t := Weight(j, steps)
	var out vis.Color
	for i := range out {
		out[i] = 0.5 * (a[i]*(1-t) + b[i]*t)
	}
	return out
}

// Azimuth returns the camera azimuth in degrees for the given global frame
// index. The sweep is one linear ramp over the whole sequence, from
// 90 - rangeDeg/2 at frame 0 to 90 + rangeDeg/2 at frame total-1.
func Azimuth(frame, total int, rangeDeg float64) float64 {
	start := 90 - rangeDeg/2
	if total <= 1 {
		return start
	}
	return start + rangeDeg*float64(frame)/float64(total-1)
}
