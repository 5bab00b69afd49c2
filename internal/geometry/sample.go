package geometry

import (
	"fmt"
	"math/rand"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

// SelectIndices draws count distinct indices from [0, total) using the
// given random source. The caller seeds rng explicitly so the shape
// selection is repeatable.
func SelectIndices(total, count int, rng *rand.Rand) ([]int, error) {
	if count > total {
		return nil, fmt.Errorf("cannot select %d shapes from a list of %d", count, total)
	}
	perm := rng.Perm(total)
	idx := make([]int, count)
	copy(idx, perm[:count])
	return idx, nil
}

// Resample returns a cloud of exactly n points drawn from c. Clouds smaller
// than n are sampled with replacement, larger ones without, so the output
// length is always n. An empty input cloud is an error.
func Resample(c vis.Cloud, n int, rng *rand.Rand) (vis.Cloud, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("cannot resample an empty cloud")
	}
	out := make(vis.Cloud, n)
	if len(c) < n {
		for i := 0; i < n; i++ {
			out[i] = c[rng.Intn(len(c))]
		}
		return out, nil
	}
	perm := rng.Perm(len(c))
	for i := 0; i < n; i++ {
		out[i] = c[perm[i]]
	}
	return out, nil
}
