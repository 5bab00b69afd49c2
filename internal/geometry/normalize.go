package geometry

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/seqsense/pcgol/mat"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

// Target interval the training pipeline normalizes into.
const (
	NormLo = 0.1
	NormHi = 0.9
)

// NormParams holds the dataset-wide coordinate extrema recorded at training
// time. A single scalar pair is used for all three axes so the aspect ratio
// of the shapes is preserved.
type NormParams struct {
	Max float64
	Min float64
}

// LoadNormParams reads normvalues.csv. The file stores the maximum first
// and the minimum second, either on one row or one value per row.
func LoadNormParams(path string) (NormParams, error) {
	f, err := os.Open(path)
	if err != nil {
		return NormParams{}, fmt.Errorf("open normalization values: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return NormParams{}, fmt.Errorf("read normalization values %s: %w", path, err)
	}

	var values []float64
	for _, rec := range records {
		for _, field := range rec {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return NormParams{}, fmt.Errorf("parse normalization value %q: %w", field, err)
			}
			values = append(values, v)
		}
	}
	if len(values) < 2 {
		return NormParams{}, fmt.Errorf("normalization file %s holds %d values, want 2", path, len(values))
	}
	p := NormParams{Max: values[0], Min: values[1]}
	if p.Max <= p.Min {
		return NormParams{}, fmt.Errorf("degenerate normalization interval [%v, %v]", p.Min, p.Max)
	}
	return p, nil
}

// Normalize maps every coordinate of c from [p.Min, p.Max] to [lo, hi].
// The recorded minimum maps to lo exactly and the maximum to hi exactly.
func (p NormParams) Normalize(c vis.Cloud, lo, hi float64) vis.Cloud {
	scale := (hi - lo) / (p.Max - p.Min)
	out := make(vis.Cloud, len(c))
	for i, v := range c {
		var w mat.Vec3
		for k := 0; k < 3; k++ {
			w[k] = float32((float64(v[k])-p.Min)*scale + lo)
		}
		out[i] = w
	}
	return out
}

// NormalizeAll applies Normalize to every cloud of the batch.
func (p NormParams) NormalizeAll(clouds []vis.Cloud, lo, hi float64) []vis.Cloud {
	out := make([]vis.Cloud, len(clouds))
	for i, c := range clouds {
		out[i] = p.Normalize(c, lo, hi)
	}
	return out
}
