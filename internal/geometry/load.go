// Package geometry loads, resamples and normalizes point clouds from the
// delimited text formats produced by the training pipeline.
// See docs/ARCHITECTURE.md § Geometry Loading.
package geometry

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/seqsense/pcgol/mat"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

// LoadList reads a geometry list file: one point-cloud file path per row,
// no header. Returns an error when the list is empty.
func LoadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geometry list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read geometry list %s: %w", path, err)
	}

	var names []string
	for _, rec := range records {
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
			continue
		}
		names = append(names, strings.TrimSpace(rec[0]))
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("geometry list %s is empty", path)
	}
	return names, nil
}

// LoadXYZ reads a whitespace-delimited point file. The first three columns
// of every non-empty row are taken as x, y, z; extra columns are ignored.
func LoadXYZ(path string) (vis.Cloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open point file: %w", err)
	}
	defer f.Close()

	var cloud vis.Cloud
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s:%d: expected at least 3 columns, got %d", path, line, len(fields))
		}
		var p mat.Vec3
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: column %d: %w", path, line, i+1, err)
			}
			p[i] = float32(v)
		}
		cloud = append(cloud, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read point file %s: %w", path, err)
	}
	if len(cloud) == 0 {
		return nil, fmt.Errorf("point file %s holds no points", path)
	}
	return cloud, nil
}

// WriteSelectionLog records the geometry file names chosen for a run, one
// per row, so reconstructions can be traced back to their source shapes.
func WriteSelectionLog(path string, names []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create selection log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, name := range names {
		if err := w.Write([]string{name}); err != nil {
			return fmt.Errorf("write selection log: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
