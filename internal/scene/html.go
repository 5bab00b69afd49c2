// Package scene exports per-shape artifacts: the interactive HTML overlay
// of an original cloud against its reconstruction, and binary PCD snapshots
// of the reconstructed clouds.
// See docs/ARCHITECTURE.md § Scene Export.
package scene

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

// OverlayName returns the HTML overlay file name for shape i,
// PC_{i}_reconstruction.html.
func OverlayName(shape int) string {
	return fmt.Sprintf("PC_%d_reconstruction.html", shape)
}

// trace mirrors the plotly scatter3d trace layout.
type trace struct {
	X      []float32   `json:"x"`
	Y      []float32   `json:"y"`
	Z      []float32   `json:"z"`
	Mode   string      `json:"mode"`
	Type   string      `json:"type"`
	Marker traceMarker `json:"marker"`
}

type traceMarker struct {
	Size    float64    `json:"size"`
	Opacity float64    `json:"opacity"`
	Color   string     `json:"color"`
	Line    markerLine `json:"line"`
}

type markerLine struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

var overlayTmpl = template.Must(template.New("overlay").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<script src="https://cdn.plot.ly/plotly-2.32.0.min.js"></script>
</head>
<body>
<div id="scene"></div>
<script>
var data = {{.Data}};
var layout = {
  margin: {l: 0, r: 0, b: 0, t: 0},
  autosize: true,
  scene: {
    camera: {
      up: {x: 0, y: 0, z: 1},
      center: {x: 0, y: 0, z: 0},
      eye: {x: 0.01, y: 2.5, z: 0.01}
    },
    aspectmode: "data"
  }
};
Plotly.newPlot("scene", data, layout);
</script>
</body>
</html>
`))

// WriteOverlayHTML renders the original cloud (semi-transparent red, small
// markers) and its reconstruction (opaque blue, larger markers) into one
// self-contained scatter3d scene at path.
func WriteOverlayHTML(path string, original, reconstructed vis.Cloud) error {
	traces := []trace{
		cloudTrace(original, 7, 0.15, "rgb(255, 0, 0)"),
		cloudTrace(reconstructed, 10, 1, "rgb(0, 0, 255)"),
	}
	data, err := json.Marshal(traces)
	if err != nil {
		return fmt.Errorf("marshal scene traces: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create overlay %s: %w", path, err)
	}
	defer f.Close()

	err = overlayTmpl.Execute(f, struct{ Data template.JS }{Data: template.JS(data)})
	if err != nil {
		return fmt.Errorf("render overlay %s: %w", path, err)
	}
	return nil
}

func cloudTrace(c vis.Cloud, size, opacity float64, col string) trace {
	t := trace{
		X:    make([]float32, len(c)),
		Y:    make([]float32, len(c)),
		Z:    make([]float32, len(c)),
		Mode: "markers",
		Type: "scatter3d",
		Marker: traceMarker{
			Size:    size,
			Opacity: opacity,
			Color:   col,
			Line:    markerLine{Color: "rgb(255, 255, 255)", Width: 0.1},
		},
	}
	for i, p := range c {
		t.X[i] = p[0]
		t.Y[i] = p[1]
		t.Z[i] = p[2]
	}
	return t
}
