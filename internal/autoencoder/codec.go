package autoencoder

import (
	"fmt"
	"math"

	"github.com/seqsense/pcgol/mat"
	gmat "gonum.org/v1/gonum/mat"

	"github.com/ECOLE-ITN/pcaeviz/pkg/vis"
)

// Codec evaluates the restored autoencoder on CPU. It satisfies vis.Codec.
// Not safe for concurrent use; the visualization pipeline is sequential.
type Codec struct {
	meta Meta

	pointLayers   []denseLayer
	latentLayer   denseLayer
	decoderLayers []denseLayer

	closed bool
}

type denseLayer struct {
	w   *gmat.Dense // in×out
	b   []float64
	act func(float64) float64
}

// Load restores the codec for the experiment variant stored in networkDir.
func Load(networkDir string, vae bool) (*Codec, error) {
	ckpt, err := LoadCheckpoint(networkDir, vae)
	if err != nil {
		return nil, err
	}
	return New(ckpt)
}

// New builds a Codec from an already validated checkpoint.
func New(ckpt *Checkpoint) (*Codec, error) {
	c := &Codec{meta: ckpt.Meta}
	var err error
	if c.pointLayers, err = buildLayers(ckpt.Weights.PointLayers); err != nil {
		return nil, err
	}
	layers, err := buildLayers([]Layer{ckpt.Weights.LatentLayer})
	if err != nil {
		return nil, err
	}
	c.latentLayer = layers[0]
	if c.decoderLayers, err = buildLayers(ckpt.Weights.DecoderLayers); err != nil {
		return nil, err
	}
	return c, nil
}

// Meta returns the trained network geometry.
func (c *Codec) Meta() Meta {
	return c.meta
}

// Encode maps a normalized cloud of exactly pc_size points to its latent
// code: per-point dense layers, max-pool over points, latent projection.
func (c *Codec) Encode(cloud vis.Cloud) (vis.Latent, error) {
	if c.closed {
		return nil, vis.ErrCodecClosed
	}
	if len(cloud) != c.meta.PCSize {
		return nil, fmt.Errorf("%w: got %d points, trained with %d",
			vis.ErrCloudSize, len(cloud), c.meta.PCSize)
	}

	x := gmat.NewDense(len(cloud), 3, nil)
	for i, p := range cloud {
		x.Set(i, 0, float64(p[0]))
		x.Set(i, 1, float64(p[1]))
		x.Set(i, 2, float64(p[2]))
	}
	for _, l := range c.pointLayers {
		x = l.forward(x)
	}

	// Global max-pool over the point axis makes the code order-invariant.
	_, cols := x.Dims()
	pooled := gmat.NewDense(1, cols, nil)
	for j := 0; j < cols; j++ {
		best := math.Inf(-1)
		col := x.ColView(j)
		for i := 0; i < col.Len(); i++ {
			if v := col.AtVec(i); v > best {
				best = v
			}
		}
		pooled.Set(0, j, best)
	}

	out := c.latentLayer.forward(pooled)
	latent := make(vis.Latent, c.meta.LatentSize)
	for i := range latent {
		latent[i] = out.At(0, i)
	}
	return latent, nil
}

// EncodeAll encodes a batch of clouds sequentially.
func (c *Codec) EncodeAll(clouds []vis.Cloud) ([]vis.Latent, error) {
	out := make([]vis.Latent, len(clouds))
	for i, cloud := range clouds {
		latent, err := c.Encode(cloud)
		if err != nil {
			return nil, fmt.Errorf("encode shape %d: %w", i, err)
		}
		out[i] = latent
	}
	return out, nil
}

// Decode maps a latent code back to Cartesian coordinates. The decoder
// output is reshaped row-major into pc_size points.
func (c *Codec) Decode(latent vis.Latent) (vis.Cloud, error) {
	if c.closed {
		return nil, vis.ErrCodecClosed
	}
	if len(latent) != c.meta.LatentSize {
		return nil, fmt.Errorf("%w: got %d values, trained with %d",
			vis.ErrLatentSize, len(latent), c.meta.LatentSize)
	}

	x := gmat.NewDense(1, len(latent), []float64(latent))
	for _, l := range c.decoderLayers {
		x = l.forward(x)
	}

	cloud := make(vis.Cloud, c.meta.PCSize)
	for i := range cloud {
		cloud[i] = mat.Vec3{
			float32(x.At(0, 3*i)),
			float32(x.At(0, 3*i+1)),
			float32(x.At(0, 3*i+2)),
		}
	}
	return cloud, nil
}

// Close drops the restored parameters. Further Encode/Decode calls return
// ErrCodecClosed.
func (c *Codec) Close() error {
	c.pointLayers = nil
	c.decoderLayers = nil
	c.latentLayer = denseLayer{}
	c.closed = true
	return nil
}

func (l denseLayer) forward(x *gmat.Dense) *gmat.Dense {
	rows, _ := x.Dims()
	_, out := l.w.Dims()
	y := gmat.NewDense(rows, out, nil)
	y.Mul(x, l.w)
	for i := 0; i < rows; i++ {
		for j := 0; j < out; j++ {
			y.Set(i, j, l.act(y.At(i, j)+l.b[j]))
		}
	}
	return y
}

func buildLayers(layers []Layer) ([]denseLayer, error) {
	out := make([]denseLayer, len(layers))
	for i, l := range layers {
		act, err := activation(l.Activation)
		if err != nil {
			return nil, err
		}
		in := len(l.W)
		width := len(l.B)
		data := make([]float64, 0, in*width)
		for _, row := range l.W {
			data = append(data, row...)
		}
		out[i] = denseLayer{
			w:   gmat.NewDense(in, width, data),
			b:   l.B,
			act: act,
		}
	}
	return out, nil
}

// activation resolves a named activation function.
func activation(name string) (func(float64) float64, error) {
	switch name {
	case "relu":
		return func(v float64) float64 {
			if v < 0 {
				return 0
			}
			return v
		}, nil
	case "tanh":
		return math.Tanh, nil
	case "sigmoid":
		return func(v float64) float64 { return 1 / (1 + math.Exp(-v)) }, nil
	case "linear", "":
		return func(v float64) float64 { return v }, nil
	default:
		return nil, fmt.Errorf("unknown activation %q", name)
	}
}
