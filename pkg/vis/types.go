package vis

import (
	"errors"

	"github.com/seqsense/pcgol/mat"
)

// Cloud is an ordered point cloud. Every shape fed to the autoencoder must
// hold exactly the point count the network was trained with.
type Cloud []mat.Vec3

// Latent is the compressed representation of one shape, produced by the
// encoder bottleneck. Its length must match Config.LatentSize.
type Latent []float64

// Color is an RGB label in [0, 1] used only for rendering.
type Color [3]float64

// Shape category colors. Training shapes render blue, test shapes red,
// matching the upstream visualization convention.
var (
	ColorTraining = Color{0, 0, 1}
	ColorTest     = Color{1, 0, 0}
)

// Codec errors.
var (
	ErrCodecClosed = errors.New("codec is closed")
	ErrCloudSize   = errors.New("point cloud size does not match trained network")
	ErrLatentSize  = errors.New("latent size does not match trained network")
)

// Codec is the typed handle to a restored autoencoder. Implementations load
// the trained parameters once; Encode and Decode are then pure function
// evaluations. The handle is not safe for concurrent use and must be closed
// by the caller when the run finishes.
type Codec interface {
	// Encode maps a normalized point cloud to its latent code.
	// Returns ErrCloudSize if the cloud length differs from the trained
	// point count, ErrCodecClosed after Close.
	Encode(cloud Cloud) (Latent, error)

	// Decode maps a latent code back to Cartesian point coordinates.
	// Returns ErrLatentSize if the code length differs from the trained
	// bottleneck size, ErrCodecClosed after Close.
	Decode(latent Latent) (Cloud, error)

	// Close releases the restored parameters. Idempotent.
	Close() error
}

// Clone returns a deep copy of the cloud.
func (c Cloud) Clone() Cloud {
	out := make(Cloud, len(c))
	copy(out, c)
	return out
}

// Clone returns a copy of the latent code.
func (l Latent) Clone() Latent {
	out := make(Latent, len(l))
	copy(out, l)
	return out
}
