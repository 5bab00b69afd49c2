package vis

import (
	"errors"
	"fmt"
)

// Config holds the parameters of one visualization run.
// Zero values are invalid for the required fields; Validate reports which.
type Config struct {
	// PCSize is the point count N the autoencoder was trained with.
	PCSize int `json:"pc_size" yaml:"pc_size"`
	// LatentSize is the trained bottleneck length.
	LatentSize int `json:"latent_size" yaml:"latent_size"`
	// Device is the GPU index exported as CUDA_VISIBLE_DEVICES for external
	// runtimes. The native codec runs on CPU and only logs it.
	Device int `json:"device" yaml:"device"`
	// VAE selects the variational network artifacts (vpcae.*).
	VAE bool `json:"vae" yaml:"vae"`

	// TrainShapes and TestShapes are how many shapes to sample from each
	// geometry list.
	TrainShapes int `json:"train_shapes" yaml:"train_shapes"`
	TestShapes  int `json:"test_shapes" yaml:"test_shapes"`
	// Steps is the interpolation step count per shape pair. Must be >= 2 so
	// both endpoints are emitted exactly.
	Steps int `json:"steps" yaml:"steps"`
	// AzimuthRange is the total camera sweep in degrees across all frames.
	AzimuthRange float64 `json:"azimuth_range" yaml:"azimuth_range"`

	// NetworkDir overrides the trained-network artifact directory.
	// Empty means $(CWD)/Network_<experiment>.
	NetworkDir string `json:"network_dir" yaml:"network_dir"`
	// Seed feeds the run's random source. Fixed default keeps shape
	// selection repeatable across invocations.
	Seed int64 `json:"seed" yaml:"seed"`
}

// Defaults matching the upstream experiment constants.
const (
	DefaultTrainShapes  = 5
	DefaultTestShapes   = 5
	DefaultSteps        = 5
	DefaultAzimuthRange = 180.0
	DefaultSeed         = 0
)

// Config validation errors.
var (
	ErrPCSizeInvalid       = errors.New("pc-size must be positive")
	ErrLatentSizeInvalid   = errors.New("latent-size must be positive")
	ErrStepsInvalid        = errors.New("steps must be at least 2")
	ErrShapeCountInvalid   = errors.New("shape counts must not be negative")
	ErrNoShapes            = errors.New("at least one shape must be selected")
	ErrAzimuthRangeInvalid = errors.New("azimuth range must not be negative")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.PCSize <= 0 {
		return ErrPCSizeInvalid
	}
	if c.LatentSize <= 0 {
		return ErrLatentSizeInvalid
	}
	if c.Steps < 2 {
		return ErrStepsInvalid
	}
	if c.TrainShapes < 0 || c.TestShapes < 0 {
		return ErrShapeCountInvalid
	}
	if c.TrainShapes+c.TestShapes == 0 {
		return ErrNoShapes
	}
	if c.AzimuthRange < 0 {
		return ErrAzimuthRangeInvalid
	}
	return nil
}

// ExperimentName returns the upstream experiment identifier,
// pcae_N{N}_LR{L}, prefixed with v_ for the variational variant.
func (c Config) ExperimentName() string {
	name := fmt.Sprintf("pcae_N%d_LR%d", c.PCSize, c.LatentSize)
	if c.VAE {
		name = "v_" + name
	}
	return name
}
