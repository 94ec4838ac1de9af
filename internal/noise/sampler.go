// Package noise provides seeded coherent noise sampled on integer grids.
package noise

import (
	"errors"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Backend names accepted by New.
const (
	BackendPerlin  = "perlin"
	BackendSimplex = "simplex"
)

// Perlin parameters: alpha is the per-octave amplitude divisor, beta the
// frequency multiplier, octaves the number of summed layers.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
)

// perlinPeak is the largest magnitude of one go-perlin octave. Dividing by
// it puts the base octave in [-1, 1]; the summed octaves stay close to it.
const perlinPeak = math.Sqrt2 / 2

var (
	// ErrUnknownBackend is returned for a backend name New does not know.
	ErrUnknownBackend = errors.New("unknown noise backend")
	// ErrInvalidScale is returned for a non-positive scale.
	ErrInvalidScale = errors.New("noise scale must be positive")
)

// Sampler returns a noise value for an integer grid cell.
// Implementations are pure: the same cell always yields the same value.
type Sampler interface {
	Sample(x, y int) float64
	Seed() int64
}

// New creates a sampler for the named backend.
func New(backend string, seed int64, scale float64) (Sampler, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}

	switch backend {
	case BackendPerlin, "":
		return NewPerlin(seed, scale), nil
	case BackendSimplex:
		return NewSimplex(seed, scale), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Perlin samples multi-octave Perlin noise scaled to roughly [-1, 1].
type Perlin struct {
	noise *perlin.Perlin
	seed  int64
	scale float64
}

// NewPerlin creates a Perlin sampler. Cells are divided by scale before
// sampling, so larger scales give broader features.
func NewPerlin(seed int64, scale float64) *Perlin {
	return &Perlin{
		noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
		seed:  seed,
		scale: scale,
	}
}

// Sample returns the noise value at cell (x, y).
func (p *Perlin) Sample(x, y int) float64 {
	return p.noise.Noise2D(float64(x)/p.scale, float64(y)/p.scale) / perlinPeak
}

// Seed returns the construction seed.
func (p *Perlin) Seed() int64 {
	return p.seed
}

// Simplex samples OpenSimplex noise in [-1, 1].
type Simplex struct {
	noise opensimplex.Noise
	seed  int64
	scale float64
}

// NewSimplex creates an OpenSimplex sampler.
func NewSimplex(seed int64, scale float64) *Simplex {
	return &Simplex{
		noise: opensimplex.New(seed),
		seed:  seed,
		scale: scale,
	}
}

// Sample returns the noise value at cell (x, y).
func (s *Simplex) Sample(x, y int) float64 {
	return s.noise.Eval2(float64(x)/s.scale, float64(y)/s.scale)
}

// Seed returns the construction seed.
func (s *Simplex) Seed() int64 {
	return s.seed
}
