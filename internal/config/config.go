// Package config holds the construction-time parameters of a run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/samdwyer/noisewalk/internal/noise"
	"github.com/samdwyer/noisewalk/internal/world"
)

// ErrInvalid is wrapped by every validation and parse error.
var ErrInvalid = errors.New("invalid config")

// Environment variable names.
const (
	envSeed           = "NOISEWALK_SEED"
	envNoiseScale     = "NOISEWALK_NOISE_SCALE"
	envNoiseBackend   = "NOISEWALK_NOISE_BACKEND"
	envGridSize       = "NOISEWALK_GRID_SIZE"
	envCellSize       = "NOISEWALK_CELL_SIZE"
	envRockThreshold  = "NOISEWALK_ROCK_THRESHOLD"
	envWaterThreshold = "NOISEWALK_WATER_THRESHOLD"
	envStepMS         = "NOISEWALK_STEP_MS"
	envKeyFirstMS     = "NOISEWALK_KEY_FIRST_REPEAT_MS"
	envKeyReleaseMS   = "NOISEWALK_KEY_RELEASE_MS"
	envLogLevel       = "NOISEWALK_LOG_LEVEL"
	envLogFile        = "NOISEWALK_LOG_FILE"
)

// Config holds the parameters of a single generation run and its frontend.
type Config struct {
	Seed           int64
	NoiseScale     float64
	NoiseBackend   string
	GridSize       int
	CellSize       float32 // world units per cell
	RockThreshold  float64
	WaterThreshold float64

	StepInterval   time.Duration // fixed update step
	KeyFirstRepeat time.Duration // hold window before the first auto-repeat
	KeyRelease     time.Duration // hold window between later repeats
	LogLevel       string
	LogFile        string // "-" or empty discards log output
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Seed:           12,
		NoiseScale:     10.3,
		NoiseBackend:   noise.BackendPerlin,
		GridSize:       world.DefaultGridSize,
		CellSize:       12,
		RockThreshold:  world.DefaultRockThreshold,
		WaterThreshold: world.DefaultWaterThreshold,
		StepInterval:   16 * time.Millisecond,
		KeyFirstRepeat: 700 * time.Millisecond,
		KeyRelease:     120 * time.Millisecond,
		LogLevel:       "info",
		LogFile:        "noisewalk.log",
	}
}

// Load reads optional .env files into the process environment and returns
// the defaults overlaid with any NOISEWALK_* variables. Missing files are
// skipped.
func Load(lookup func(string) (string, bool), files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(lookup)
}

// FromEnv returns the defaults overlaid with values found by lookup.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	p := parser{lookup: lookup}

	p.int64Var(envSeed, &cfg.Seed)
	p.floatVar(envNoiseScale, &cfg.NoiseScale)
	p.strVar(envNoiseBackend, &cfg.NoiseBackend)
	p.intVar(envGridSize, &cfg.GridSize)
	p.float32Var(envCellSize, &cfg.CellSize)
	p.floatVar(envRockThreshold, &cfg.RockThreshold)
	p.floatVar(envWaterThreshold, &cfg.WaterThreshold)
	p.millisVar(envStepMS, &cfg.StepInterval)
	p.millisVar(envKeyFirstMS, &cfg.KeyFirstRepeat)
	p.millisVar(envKeyReleaseMS, &cfg.KeyRelease)
	p.strVar(envLogLevel, &cfg.LogLevel)
	p.strVar(envLogFile, &cfg.LogFile)

	if p.err != nil {
		return nil, p.err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	switch {
	case c.GridSize <= 0:
		return fmt.Errorf("%w: grid size %d", ErrInvalid, c.GridSize)
	case c.NoiseScale <= 0:
		return fmt.Errorf("%w: noise scale %v", ErrInvalid, c.NoiseScale)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size %v", ErrInvalid, c.CellSize)
	case c.StepInterval <= 0:
		return fmt.Errorf("%w: step interval %v", ErrInvalid, c.StepInterval)
	case c.KeyFirstRepeat < 0:
		return fmt.Errorf("%w: key first repeat %v", ErrInvalid, c.KeyFirstRepeat)
	case c.KeyRelease < 0:
		return fmt.Errorf("%w: key release %v", ErrInvalid, c.KeyRelease)
	}

	if c.NoiseBackend != noise.BackendPerlin && c.NoiseBackend != noise.BackendSimplex {
		return fmt.Errorf("%w: noise backend %q", ErrInvalid, c.NoiseBackend)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// GenConfig returns the world generation parameters.
func (c *Config) GenConfig() world.GenConfig {
	return world.GenConfig{
		GridSize:       c.GridSize,
		RockThreshold:  c.RockThreshold,
		WaterThreshold: c.WaterThreshold,
	}
}

// parser keeps the first error so FromEnv reads as a flat list.
type parser struct {
	lookup func(string) (string, bool)
	err    error
}

func (p *parser) get(key string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (p *parser) fail(key, v string, err error) {
	p.err = fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, v, err)
}

func (p *parser) strVar(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) intVar(key string, dst *int) {
	if v, ok := p.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) int64Var(key string, dst *int64) {
	if v, ok := p.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (p *parser) floatVar(key string, dst *float64) {
	if v, ok := p.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (p *parser) float32Var(key string, dst *float32) {
	if v, ok := p.get(key); ok {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = float32(f)
	}
}

func (p *parser) millisVar(key string, dst *time.Duration) {
	if v, ok := p.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			p.fail(key, v, err)
			return
		}
		*dst = time.Duration(n) * time.Millisecond
	}
}
