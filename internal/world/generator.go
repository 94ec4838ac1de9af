package world

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/noisewalk/internal/telemetry"
)

const (
	// DefaultGridSize is the width and height of the generated grid.
	DefaultGridSize = 64

	// Noise thresholds above which cover features are stacked on ground.
	DefaultRockThreshold  = 0.3
	DefaultWaterThreshold = 0.8
)

// Sampler is the noise source the generator reads.
type Sampler interface {
	Sample(x, y int) float64
}

// GenConfig holds world generation parameters.
type GenConfig struct {
	GridSize       int
	RockThreshold  float64
	WaterThreshold float64
}

// DefaultGenConfig returns the standard 64x64 configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		GridSize:       DefaultGridSize,
		RockThreshold:  DefaultRockThreshold,
		WaterThreshold: DefaultWaterThreshold,
	}
}

// Generator fills a WorldState from noise.
type Generator struct {
	noise Sampler
	cfg   GenConfig
	log   *log.Logger
}

// NewGenerator creates a generator. A nil logger discards output.
func NewGenerator(noise Sampler, cfg GenConfig, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Generator{
		noise: noise,
		cfg:   cfg,
		log:   logger.With("component", "worldgen"),
	}
}

// Generate classifies every cell of the grid, writing passability into
// ws.Tiles and returning the tile records in emission order.
//
// Cells above the water threshold also pass the rock test, so they get a
// rock record and then a water record on the same layer. The map keeps only
// the last write, which is Unpassable either way.
func (g *Generator) Generate(ctx context.Context, ws *WorldState) ([]TileRecord, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()
	size := g.cfg.GridSize
	records := make([]TileRecord, 0, size*size)
	var rocks, water int

	emit := func(pos Pos, layer int, f Feature) {
		records = append(records, TileRecord{
			ID:      len(records),
			Pos:     pos,
			Layer:   layer,
			Feature: f,
		})
	}

	for x := 0; x < size; x++ {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, err
		}

		for y := 0; y < size; y++ {
			pos := Pos{X: x, Y: y}

			emit(pos, LayerGround, FeatureGround)
			ws.Tiles.Insert(pos, FeatureGround.Kind())

			if g.noise.Sample(x, y) > g.cfg.RockThreshold {
				emit(pos, LayerCover, FeatureRock)
				ws.Tiles.Insert(pos, FeatureRock.Kind())
				rocks++
			}

			// Sampled again for the water test; the sampler is pure, so
			// this repeats the value used above.
			if g.noise.Sample(x, y) > g.cfg.WaterThreshold {
				emit(pos, LayerCover, FeatureWater)
				ws.Tiles.Insert(pos, FeatureWater.Kind())
				water++
			}
		}
	}

	elapsed := time.Since(startTime)
	span.SetAttributes(
		attribute.Int("world.grid_size", size),
		attribute.Int64("world.seed", ws.Seed),
		attribute.Int("world.records", len(records)),
		attribute.Int("world.rock_count", rocks),
		attribute.Int("world.water_count", water),
		attribute.Int64("world.generation_ms", elapsed.Milliseconds()),
	)
	g.log.Info("world generated",
		"size", size,
		"seed", ws.Seed,
		"rock", rocks,
		"water", water,
		"elapsed", elapsed,
	)

	return records, nil
}
