// Package movement moves the player one cell per press against the tile map.
package movement

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/noisewalk/internal/entity"
	"github.com/samdwyer/noisewalk/internal/input"
	"github.com/samdwyer/noisewalk/internal/telemetry"
	"github.com/samdwyer/noisewalk/internal/world"
)

// Passability answers whether a cell can be entered.
type Passability interface {
	IsPassable(pos world.Pos) bool
}

// Moved reports a committed move.
type Moved struct {
	From  world.Pos
	To    world.Pos
	World world.Vec2 // To in world space
}

// Controller validates and applies player moves. It never writes to the map.
type Controller struct {
	player   *entity.Player
	tiles    Passability
	cellSize float32
	log      *log.Logger
}

// NewController creates a controller for player. A nil logger discards output.
func NewController(player *entity.Player, tiles Passability, cellSize float32, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		player:   player,
		tiles:    tiles,
		cellSize: cellSize,
		log:      logger.With("component", "movement"),
	}
}

// Position returns the player's grid position.
func (c *Controller) Position() world.Pos {
	if c.player == nil {
		return world.Pos{}
	}
	return c.player.Pos
}

// Step applies one step of pressed directions. All pressed directions are
// summed into a single offset, so up+right moves diagonally; a diagonal is
// judged only by the target cell. It returns false when nothing moved: no
// player, no net direction, or a blocked target.
func (c *Controller) Step(ctx context.Context, pressed input.Pressed) (Moved, bool) {
	if c.player == nil {
		return Moved{}, false
	}

	dir := input.Sum(pressed)
	if dir.IsZero() {
		return Moved{}, false
	}

	tracer := telemetry.Tracer("movement")
	_, span := tracer.Start(ctx, "movement.step")
	defer span.End()

	from := c.player.Pos
	target := from.Add(dir)
	ok := c.tiles.IsPassable(target)

	span.SetAttributes(
		attribute.Int("move.dx", dir.X),
		attribute.Int("move.dy", dir.Y),
		attribute.Int("move.target_x", target.X),
		attribute.Int("move.target_y", target.Y),
		attribute.Bool("move.accepted", ok),
	)

	if !ok {
		c.log.Debug("move blocked", "from", from, "target", target)
		return Moved{}, false
	}

	c.player.MoveTo(target)
	return Moved{
		From:  from,
		To:    target,
		World: world.ToWorld(target, c.cellSize),
	}, true
}
