package movement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/noisewalk/internal/entity"
	"github.com/samdwyer/noisewalk/internal/input"
	"github.com/samdwyer/noisewalk/internal/world"
)

const cellSize = 12

// mapWith returns a tile map where only the given cells are passable.
func mapWith(open ...world.Pos) *world.TileMap {
	m := world.NewTileMap()
	for x := -2; x <= 4; x++ {
		for y := -2; y <= 4; y++ {
			m.Insert(world.Pos{X: x, Y: y}, world.Unpassable)
		}
	}
	for _, p := range open {
		m.Insert(p, world.Passable)
	}
	return m
}

func TestStepSingleDirections(t *testing.T) {
	origin := world.Pos{X: 1, Y: 1}
	tests := []struct {
		name string
		dir  input.Direction
		open []world.Pos
		want world.Pos
		ok   bool
	}{
		{"up open", input.Up, []world.Pos{{X: 1, Y: 2}}, world.Pos{X: 1, Y: 2}, true},
		{"down open", input.Down, []world.Pos{{X: 1, Y: 0}}, world.Pos{X: 1, Y: 0}, true},
		{"left open", input.Left, []world.Pos{{X: 0, Y: 1}}, world.Pos{X: 0, Y: 1}, true},
		{"right open", input.Right, []world.Pos{{X: 2, Y: 1}}, world.Pos{X: 2, Y: 1}, true},
		{"up blocked", input.Up, nil, origin, false},
		{"right blocked", input.Right, []world.Pos{{X: 1, Y: 2}}, origin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := entity.NewPlayer(origin)
			c := NewController(player, mapWith(append(tt.open, origin)...), cellSize, nil)

			moved, ok := c.Step(context.Background(), input.NewPressed(tt.dir))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, c.Position())
			if ok {
				assert.Equal(t, origin, moved.From)
				assert.Equal(t, tt.want, moved.To)
				assert.Equal(t, world.ToWorld(tt.want, cellSize), moved.World)
			} else {
				assert.Equal(t, Moved{}, moved, "blocked step must not emit a move")
			}
		})
	}
}

func TestStepDiagonalIgnoresOrthogonalBlockers(t *testing.T) {
	m := world.NewTileMap()
	m.Insert(world.Pos{X: 0, Y: 0}, world.Passable)
	m.Insert(world.Pos{X: 1, Y: 1}, world.Passable)
	m.Insert(world.Pos{X: 0, Y: 1}, world.Unpassable)
	m.Insert(world.Pos{X: 1, Y: 0}, world.Unpassable)

	c := NewController(entity.NewPlayer(world.Pos{}), m, cellSize, nil)
	moved, ok := c.Step(context.Background(), input.NewPressed(input.Up, input.Right))

	require.True(t, ok)
	assert.Equal(t, world.Pos{X: 1, Y: 1}, moved.To)
	assert.Equal(t, world.Vec2{X: 12, Y: 12}, moved.World)
	assert.Equal(t, world.Pos{X: 1, Y: 1}, c.Position())
}

func TestStepMissingCellIsBlocked(t *testing.T) {
	m := world.NewTileMap()
	m.Insert(world.Pos{}, world.Passable)

	c := NewController(entity.NewPlayer(world.Pos{}), m, cellSize, nil)
	for _, d := range input.Directions {
		_, ok := c.Step(context.Background(), input.NewPressed(d))
		assert.False(t, ok, "moved %v off the map", d)
	}
	assert.Equal(t, world.Pos{}, c.Position())
}

func TestStepNoDirectionIsNoop(t *testing.T) {
	c := NewController(entity.NewPlayer(world.Pos{}), mapWith(world.Pos{}, world.Pos{X: 0, Y: 1}), cellSize, nil)

	for _, pressed := range []input.Pressed{
		input.NewPressed(),
		input.NewPressed(input.Up, input.Down),
		input.NewPressed(input.Left, input.Right),
	} {
		_, ok := c.Step(context.Background(), pressed)
		assert.False(t, ok)
	}
	assert.Equal(t, world.Pos{}, c.Position())
}

func TestStepWithoutPlayer(t *testing.T) {
	c := NewController(nil, mapWith(world.Pos{X: 0, Y: 1}), cellSize, nil)

	_, ok := c.Step(context.Background(), input.NewPressed(input.Up))
	assert.False(t, ok)
	assert.Equal(t, world.Pos{}, c.Position())
}

func TestHeldKeyMovesOnce(t *testing.T) {
	var open []world.Pos
	for y := 0; y <= 4; y++ {
		open = append(open, world.Pos{X: 0, Y: y})
	}
	c := NewController(entity.NewPlayer(world.Pos{}), mapWith(open...), cellSize, nil)
	kb := input.NewKeyboard(700*time.Millisecond, 120*time.Millisecond)
	now := time.Unix(0, 0)

	moves := 0
	for i := 0; i < 8; i++ {
		now = now.Add(16 * time.Millisecond)
		kb.Press(input.Up, now)
		if _, ok := c.Step(context.Background(), kb.Step(now)); ok {
			moves++
		}
	}

	assert.Equal(t, 1, moves)
	assert.Equal(t, world.Pos{X: 0, Y: 1}, c.Position())
}

func TestStepSequence(t *testing.T) {
	open := []world.Pos{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}}
	c := NewController(entity.NewPlayer(world.Pos{}), mapWith(open...), cellSize, nil)
	ctx := context.Background()

	steps := []struct {
		dir  input.Direction
		want world.Pos
	}{
		{input.Right, world.Pos{X: 1, Y: 0}},
		{input.Up, world.Pos{X: 1, Y: 0}}, // blocked
		{input.Right, world.Pos{X: 2, Y: 0}},
		{input.Up, world.Pos{X: 2, Y: 1}},
		{input.Up, world.Pos{X: 2, Y: 1}}, // blocked
		{input.Down, world.Pos{X: 2, Y: 0}},
	}

	for i, s := range steps {
		c.Step(ctx, input.NewPressed(s.dir))
		assert.Equal(t, s.want, c.Position(), "after step %d (%v)", i, s.dir)
	}
}
