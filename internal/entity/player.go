// Package entity provides the controlled player entity.
package entity

import "github.com/samdwyer/noisewalk/internal/world"

// Player is the single controllable entity on the grid.
type Player struct {
	Pos    world.Pos // Current grid position
	Symbol rune      // Display symbol
}

// NewPlayer creates a player at the given position.
func NewPlayer(pos world.Pos) *Player {
	return &Player{
		Pos:    pos,
		Symbol: '@',
	}
}

// StartPos returns the center cell of a square grid.
func StartPos(gridSize int) world.Pos {
	return world.Pos{X: gridSize / 2, Y: gridSize / 2}
}

// MoveTo places the player at pos.
func (p *Player) MoveTo(pos world.Pos) {
	p.Pos = pos
}
