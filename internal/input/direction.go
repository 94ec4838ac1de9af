// Package input turns key presses into per-step direction pulses.
package input

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/noisewalk/internal/world"
)

// Direction is one of the four movement keys.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in a fixed order.
var Directions = []Direction{Up, Down, Left, Right}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Vector returns the unit grid offset. Up is +Y.
func (d Direction) Vector() world.Pos {
	switch d {
	case Up:
		return world.Pos{X: 0, Y: 1}
	case Down:
		return world.Pos{X: 0, Y: -1}
	case Left:
		return world.Pos{X: -1, Y: 0}
	case Right:
		return world.Pos{X: 1, Y: 0}
	default:
		return world.Pos{}
	}
}

// Pressed is the set of directions that went down during one step.
type Pressed = mapset.Set[Direction]

// NewPressed creates a pressed set holding dirs.
func NewPressed(dirs ...Direction) Pressed {
	p := mapset.New[Direction]()
	for _, d := range dirs {
		p.Put(d)
	}
	return p
}

// Sum adds the vectors of all pressed directions. Opposite keys cancel.
func Sum(p Pressed) world.Pos {
	var total world.Pos
	for _, d := range Directions {
		if p.Has(d) {
			total = total.Add(d.Vector())
		}
	}
	return total
}
