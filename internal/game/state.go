// Package game wires generation, movement and the terminal frontend into a
// fixed-step loop.
package game

// State represents the current game phase.
type State int

const (
	// StateGenerating is set until the whole grid has been generated.
	// Movement steps are ignored in this state.
	StateGenerating State = iota
	// StateExplore is the normal phase where the player moves.
	StateExplore
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateGenerating:
		return "generating"
	case StateExplore:
		return "explore"
	default:
		return "unknown"
	}
}
