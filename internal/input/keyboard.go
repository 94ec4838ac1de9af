package input

import "time"

// Keyboard converts key-down observations into press edges.
//
// Terminals report a key again on every auto-repeat and never report the
// release, so a key counts as held while observations keep arriving. The
// first repeat comes after the terminal's initial delay, which is much
// longer than the gap between later repeats, so a key that has only been
// seen once stays held for firstRepeat and afterwards for releaseAfter.
// A key produces a pulse only on the step where it goes from released to
// held.
type Keyboard struct {
	firstRepeat  time.Duration
	releaseAfter time.Duration
	lastSeen     map[Direction]time.Time
	repeats      map[Direction]int // observations since the key went down
	seen         map[Direction]bool
	held         map[Direction]bool
}

// NewKeyboard creates a keyboard with the given hold windows. Zero windows
// treat a key as released on any step without a fresh observation.
func NewKeyboard(firstRepeat, releaseAfter time.Duration) *Keyboard {
	return &Keyboard{
		firstRepeat:  firstRepeat,
		releaseAfter: releaseAfter,
		lastSeen:     make(map[Direction]time.Time),
		repeats:      make(map[Direction]int),
		seen:         make(map[Direction]bool),
		held:         make(map[Direction]bool),
	}
}

// Press records that d was observed down at the given time.
func (k *Keyboard) Press(d Direction, at time.Time) {
	if k.held[d] {
		k.repeats[d]++
	}
	k.lastSeen[d] = at
	k.seen[d] = true
}

// Release records an explicit key-up for sources that report one.
func (k *Keyboard) Release(d Direction) {
	delete(k.lastSeen, d)
	delete(k.repeats, d)
}

// Step ends the current step and returns the directions that were pressed
// during it. Observations are consumed; nothing carries into the next step
// except the held state.
func (k *Keyboard) Step(now time.Time) Pressed {
	pressed := NewPressed()

	for _, d := range Directions {
		down := k.seen[d]
		if !down {
			if at, ok := k.lastSeen[d]; ok && now.Sub(at) < k.window(d) {
				down = true
			}
		}

		if down && !k.held[d] {
			pressed.Put(d)
		}
		if !down {
			delete(k.repeats, d)
		}
		k.held[d] = down
	}

	clear(k.seen)
	return pressed
}

func (k *Keyboard) window(d Direction) time.Duration {
	if k.repeats[d] == 0 {
		return k.firstRepeat
	}
	return k.releaseAfter
}
