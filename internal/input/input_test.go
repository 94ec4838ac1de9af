package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/samdwyer/noisewalk/internal/world"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		dirs []Direction
		want world.Pos
	}{
		{"none", nil, world.Pos{}},
		{"up", []Direction{Up}, world.Pos{X: 0, Y: 1}},
		{"down", []Direction{Down}, world.Pos{X: 0, Y: -1}},
		{"left", []Direction{Left}, world.Pos{X: -1, Y: 0}},
		{"right", []Direction{Right}, world.Pos{X: 1, Y: 0}},
		{"up right", []Direction{Up, Right}, world.Pos{X: 1, Y: 1}},
		{"down left", []Direction{Down, Left}, world.Pos{X: -1, Y: -1}},
		{"opposites cancel", []Direction{Up, Down}, world.Pos{}},
		{"all four", []Direction{Up, Down, Left, Right}, world.Pos{}},
		{"three", []Direction{Up, Left, Right}, world.Pos{X: 0, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sum(NewPressed(tt.dirs...)))
		})
	}
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "unknown", Direction(42).String())
	assert.Equal(t, world.Pos{}, Direction(42).Vector())
}

func TestKeyboardHoldProducesOneEdge(t *testing.T) {
	for _, delay := range []time.Duration{0, 120 * time.Millisecond} {
		kb := NewKeyboard(delay, delay)
		now := time.Unix(0, 0)
		edges := 0

		for i := 0; i < 10; i++ {
			now = now.Add(16 * time.Millisecond)
			kb.Press(Up, now)
			if kb.Step(now).Has(Up) {
				edges++
			}
		}

		assert.Equal(t, 1, edges, "release delay %v", delay)
	}
}

// Terminals wait before the first auto-repeat, then repeat quickly.
func TestKeyboardTerminalRepeatSchedule(t *testing.T) {
	tests := []struct {
		name         string
		initialDelay time.Duration
		repeatEvery  time.Duration
	}{
		{"short delay", 250 * time.Millisecond, 33 * time.Millisecond},
		{"typical", 500 * time.Millisecond, 33 * time.Millisecond},
		{"long delay", 660 * time.Millisecond, 40 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyboard(700*time.Millisecond, 120*time.Millisecond)
			start := time.Unix(0, 0)
			step := 16 * time.Millisecond

			next := start
			edges := 0
			for now := start; now.Sub(start) < 1500*time.Millisecond; now = now.Add(step) {
				for !next.After(now) {
					kb.Press(Right, next)
					if next.Equal(start) {
						next = start.Add(tt.initialDelay)
					} else {
						next = next.Add(tt.repeatEvery)
					}
				}
				if kb.Step(now).Has(Right) {
					edges++
				}
			}

			assert.Equal(t, 1, edges)
		})
	}
}

func TestKeyboardRepeatGapStaysHeld(t *testing.T) {
	kb := NewKeyboard(700*time.Millisecond, 120*time.Millisecond)
	start := time.Unix(0, 0)

	kb.Press(Right, start)
	assert.True(t, kb.Step(start).Has(Right))

	// Auto-repeat leaves steps without an observation.
	for _, ms := range []int{16, 32, 48} {
		now := start.Add(time.Duration(ms) * time.Millisecond)
		if ms == 32 {
			kb.Press(Right, now)
		}
		assert.False(t, kb.Step(now).Has(Right), "step at %dms", ms)
	}
}

func TestKeyboardReleaseThenPress(t *testing.T) {
	tests := []struct {
		name  string
		quiet time.Duration
		taps  int // observations before going quiet
	}{
		{"single tap", 800 * time.Millisecond, 1},
		{"after repeats", 200 * time.Millisecond, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyboard(700*time.Millisecond, 120*time.Millisecond)
			now := time.Unix(0, 0)

			edges := 0
			for i := 0; i < tt.taps; i++ {
				kb.Press(Left, now)
				if kb.Step(now).Has(Left) {
					edges++
				}
				now = now.Add(30 * time.Millisecond)
			}
			assert.Equal(t, 1, edges)

			// Quiet long enough to count as released.
			now = now.Add(tt.quiet)
			assert.Equal(t, 0, kb.Step(now).Size())

			now = now.Add(16 * time.Millisecond)
			kb.Press(Left, now)
			assert.True(t, kb.Step(now).Has(Left))
		})
	}
}

func TestKeyboardFirstRepeatWindow(t *testing.T) {
	kb := NewKeyboard(700*time.Millisecond, 120*time.Millisecond)
	start := time.Unix(0, 0)

	kb.Press(Up, start)
	assert.True(t, kb.Step(start).Has(Up))

	// Past releaseAfter but inside firstRepeat: still held.
	kb.Press(Up, start.Add(400*time.Millisecond))
	assert.False(t, kb.Step(start.Add(400*time.Millisecond)).Has(Up))

	// Once repeating, the short window applies.
	now := start.Add(600 * time.Millisecond)
	assert.Equal(t, 0, kb.Step(now).Size())
	kb.Press(Up, now)
	assert.True(t, kb.Step(now).Has(Up), "press after a released repeat is a new edge")
}

func TestKeyboardExplicitRelease(t *testing.T) {
	kb := NewKeyboard(time.Hour, time.Hour)
	now := time.Unix(0, 0)

	kb.Press(Down, now)
	assert.True(t, kb.Step(now).Has(Down))

	kb.Release(Down)
	assert.False(t, kb.Step(now).Has(Down))

	kb.Press(Down, now)
	assert.True(t, kb.Step(now).Has(Down))
}

func TestKeyboardSimultaneousPresses(t *testing.T) {
	kb := NewKeyboard(0, 0)
	now := time.Unix(0, 0)

	kb.Press(Up, now)
	kb.Press(Right, now)
	p := kb.Step(now)

	assert.Equal(t, 2, p.Size())
	assert.Equal(t, world.Pos{X: 1, Y: 1}, Sum(p))
	assert.Equal(t, 0, kb.Step(now.Add(time.Second)).Size(), "pulses must not carry over")
}
