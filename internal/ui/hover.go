package ui

// HoverEvent is a pointer entering or leaving a tile record.
type HoverEvent struct {
	ID      int
	Entered bool
}

// Hover tracks which tile record is under the pointer.
type Hover struct {
	id     int
	active bool
}

// Move points at record id, or at nothing when ok is false, and returns the
// leave/enter events the change produced, leave first.
func (h *Hover) Move(id int, ok bool) []HoverEvent {
	if ok == h.active && (!ok || id == h.id) {
		return nil
	}

	var events []HoverEvent
	if h.active {
		events = append(events, HoverEvent{ID: h.id, Entered: false})
	}
	if ok {
		events = append(events, HoverEvent{ID: id, Entered: true})
	}
	h.id, h.active = id, ok
	return events
}

// Current returns the hovered record id, if any.
func (h *Hover) Current() (int, bool) {
	return h.id, h.active
}
