package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/noisewalk/internal/entity"
	"github.com/samdwyer/noisewalk/internal/gamedata"
	"github.com/samdwyer/noisewalk/internal/world"
)

// statusLines is the number of rows kept free below the map.
const statusLines = 2

// viewport maps world cells to screen cells. World +Y points up the screen.
type viewport struct {
	left, top     int // world X at column 0, world Y at row 0
	width, height int
}

// centeredOn returns a viewport of the given size centered on p.
func centeredOn(p world.Pos, width, height int) viewport {
	return viewport{
		left:   p.X - width/2,
		top:    p.Y + height/2,
		width:  width,
		height: height,
	}
}

func (v viewport) toScreen(p world.Pos) (col, row int, ok bool) {
	col, row = p.X-v.left, v.top-p.Y
	ok = col >= 0 && col < v.width && row >= 0 && row < v.height
	return col, row, ok
}

func (v viewport) toWorld(col, row int) (world.Pos, bool) {
	if col < 0 || col >= v.width || row < 0 || row >= v.height {
		return world.Pos{}, false
	}
	return world.Pos{X: v.left + col, Y: v.top - row}, true
}

// pointer is the last screen cell reported by the mouse.
type pointer struct {
	col, row int
	ok       bool
}

// Renderer handles drawing the world to the screen.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
	top     map[world.Pos]world.TileRecord
	view    viewport
	hover   Hover
	pointer pointer
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	return &Renderer{
		screen:  screen,
		palette: palette,
		top:     make(map[world.Pos]world.TileRecord),
	}
}

// SetRecords stores the generated tile records. Only the topmost record per
// cell is kept: the higher layer, then the later emission.
func (r *Renderer) SetRecords(records []world.TileRecord) {
	clear(r.top)
	for _, rec := range records {
		cur, ok := r.top[rec.Pos]
		if !ok || rec.Layer > cur.Layer || (rec.Layer == cur.Layer && rec.ID > cur.ID) {
			r.top[rec.Pos] = rec
		}
	}
}

// TopAt returns the visible record at pos.
func (r *Renderer) TopAt(pos world.Pos) (world.TileRecord, bool) {
	rec, ok := r.top[pos]
	return rec, ok
}

// PointerAt moves the hover to the record under screen cell (col, row) and
// returns the resulting enter/leave events.
func (r *Renderer) PointerAt(col, row int) []HoverEvent {
	r.pointer = pointer{col: col, row: row, ok: true}
	return r.hoverUnderPointer()
}

func (r *Renderer) hoverUnderPointer() []HoverEvent {
	if !r.pointer.ok {
		return r.hover.Move(0, false)
	}
	pos, ok := r.view.toWorld(r.pointer.col, r.pointer.row)
	if !ok {
		return r.hover.Move(0, false)
	}
	rec, ok := r.top[pos]
	return r.hover.Move(rec.ID, ok)
}

// Render draws the visible part of the world centered on the player, then
// the player, then msg on the bottom line. The pointer stays on its screen
// cell while the view moves, so the hover events caused by re-centering are
// returned.
func (r *Renderer) Render(player *entity.Player, msg string) []HoverEvent {
	r.screen.Clear()

	width, height := r.screen.Size()
	center := world.Pos{}
	if player != nil {
		center = player.Pos
	}
	r.view = centeredOn(center, width, max(height-statusLines, 1))
	events := r.hoverUnderPointer()

	hovered, hovering := r.hover.Current()
	for row := 0; row < r.view.height; row++ {
		for col := 0; col < r.view.width; col++ {
			pos, _ := r.view.toWorld(col, row)
			rec, ok := r.top[pos]
			if !ok {
				continue
			}
			glyph := r.palette.Feature(rec.Feature)
			if glyph == nil {
				continue
			}
			style := tcell.StyleDefault.Foreground(glyph.TCellColor())
			if hovering && rec.ID == hovered {
				style = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(r.palette.Highlight())
			}
			r.screen.SetContent(col, row, glyph.GlyphRune(), style)
		}
	}

	if player != nil {
		if col, row, ok := r.view.toScreen(player.Pos); ok {
			style := tcell.StyleDefault.
				Foreground(r.palette.Player().TCellColor()).
				Bold(true)
			r.screen.SetContent(col, row, player.Symbol, style)
		}
	}

	if msg != "" {
		r.RenderMessage(msg, height-1)
	}

	r.screen.Show()
	return events
}

// RenderMessage displays a message at the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
