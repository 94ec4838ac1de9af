package gamedata

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/noisewalk/internal/world"
)

// paletteFile is the embedded palette definition.
const paletteFile = "terrain.json"

// GlyphDef describes how one kind of record is drawn.
type GlyphDef struct {
	ID    string `json:"id"`    // Feature id (e.g., "rock") or "player"
	Glyph string `json:"glyph"` // Single character for rendering
	Color string `json:"color"` // Hex color code (e.g., "#808080")
}

// GlyphRune returns the glyph as a rune for rendering.
func (g *GlyphDef) GlyphRune() rune {
	if len(g.Glyph) == 0 {
		return '?'
	}
	return rune(g.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (g *GlyphDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(g.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// PaletteFile represents the structure of terrain.json.
type PaletteFile struct {
	Features  []GlyphDef `json:"features"`
	Player    GlyphDef   `json:"player"`
	Highlight string     `json:"highlight"`
}

// Palette maps terrain features to their glyphs.
type Palette struct {
	features  map[string]*GlyphDef
	player    GlyphDef
	highlight tcell.Color
}

// NewPalette builds a palette, checking that every feature is defined.
func NewPalette(file PaletteFile) (*Palette, error) {
	highlight, err := ParseHexColor(file.Highlight)
	if err != nil {
		return nil, fmt.Errorf("highlight color: %w", err)
	}

	p := &Palette{
		features:  make(map[string]*GlyphDef, len(file.Features)),
		player:    file.Player,
		highlight: highlight,
	}
	for i := range file.Features {
		p.features[file.Features[i].ID] = &file.Features[i]
	}

	for _, f := range []world.Feature{world.FeatureGround, world.FeatureRock, world.FeatureWater} {
		if p.features[f.String()] == nil {
			return nil, fmt.Errorf("no palette entry for feature %q", f)
		}
	}
	return p, nil
}

// LoadPalette loads the palette from the embedded terrain.json.
func LoadPalette() (*Palette, error) {
	return LoadPaletteFrom(dataFS)
}

// LoadPaletteFrom loads terrain.json from fsys.
func LoadPaletteFrom(fsys fs.FS) (*Palette, error) {
	file, err := LoadFrom[PaletteFile](fsys, paletteFile)
	if err != nil {
		return nil, err
	}
	if len(file.Features) == 0 {
		return nil, errors.New("no features loaded from " + paletteFile)
	}
	return NewPalette(file)
}

// Feature returns the glyph for a terrain feature, or nil if unknown.
func (p *Palette) Feature(f world.Feature) *GlyphDef {
	return p.features[f.String()]
}

// Player returns the player glyph.
func (p *Palette) Player() *GlyphDef {
	return &p.player
}

// Highlight returns the hover highlight color.
func (p *Palette) Highlight() tcell.Color {
	return p.highlight
}
