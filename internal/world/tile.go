// Package world provides terrain generation and passability lookup.
package world

// Pos is a grid coordinate. There is no bound on either axis; validity is
// decided by the TileMap.
type Pos struct {
	X, Y int
}

// Add returns p offset by d.
func (p Pos) Add(d Pos) Pos {
	return Pos{X: p.X + d.X, Y: p.Y + d.Y}
}

// IsZero returns true for (0,0).
func (p Pos) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Vec2 is a world-space position used by the rendering side.
type Vec2 struct {
	X, Y float32
}

// ToWorld converts a grid coordinate into world space for a given cell size.
func ToWorld(p Pos, cellSize float32) Vec2 {
	return Vec2{X: float32(p.X) * cellSize, Y: float32(p.Y) * cellSize}
}

// Kind is the passability classification stored per cell.
type Kind uint8

const (
	// Unpassable blocks movement. It is the zero value so that a missing
	// entry and an explicit block look the same.
	Unpassable Kind = iota
	// Passable can be walked on.
	Passable
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Passable:
		return "passable"
	case Unpassable:
		return "unpassable"
	default:
		return "unknown"
	}
}

// Feature is the visual terrain category of a generated record.
type Feature uint8

const (
	// FeatureGround is laid on every cell.
	FeatureGround Feature = iota
	// FeatureRock is stacked on cells above the rock threshold.
	FeatureRock
	// FeatureWater is stacked on cells above the water threshold.
	FeatureWater
)

// String returns the feature id used by the palette data.
func (f Feature) String() string {
	switch f {
	case FeatureGround:
		return "ground"
	case FeatureRock:
		return "rock"
	case FeatureWater:
		return "water"
	default:
		return "unknown"
	}
}

// Kind collapses the feature to its passability.
func (f Feature) Kind() Kind {
	if f == FeatureGround {
		return Passable
	}
	return Unpassable
}

// Depth layers for tile records.
const (
	LayerGround = 0
	LayerCover  = 1
)

// TileRecord is a renderable tile emitted by the generator. Several records
// may share a Pos; higher Layer draws on top, and within a layer the higher
// ID (later emission) wins.
type TileRecord struct {
	ID      int
	Pos     Pos
	Layer   int
	Feature Feature
}
