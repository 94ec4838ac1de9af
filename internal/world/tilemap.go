package world

// TileMap holds the passability of every generated cell.
// Coordinates that were never inserted are not passable.
type TileMap struct {
	tiles map[Pos]Kind
}

// NewTileMap creates an empty tile map.
func NewTileMap() *TileMap {
	return &TileMap{tiles: make(map[Pos]Kind)}
}

// Insert sets the kind at pos, replacing any earlier entry.
func (m *TileMap) Insert(pos Pos, kind Kind) {
	m.tiles[pos] = kind
}

// IsPassable returns true if pos has an entry and it is Passable.
func (m *TileMap) IsPassable(pos Pos) bool {
	return m.tiles[pos] == Passable
}

// Kind returns the stored kind at pos and whether an entry exists.
func (m *TileMap) Kind(pos Pos) (Kind, bool) {
	k, ok := m.tiles[pos]
	return k, ok
}

// Len returns the number of cells with an entry.
func (m *TileMap) Len() int {
	return len(m.tiles)
}

// WorldState is the generated world shared with the movement side.
type WorldState struct {
	Tiles *TileMap
	Seed  int64
}

// NewWorldState creates an empty world for the given seed.
func NewWorldState(seed int64) *WorldState {
	return &WorldState{
		Tiles: NewTileMap(),
		Seed:  seed,
	}
}
