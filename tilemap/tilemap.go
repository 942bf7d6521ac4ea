package tilemap

import (
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/common"
)

// neighborOffsets lists the 3x3 block around a cell in lookup order.
var neighborOffsets = [...]Coord{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {0, 0}, {-1, 1}, {0, 1}, {1, 1},
}

// Map is a sparse tile grid plus a list of decorative off-grid tiles.
type Map struct {
	tileSize int
	grid     map[Coord]Tile
	offgrid  []Tile
}

// New creates an empty map. A non-positive tileSize falls back to
// common.TileSize.
func New(tileSize int) *Map {
	if tileSize <= 0 {
		tileSize = common.TileSize
	}
	return &Map{
		tileSize: tileSize,
		grid:     make(map[Coord]Tile),
	}
}

// TileSize returns the edge length of a grid cell in pixels.
func (m *Map) TileSize() int {
	if m == nil {
		return common.TileSize
	}
	return m.tileSize
}

// Len returns the number of grid-aligned tiles.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.grid)
}

// Get returns the grid tile at c.
func (m *Map) Get(c Coord) (Tile, bool) {
	if m == nil {
		return Tile{}, false
	}
	t, ok := m.grid[c]
	return t, ok
}

// Set places t on the grid at the cell derived from its position,
// replacing whatever was there.
func (m *Map) Set(t Tile) {
	if m == nil {
		return
	}
	m.grid[t.Pos.Coord()] = t
}

// Remove deletes the grid tile at c and reports whether one existed.
func (m *Map) Remove(c Coord) bool {
	if m == nil {
		return false
	}
	if _, ok := m.grid[c]; !ok {
		return false
	}
	delete(m.grid, c)
	return true
}

// AddOffGrid appends a decorative tile positioned in pixels.
func (m *Map) AddOffGrid(t Tile) {
	if m == nil {
		return
	}
	m.offgrid = append(m.offgrid, t)
}

// OffGrid returns a copy of the off-grid tiles in placement order.
func (m *Map) OffGrid() []Tile {
	if m == nil {
		return nil
	}
	return append([]Tile(nil), m.offgrid...)
}

// Grid returns the grid tiles ordered by row then column.
func (m *Map) Grid() []Tile {
	if m == nil {
		return nil
	}
	coords := m.sortedCoords()
	tiles := make([]Tile, 0, len(coords))
	for _, c := range coords {
		tiles = append(tiles, m.grid[c])
	}
	return tiles
}

func (m *Map) sortedCoords() []Coord {
	coords := make([]Coord, 0, len(m.grid))
	for c := range m.grid {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	return coords
}

// CellAt returns the grid cell containing the pixel position p.
func (m *Map) CellAt(p cp.Vector) Coord {
	size := m.TileSize()
	return Coord{X: common.FloorDiv(p.X, size), Y: common.FloorDiv(p.Y, size)}
}

// Neighbors returns the tiles in the 3x3 block of cells centered on the
// cell containing the pixel position p. Empty cells are skipped.
func (m *Map) Neighbors(p cp.Vector) []Tile {
	if m == nil {
		return nil
	}
	center := m.CellAt(p)
	found := make([]Tile, 0, len(neighborOffsets))
	for _, off := range neighborOffsets {
		if t, ok := m.grid[center.Add(off)]; ok {
			found = append(found, t)
		}
	}
	return found
}

// SolidAt returns the physics-solid tile covering the pixel position p.
func (m *Map) SolidAt(p cp.Vector) (Tile, bool) {
	t, ok := m.Get(m.CellAt(p))
	if !ok || !IsSolid(t.Type) {
		return Tile{}, false
	}
	return t, true
}

// PhysicsRectsNear returns one tile-sized pixel rectangle for every solid
// tile around the pixel position p.
func (m *Map) PhysicsRectsNear(p cp.Vector) []common.Rect {
	if m == nil {
		return nil
	}
	size := float64(m.tileSize)
	var rects []common.Rect
	for _, t := range m.Neighbors(p) {
		if !IsSolid(t.Type) {
			continue
		}
		c := t.Pos.Coord()
		rects = append(rects, common.Rect{
			X:      float64(c.X) * size,
			Y:      float64(c.Y) * size,
			Width:  size,
			Height: size,
		})
	}
	return rects
}

// Extract returns copies of every tile matching one of ids, off-grid tiles
// first. Grid matches come back with pixel positions. Unless keep is set the
// matches are removed from the map, which is how one-shot markers such as
// spawners, doors and coins are consumed at level load.
func (m *Map) Extract(ids []ID, keep bool) []Tile {
	if m == nil {
		return nil
	}
	var matches []Tile

	remaining := m.offgrid[:0:0]
	for _, t := range m.offgrid {
		if !containsID(ids, t.ID()) {
			remaining = append(remaining, t)
			continue
		}
		matches = append(matches, t)
		if keep {
			remaining = append(remaining, t)
		}
	}
	m.offgrid = remaining

	size := float64(m.tileSize)
	for _, c := range m.sortedCoords() {
		t := m.grid[c]
		if !containsID(ids, t.ID()) {
			continue
		}
		found := t
		found.Pos = Pos(t.Pos.X()*size, t.Pos.Y()*size)
		matches = append(matches, found)
		if !keep {
			delete(m.grid, c)
		}
	}
	return matches
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := New(m.tileSize)
	for c, t := range m.grid {
		out.grid[c] = t
	}
	out.offgrid = append([]Tile(nil), m.offgrid...)
	return out
}
