package tilemap

// Cardinal neighbor bits used to index the autotile table.
const (
	neighborRight = 1 << iota
	neighborLeft
	neighborUp
	neighborDown
)

var cardinalOffsets = [...]struct {
	off Coord
	bit int
}{
	{Coord{1, 0}, neighborRight},
	{Coord{-1, 0}, neighborLeft},
	{Coord{0, -1}, neighborUp},
	{Coord{0, 1}, neighborDown},
}

// autotileVariants maps a set of same-type cardinal neighbors to the tile
// variant drawn for it. Sets without an entry leave the variant alone.
var autotileVariants = map[int]int{
	neighborRight | neighborDown:                              0,
	neighborRight | neighborDown | neighborLeft:               1,
	neighborLeft | neighborDown:                               2,
	neighborLeft | neighborUp | neighborDown:                  3,
	neighborLeft | neighborUp:                                 4,
	neighborLeft | neighborUp | neighborRight:                 5,
	neighborRight | neighborUp:                                6,
	neighborRight | neighborUp | neighborDown:                 7,
	neighborRight | neighborLeft | neighborUp | neighborDown: 8,
}

// Autotile picks the variant of every autotile-eligible grid tile from the
// same-type tiles directly above, below, left and right of it. It returns
// the number of tiles whose variant changed.
func (m *Map) Autotile() int {
	if m == nil {
		return 0
	}
	changed := 0
	for c, t := range m.grid {
		if !IsAutotiled(t.Type) {
			continue
		}
		variant, ok := autotileVariants[m.sameTypeNeighbors(c, t.Type)]
		if !ok || variant == t.Variant {
			continue
		}
		t.Variant = variant
		m.grid[c] = t
		changed++
	}
	return changed
}

func (m *Map) sameTypeNeighbors(c Coord, typ string) int {
	mask := 0
	for _, n := range cardinalOffsets {
		if other, ok := m.grid[c.Add(n.off)]; ok && other.Type == typ {
			mask |= n.bit
		}
	}
	return mask
}
