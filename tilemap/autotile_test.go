package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutotile(t *testing.T) {
	cases := []struct {
		name      string
		neighbors []Coord
		start     int
		want      int
	}{
		{"all_four", []Coord{{1, 0}, {-1, 0}, {0, -1}, {0, 1}}, 3, 8},
		{"right_down", []Coord{{1, 0}, {0, 1}}, 5, 0},
		{"left_down", []Coord{{-1, 0}, {0, 1}}, 5, 2},
		{"left_up_right", []Coord{{-1, 0}, {0, -1}, {1, 0}}, 0, 5},
		{"none", nil, 4, 4},
		{"single", []Coord{{1, 0}}, 6, 6},
		{"opposite_pair", []Coord{{1, 0}, {-1, 0}}, 7, 7},
		{"diagonals_ignored", []Coord{{1, 1}, {-1, -1}, {1, -1}, {-1, 1}}, 2, 2},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := New(16)
			m.Set(gridTile(TypeGrass, c.start, 10, 10))
			for _, off := range c.neighbors {
				n := Coord{10, 10}.Add(off)
				// neighbors form a plus shape around the center only
				m.Set(gridTile(TypeGrass, 1, n.X, n.Y))
			}
			m.Autotile()

			got, ok := m.Get(Coord{10, 10})
			require.True(t, ok)
			assert.Equal(t, c.want, got.Variant)
		})
	}
}

func TestAutotileRequiresSameType(t *testing.T) {
	m := New(16)
	m.Set(gridTile(TypeGrass, 3, 0, 0))
	m.Set(gridTile(TypeStone, 0, 1, 0))
	m.Set(gridTile(TypeStone, 0, 0, 1))
	m.Autotile()

	got, _ := m.Get(Coord{0, 0})
	assert.Equal(t, 3, got.Variant)
}

func TestAutotileSkipsDecor(t *testing.T) {
	m := New(16)
	m.Set(gridTile(TypeDecor, 3, 0, 0))
	m.Set(gridTile(TypeDecor, 0, 1, 0))
	m.Set(gridTile(TypeDecor, 0, 0, 1))
	assert.Equal(t, 0, m.Autotile())

	got, _ := m.Get(Coord{0, 0})
	assert.Equal(t, 3, got.Variant)
}
