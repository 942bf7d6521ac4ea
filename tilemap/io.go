package tilemap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a level file decodes but does not describe
// a valid map.
var ErrMalformed = errors.New("tilemap: malformed map")

type fileFormat struct {
	Tilemap  map[string]Tile `json:"tilemap"`
	TileSize int             `json:"tile_size"`
	Offgrid  []Tile          `json:"offgrid"`
}

// Key formats a cell the way level files key their grid tiles.
func Key(c Coord) string {
	return strconv.Itoa(c.X) + ";" + strconv.Itoa(c.Y)
}

// ParseKey is the inverse of Key.
func ParseKey(key string) (Coord, error) {
	xs, ys, ok := strings.Cut(key, ";")
	if !ok {
		return Coord{}, fmt.Errorf("%w: key %q has no separator", ErrMalformed, key)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: key %q: %v", ErrMalformed, key, err)
	}
	return Coord{X: x, Y: y}, nil
}

// Decode reads a map from its JSON level format.
func Decode(r io.Reader) (*Map, error) {
	var f fileFormat
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("tilemap: decode: %w", err)
	}
	if f.TileSize <= 0 {
		return nil, fmt.Errorf("%w: tile_size %d", ErrMalformed, f.TileSize)
	}

	m := New(f.TileSize)
	for key, t := range f.Tilemap {
		c, err := ParseKey(key)
		if err != nil {
			return nil, err
		}
		if t.Pos.Coord() != c {
			return nil, fmt.Errorf("%w: key %q holds tile at %v", ErrMalformed, key, t.Pos)
		}
		if t.Type == "" {
			return nil, fmt.Errorf("%w: key %q has no type", ErrMalformed, key)
		}
		m.grid[c] = t
	}
	m.offgrid = append(m.offgrid, f.Offgrid...)
	return m, nil
}

// Encode writes m in the JSON level format.
func (m *Map) Encode(w io.Writer) error {
	if m == nil {
		return fmt.Errorf("tilemap: encode nil map")
	}
	f := fileFormat{
		Tilemap:  make(map[string]Tile, len(m.grid)),
		TileSize: m.tileSize,
		Offgrid:  append([]Tile{}, m.offgrid...),
	}
	for c, t := range m.grid {
		f.Tilemap[Key(c)] = t
	}
	if err := json.NewEncoder(w).Encode(&f); err != nil {
		return fmt.Errorf("tilemap: encode: %w", err)
	}
	return nil
}

// Load reads a level file from disk.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Save writes m to path, replacing any existing file.
func (m *Map) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
