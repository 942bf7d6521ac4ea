package tilemap

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Tile types with special meaning to the engine.
const (
	TypeGrass      = "grass"
	TypeStone      = "stone"
	TypeDecor      = "decor"
	TypeLargeDecor = "large_decor"
	TypeSpawners   = "spawners"
	TypeDoors      = "doors"
	TypeCoin       = "coin"
)

var physicsTypes = map[string]bool{
	TypeGrass: true,
	TypeStone: true,
}

var autotileTypes = map[string]bool{
	TypeGrass: true,
	TypeStone: true,
}

// IsSolid reports whether tiles of type t block movement.
func IsSolid(t string) bool { return physicsTypes[t] }

// IsAutotiled reports whether tiles of type t get their variant from
// their neighbors.
func IsAutotiled(t string) bool { return autotileTypes[t] }

// Coord is an integer grid cell.
type Coord struct {
	X, Y int
}

func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Position is stored as a two element array so it serializes as [x, y].
// Grid tiles hold cell coordinates, off-grid tiles hold pixels.
type Position [2]float64

func Pos(x, y float64) Position { return Position{x, y} }

func (p Position) X() float64 { return p[0] }
func (p Position) Y() float64 { return p[1] }

func (p Position) Vector() cp.Vector {
	return cp.Vector{X: p[0], Y: p[1]}
}

// Coord truncates a grid position to its cell.
func (p Position) Coord() Coord {
	return Coord{X: int(math.Floor(p[0])), Y: int(math.Floor(p[1]))}
}

// Tile is a single placed tile.
type Tile struct {
	Type    string   `json:"type"`
	Variant int      `json:"variant"`
	Pos     Position `json:"pos"`
}

// ID selects tiles by type and variant.
type ID struct {
	Type    string
	Variant int
}

func (t Tile) ID() ID {
	return ID{Type: t.Type, Variant: t.Variant}
}

func containsID(ids []ID, id ID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
