package world

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/common"
	"github.com/milk9111/blockjumper/entity"
	"github.com/milk9111/blockjumper/tilemap"
)

var (
	treeID        = tilemap.ID{Type: tilemap.TypeLargeDecor, Variant: 2}
	enemySpawnID  = tilemap.ID{Type: tilemap.TypeSpawners, Variant: 1}
	playerSpawnID = tilemap.ID{Type: tilemap.TypeSpawners, Variant: 0}
	entryDoorID   = tilemap.ID{Type: tilemap.TypeDoors, Variant: 0}
	exitDoorID    = tilemap.ID{Type: tilemap.TypeDoors, Variant: 1}
	coinID        = tilemap.ID{Type: tilemap.TypeCoin, Variant: 0}
)

// LoadLevel replaces the current level with level n. Markers are pulled
// out of the map into entities; trees stay in the map and also become leaf
// spawners.
func (w *World) LoadLevel(n int) error {
	m, err := w.levels.Load(n)
	if err != nil {
		return fmt.Errorf("world: load level %d: %w", n, err)
	}
	m.Autotile()

	w.Level = n
	w.Map = m
	w.applyTuning()

	w.LeafSpawners = nil
	for _, tree := range m.Extract([]tilemap.ID{treeID}, true) {
		w.LeafSpawners = append(w.LeafSpawners, common.Rect{
			X: tree.Pos.X() + 4, Y: tree.Pos.Y() + 4, Width: 23, Height: 13,
		})
	}

	w.Enemies = nil
	for _, sp := range m.Extract([]tilemap.ID{enemySpawnID}, false) {
		w.Enemies = append(w.Enemies, entity.NewEnemy(w.lib, sp.Pos.Vector(), w.tuning.Enemy))
	}

	w.Doors = m.Extract([]tilemap.ID{entryDoorID, exitDoorID}, false)
	w.Coins = m.Extract([]tilemap.ID{coinID}, false)
	playerSpawns := m.Extract([]tilemap.ID{playerSpawnID}, false)

	w.entry = w.Player.Pos
	if door, ok := w.door(entryDoorID.Variant); ok {
		w.entry = door.Pos.Vector()
	} else if len(playerSpawns) > 0 {
		w.entry = playerSpawns[0].Pos.Vector()
	}
	w.Player.Respawn(w.entry)

	w.Projectiles = nil
	w.Particles = nil
	w.Embers = nil
	w.Scroll = cp.Vector{}
	w.Dead = 0
	w.Transition = -TransitionTicks
	return nil
}

// NextLevel advances to the level after the current one, wrapping to the
// first level after the last.
func (w *World) NextLevel() error {
	next := w.Level + 1
	if count := w.levels.Count(); count > 0 && next >= count {
		next = 0
	}
	return w.LoadLevel(next)
}

// Reset starts a new game: first level, no score, full lives.
func (w *World) Reset() error {
	w.Score = 0
	w.Lives = StartingLives
	return w.LoadLevel(0)
}

func (w *World) door(variant int) (tilemap.Tile, bool) {
	for _, d := range w.Doors {
		if d.Variant == variant {
			return d, true
		}
	}
	return tilemap.Tile{}, false
}
