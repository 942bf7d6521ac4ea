package world

import (
	"errors"
	"image"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/component"
	"github.com/milk9111/blockjumper/entity"
	"github.com/milk9111/blockjumper/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLevels []*tilemap.Map

func (f fakeLevels) Load(n int) (*tilemap.Map, error) {
	if n < 0 || n >= len(f) {
		return nil, errors.New("no such level")
	}
	return f[n].Clone(), nil
}

func (f fakeLevels) Count() int { return len(f) }

func marker(typ string, variant int, x, y float64) tilemap.Tile {
	return tilemap.Tile{Type: typ, Variant: variant, Pos: tilemap.Pos(x, y)}
}

// entry is where the player stands on every test level: the floor's top
// edge is at y=80.
var entry = cp.Vector{X: 16, Y: 65}

// floorLevel has a two-row stone floor at cell rows 5 and 6 and an entry
// door. extra markers are added off-grid.
func floorLevel(extra ...tilemap.Tile) *tilemap.Map {
	m := tilemap.New(16)
	for x := -2; x <= 30; x++ {
		for y := 5; y <= 6; y++ {
			m.Set(tilemap.Tile{Type: tilemap.TypeStone, Pos: tilemap.Pos(float64(x), float64(y))})
		}
	}
	m.AddOffGrid(marker(tilemap.TypeDoors, 0, entry.X, entry.Y))
	for _, t := range extra {
		m.AddOffGrid(t)
	}
	return m
}

func newWorld(t *testing.T, levels ...*tilemap.Map) *World {
	t.Helper()
	w, err := New(Config{
		Levels: fakeLevels(levels),
		Tuning: entity.DefaultTuning(),
		Seed:   7,
	})
	require.NoError(t, err)
	return w
}

func TestNewLoadsLevel(t *testing.T) {
	w := newWorld(t, floorLevel(
		marker(tilemap.TypeSpawners, 1, 100, 65),
		marker(tilemap.TypeCoin, 0, 200, 50),
		marker(tilemap.TypeDoors, 1, 280, 60),
		marker(tilemap.TypeLargeDecor, 2, 150, 30),
	))

	assert.Len(t, w.Enemies, 1)
	assert.Equal(t, cp.Vector{X: 100, Y: 65}, w.Enemies[0].Pos)
	assert.Len(t, w.Coins, 1)
	assert.Len(t, w.Doors, 2)
	require.Len(t, w.LeafSpawners, 1)
	assert.Equal(t, 154.0, w.LeafSpawners[0].X)
	assert.Equal(t, 23.0, w.LeafSpawners[0].Width)

	assert.Equal(t, entry, w.Player.Pos)
	assert.Equal(t, entry, w.Entry())
	assert.Equal(t, -TransitionTicks, w.Transition)
	assert.Equal(t, StartingLives, w.Lives)
	assert.Len(t, w.Clouds, 16)

	offgrid := w.Map.OffGrid()
	require.Len(t, offgrid, 1, "only the tree stays in the map")
	assert.Equal(t, tilemap.TypeLargeDecor, offgrid[0].Type)

	top, ok := w.Map.Get(tilemap.Coord{X: 5, Y: 5})
	require.True(t, ok)
	assert.Equal(t, 1, top.Variant, "level is autotiled on load")
}

func TestSpawnerFallbackEntry(t *testing.T) {
	m := tilemap.New(16)
	m.AddOffGrid(marker(tilemap.TypeSpawners, 0, 40, 20))
	w := newWorld(t, m)
	assert.Equal(t, cp.Vector{X: 40, Y: 20}, w.Player.Pos)
}

func TestLoadLevelError(t *testing.T) {
	_, err := New(Config{Levels: fakeLevels{floorLevel()}, StartLevel: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "world: load level 5")
}

func TestFallDeathOnceAndRespawn(t *testing.T) {
	m := tilemap.New(16)
	m.AddOffGrid(marker(tilemap.TypeDoors, 0, entry.X, entry.Y))
	w := newWorld(t, m)

	deaths := 0
	for i := 0; i < 121; i++ {
		wasAlive := w.Dead == 0
		require.NoError(t, w.Step(Input{}))
		if wasAlive && w.Dead > 0 {
			deaths++
			assert.Equal(t, entity.HitShake, w.Screenshake)
		}
	}
	require.Equal(t, 1, deaths, "falls for 120 ticks before dying")
	assert.Equal(t, 1, w.Dead)

	w.Kill()
	assert.Equal(t, 1, w.Dead, "killing a dead player does nothing")

	for i := 0; i < DeathTicks-1; i++ {
		require.NoError(t, w.Step(Input{}))
	}
	assert.Equal(t, DeathTicks, w.Dead)
	assert.Equal(t, StartingLives, w.Lives)
	assert.Positive(t, w.Transition, "overlay closing")

	require.NoError(t, w.Step(Input{}))
	assert.Equal(t, 0, w.Dead)
	assert.Equal(t, StartingLives-1, w.Lives)
	// the respawned player already took this tick's physics step
	assert.Equal(t, entry, w.Player.Pos)
	assert.Equal(t, 0.0, w.Player.Velocity.X)
	assert.InDelta(t, 0.1, w.Player.Velocity.Y, 1e-9)
	assert.Equal(t, 1, w.Player.AirTime)
	assert.Equal(t, -TransitionTicks, w.Transition)
}

func TestLivesExhaustedResets(t *testing.T) {
	w := newWorld(t, floorLevel(), floorLevel())
	require.NoError(t, w.LoadLevel(1))
	w.Lives = 1
	w.Score = 500

	w.Kill()
	for i := 0; i < DeathTicks+1; i++ {
		require.NoError(t, w.Step(Input{}))
	}
	assert.Equal(t, 0, w.Level)
	assert.Equal(t, 0, w.Score)
	assert.Equal(t, StartingLives, w.Lives)
	assert.Equal(t, 500, w.HighScore, "high score survives the reset")
	assert.Equal(t, 0, w.Dead)
}

func TestCoinPickup(t *testing.T) {
	w := newWorld(t, floorLevel(marker(tilemap.TypeCoin, 0, entry.X, entry.Y)))

	require.NoError(t, w.Step(Input{}))
	assert.Equal(t, CoinScore, w.Score)
	assert.Empty(t, w.Coins)
	assert.Equal(t, CoinScore, w.HighScore)
	assert.Equal(t, []entity.Sound{entity.SoundCoin}, w.DrainSounds())
	assert.Empty(t, w.DrainSounds())
}

func TestExitDoorAdvancesAndWraps(t *testing.T) {
	exit := marker(tilemap.TypeDoors, 1, entry.X+4, entry.Y)
	w := newWorld(t, floorLevel(exit), floorLevel(exit))

	require.NoError(t, w.Step(Input{}))
	assert.Equal(t, 1, w.Level)
	assert.Equal(t, entry, w.Player.Pos)

	require.NoError(t, w.Step(Input{}))
	assert.Equal(t, 0, w.Level, "last level wraps to the first")
}

func TestProjectileKillsPlayer(t *testing.T) {
	w := newWorld(t, floorLevel())
	center := w.Player.Rect().Center()
	w.SpawnProjectile(center.Sub(cp.Vector{X: 1.5}), 1.5)

	require.NoError(t, w.Step(Input{}))
	assert.Equal(t, 1, w.Dead)
	assert.Empty(t, w.Projectiles)
	assert.Equal(t, entity.HitShake, w.Screenshake)
	assert.Contains(t, w.DrainSounds(), entity.SoundHit)
	assert.NotEmpty(t, w.Embers)
}

func TestProjectileMissesDashingPlayer(t *testing.T) {
	w := newWorld(t, floorLevel())
	w.Player.Dashing = 55
	center := w.Player.Rect().Center()
	w.SpawnProjectile(center.Sub(cp.Vector{X: 1.5}), 1.5)

	require.NoError(t, w.Step(Input{}))
	assert.Equal(t, 0, w.Dead)
	assert.Len(t, w.Projectiles, 1)
}

func TestDashKillScores(t *testing.T) {
	w := newWorld(t, floorLevel(marker(tilemap.TypeSpawners, 1, entry.X, entry.Y)))
	require.Len(t, w.Enemies, 1)
	w.Player.Dashing = 55

	require.NoError(t, w.Step(Input{}))
	assert.Empty(t, w.Enemies)
	assert.Equal(t, KillScore, w.Score)
	assert.Equal(t, entity.HitShake, w.Screenshake)
}

func TestInputAppliesNextTick(t *testing.T) {
	w := newWorld(t, floorLevel())

	require.NoError(t, w.Step(Input{Move: 1, Jump: true}))
	assert.Equal(t, entry.X, w.Player.Pos.X, "movement lands on the following tick")
	assert.Equal(t, -3.0, w.Player.Velocity.Y)
	assert.Equal(t, []entity.Sound{entity.SoundJump}, w.DrainSounds())

	require.NoError(t, w.Step(Input{}))
	assert.Equal(t, entry.X+1, w.Player.Pos.X)

	require.NoError(t, w.Step(Input{Dash: true}))
	assert.Equal(t, 60, w.Player.Dashing)
	assert.Equal(t, []entity.Sound{entity.SoundDash}, w.DrainSounds())
}

func TestTuneFunc(t *testing.T) {
	tune := func(level int, base entity.Tuning) (entity.Tuning, error) {
		if level == 1 {
			return base, errors.New("broken script")
		}
		base.Enemy.WalkSpeed = 2
		return base, nil
	}
	w, err := New(Config{
		Levels: fakeLevels{
			floorLevel(marker(tilemap.TypeSpawners, 1, 100, 65)),
			floorLevel(marker(tilemap.TypeSpawners, 1, 100, 65)),
		},
		Tuning: entity.DefaultTuning(),
		Tune:   tune,
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, w.Tuning().Enemy.WalkSpeed)
	assert.Equal(t, 2.0, w.Enemies[0].Tuning.WalkSpeed)

	require.NoError(t, w.LoadLevel(1))
	assert.Equal(t, 0.5, w.Tuning().Enemy.WalkSpeed, "script errors fall back to the base tuning")

	base := entity.DefaultTuning()
	base.Player.JumpSpeed = 4
	w.SetTuning(base, nil)
	assert.Equal(t, 4.0, w.Player.Tuning.JumpSpeed)
}

func TestLeavesSpawnFromTrees(t *testing.T) {
	lib := component.NewLibrary()
	frame := image.NewRGBA(image.Rect(0, 0, 1, 1))
	lib.Register(component.Key("particle", entity.ParticleLeaf), component.NewClip([]image.Image{frame}, 20, false))

	w, err := New(Config{
		Levels:  fakeLevels{floorLevel(marker(tilemap.TypeLargeDecor, 2, 150, 30))},
		Library: lib,
		Tuning:  entity.DefaultTuning(),
		Seed:    3,
	})
	require.NoError(t, err)

	for i := 0; i < 5000; i++ {
		w.spawnLeaves()
	}
	require.NotEmpty(t, w.Particles)
	for _, p := range w.Particles {
		assert.Equal(t, entity.ParticleLeaf, p.Kind)
		assert.True(t, w.LeafSpawners[0].Contains(p.Pos))
		assert.Equal(t, cp.Vector{X: -0.1, Y: 0.3}, p.Velocity)
	}
}

func TestEmbersAndParticlesExpire(t *testing.T) {
	w := newWorld(t, floorLevel())
	w.SpawnEmber(cp.Vector{}, 0, 0.15)
	w.SpawnParticle(entity.ParticleDust, cp.Vector{}, cp.Vector{}, 0)

	require.NoError(t, w.Step(Input{}))
	assert.Len(t, w.Embers, 1)
	assert.Empty(t, w.Particles, "particles without frames finish at once")

	require.NoError(t, w.Step(Input{}))
	assert.Empty(t, w.Embers)
}

func TestCompactKeepsOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	got := compact(items, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4, 6}, got)
	assert.Equal(t, []int{2, 4, 6, 0, 0, 0}, items, "tail cleared")
}

func TestScreenshakeDecays(t *testing.T) {
	w := newWorld(t, floorLevel())
	w.Shake(5)
	w.Shake(2)
	assert.Equal(t, 5, w.Screenshake, "shake keeps the larger amount")
	require.NoError(t, w.Step(Input{}))
	assert.Equal(t, 4, w.Screenshake)
}
