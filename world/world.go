// Package world runs the simulation: it owns the loaded level and every
// entity in it and advances them in a fixed order once per tick.
package world

import (
	"cmp"
	"log"
	"math/rand/v2"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/common"
	"github.com/milk9111/blockjumper/component"
	"github.com/milk9111/blockjumper/entity"
	"github.com/milk9111/blockjumper/tilemap"
)

const (
	StartingLives = 3

	CoinScore = 50
	KillScore = 100

	// The death sequence: the overlay starts closing DeathFadeTicks after
	// death and the player respawns once DeathTicks have passed.
	DeathFadeTicks = 10
	DeathTicks     = 40

	// TransitionTicks is the length of the circle wipe in each direction.
	TransitionTicks = 30

	cloudCount = 16
	// CloudVariants is the number of cloud images the renderer supplies.
	CloudVariants = 2

	leafChance = 49999.0
	scrollEase = 30.0
)

// LevelSource loads numbered levels.
type LevelSource interface {
	Load(n int) (*tilemap.Map, error)
	Count() int
}

// TuneFunc adjusts the base tuning for a level.
type TuneFunc func(level int, base entity.Tuning) (entity.Tuning, error)

// Input is the player's intent for one tick. Jump and Dash are edge
// triggered: true only on the tick the button went down.
type Input struct {
	Move float64
	Jump bool
	Dash bool
}

type Config struct {
	Levels  LevelSource
	Library *component.Library
	Tuning  entity.Tuning
	Tune    TuneFunc
	// StartLevel is the level loaded first.
	StartLevel int
	HighScore  int
	Seed       uint64
}

// Cloud is a background cloud drifting right with parallax Depth.
type Cloud struct {
	Pos     cp.Vector
	Speed   float64
	Depth   float64
	Variant int
}

type World struct {
	Map          *tilemap.Map
	Player       *entity.Player
	Enemies      []*entity.Enemy
	Projectiles  []*entity.Projectile
	Embers       []*entity.Ember
	Particles    []*entity.Particle
	Coins        []tilemap.Tile
	Doors        []tilemap.Tile
	LeafSpawners []common.Rect
	Clouds       []Cloud

	Level     int
	Score     int
	Lives     int
	HighScore int

	// Dead counts ticks since the player died; 0 while alive.
	Dead int
	// Transition runs from -TransitionTicks (opening) to TransitionTicks
	// (closed); 0 means no overlay.
	Transition  int
	Screenshake int
	Scroll      cp.Vector
	// Time counts ticks since the world was created.
	Time int

	levels   LevelSource
	lib      *component.Library
	base     entity.Tuning
	tuning   entity.Tuning
	tune     TuneFunc
	rng      *rand.Rand
	movement float64
	entry    cp.Vector
	sounds   []entity.Sound
}

// New builds a world and loads cfg.StartLevel.
func New(cfg Config) (*World, error) {
	w := &World{
		Lives:     StartingLives,
		HighScore: cfg.HighScore,
		levels:    cfg.Levels,
		lib:       cfg.Library,
		base:      cfg.Tuning,
		tune:      cfg.Tune,
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	w.tuning = w.base
	w.Player = entity.NewPlayer(w.lib, cp.Vector{X: 50, Y: 50}, w.tuning.Player)

	for i := 0; i < cloudCount; i++ {
		w.Clouds = append(w.Clouds, Cloud{
			Pos:     cp.Vector{X: w.rng.Float64() * 99999, Y: w.rng.Float64() * 99999},
			Speed:   w.rng.Float64()*0.05 + 0.05,
			Depth:   w.rng.Float64()*0.6 + 0.2,
			Variant: w.rng.IntN(CloudVariants),
		})
	}
	slices.SortFunc(w.Clouds, func(a, b Cloud) int { return cmp.Compare(a.Depth, b.Depth) })

	if err := w.LoadLevel(cfg.StartLevel); err != nil {
		return nil, err
	}
	return w, nil
}

// Tuning returns the tuning in effect for the current level.
func (w *World) Tuning() entity.Tuning {
	return w.tuning
}

// SetTuning replaces the base tuning, reapplies the level adjustment and
// pushes the result to every live entity.
func (w *World) SetTuning(base entity.Tuning, tune TuneFunc) {
	w.base = base
	if tune != nil {
		w.tune = tune
	}
	w.applyTuning()
}

func (w *World) applyTuning() {
	w.tuning = w.base
	if w.tune != nil {
		t, err := w.tune(w.Level, w.base)
		if err != nil {
			log.Printf("world: tune level %d: %v", w.Level, err)
		} else {
			w.tuning = t
		}
	}
	w.Player.Tuning = w.tuning.Player
	for _, e := range w.Enemies {
		e.Tuning = w.tuning.Enemy
	}
}

// DrainSounds returns the sounds requested since the last call.
func (w *World) DrainSounds() []entity.Sound {
	out := w.sounds
	w.sounds = nil
	return out
}

// Entry is where the player spawns on the current level.
func (w *World) Entry() cp.Vector {
	return w.entry
}

// CoinBob is the vertical offset of every coin at the current tick.
func (w *World) CoinBob() float64 {
	return coinBob(w.Time)
}
