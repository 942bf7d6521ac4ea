package entity

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/component"
	"github.com/milk9111/blockjumper/physics"
	"github.com/milk9111/blockjumper/tilemap"
)

// EnemySize is the enemy's collision box.
var EnemySize = cp.Vector{X: 8, Y: 15}

const (
	killBurst      = 30
	muzzleSparks   = 4
	shockwaveSpeed = 5
)

// Terrain is the part of the tile map that entity behavior reads.
type Terrain interface {
	physics.SolidQuery
	SolidAt(p cp.Vector) (tilemap.Tile, bool)
}

// Enemy patrols platforms and shoots at the player when a walk ends with
// the player in front of it.
type Enemy struct {
	physics.Body
	Tuning EnemyTuning
	// Walking counts down the ticks left in the current walk.
	Walking int
}

func NewEnemy(lib *component.Library, pos cp.Vector, tuning EnemyTuning) *Enemy {
	return &Enemy{
		Body:   physics.NewBody(lib, "enemy", pos, EnemySize),
		Tuning: tuning,
	}
}

// Update advances the enemy one tick. It reports whether the dashing
// player killed it.
func (e *Enemy) Update(terrain Terrain, target *Player, fx Effects) (killed bool) {
	var movement cp.Vector
	if e.Walking > 0 {
		movement.X = e.patrol(terrain)
		e.Walking = max(0, e.Walking-1)
		if e.Walking == 0 {
			e.Fire(target, fx)
		}
	} else if fx != nil && fx.Rand().Float64() < e.Tuning.WanderChance {
		lo := max(0, e.Tuning.WalkMinTicks)
		hi := max(lo, e.Tuning.WalkMaxTicks)
		e.Walking = lo + fx.Rand().IntN(hi-lo+1)
	}

	e.Move(terrain, movement)

	if movement.X != 0 {
		e.Animator.SetAction("run")
	} else {
		e.Animator.SetAction("idle")
	}

	if target == nil || target.DashMagnitude() < e.Tuning.StompDashTicks {
		return false
	}
	if !e.Rect().Intersects(target.Rect()) {
		return false
	}
	if fx != nil {
		e.die(fx)
	}
	return true
}

// patrol returns the horizontal step for this tick, turning around at
// walls and ledges.
func (e *Enemy) patrol(terrain Terrain) float64 {
	dir := e.Facing()
	probe := cp.Vector{
		X: e.Rect().CenterX() + dir*e.Tuning.ProbeForward,
		Y: e.Pos.Y + e.Tuning.ProbeDepth,
	}
	var ground bool
	if terrain != nil {
		_, ground = terrain.SolidAt(probe)
	}
	if !ground || e.Collisions.Horizontal() {
		e.Flip = !e.Flip
		return 0
	}
	return dir * e.Tuning.WalkSpeed
}

// Fire shoots at target if it is level with the enemy and in front of it.
// It reports whether a projectile was fired.
func (e *Enemy) Fire(target *Player, fx Effects) bool {
	if target == nil || fx == nil {
		return false
	}
	dis := target.Pos.Sub(e.Pos)
	if math.Abs(dis.Y) >= e.Tuning.FireBand {
		return false
	}
	var dir float64
	switch {
	case e.Flip && dis.X < 0:
		dir = -1
	case !e.Flip && dis.X > 0:
		dir = 1
	default:
		return false
	}

	r := e.Rect()
	muzzle := cp.Vector{X: r.CenterX() + dir*e.Tuning.MuzzleOffset, Y: r.CenterY()}
	fx.SpawnProjectile(muzzle, dir*e.Tuning.ProjectileSpeed)
	fx.Play(SoundShoot)

	angle := 0.0
	if dir < 0 {
		angle = math.Pi
	}
	MuzzleSparks(fx, muzzle, angle, muzzleSparks)
	return true
}

func (e *Enemy) die(fx Effects) {
	center := e.Rect().Center()
	fx.Shake(HitShake)
	fx.Play(SoundHit)
	ImpactBurst(fx, center, killBurst)
	rng := fx.Rand()
	fx.SpawnEmber(center, 0, shockwaveSpeed+rng.Float64())
	fx.SpawnEmber(center, math.Pi, shockwaveSpeed+rng.Float64())
}

// Facing returns -1 when the enemy faces left and 1 otherwise.
func (e *Enemy) Facing() float64 {
	if e.Flip {
		return -1
	}
	return 1
}
