package entity

import (
	"math"

	"github.com/jakecoffman/cp"
)

// ProjectileResult says what happened to a projectile during a tick.
type ProjectileResult int

const (
	ProjectileFlying ProjectileResult = iota
	ProjectileHitWall
	ProjectileExpired
	ProjectileHitPlayer
)

const (
	wallSparks  = 4
	playerBurst  = 30
)

// Projectile is an enemy shot travelling horizontally.
type Projectile struct {
	Pos cp.Vector
	VX  float64
	Age int
}

// Update moves the projectile and reports whether it hit something or
// expired. Everything but ProjectileFlying means the caller should remove
// it.
func (p *Projectile) Update(terrain Terrain, target *Player, tuning ProjectileTuning, fx Effects) ProjectileResult {
	p.Pos.X += p.VX
	p.Age++

	if terrain != nil {
		if _, ok := terrain.SolidAt(p.Pos); ok {
			if fx != nil {
				back := 0.0
				if p.VX > 0 {
					back = math.Pi
				}
				MuzzleSparks(fx, p.Pos, back, wallSparks)
			}
			return ProjectileHitWall
		}
	}
	if p.Age > tuning.MaxAge {
		return ProjectileExpired
	}
	if target == nil || target.DashMagnitude() >= tuning.HarmlessDashTicks {
		return ProjectileFlying
	}
	if !target.Rect().Contains(p.Pos) {
		return ProjectileFlying
	}
	if fx != nil {
		fx.Play(SoundHit)
		fx.Shake(HitShake)
		ImpactBurst(fx, target.Rect().Center(), playerBurst)
	}
	return ProjectileHitPlayer
}

// Ember is a short spark that flies at an angle and slows to a stop.
type Ember struct {
	Pos   cp.Vector
	Angle float64
	Speed float64
}

// emberDecay is subtracted from the speed each tick.
const emberDecay = 0.1

// Update moves the ember and reports whether it has burnt out.
func (e *Ember) Update() bool {
	e.Pos = e.Pos.Add(cp.ForAngle(e.Angle).Mult(e.Speed))
	e.Speed = math.Max(0, e.Speed-emberDecay)
	return e.Speed == 0
}
