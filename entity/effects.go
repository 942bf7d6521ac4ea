package entity

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

// Sound identifies a sound effect the host should play.
type Sound int

const (
	SoundJump Sound = iota
	SoundDash
	SoundHit
	SoundShoot
	SoundCoin
)

func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundDash:
		return "dash"
	case SoundHit:
		return "hit"
	case SoundShoot:
		return "shoot"
	case SoundCoin:
		return "coin"
	}
	return "unknown"
}

// Particle kinds.
const (
	ParticleDust = "particle"
	ParticleLeaf = "leaf"
)

// HitShake is the screenshake applied by hits and deaths.
const HitShake = 16

// Effects is what entity behavior may do to the world around it. The
// simulation loop implements it; entities never see the rest of the game
// state.
type Effects interface {
	SpawnProjectile(pos cp.Vector, vx float64)
	SpawnEmber(pos cp.Vector, angle, speed float64)
	SpawnParticle(kind string, pos, velocity cp.Vector, frame int)
	Shake(amount int)
	Play(s Sound)
	Rand() *rand.Rand
}

// ImpactBurst sprays embers outward from center and dust particles the
// opposite way, as used for deaths and kills.
func ImpactBurst(fx Effects, center cp.Vector, n int) {
	rng := fx.Rand()
	for i := 0; i < n; i++ {
		angle := rng.Float64() * math.Pi * 2
		speed := rng.Float64() * 5
		fx.SpawnEmber(center, angle, 2+rng.Float64())
		fx.SpawnParticle(ParticleDust, center, cp.ForAngle(angle+math.Pi).Mult(speed*0.5), rng.IntN(8))
	}
}

// DustBurst emits a slow ring of dust particles.
func DustBurst(fx Effects, center cp.Vector, n int) {
	rng := fx.Rand()
	for i := 0; i < n; i++ {
		angle := rng.Float64() * math.Pi * 2
		speed := rng.Float64()*0.5 + 0.5
		fx.SpawnParticle(ParticleDust, center, cp.ForAngle(angle).Mult(speed), rng.IntN(8))
	}
}

// MuzzleSparks emits a few embers in a narrow cone around angle.
func MuzzleSparks(fx Effects, pos cp.Vector, angle float64, n int) {
	rng := fx.Rand()
	for i := 0; i < n; i++ {
		fx.SpawnEmber(pos, rng.Float64()-0.5+angle, 2+rng.Float64())
	}
}
