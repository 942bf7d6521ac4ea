package world

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/entity"
)

var _ entity.Effects = (*World)(nil)

func (w *World) SpawnProjectile(pos cp.Vector, vx float64) {
	w.Projectiles = append(w.Projectiles, &entity.Projectile{Pos: pos, VX: vx})
}

func (w *World) SpawnEmber(pos cp.Vector, angle, speed float64) {
	w.Embers = append(w.Embers, &entity.Ember{Pos: pos, Angle: angle, Speed: speed})
}

func (w *World) SpawnParticle(kind string, pos, velocity cp.Vector, frame int) {
	w.Particles = append(w.Particles, entity.NewParticle(w.lib, kind, pos, velocity, frame))
}

// Shake raises the screenshake to at least amount.
func (w *World) Shake(amount int) {
	w.Screenshake = max(w.Screenshake, amount)
}

func (w *World) Play(s entity.Sound) {
	w.sounds = append(w.sounds, s)
}

func (w *World) Rand() *rand.Rand {
	return w.rng
}

// compact keeps the items for which keep returns true, preserving order and
// reusing the backing array. keep may append to other lists but must not
// touch items.
func compact[T any](items []T, keep func(T) bool) []T {
	n := 0
	for _, it := range items {
		if keep(it) {
			items[n] = it
			n++
		}
	}
	clear(items[n:])
	return items[:n]
}
