package world

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/common"
	"github.com/milk9111/blockjumper/entity"
	"github.com/milk9111/blockjumper/tilemap"
)

const (
	ViewWidth  = common.BaseWidth
	ViewHeight = common.BaseHeight
)

func coinBob(t int) float64 {
	return math.Sin(float64(t)*0.05) * 2
}

// Step advances the world by one tick. The order is fixed: timers and the
// death sequence, camera, leaves and clouds, coins, enemies, the player,
// the level exit, projectiles, embers, particles, then the input for the
// next tick. A level that fails to load is returned as an error.
func (w *World) Step(in Input) error {
	w.Time++
	w.Screenshake = max(0, w.Screenshake-1)
	if w.Transition < 0 {
		w.Transition++
	}

	if err := w.stepDeath(); err != nil {
		return err
	}

	center := w.Player.Rect().Center()
	w.Scroll.X += (center.X - ViewWidth/2 - w.Scroll.X) / scrollEase
	w.Scroll.Y += (center.Y - ViewHeight/2 - w.Scroll.Y) / scrollEase

	w.spawnLeaves()
	for i := range w.Clouds {
		w.Clouds[i].Pos.X += w.Clouds[i].Speed
	}

	w.collectCoins()

	w.Enemies = compact(w.Enemies, func(e *entity.Enemy) bool {
		if e.Update(w.Map, w.Player, w) {
			w.Score += KillScore
			return false
		}
		return true
	})

	if w.Dead == 0 {
		if w.Player.Update(w.Map, cp.Vector{X: w.movement}, w) {
			w.Kill()
		}
	}

	if exit, ok := w.door(exitDoorID.Variant); ok {
		ts := float64(w.Map.TileSize())
		r := common.Rect{X: exit.Pos.X(), Y: exit.Pos.Y(), Width: ts, Height: ts}
		if w.Player.Rect().Intersects(r) {
			if err := w.NextLevel(); err != nil {
				return err
			}
		}
	}

	w.Projectiles = compact(w.Projectiles, func(p *entity.Projectile) bool {
		switch p.Update(w.Map, w.Player, w.tuning.Projectile, w) {
		case entity.ProjectileFlying:
			return true
		case entity.ProjectileHitPlayer:
			w.Kill()
		}
		return false
	})

	w.Embers = compact(w.Embers, func(e *entity.Ember) bool {
		return !e.Update()
	})

	w.Particles = compact(w.Particles, func(p *entity.Particle) bool {
		return !p.Update()
	})

	w.applyInput(in)

	if w.Score > w.HighScore {
		w.HighScore = w.Score
	}
	return nil
}

// Kill starts the death sequence. Killing a dead player does nothing.
func (w *World) Kill() {
	if w.Dead > 0 {
		return
	}
	w.Dead = 1
	w.Shake(entity.HitShake)
}

func (w *World) stepDeath() error {
	if w.Dead == 0 {
		return nil
	}
	w.Dead++
	if w.Dead >= DeathFadeTicks {
		w.Transition = min(TransitionTicks, w.Transition+1)
	}
	if w.Dead <= DeathTicks {
		return nil
	}

	w.Lives--
	if w.Lives <= 0 {
		if err := w.Reset(); err != nil {
			return err
		}
	} else {
		w.Player.Respawn(w.entry)
	}
	w.Dead = 0
	w.Transition = -TransitionTicks
	return nil
}

func (w *World) spawnLeaves() {
	for _, r := range w.LeafSpawners {
		if w.rng.Float64()*leafChance >= r.Width*r.Height {
			continue
		}
		pos := cp.Vector{
			X: r.X + w.rng.Float64()*r.Width,
			Y: r.Y + w.rng.Float64()*r.Height,
		}
		w.SpawnParticle(entity.ParticleLeaf, pos, cp.Vector{X: -0.1, Y: 0.3}, w.rng.IntN(21))
	}
}

func (w *World) collectCoins() {
	ts := float64(w.Map.TileSize())
	bob := coinBob(w.Time)
	player := w.Player.Rect()
	w.Coins = compact(w.Coins, func(c tilemap.Tile) bool {
		r := common.Rect{X: c.Pos.X(), Y: c.Pos.Y() + bob, Width: ts, Height: ts}
		if !player.Intersects(r) {
			return true
		}
		w.Score += CoinScore
		w.Play(entity.SoundCoin)
		return false
	})
}

func (w *World) applyInput(in Input) {
	w.movement = max(-1, min(1, in.Move))
	if in.Jump && w.Player.Jump() {
		w.Play(entity.SoundJump)
	}
	if in.Dash {
		w.Player.Dash(w)
	}
}
