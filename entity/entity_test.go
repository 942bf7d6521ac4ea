package entity

import (
	"image"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/component"
	"github.com/milk9111/blockjumper/tilemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawnedProjectile struct {
	pos cp.Vector
	vx  float64
}

// recorder is an Effects that remembers everything spawned.
type recorder struct {
	rng         *rand.Rand
	projectiles []spawnedProjectile
	embers      int
	particles   int
	shakes      []int
	sounds      []Sound
}

func newRecorder() *recorder {
	return &recorder{rng: rand.New(rand.NewPCG(1, 2))}
}

func (r *recorder) SpawnProjectile(pos cp.Vector, vx float64) {
	r.projectiles = append(r.projectiles, spawnedProjectile{pos: pos, vx: vx})
}
func (r *recorder) SpawnEmber(cp.Vector, float64, float64) { r.embers++ }
func (r *recorder) SpawnParticle(string, cp.Vector, cp.Vector, int) { r.particles++ }
func (r *recorder) Shake(amount int) { r.shakes = append(r.shakes, amount) }
func (r *recorder) Play(s Sound) { r.sounds = append(r.sounds, s) }
func (r *recorder) Rand() *rand.Rand { return r.rng }

func stone(m *tilemap.Map, x, y int) {
	m.Set(tilemap.Tile{Type: tilemap.TypeStone, Pos: tilemap.Pos(float64(x), float64(y))})
}

// floorMap has a stone floor along cell row 2, from cell x0 to x1.
func floorMap(x0, x1 int) *tilemap.Map {
	m := tilemap.New(16)
	for x := x0; x <= x1; x++ {
		stone(m, x, 2)
	}
	return m
}

func settle(t *testing.T, p *Player, m *tilemap.Map, fx Effects) {
	t.Helper()
	for i := 0; i < 10; i++ {
		p.Update(m, cp.Vector{}, fx)
		if p.Collisions.Down {
			return
		}
	}
	t.Fatal("player never landed")
}

func TestPlayerJump(t *testing.T) {
	m := floorMap(-2, 5)
	fx := newRecorder()
	p := NewPlayer(nil, cp.Vector{X: 16, Y: 17}, DefaultTuning().Player)
	settle(t, p, m, fx)

	assert.Equal(t, 0, p.AirTime)
	assert.Equal(t, 1, p.Jumps)
	assert.Equal(t, "idle", p.State())

	require.True(t, p.Jump())
	assert.Equal(t, -3.0, p.Velocity.Y)
	assert.Equal(t, 0, p.Jumps)
	assert.Equal(t, 5, p.AirTime)
	assert.False(t, p.Jump(), "no jumps left in the air")

	p.Update(m, cp.Vector{}, fx)
	assert.Less(t, p.Pos.Y, 17.0)
	assert.Equal(t, "jump", p.State())
}

func TestPlayerRunState(t *testing.T) {
	m := floorMap(-2, 8)
	p := NewPlayer(nil, cp.Vector{X: 16, Y: 17}, DefaultTuning().Player)
	settle(t, p, m, nil)

	p.Update(m, cp.Vector{X: 1}, nil)
	assert.Equal(t, "run", p.State())
	assert.False(t, p.Flip)

	p.Update(m, cp.Vector{X: -1}, nil)
	assert.True(t, p.Flip, "moving left faces left")
}

func TestPlayerWallSlideAndWallJump(t *testing.T) {
	m := tilemap.New(16)
	for y := 0; y <= 3; y++ {
		stone(m, 2, y)
	}
	p := NewPlayer(nil, cp.Vector{X: 24, Y: 10}, DefaultTuning().Player)

	for i := 0; i < 6; i++ {
		p.Update(m, cp.Vector{X: 1}, nil)
	}
	require.True(t, p.WallSlide)
	assert.Equal(t, "wall_slide", p.State())
	assert.LessOrEqual(t, p.Velocity.Y, 0.5+1e-9)
	assert.False(t, p.Flip, "sliding down a wall on the right faces right")

	require.True(t, p.Jump())
	assert.Equal(t, -3.5, p.Velocity.X, "kicked away from the wall")
	assert.Equal(t, -2.5, p.Velocity.Y)
	assert.Equal(t, 5, p.AirTime)
	assert.Equal(t, 0, p.Jumps)
}

func TestPlayerWallJumpNeedsPushIntoWall(t *testing.T) {
	p := NewPlayer(nil, cp.Vector{}, DefaultTuning().Player)
	p.WallSlide = true
	p.LastMovement = cp.Vector{}
	assert.False(t, p.Jump())
	assert.Equal(t, 0.0, p.Velocity.Y)
}

func TestPlayerDash(t *testing.T) {
	fx := newRecorder()
	p := NewPlayer(nil, cp.Vector{}, DefaultTuning().Player)

	require.True(t, p.Dash(fx))
	assert.Equal(t, 60, p.Dashing)
	assert.Equal(t, []Sound{SoundDash}, fx.sounds)
	assert.Equal(t, 20, fx.particles, "dash start burst")
	assert.False(t, p.Dash(fx), "dash already running")
	assert.False(t, p.Visible())

	var bursts []int
	for tick := 1; tick <= 10; tick++ {
		before := fx.particles
		p.Update(nil, cp.Vector{}, fx)
		if fx.particles-before >= 20 {
			bursts = append(bursts, tick)
		}
		if tick == 1 {
			assert.InDelta(t, 7.9, p.Velocity.X, 1e-9, "full dash speed less drag")
		}
		if tick == 9 {
			assert.InDelta(t, 0.7, p.Velocity.X, 1e-9, "last fast tick is scaled down")
		}
	}
	assert.Equal(t, 50, p.Dashing)
	assert.Equal(t, []int{10}, bursts, "exactly one burst when the dash slows")
	assert.True(t, p.Visible())

	for i := 0; i < 50; i++ {
		p.Update(nil, cp.Vector{}, fx)
	}
	assert.Equal(t, 0, p.Dashing)
	assert.True(t, p.Dash(fx))
}

func TestPlayerDashLeft(t *testing.T) {
	fx := newRecorder()
	p := NewPlayer(nil, cp.Vector{}, DefaultTuning().Player)
	p.Flip = true
	require.True(t, p.Dash(fx))
	assert.Equal(t, -60, p.Dashing)
	p.Update(nil, cp.Vector{}, fx)
	assert.Equal(t, -59, p.Dashing)
	assert.Less(t, p.Velocity.X, 0.0)
	assert.Equal(t, 59, p.DashMagnitude())
}

func TestPlayerFallsToDeath(t *testing.T) {
	p := NewPlayer(nil, cp.Vector{}, DefaultTuning().Player)
	var fellAt int
	for tick := 1; tick <= 200 && fellAt == 0; tick++ {
		if p.Update(nil, cp.Vector{}, nil) {
			fellAt = tick
		}
	}
	assert.Equal(t, 121, fellAt)
}

func TestPlayerRespawn(t *testing.T) {
	p := NewPlayer(nil, cp.Vector{}, DefaultTuning().Player)
	p.Velocity = cp.Vector{X: 3, Y: 4}
	p.AirTime = 50
	p.Dashing = 20
	p.Jumps = 0
	p.Respawn(cp.Vector{X: 10, Y: 20})
	assert.Equal(t, cp.Vector{X: 10, Y: 20}, p.Pos)
	assert.Equal(t, cp.Vector{}, p.Velocity)
	assert.Equal(t, 0, p.AirTime)
	assert.Equal(t, 0, p.Dashing)
	assert.Equal(t, 1, p.Jumps)
}

func TestEnemyFire(t *testing.T) {
	tests := []struct {
		name   string
		target cp.Vector
		flip   bool
		fires  bool
		vx     float64
	}{
		{name: "in_front", target: cp.Vector{X: 60, Y: 17}, fires: true, vx: 1.5},
		{name: "facing_left", target: cp.Vector{X: -30, Y: 17}, flip: true, fires: true, vx: -1.5},
		{name: "behind", target: cp.Vector{X: -30, Y: 17}},
		{name: "above", target: cp.Vector{X: 60, Y: -20}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fx := newRecorder()
			e := NewEnemy(nil, cp.Vector{X: 16, Y: 17}, DefaultTuning().Enemy)
			e.Flip = tc.flip
			player := NewPlayer(nil, tc.target, DefaultTuning().Player)

			assert.Equal(t, tc.fires, e.Fire(player, fx))
			if !tc.fires {
				assert.Empty(t, fx.projectiles)
				assert.Zero(t, fx.embers)
				return
			}
			require.Len(t, fx.projectiles, 1)
			assert.Equal(t, tc.vx, fx.projectiles[0].vx)
			assert.InDelta(t, 20+7*math.Copysign(1, tc.vx), fx.projectiles[0].pos.X, 1e-9)
			assert.InDelta(t, 24.5, fx.projectiles[0].pos.Y, 1e-9)
			assert.Equal(t, 4, fx.embers)
			assert.Equal(t, []Sound{SoundShoot}, fx.sounds)
		})
	}
}

func TestEnemyFiresWhenWalkEnds(t *testing.T) {
	m := floorMap(-2, 8)
	fx := newRecorder()
	e := NewEnemy(nil, cp.Vector{X: 16, Y: 17}, DefaultTuning().Enemy)
	e.Walking = 2
	player := NewPlayer(nil, cp.Vector{X: 80, Y: 17}, DefaultTuning().Player)

	assert.False(t, e.Update(m, player, fx))
	assert.Empty(t, fx.projectiles, "still walking")
	assert.Equal(t, 16.5, e.Pos.X)
	assert.Equal(t, "run", e.Animator.Action)

	e.Update(m, player, fx)
	assert.Equal(t, 0, e.Walking)
	assert.Len(t, fx.projectiles, 1)
}

func TestEnemyTurnsAtLedge(t *testing.T) {
	m := floorMap(0, 1)
	e := NewEnemy(nil, cp.Vector{X: 20, Y: 17}, DefaultTuning().Enemy)
	e.Walking = 5

	// probe at center 24 + 7 = 31 is still over the floor.
	e.Update(m, nil, nil)
	assert.False(t, e.Flip)

	e.Pos.X = 26
	e.Update(m, nil, nil)
	assert.True(t, e.Flip, "no ground ahead")
	assert.Equal(t, 26.0, e.Pos.X, "turning takes a tick")
}

func TestEnemyQuietWithoutPlayerInSight(t *testing.T) {
	m := floorMap(-5, 10)
	fx := newRecorder()
	e := NewEnemy(nil, cp.Vector{X: 16, Y: 17}, DefaultTuning().Enemy)
	player := NewPlayer(nil, cp.Vector{X: 16, Y: -200}, DefaultTuning().Player)

	walked := false
	for i := 0; i < 2000; i++ {
		e.Update(m, player, fx)
		walked = walked || e.Walking > 0
	}
	assert.True(t, walked, "enemy wanders")
	assert.Empty(t, fx.projectiles)
}

func TestEnemyInvertedWalkRange(t *testing.T) {
	m := floorMap(-5, 10)
	fx := newRecorder()
	tuning := DefaultTuning().Enemy
	tuning.WanderChance = 1
	tuning.WalkMinTicks = 60
	tuning.WalkMaxTicks = 30
	e := NewEnemy(nil, cp.Vector{X: 16, Y: 17}, tuning)

	assert.NotPanics(t, func() { e.Update(m, nil, fx) })
	assert.Equal(t, 60, e.Walking, "an inverted range collapses to its minimum")
}

func TestTuningValidate(t *testing.T) {
	assert.NoError(t, DefaultTuning().Validate())

	tests := []struct {
		name   string
		modify func(*Tuning)
	}{
		{"inverted walk range", func(tu *Tuning) { tu.Enemy.WalkMaxTicks = tu.Enemy.WalkMinTicks - 1 }},
		{"negative walk min", func(tu *Tuning) { tu.Enemy.WalkMinTicks = -1 }},
		{"negative jumps", func(tu *Tuning) { tu.Player.MaxJumps = -1 }},
		{"dash tail longer than dash", func(tu *Tuning) { tu.Player.DashTailTicks = tu.Player.DashTicks + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := DefaultTuning()
			tt.modify(&tu)
			assert.Error(t, tu.Validate())
		})
	}
}

func TestEnemyKilledByDash(t *testing.T) {
	fx := newRecorder()
	e := NewEnemy(nil, cp.Vector{X: 16, Y: 17}, DefaultTuning().Enemy)
	player := NewPlayer(nil, cp.Vector{X: 18, Y: 17}, DefaultTuning().Player)

	assert.False(t, e.Update(nil, player, fx), "touching without dashing")

	e.Pos = cp.Vector{X: 16, Y: 17}
	player.Dashing = 55
	require.True(t, e.Update(nil, player, fx))
	assert.Equal(t, []int{16}, fx.shakes)
	assert.Contains(t, fx.sounds, SoundHit)
	assert.Equal(t, 32, fx.embers)
	assert.Equal(t, 30, fx.particles)
}

func TestProjectile(t *testing.T) {
	tuning := DefaultTuning().Projectile

	t.Run("hits_wall", func(t *testing.T) {
		m := tilemap.New(16)
		stone(m, 1, 0)
		fx := newRecorder()
		p := &Projectile{Pos: cp.Vector{X: 15, Y: 8}, VX: 1.5}
		assert.Equal(t, ProjectileHitWall, p.Update(m, nil, tuning, fx))
		assert.Equal(t, 4, fx.embers)
	})

	t.Run("expires", func(t *testing.T) {
		p := &Projectile{VX: 1.5}
		var res ProjectileResult
		ticks := 0
		for res == ProjectileFlying {
			res = p.Update(nil, nil, tuning, nil)
			ticks++
		}
		assert.Equal(t, ProjectileExpired, res)
		assert.Equal(t, 361, ticks)
	})

	t.Run("hits_player", func(t *testing.T) {
		fx := newRecorder()
		player := NewPlayer(nil, cp.Vector{X: 10, Y: 0}, DefaultTuning().Player)
		p := &Projectile{Pos: cp.Vector{X: 9, Y: 5}, VX: 1.5}
		assert.Equal(t, ProjectileHitPlayer, p.Update(nil, player, tuning, fx))
		assert.Equal(t, []int{16}, fx.shakes)
		assert.Equal(t, 30, fx.embers)
	})

	t.Run("passes_dashing_player", func(t *testing.T) {
		player := NewPlayer(nil, cp.Vector{X: 10, Y: 0}, DefaultTuning().Player)
		player.Dashing = -55
		p := &Projectile{Pos: cp.Vector{X: 9, Y: 5}, VX: 1.5}
		assert.Equal(t, ProjectileFlying, p.Update(nil, player, tuning, nil))
	})
}

func TestEmberBurnsOut(t *testing.T) {
	e := &Ember{Angle: 0, Speed: 0.25}
	assert.False(t, e.Update())
	assert.InDelta(t, 0.25, e.Pos.X, 1e-9)
	assert.False(t, e.Update())
	assert.True(t, e.Update())
	assert.Equal(t, 0.0, e.Speed)
}

func TestParticleLifetime(t *testing.T) {
	lib := component.NewLibrary()
	frames := []image.Image{image.NewRGBA(image.Rect(0, 0, 1, 1)), image.NewRGBA(image.Rect(0, 0, 1, 1))}
	lib.Register(component.Key("particle", ParticleDust), component.NewClip(frames, 2, false))

	p := NewParticle(lib, ParticleDust, cp.Vector{}, cp.Vector{X: 1}, 0)
	removed := 0
	for i := 1; i <= 10 && removed == 0; i++ {
		if p.Update() {
			removed = i
		}
	}
	assert.Equal(t, 4, removed, "removed the tick after the last frame")
	assert.Equal(t, 4.0, p.Pos.X)
}

func TestParticleWithoutClip(t *testing.T) {
	p := NewParticle(component.NewLibrary(), ParticleLeaf, cp.Vector{}, cp.Vector{}, 7)
	assert.True(t, p.Update())
}
