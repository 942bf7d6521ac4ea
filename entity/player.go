package entity

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/common"
	"github.com/milk9111/blockjumper/component"
	"github.com/milk9111/blockjumper/physics"
)

// PlayerSize is the player's collision box.
var PlayerSize = cp.Vector{X: 8, Y: 15}

// playerState is implemented by each animation state the player can be in.
type playerState interface {
	Name() string
	Enter(p *Player)
	Update(p *Player)
}

type idleState struct{}

func (idleState) Name() string     { return "idle" }
func (idleState) Enter(p *Player)  { p.Animator.SetAction("idle") }
func (idleState) Update(p *Player) {}

type runState struct{}

func (runState) Name() string     { return "run" }
func (runState) Enter(p *Player)  { p.Animator.SetAction("run") }
func (runState) Update(p *Player) {}

type jumpState struct{}

func (jumpState) Name() string     { return "jump" }
func (jumpState) Enter(p *Player)  { p.Animator.SetAction("jump") }
func (jumpState) Update(p *Player) {}

type wallSlideState struct{}

func (wallSlideState) Name() string    { return "wall_slide" }
func (wallSlideState) Enter(p *Player) { p.Animator.SetAction("wall_slide") }
func (wallSlideState) Update(p *Player) {
	p.WallSlide = true
	p.Velocity.Y = math.Min(p.Velocity.Y, p.Tuning.WallSlideSpeed)
	p.Flip = p.Collisions.Left
}

// state singletons
var (
	stateIdle      playerState = &idleState{}
	stateRun       playerState = &runState{}
	stateJump      playerState = &jumpState{}
	stateWallSlide playerState = &wallSlideState{}
)

// Player is the hero: a body with jumping, wall jumping and dashing.
type Player struct {
	physics.Body
	Tuning PlayerTuning

	// AirTime counts ticks since the player last stood on something.
	AirTime int
	Jumps   int
	// Dashing is a signed countdown: positive while dashing right,
	// negative while dashing left, zero when not dashing.
	Dashing   int
	WallSlide bool

	state playerState
}

func NewPlayer(lib *component.Library, pos cp.Vector, tuning PlayerTuning) *Player {
	p := &Player{
		Body:   physics.NewBody(lib, "player", pos, PlayerSize),
		Tuning: tuning,
		Jumps:  tuning.MaxJumps,
		state:  stateIdle,
	}
	p.state.Enter(p)
	return p
}

// State returns the name of the current animation state.
func (p *Player) State() string {
	if p == nil || p.state == nil {
		return ""
	}
	return p.state.Name()
}

func (p *Player) setState(s playerState) {
	if p.state == s {
		return
	}
	p.state = s
	p.state.Enter(p)
}

// Update advances the player one tick. It reports whether the player has
// been airborne long enough to count as fallen off the level.
func (p *Player) Update(terrain physics.SolidQuery, movement cp.Vector, fx Effects) (fell bool) {
	p.Move(terrain, movement)

	p.AirTime++
	if p.AirTime > p.Tuning.FallDeathTicks {
		fell = true
	}
	if p.Collisions.Down {
		p.AirTime = 0
		p.Jumps = p.Tuning.MaxJumps
	}

	p.WallSlide = false
	p.setState(p.nextState(movement))
	p.state.Update(p)

	p.updateDash(fx)

	p.Velocity.X = common.Approach(p.Velocity.X, p.Tuning.HorizontalDrag)
	return fell
}

func (p *Player) nextState(movement cp.Vector) playerState {
	airborne := p.AirTime > p.Tuning.AirGraceTicks
	switch {
	case p.Collisions.Horizontal() && airborne:
		return stateWallSlide
	case airborne:
		return stateJump
	case movement.X != 0:
		return stateRun
	}
	return stateIdle
}

func (p *Player) updateDash(fx Effects) {
	if p.Dashing > 0 {
		p.Dashing--
	} else if p.Dashing < 0 {
		p.Dashing++
	}

	mag := p.DashMagnitude()
	if mag == 0 {
		return
	}
	if mag == p.Tuning.DashTailTicks && fx != nil {
		DustBurst(fx, p.Rect().Center(), p.Tuning.DashBurstCount)
	}
	if mag > p.Tuning.DashTailTicks {
		dir := 1.0
		if p.Dashing < 0 {
			dir = -1
		}
		p.Velocity.X = dir * p.Tuning.DashSpeed
		if mag == p.Tuning.DashTailTicks+1 {
			p.Velocity.X *= p.Tuning.DashExitScale
		}
		if fx != nil {
			trail := cp.Vector{X: dir * fx.Rand().Float64() * 3}
			fx.SpawnParticle(ParticleDust, p.Rect().Center(), trail, fx.Rand().IntN(8))
		}
	}
}

// Jump performs a wall jump while sliding, otherwise a normal jump if one
// is left. It reports whether a jump happened.
func (p *Player) Jump() bool {
	if p.WallSlide {
		switch {
		case p.Flip && p.LastMovement.X < 0:
			p.Velocity.X = p.Tuning.WallJumpPush
		case !p.Flip && p.LastMovement.X > 0:
			p.Velocity.X = -p.Tuning.WallJumpPush
		default:
			return false
		}
		p.Velocity.Y = -p.Tuning.WallJumpSpeed
		p.AirTime = p.Tuning.JumpAirTime
		p.Jumps = max(0, p.Jumps-1)
		return true
	}
	if p.Jumps > 0 {
		p.Velocity.Y = -p.Tuning.JumpSpeed
		p.Jumps--
		p.AirTime = p.Tuning.JumpAirTime
		return true
	}
	return false
}

// Dash starts a dash in the facing direction unless one is already running.
func (p *Player) Dash(fx Effects) bool {
	if p.Dashing != 0 {
		return false
	}
	p.Dashing = p.Tuning.DashTicks
	if p.Flip {
		p.Dashing = -p.Tuning.DashTicks
	}
	if fx != nil {
		fx.Play(SoundDash)
		DustBurst(fx, p.Rect().Center(), p.Tuning.DashBurstCount)
	}
	return true
}

// DashMagnitude is the absolute dash countdown.
func (p *Player) DashMagnitude() int {
	if p.Dashing < 0 {
		return -p.Dashing
	}
	return p.Dashing
}

// Visible is false during the fast part of a dash, when only the trail is
// drawn.
func (p *Player) Visible() bool {
	return p.DashMagnitude() <= p.Tuning.DashTailTicks
}

// Respawn puts the player at pos with no momentum.
func (p *Player) Respawn(pos cp.Vector) {
	p.Pos = pos
	p.Velocity = cp.Vector{}
	p.AirTime = 0
	p.Dashing = 0
	p.Jumps = p.Tuning.MaxJumps
}
