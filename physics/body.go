package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/common"
	"github.com/milk9111/blockjumper/component"
)

const (
	// Gravity is added to the vertical velocity every tick.
	Gravity = 0.1
	// TerminalVelocity caps the fall speed.
	TerminalVelocity = 5.0
)

// SolidQuery supplies the solid rectangles near a pixel position.
type SolidQuery interface {
	PhysicsRectsNear(p cp.Vector) []common.Rect
}

// Collisions records which sides of a body hit something during the last
// Move. All flags are cleared at the start of every Move.
type Collisions struct {
	Up, Down, Left, Right bool
}

// Horizontal reports a wall contact on either side.
func (c Collisions) Horizontal() bool { return c.Left || c.Right }

// Vertical reports a floor or ceiling contact.
func (c Collisions) Vertical() bool { return c.Up || c.Down }

// Body is the movable part shared by every entity: a box with a velocity
// that collides with the tile grid.
type Body struct {
	Pos        cp.Vector
	Size       cp.Vector
	Velocity   cp.Vector
	Collisions Collisions
	// Flip is true when the body faces left.
	Flip         bool
	LastMovement cp.Vector
	Animator     component.Animator
}

func NewBody(lib *component.Library, kind string, pos, size cp.Vector) Body {
	return Body{
		Pos:      pos,
		Size:     size,
		Animator: component.NewAnimator(lib, kind, "idle"),
	}
}

// Rect returns the body's bounding box.
func (b *Body) Rect() common.Rect {
	return common.NewRect(b.Pos, b.Size)
}

// Move integrates one tick: the requested movement plus the current
// velocity is applied one axis at a time and clamped against the solid
// tiles around the body, then gravity is applied and the animation
// advances.
func (b *Body) Move(solids SolidQuery, movement cp.Vector) {
	b.Collisions = Collisions{}

	frame := movement.Add(b.Velocity)
	b.moveX(solids, frame.X)
	b.moveY(solids, frame.Y)

	if movement.X > 0 {
		b.Flip = false
	} else if movement.X < 0 {
		b.Flip = true
	}
	b.LastMovement = movement

	b.Velocity.Y = math.Min(TerminalVelocity, b.Velocity.Y+Gravity)
	if b.Collisions.Vertical() {
		b.Velocity.Y = 0
	}

	b.Animator.Update()
}

func (b *Body) moveX(solids SolidQuery, dx float64) {
	b.Pos.X += dx
	if solids == nil {
		return
	}
	r := b.Rect()
	for _, obstacle := range solids.PhysicsRectsNear(b.Pos) {
		if !r.Intersects(obstacle) {
			continue
		}
		if dx > 0 {
			r.X = obstacle.Left() - r.Width
			b.Collisions.Right = true
		}
		if dx < 0 {
			r.X = obstacle.Right()
			b.Collisions.Left = true
		}
		b.Pos.X = r.X
	}
}

func (b *Body) moveY(solids SolidQuery, dy float64) {
	b.Pos.Y += dy
	if solids == nil {
		return
	}
	r := b.Rect()
	for _, obstacle := range solids.PhysicsRectsNear(b.Pos) {
		if !r.Intersects(obstacle) {
			continue
		}
		if dy > 0 {
			r.Y = obstacle.Top() - r.Height
			b.Collisions.Down = true
		}
		if dy < 0 {
			r.Y = obstacle.Bottom()
			b.Collisions.Up = true
		}
		b.Pos.Y = r.Y
	}
}
