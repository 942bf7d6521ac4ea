package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func NewRect(pos, size cp.Vector) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.X, Height: size.Y}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

func (r Rect) CenterX() float64 { return r.X + r.Width/2 }
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.CenterX(), Y: r.CenterY()}
}

// Intersects reports a strict overlap; rectangles sharing only an edge do
// not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Contains reports whether the point lies inside the rectangle, including
// the top-left edges and excluding the bottom-right ones.
func (r Rect) Contains(p cp.Vector) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}
