package entity

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/blockjumper/component"
)

const (
	leafSwayRate = 0.035
	leafSwayAmp  = 0.3
)

// Particle is a drifting animated sprite that disappears when its
// animation finishes.
type Particle struct {
	Kind     string
	Pos      cp.Vector
	Velocity cp.Vector
	Anim     component.Animation
}

func NewParticle(lib *component.Library, kind string, pos, velocity cp.Vector, frame int) *Particle {
	p := &Particle{
		Kind:     kind,
		Pos:      pos,
		Velocity: velocity,
		Anim:     lib.Animation(component.Key("particle", kind)),
	}
	p.Anim.SetFrame(frame)
	return p
}

// Update advances the particle and reports whether it should be removed.
// A particle is removed on the tick after its animation completes.
func (p *Particle) Update() bool {
	kill := p.Anim.Done()
	p.Pos = p.Pos.Add(p.Velocity)
	p.Anim.Update()
	if p.Kind == ParticleLeaf {
		p.Pos.X += math.Sin(float64(p.Anim.Frame())*leafSwayRate) * leafSwayAmp
	}
	return kill
}
