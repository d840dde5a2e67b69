package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Ropes relax their distance constraints this many passes per tick. Unlike
// the character skeleton a rope has no stabilizing forces of its own, so
// without the passes it stretches without bound.
const RopeRelaxIterations = 2

const (
	ropeAirFriction    = 0.99
	ropeParticleRadius = 0.1
)

// Rope is a Verlet chain pinned at FixedPoint at index 0 with a free end at
// the last particle. The pin is not simulated: it is rewritten after every
// integration and relaxation pass.
type Rope struct {
	Body          *VerletBody
	FixedPoint    rl.Vector3
	SegmentLength float32
}

// NewRope builds a chain hanging straight down from start, split into the
// given number of segments. Segments are clamped to at least 1.
func NewRope(start rl.Vector3, length float32, segments int) *Rope {
	if segments < 1 {
		segments = 1
	}
	r := &Rope{
		Body:          NewVerletBody(ropeAirFriction),
		FixedPoint:    start,
		SegmentLength: length / float32(segments),
	}
	for i := 0; i <= segments; i++ {
		pos := rl.Vector3{X: start.X, Y: start.Y - float32(i)*r.SegmentLength, Z: start.Z}
		r.Body.AddParticle(pos, ropeParticleRadius)
		if i > 0 {
			r.Body.AddConstraint(i-1, i)
		}
	}
	return r
}

// EndPosition returns the free end of the chain.
func (r *Rope) EndPosition() rl.Vector3 {
	return r.Body.Particles[len(r.Body.Particles)-1].Position
}

// EndParticle exposes the free-end particle for grab coupling.
func (r *Rope) EndParticle() *Particle {
	return r.Body.Particles[len(r.Body.Particles)-1]
}

// ApplyForceToEnd adds an impulse to the free end, consumed by the next
// Update. Holders feed spring and steering forces through this.
func (r *Rope) ApplyForceToEnd(v rl.Vector3) {
	r.EndParticle().ApplyImpulse(v)
}

// Update applies gravity to the chain, integrates, and relaxes the
// constraints, keeping the anchor pinned throughout.
func (r *Rope) Update(gravity rl.Vector3) {
	for i := 1; i < len(r.Body.Particles); i++ {
		r.Body.Particles[i].ApplyImpulse(gravity)
	}
	r.Body.Update()
	r.pin()
	for i := 0; i < RopeRelaxIterations; i++ {
		r.Body.RelaxConstraints(1)
		r.pin()
	}
}

func (r *Rope) pin() {
	r.Body.Particles[0].MoveTo(r.FixedPoint)
}
