package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MinParticleRadius is the smallest radius a particle may have. Radii at or
// below zero are degenerate (the collision query would always miss), so
// construction clamps instead of failing later.
const MinParticleRadius = 0.05

// Particle is a point mass integrated with Verlet integration. There is no
// stored velocity: the velocity is implied by Position - PrevPosition, and
// all impulse and collision math in this package relies on that.
type Particle struct {
	Position     rl.Vector3
	PrevPosition rl.Vector3
	Radius       float32
}

// NewParticle creates a particle at rest at pos.
func NewParticle(pos rl.Vector3, radius float32) *Particle {
	if radius < MinParticleRadius {
		radius = MinParticleRadius
	}
	return &Particle{
		Position:     pos,
		PrevPosition: pos,
		Radius:       radius,
	}
}

// Velocity returns the implied per-tick velocity.
func (p *Particle) Velocity() rl.Vector3 {
	return rl.Vector3Subtract(p.Position, p.PrevPosition)
}

// ApplyImpulse shifts Position only, which adds v to the implied velocity
// consumed by the next integration step.
func (p *Particle) ApplyImpulse(v rl.Vector3) {
	p.Position = rl.Vector3Add(p.Position, v)
}

// SetVelocity rewrites PrevPosition so the implied velocity becomes v.
// Collision resolution uses this to encode post-contact velocities.
func (p *Particle) SetVelocity(v rl.Vector3) {
	p.PrevPosition = rl.Vector3Subtract(p.Position, v)
}

// MoveTo teleports the particle, zeroing its implied velocity.
func (p *Particle) MoveTo(pos rl.Vector3) {
	p.Position = pos
	p.PrevPosition = pos
}

// Constraint is a rest-length link between two particles of the same
// VerletBody, stored as indices into the body's particle list.
type Constraint struct {
	A, B       int
	RestLength float32
}
