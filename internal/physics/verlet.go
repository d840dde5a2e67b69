package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Repulsion between particles of the same body kicks in below this distance.
// A fixed constant rather than sum-of-radii: skeleton particles only vary
// slightly in radius.
const (
	internalCollisionDist = 1.0
	internalCollisionGain = 0.002
)

// VerletBody is an articulated set of particles and distance constraints:
// a character skeleton or a rope chain. Forces are applied to particles
// (via ApplyImpulse) before Update is called; integration then consumes
// them. The body has no built-in gravity.
type VerletBody struct {
	Particles   []*Particle
	Constraints []Constraint

	// AirFriction is the multiplicative per-tick damping on implied
	// velocity, in (0, 1].
	AirFriction float32
}

func NewVerletBody(airFriction float32) *VerletBody {
	if airFriction <= 0 || airFriction > 1 {
		airFriction = 1
	}
	return &VerletBody{AirFriction: airFriction}
}

// AddParticle appends a particle and returns its index.
func (b *VerletBody) AddParticle(pos rl.Vector3, radius float32) int {
	b.Particles = append(b.Particles, NewParticle(pos, radius))
	return len(b.Particles) - 1
}

// AddConstraint links particles a and b with rest length equal to their
// current distance.
func (b *VerletBody) AddConstraint(a, bb int) {
	rest := rl.Vector3Length(rl.Vector3Subtract(b.Particles[bb].Position, b.Particles[a].Position))
	b.Constraints = append(b.Constraints, Constraint{A: a, B: bb, RestLength: rest})
}

// Update advances every particle one tick of damped Verlet integration.
func (b *VerletBody) Update() {
	for _, p := range b.Particles {
		vel := rl.Vector3Scale(rl.Vector3Subtract(p.Position, p.PrevPosition), b.AirFriction)
		p.PrevPosition = p.Position
		p.Position = rl.Vector3Add(p.Position, vel)
	}
}

// HandleInternalCollisions applies equal-and-opposite repulsion impulses to
// every particle pair closer than the fixed threshold. O(n²), which is fine
// for the particle counts this engine works with (a skeleton is ~11
// particles); no spatial structure is warranted.
func (b *VerletBody) HandleInternalCollisions() {
	for i := 0; i < len(b.Particles); i++ {
		for j := i + 1; j < len(b.Particles); j++ {
			pi, pj := b.Particles[i], b.Particles[j]
			diff := rl.Vector3Subtract(pi.Position, pj.Position)
			dist := rl.Vector3Length(diff)
			if dist >= internalCollisionDist || dist < 1e-6 {
				continue
			}
			push := rl.Vector3Scale(diff, (internalCollisionDist-dist)*internalCollisionGain/dist)
			pi.ApplyImpulse(push)
			pj.ApplyImpulse(rl.Vector3Scale(push, -1))
		}
	}
}

// RelaxConstraints runs iters passes of pairwise distance correction,
// moving both endpoints of each constraint halfway toward rest length.
// The character skeleton never calls this (movement forces and repulsion
// keep it coherent); ropes do, to stop runaway stretching.
func (b *VerletBody) RelaxConstraints(iters int) {
	for n := 0; n < iters; n++ {
		for _, c := range b.Constraints {
			pa, pb := b.Particles[c.A], b.Particles[c.B]
			diff := rl.Vector3Subtract(pb.Position, pa.Position)
			dist := rl.Vector3Length(diff)
			if dist < 1e-6 || math32.IsNaN(dist) {
				continue
			}
			corr := rl.Vector3Scale(diff, 0.5*(dist-c.RestLength)/dist)
			pa.Position = rl.Vector3Add(pa.Position, corr)
			pb.Position = rl.Vector3Subtract(pb.Position, corr)
		}
	}
}
