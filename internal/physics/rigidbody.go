package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Angular speeds below this skip the orientation update entirely.
const angularEpsilon = 1e-6

// RigidBody couples a ConvexShape to mass, per-tick linear and angular
// velocity, and a simplified diagonal inertia tensor. Velocities are
// per-tick deltas: there is no dt anywhere, the fixed-timestep loop is the
// unit of time.
//
// A Mass of zero or less marks the body immovable: forces, impulses and
// Update are all no-ops for it.
type RigidBody struct {
	Shape           *ConvexShape
	Mass            float32
	InvMass         float32
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3
	Inertia         rl.Vector3
	InvInertia      rl.Vector3

	// Motion, when set, overwrites the velocities each tick before
	// integration. Scripted platform motion is layered this way instead
	// of through subclassing or callbacks.
	Motion MotionProgram
}

// NewRigidBody wraps shape with mass-dependent state. The inertia tensor is
// the solid-sphere approximation I = 0.4·m·r² on the shape's local bounding
// radius, applied per axis.
func NewRigidBody(shape *ConvexShape, mass float32) *RigidBody {
	b := &RigidBody{Shape: shape, Mass: mass}
	if mass > 0 {
		b.InvMass = 1 / mass
		i := 0.4 * mass * shape.localRadius * shape.localRadius
		b.Inertia = rl.Vector3{X: i, Y: i, Z: i}
		if i > 0 {
			inv := 1 / i
			b.InvInertia = rl.Vector3{X: inv, Y: inv, Z: inv}
		}
	}
	return b
}

// Position returns the body's placement, which lives on its shape.
func (b *RigidBody) Position() rl.Vector3 {
	return b.Shape.Position
}

// ApplyForce adds an already-tick-scaled force at a world-space point,
// normalized by mass and inertia. No-op on immovable bodies.
func (b *RigidBody) ApplyForce(force, point rl.Vector3) {
	if b.InvMass == 0 {
		return
	}
	b.Velocity = rl.Vector3Add(b.Velocity, rl.Vector3Scale(force, b.InvMass))
	torque := rl.Vector3CrossProduct(rl.Vector3Subtract(point, b.Shape.Position), force)
	b.AngularVelocity = rl.Vector3Add(b.AngularVelocity, rl.Vector3{
		X: torque.X * b.InvInertia.X,
		Y: torque.Y * b.InvInertia.Y,
		Z: torque.Z * b.InvInertia.Z,
	})
}

// ApplyImpulse adds a single-step velocity change at a world-space point.
// Unlike ApplyForce the linear part is not mass-normalized; the angular
// part still goes through the inertia tensor to become an angular velocity.
func (b *RigidBody) ApplyImpulse(impulse, point rl.Vector3) {
	if b.InvMass == 0 {
		return
	}
	b.Velocity = rl.Vector3Add(b.Velocity, impulse)
	torque := rl.Vector3CrossProduct(rl.Vector3Subtract(point, b.Shape.Position), impulse)
	b.AngularVelocity = rl.Vector3Add(b.AngularVelocity, rl.Vector3{
		X: torque.X * b.InvInertia.X,
		Y: torque.Y * b.InvInertia.Y,
		Z: torque.Z * b.InvInertia.Z,
	})
}

// VelocityAt returns the body's velocity at a world-space point:
// V + ω × (point − position). Collision resolution uses it to carry
// particles standing on moving platforms.
func (b *RigidBody) VelocityAt(point rl.Vector3) rl.Vector3 {
	r := rl.Vector3Subtract(point, b.Shape.Position)
	return rl.Vector3Add(b.Velocity, rl.Vector3CrossProduct(b.AngularVelocity, r))
}

// Step runs the motion program for this tick, then integrates.
func (b *RigidBody) Step(tick int) {
	b.Motion.Apply(tick, b)
	b.Update()
}

// Update integrates one tick of motion and refreshes the shape transform.
func (b *RigidBody) Update() {
	if b.InvMass == 0 {
		return
	}
	b.Shape.Position = rl.Vector3Add(b.Shape.Position, b.Velocity)

	w := b.AngularVelocity
	mag := rl.Vector3Length(w)
	if mag > angularEpsilon && !math32.IsNaN(mag) {
		axis := rl.Vector3Scale(w, 1/mag)
		spin := rl.QuaternionFromAxisAngle(axis, mag)
		// Renormalize to keep float drift from denormalizing the
		// orientation over long runs.
		b.Shape.Orientation = rl.QuaternionNormalize(rl.QuaternionMultiply(spin, b.Shape.Orientation))
	}
	b.Shape.UpdateTransform()
}
