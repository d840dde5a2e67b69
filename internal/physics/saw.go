package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Saw blade discs are approximated by a prism with this many sides. Still a
// plain convex polytope; only the resolution policy differs from platforms.
const sawSides = 8

// DefaultSawKnockback scales the blade's contact-point velocity into the
// ejection velocity written onto a particle that touches it.
const DefaultSawKnockback = 40.0

// Saw is a spinning hazard. Contact is not resolved with friction: the
// particle's implied velocity is overwritten with the blade's contact-point
// velocity scaled by Knockback, throwing the character clear.
type Saw struct {
	Body      *RigidBody
	Knockback float32
}

// NewSaw builds an octagonal disc of the given radius and thickness at
// position, oriented by Euler degrees, spinning around its local Z axis at
// spinSpeed radians per tick.
func NewSaw(position, rotation rl.Vector3, radius, thickness, spinSpeed float32) *Saw {
	ht := thickness / 2
	points := make([]rl.Vector3, 0, sawSides*2)
	for z := 0; z < 2; z++ {
		zs := -ht
		if z == 1 {
			zs = ht
		}
		for i := 0; i < sawSides; i++ {
			theta := 2 * math32.Pi * float32(i) / sawSides
			points = append(points, rl.Vector3{
				X: radius * math32.Cos(theta),
				Y: radius * math32.Sin(theta),
				Z: zs,
			})
		}
	}

	faces := make([][]int, 0, sawSides+2)
	// Near cap (-Z): CCW seen from -Z means winding the ring backwards.
	near := make([]int, sawSides)
	far := make([]int, sawSides)
	for i := 0; i < sawSides; i++ {
		near[i] = sawSides - 1 - i
		far[i] = sawSides + i
	}
	faces = append(faces, near, far)
	for i := 0; i < sawSides; i++ {
		j := (i + 1) % sawSides
		faces = append(faces, []int{i, j, sawSides + j, sawSides + i})
	}

	shape := NewConvexShape(points, faces)
	shape.Position = position
	shape.Orientation = QuaternionFromEulerDegrees(rotation)
	shape.UpdateTransform()

	body := NewRigidBody(shape, 5)
	body.Motion = MotionProgram{
		Kind:  MotionSpin,
		Axis:  rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, shape.Orientation),
		Speed: spinSpeed,
	}
	return &Saw{Body: body, Knockback: DefaultSawKnockback}
}

// Step advances the blade one tick.
func (s *Saw) Step(tick int) {
	s.Body.Step(tick)
}

// EjectionVelocity is the implied velocity written onto a particle touching
// the blade: the blade's surface velocity at the contact point, scaled up.
func (s *Saw) EjectionVelocity(contact rl.Vector3) rl.Vector3 {
	return rl.Vector3Scale(s.Body.VelocityAt(contact), s.Knockback)
}
