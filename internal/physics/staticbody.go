package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// StaticBody is an immovable collision target: level geometry. It has no
// mass, no update, and exists only to be queried.
type StaticBody struct {
	Shape *ConvexShape

	// Friction is the fraction of tangential velocity a particle keeps
	// after sliding contact, in [0,1]. Zero means the surface grips
	// completely, one means frictionless. Negative values mean "use the
	// level default".
	Friction float32
}

func NewStaticBody(shape *ConvexShape) *StaticBody {
	return &StaticBody{Shape: shape, Friction: -1}
}

// CollideWithSphere forwards to the shape.
func (s *StaticBody) CollideWithSphere(center rl.Vector3, radius float32) (rl.Vector3, bool) {
	return s.Shape.CollideWithSphere(center, radius)
}
