package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ConvexShape is an immutable local-space convex polytope (vertex list plus
// face index loops) with a mutable affine placement. Faces must be planar,
// convex, wound counter-clockwise when viewed from outside, and must enclose
// a convex volume; the engine does not validate this, it is an authoring
// invariant of the level data.
//
// After mutating Position, Orientation, or Scaling, UpdateTransform must be
// called before any collision query. That call is the single sync point
// between authoring state and query-ready state.
type ConvexShape struct {
	LocalPoints []rl.Vector3
	Faces       [][]int

	Position    rl.Vector3
	Orientation rl.Quaternion
	Scaling     rl.Vector3

	// Derived, valid after UpdateTransform.
	worldPoints  []rl.Vector3
	worldNormals []rl.Vector3
	boundCenter  rl.Vector3
	boundRadius  float32

	localCenter rl.Vector3
	localRadius float32
}

// NewConvexShape builds a shape from authored points and faces and computes
// its transform at the origin with identity orientation and unit scale.
func NewConvexShape(points []rl.Vector3, faces [][]int) *ConvexShape {
	s := &ConvexShape{
		LocalPoints: points,
		Faces:       faces,
		Orientation: rl.QuaternionIdentity(),
		Scaling:     rl.Vector3{X: 1, Y: 1, Z: 1},
	}
	s.computeLocalBounds()
	s.worldPoints = make([]rl.Vector3, len(points))
	s.worldNormals = make([]rl.Vector3, len(faces))
	s.UpdateTransform()
	return s
}

// NewBox builds an axis-aligned box polytope spanning min..max in local
// space. This is just a constructor: the result is an ordinary 8-point,
// 6-face ConvexShape with no special collision path.
func NewBox(min, max rl.Vector3) *ConvexShape {
	points := []rl.Vector3{
		{X: min.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: min.Y, Z: min.Z},
		{X: max.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: max.Y, Z: min.Z},
		{X: min.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: min.Y, Z: max.Z},
		{X: max.X, Y: max.Y, Z: max.Z},
		{X: min.X, Y: max.Y, Z: max.Z},
	}
	return NewConvexShape(points, boxFaces())
}

// boxFaces is the face table shared by NewBox and NewBeam: outward-facing
// CCW loops for the 8-corner layout used by both.
func boxFaces() [][]int {
	return [][]int{
		{0, 3, 2, 1}, // -Z
		{4, 5, 6, 7}, // +Z
		{0, 4, 7, 3}, // -X
		{1, 2, 6, 5}, // +X
		{0, 1, 5, 4}, // -Y
		{3, 7, 6, 2}, // +Y
	}
}

// NewBeam builds a box polytope running from start to end with the given
// cross-section, with its placement at the segment midpoint. The corner
// points are baked into local space, so like NewBox this produces a plain
// points+faces shape.
func NewBeam(start, end rl.Vector3, width, height float32) *ConvexShape {
	axis := rl.Vector3Subtract(end, start)
	length := rl.Vector3Length(axis)
	forward := rl.Vector3{X: 0, Y: 0, Z: 1}
	if length > 1e-6 {
		forward = rl.Vector3Scale(axis, 1/length)
	}

	up := rl.Vector3{X: 0, Y: 1, Z: 0}
	if math32.Abs(rl.Vector3DotProduct(up, forward)) > 0.999 {
		up = rl.Vector3{X: 1, Y: 0, Z: 0}
	}
	side := rl.Vector3Normalize(rl.Vector3CrossProduct(up, forward))
	up = rl.Vector3CrossProduct(forward, side)

	hw, hh, hl := width/2, height/2, length/2
	corner := func(sx, sy, sz float32) rl.Vector3 {
		p := rl.Vector3Scale(side, sx*hw)
		p = rl.Vector3Add(p, rl.Vector3Scale(up, sy*hh))
		return rl.Vector3Add(p, rl.Vector3Scale(forward, sz*hl))
	}
	points := []rl.Vector3{
		corner(-1, -1, -1),
		corner(1, -1, -1),
		corner(1, 1, -1),
		corner(-1, 1, -1),
		corner(-1, -1, 1),
		corner(1, -1, 1),
		corner(1, 1, 1),
		corner(-1, 1, 1),
	}

	s := NewConvexShape(points, boxFaces())
	s.Position = rl.Vector3Scale(rl.Vector3Add(start, end), 0.5)
	s.UpdateTransform()
	return s
}

// computeLocalBounds caches the local bounding sphere: centroid of the
// points plus the max distance to any of them.
func (s *ConvexShape) computeLocalBounds() {
	if len(s.LocalPoints) == 0 {
		return
	}
	var sum rl.Vector3
	for _, p := range s.LocalPoints {
		sum = rl.Vector3Add(sum, p)
	}
	s.localCenter = rl.Vector3Scale(sum, 1/float32(len(s.LocalPoints)))
	var max float32
	for _, p := range s.LocalPoints {
		d := rl.Vector3Length(rl.Vector3Subtract(p, s.localCenter))
		if d > max {
			max = d
		}
	}
	s.localRadius = max
}

// UpdateTransform recomputes world-space points, face normals, and the
// bounding sphere from the current placement.
func (s *ConvexShape) UpdateTransform() {
	for i, p := range s.LocalPoints {
		scaled := rl.Vector3{X: p.X * s.Scaling.X, Y: p.Y * s.Scaling.Y, Z: p.Z * s.Scaling.Z}
		s.worldPoints[i] = rl.Vector3Add(rl.Vector3RotateByQuaternion(scaled, s.Orientation), s.Position)
	}
	for i, face := range s.Faces {
		if len(face) < 3 {
			s.worldNormals[i] = rl.Vector3{}
			continue
		}
		e1 := rl.Vector3Subtract(s.worldPoints[face[1]], s.worldPoints[face[0]])
		e2 := rl.Vector3Subtract(s.worldPoints[face[2]], s.worldPoints[face[0]])
		n := rl.Vector3CrossProduct(e1, e2)
		length := rl.Vector3Length(n)
		if length < 1e-9 {
			// Degenerate face: leave a zero normal, the query skips it.
			s.worldNormals[i] = rl.Vector3{}
			continue
		}
		s.worldNormals[i] = rl.Vector3Scale(n, 1/length)
	}

	// Bounding sphere straight from the world points; vertex counts are
	// small so this beats tracking scale factors analytically.
	scaledCenter := rl.Vector3{
		X: s.localCenter.X * s.Scaling.X,
		Y: s.localCenter.Y * s.Scaling.Y,
		Z: s.localCenter.Z * s.Scaling.Z,
	}
	s.boundCenter = rl.Vector3Add(rl.Vector3RotateByQuaternion(scaledCenter, s.Orientation), s.Position)
	var max float32
	for _, p := range s.worldPoints {
		d := rl.Vector3Length(rl.Vector3Subtract(p, s.boundCenter))
		if d > max {
			max = d
		}
	}
	s.boundRadius = max
}

// BoundingSphere returns the cached world-space bounding sphere.
func (s *ConvexShape) BoundingSphere() (rl.Vector3, float32) {
	return s.boundCenter, s.boundRadius
}

// WorldPoints exposes the transformed vertices (for rendering sync and
// tests); callers must not mutate the slice.
func (s *ConvexShape) WorldPoints() []rl.Vector3 {
	return s.worldPoints
}

// FaceNormal returns the world-space outward normal of face i.
func (s *ConvexShape) FaceNormal(i int) rl.Vector3 {
	return s.worldNormals[i]
}

// CollideWithSphere tests the sphere against the convex solid and returns
// the minimum translation vector that separates it, or false when there is
// no collision.
//
// Every face is treated as a separating-plane candidate: a signed distance
// of at least radius along any outward normal proves separation. Otherwise
// the sphere overlaps every half-space and the face with the shallowest
// penetration (largest signed distance) provides the push-out axis; the MTV
// moves the center until it sits exactly radius away from that face plane.
// A center exactly on a face plane still resolves through the same rule,
// ties going to the earliest face in authoring order.
func (s *ConvexShape) CollideWithSphere(center rl.Vector3, radius float32) (rl.Vector3, bool) {
	diff := rl.Vector3Subtract(center, s.boundCenter)
	if rl.Vector3Length(diff) > s.boundRadius+radius {
		return rl.Vector3{}, false
	}

	best := -1
	bestDist := float32(-math32.MaxFloat32)
	for i, face := range s.Faces {
		n := s.worldNormals[i]
		if n.X == 0 && n.Y == 0 && n.Z == 0 {
			continue
		}
		d := rl.Vector3DotProduct(n, rl.Vector3Subtract(center, s.worldPoints[face[0]]))
		if d >= radius {
			return rl.Vector3{}, false
		}
		if d > bestDist {
			bestDist = d
			best = i
		}
	}
	if best < 0 {
		return rl.Vector3{}, false
	}

	mtv := rl.Vector3Scale(s.worldNormals[best], radius-bestDist)
	if math32.IsNaN(mtv.X) || math32.IsNaN(mtv.Y) || math32.IsNaN(mtv.Z) {
		// Verlet integration cannot reject a bad position after the fact,
		// so a corrupt MTV is dropped here instead of propagating.
		return rl.Vector3{}, false
	}
	return mtv, true
}
