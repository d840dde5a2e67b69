package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MotionKind tags a motion program variant.
type MotionKind string

const (
	MotionNone      MotionKind = ""
	MotionSineWave  MotionKind = "sine"
	MotionOrbit     MotionKind = "orbit"
	MotionPatrol    MotionKind = "patrol"
	MotionSpin      MotionKind = "spin"
	MotionComposite MotionKind = "composite"
)

// MotionProgram is scripted platform motion as data: a pure function of its
// parameters and the tick count, evaluated each tick before integration.
// Keeping it a tagged value instead of a callback keeps levels serializable
// and the simulation reproducible from a tick number.
//
// Parameter meaning by kind:
//
//	sine:   oscillate along Axis; Amplitude world units, Period ticks, Phase radians
//	orbit:  circle of radius Amplitude in the plane perpendicular to Axis,
//	        Period ticks per revolution, Phase radians
//	patrol: ping-pong along Axis from the spawn point out to Amplitude units
//	        at Speed units per tick
//	spin:   constant angular velocity of Speed radians per tick around Axis
//
// Linear kinds derive velocity as offset(tick+1) − offset(tick), so the
// integrated position tracks the analytic curve exactly in the discrete
// timeline.
type MotionProgram struct {
	Kind      MotionKind
	Axis      rl.Vector3
	Amplitude float32
	Period    float32
	Phase     float32
	Speed     float32
	Parts     []MotionProgram
}

// Apply overwrites the body's velocities for this tick. MotionNone leaves
// the body alone so plain dynamic bodies keep their own state.
func (m *MotionProgram) Apply(tick int, b *RigidBody) {
	if m.Kind == MotionNone {
		return
	}
	vel, ang := m.eval(tick)
	b.Velocity = vel
	b.AngularVelocity = ang
}

func (m *MotionProgram) eval(tick int) (rl.Vector3, rl.Vector3) {
	switch m.Kind {
	case MotionSineWave:
		return rl.Vector3Subtract(m.sineOffset(tick+1), m.sineOffset(tick)), rl.Vector3{}
	case MotionOrbit:
		return rl.Vector3Subtract(m.orbitOffset(tick+1), m.orbitOffset(tick)), rl.Vector3{}
	case MotionPatrol:
		return rl.Vector3Subtract(m.patrolOffset(tick+1), m.patrolOffset(tick)), rl.Vector3{}
	case MotionSpin:
		return rl.Vector3{}, rl.Vector3Scale(safeNormalize(m.Axis), m.Speed)
	case MotionComposite:
		var vel, ang rl.Vector3
		for i := range m.Parts {
			v, a := m.Parts[i].eval(tick)
			vel = rl.Vector3Add(vel, v)
			ang = rl.Vector3Add(ang, a)
		}
		return vel, ang
	}
	return rl.Vector3{}, rl.Vector3{}
}

func (m *MotionProgram) sineOffset(tick int) rl.Vector3 {
	if m.Period == 0 {
		return rl.Vector3{}
	}
	theta := 2*math32.Pi*float32(tick)/m.Period + m.Phase
	return rl.Vector3Scale(safeNormalize(m.Axis), m.Amplitude*math32.Sin(theta))
}

func (m *MotionProgram) orbitOffset(tick int) rl.Vector3 {
	if m.Period == 0 {
		return rl.Vector3{}
	}
	u, v := planeBasis(safeNormalize(m.Axis))
	theta := 2*math32.Pi*float32(tick)/m.Period + m.Phase
	off := rl.Vector3Scale(u, m.Amplitude*math32.Cos(theta))
	return rl.Vector3Add(off, rl.Vector3Scale(v, m.Amplitude*math32.Sin(theta)))
}

// patrolOffset is a triangle wave: out Amplitude units and back, reversing
// at the ends. Boundary reversal lives here, in the program, not as a
// positional check on the body.
func (m *MotionProgram) patrolOffset(tick int) rl.Vector3 {
	if m.Amplitude <= 0 || m.Speed == 0 {
		return rl.Vector3{}
	}
	t := math32.Mod(math32.Abs(m.Speed)*float32(tick), 2*m.Amplitude)
	if t > m.Amplitude {
		t = 2*m.Amplitude - t
	}
	return rl.Vector3Scale(safeNormalize(m.Axis), t)
}

func safeNormalize(v rl.Vector3) rl.Vector3 {
	length := rl.Vector3Length(v)
	if length < 1e-9 {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(v, 1/length)
}

// planeBasis returns two orthonormal vectors spanning the plane
// perpendicular to n.
func planeBasis(n rl.Vector3) (rl.Vector3, rl.Vector3) {
	ref := rl.Vector3{Y: 1}
	if math32.Abs(rl.Vector3DotProduct(ref, n)) > 0.999 {
		ref = rl.Vector3{X: 1}
	}
	u := rl.Vector3Normalize(rl.Vector3CrossProduct(ref, n))
	v := rl.Vector3CrossProduct(n, u)
	return u, v
}
