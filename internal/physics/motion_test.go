package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestMotionIsPure(t *testing.T) {
	m := MotionProgram{Kind: MotionSineWave, Axis: rl.Vector3{X: 1}, Amplitude: 3, Period: 120, Phase: 0.5}
	v1, a1 := m.eval(37)
	v2, a2 := m.eval(37)
	if v1 != v2 || a1 != a2 {
		t.Error("Same tick must produce the same velocities")
	}
}

func TestMotionNoneLeavesBodyAlone(t *testing.T) {
	b := unitCubeBody(1)
	b.Velocity = rl.Vector3{X: 0.5}
	var m MotionProgram
	m.Apply(0, b)
	vecNear(t, b.Velocity, rl.Vector3{X: 0.5}, 0, "velocity under MotionNone")
}

func TestSineWaveReturnsToStart(t *testing.T) {
	m := MotionProgram{Kind: MotionSineWave, Axis: rl.Vector3{Y: 1}, Amplitude: 2, Period: 60}
	var pos rl.Vector3
	for tick := 0; tick < 60; tick++ {
		v, _ := m.eval(tick)
		pos = rl.Vector3Add(pos, v)
	}
	vecNear(t, pos, rl.Vector3{}, 1e-3, "net displacement over one period")
}

func TestSineWaveTracksAnalyticCurve(t *testing.T) {
	m := MotionProgram{Kind: MotionSineWave, Axis: rl.Vector3{X: 1}, Amplitude: 2, Period: 48}
	var pos rl.Vector3
	for tick := 0; tick < 13; tick++ {
		v, _ := m.eval(tick)
		pos = rl.Vector3Add(pos, v)
	}
	// Telescoping: integrated position equals offset(13) exactly.
	want := m.sineOffset(13)
	vecNear(t, pos, want, 1e-4, "integrated sine position")
}

func TestPatrolStaysWithinRange(t *testing.T) {
	m := MotionProgram{Kind: MotionPatrol, Axis: rl.Vector3{X: 1}, Amplitude: 5, Speed: 0.3}
	var pos rl.Vector3
	for tick := 0; tick < 500; tick++ {
		v, _ := m.eval(tick)
		pos = rl.Vector3Add(pos, v)
		if pos.X < -0.01 || pos.X > 5.01 {
			t.Fatalf("Patrol left its range at tick %d: %g", tick, pos.X)
		}
	}
}

func TestPatrolReverses(t *testing.T) {
	m := MotionProgram{Kind: MotionPatrol, Axis: rl.Vector3{X: 1}, Amplitude: 1, Speed: 0.25}
	sawPositive, sawNegative := false, false
	for tick := 0; tick < 16; tick++ {
		v, _ := m.eval(tick)
		if v.X > 1e-6 {
			sawPositive = true
		}
		if v.X < -1e-6 {
			sawNegative = true
		}
	}
	if !sawPositive || !sawNegative {
		t.Errorf("Expected patrol to move both ways (pos=%v neg=%v)", sawPositive, sawNegative)
	}
}

func TestSpinSetsAngularVelocityOnly(t *testing.T) {
	m := MotionProgram{Kind: MotionSpin, Axis: rl.Vector3{X: 0, Y: 0, Z: 3}, Speed: 0.2}
	v, a := m.eval(10)
	if v != (rl.Vector3{}) {
		t.Errorf("Spin must not produce linear velocity, got %+v", v)
	}
	vecNear(t, a, rl.Vector3{Z: 0.2}, 1e-6, "spin angular velocity (axis normalized)")
}

func TestOrbitRadiusIsConstant(t *testing.T) {
	m := MotionProgram{Kind: MotionOrbit, Axis: rl.Vector3{Y: 1}, Amplitude: 4, Period: 90}
	for _, tick := range []int{0, 17, 45, 89} {
		off := m.orbitOffset(tick)
		if r := rl.Vector3Length(off); math32.Abs(r-4) > 1e-4 {
			t.Errorf("Orbit offset at tick %d has radius %g, want 4", tick, r)
		}
		if math32.Abs(off.Y) > 1e-5 {
			t.Errorf("Orbit around Y must stay in the XZ plane, got Y=%g", off.Y)
		}
	}
}

func TestCompositeSumsParts(t *testing.T) {
	m := MotionProgram{Kind: MotionComposite, Parts: []MotionProgram{
		{Kind: MotionSpin, Axis: rl.Vector3{Y: 1}, Speed: 0.1},
		{Kind: MotionSineWave, Axis: rl.Vector3{X: 1}, Amplitude: 1, Period: 30},
	}}
	v, a := m.eval(7)
	sv, _ := m.Parts[1].eval(7)
	vecNear(t, v, sv, 1e-6, "composite linear part")
	vecNear(t, a, rl.Vector3{Y: 0.1}, 1e-6, "composite angular part")
}

func TestMotionApplyOverwritesVelocities(t *testing.T) {
	b := unitCubeBody(1)
	b.Velocity = rl.Vector3{X: 9}
	b.AngularVelocity = rl.Vector3{Z: 9}

	m := MotionProgram{Kind: MotionSpin, Axis: rl.Vector3{Y: 1}, Speed: 0.5}
	m.Apply(0, b)

	vecNear(t, b.Velocity, rl.Vector3{}, 1e-6, "linear velocity overwritten")
	vecNear(t, b.AngularVelocity, rl.Vector3{Y: 0.5}, 1e-6, "angular velocity overwritten")
}
