package world

import (
	"testing"

	"clamber/internal/character"
	"clamber/internal/config"
	"clamber/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// movingParticle has implied velocity vel and sits at pos.
func movingParticle(pos, vel rl.Vector3) *physics.Particle {
	return &physics.Particle{
		Position:     pos,
		PrevPosition: rl.Vector3Subtract(pos, vel),
		Radius:       0.5,
	}
}

func floorLevel(cfg *config.Config) *Level {
	l := NewLevel(cfg, rl.Vector3{Y: 0.2})
	floor := physics.NewBox(rl.Vector3{X: -20, Y: -1, Z: -20}, rl.Vector3{X: 20, Y: 0, Z: 20})
	l.AddStatic(physics.NewStaticBody(floor))
	return l
}

func TestResolveContactGrip(t *testing.T) {
	p := movingParticle(rl.Vector3{}, rl.Vector3{X: 1, Y: -2, Z: 0.5})
	mtv := rl.Vector3{Y: 0.25}

	n, ok := resolveContact(p, mtv, 0, rl.Vector3{})
	if !ok {
		t.Fatal("Expected resolution for a valid MTV")
	}
	if n != (rl.Vector3{Y: 1}) {
		t.Errorf("Expected contact normal +Y, got %+v", n)
	}
	if p.Position != (rl.Vector3{Y: 0.25}) {
		t.Errorf("Expected particle pushed out by the MTV, got %+v", p.Position)
	}
	// Friction 0 grips: no tangential slip survives, and restitution is
	// zero, so the particle ends fully at rest against a still surface.
	if v := p.Velocity(); v != (rl.Vector3{}) {
		t.Errorf("Expected zero velocity after gripping contact, got %+v", v)
	}
}

func TestResolveContactFrictionless(t *testing.T) {
	p := movingParticle(rl.Vector3{}, rl.Vector3{X: 1, Y: -2, Z: 0.5})

	if _, ok := resolveContact(p, rl.Vector3{Y: 0.25}, 1, rl.Vector3{}); !ok {
		t.Fatal("Expected resolution for a valid MTV")
	}
	// Friction 1 keeps the tangential part untouched; only the normal
	// part is removed.
	want := rl.Vector3{X: 1, Z: 0.5}
	if v := p.Velocity(); v != want {
		t.Errorf("Expected tangential velocity preserved %+v, got %+v", want, v)
	}
}

func TestResolveContactPartialFriction(t *testing.T) {
	p := movingParticle(rl.Vector3{}, rl.Vector3{X: 2, Y: -1})

	resolveContact(p, rl.Vector3{Y: 0.1}, 0.5, rl.Vector3{})
	v := p.Velocity()
	if v.X < 0.99 || v.X > 1.01 {
		t.Errorf("Expected half the tangential velocity retained, got %+v", v)
	}
	if v.Y < -1e-6 || v.Y > 1e-6 {
		t.Errorf("Expected normal velocity removed, got %+v", v)
	}
}

func TestResolveContactCarriesSurface(t *testing.T) {
	p := movingParticle(rl.Vector3{}, rl.Vector3{})
	surf := rl.Vector3{X: 2, Z: 1}

	resolveContact(p, rl.Vector3{Y: 0.1}, 0, surf)
	// A gripping contact on a moving surface carries the particle at the
	// full surface velocity. This is what makes platforms rideable.
	if v := p.Velocity(); v != surf {
		t.Errorf("Expected particle carried at surface velocity %+v, got %+v", surf, v)
	}
}

func TestResolveContactDegenerateMTV(t *testing.T) {
	p := movingParticle(rl.Vector3{X: 3}, rl.Vector3{X: 1})

	if _, ok := resolveContact(p, rl.Vector3{}, 0.5, rl.Vector3{}); ok {
		t.Error("Zero MTV must skip resolution")
	}
	if p.Position.X != 3 {
		t.Error("Skipped resolution must not move the particle")
	}
	if v := p.Velocity(); v.X != 1 {
		t.Error("Skipped resolution must not touch velocity")
	}
}

func TestConfiguredAirFrictionReachesCharacter(t *testing.T) {
	cfg := config.Default()
	cfg.AirFriction = 0.5
	l := NewLevel(cfg, rl.Vector3{})
	if got := l.Char.Body.AirFriction; got != 0.5 {
		t.Errorf("Expected tuned air friction 0.5 on the character body, got %g", got)
	}

	// And the tuning actually damps: a kicked particle coasts slower than
	// under the default damping.
	tuned := NewLevel(cfg, rl.Vector3{Y: 10})
	def := NewLevel(nil, rl.Vector3{Y: 10})
	tuned.Char.Particle(character.Head).ApplyImpulse(rl.Vector3{X: 1})
	def.Char.Particle(character.Head).ApplyImpulse(rl.Vector3{X: 1})
	tuned.FixedUpdate(character.Input{})
	def.FixedUpdate(character.Input{})
	if tx, dx := tuned.Char.Particle(character.Head).Velocity().X, def.Char.Particle(character.Head).Velocity().X; tx >= dx {
		t.Errorf("Expected stronger damping to slow the head more, got %g vs %g", tx, dx)
	}
}

func TestFixedUpdateGroundsCharacter(t *testing.T) {
	l := floorLevel(nil)

	for i := 0; i < 5; i++ {
		l.FixedUpdate(character.Input{})
	}
	if !l.Char.Grounded() {
		t.Error("Expected ground contact on the floor to set grounded")
	}
	if low := l.Char.LowestY(); low < -0.01 {
		t.Errorf("Expected particles held above the floor, lowest at %f", low)
	}
}

func TestStandingConvergence(t *testing.T) {
	l := floorLevel(nil)

	var at50 float32
	for i := 0; i < 100; i++ {
		l.FixedUpdate(character.Input{})
		if i == 49 {
			at50 = l.Char.Particle(character.Head).Position.Y
		}
	}

	head := l.Char.Particle(character.Head).Position.Y
	if head != head {
		t.Fatal("Head position is NaN")
	}
	if head < 0 || head > 4 {
		t.Errorf("Expected the head to settle at standing height, got %f", head)
	}
	if diff := head - at50; diff > 1 || diff < -1 {
		t.Errorf("Expected a settled stance, head still moving by %f", diff)
	}
	if low := l.Char.LowestY(); low < -0.5 {
		t.Errorf("Expected no tunnelling through the floor, lowest at %f", low)
	}
}

func TestSawEjectsCharacter(t *testing.T) {
	l := NewLevel(nil, rl.Vector3{})
	saw := physics.NewSaw(rl.Vector3{Y: 1}, rl.Vector3{}, 2, 1, 1)
	l.AddSaw(saw)

	hits := 0
	l.OnHazardHit = func() { hits++ }

	l.FixedUpdate(character.Input{})
	if hits == 0 {
		t.Fatal("Expected blade contact to fire the hazard hook")
	}

	fastest := float32(0)
	for _, p := range l.Char.Body.Particles {
		if s := rl.Vector3Length(p.Velocity()); s > fastest {
			fastest = s
		}
	}
	if fastest < 0.5 {
		t.Errorf("Expected violent ejection velocity, fastest particle at %f", fastest)
	}
}

func TestTriggerFiresOncePerEntry(t *testing.T) {
	l := NewLevel(nil, rl.Vector3{})
	box := AABB{Min: rl.Vector3{X: -10, Y: -10, Z: -10}, Max: rl.Vector3{X: 10, Y: 10, Z: 10}}
	l.AddTrigger(TriggerVolume{Box: box, Kind: TriggerGoal})

	fired := 0
	l.OnTrigger = func(kind TriggerKind, _ Handle) {
		if kind != TriggerGoal {
			t.Errorf("Expected goal trigger, got %q", kind)
		}
		fired++
	}

	for i := 0; i < 10; i++ {
		l.FixedUpdate(character.Input{})
	}
	if fired != 1 {
		t.Errorf("Expected exactly one trigger firing while inside, got %d", fired)
	}
}

func TestDistantTriggerNeverFires(t *testing.T) {
	l := NewLevel(nil, rl.Vector3{})
	// Far outside the character's particle bounds: rejected before any
	// per-particle containment test runs.
	l.AddTrigger(TriggerVolume{
		Box:  AABB{Min: rl.Vector3{X: 100}, Max: rl.Vector3{X: 110, Y: 10, Z: 10}},
		Kind: TriggerGoal,
	})
	l.OnTrigger = func(TriggerKind, Handle) {
		t.Error("Trigger outside the character bounds must not fire")
	}
	for i := 0; i < 10; i++ {
		l.FixedUpdate(character.Input{})
	}
}

func TestCharacterBoundsCoverParticles(t *testing.T) {
	l := NewLevel(nil, rl.Vector3{X: 3, Y: 7, Z: -2})
	box := l.charBounds()
	for i, p := range l.Char.Body.Particles {
		if !box.Contains(p.Position) {
			t.Errorf("Particle %d at %+v outside character bounds %+v", i, p.Position, box)
		}
	}
	if box.Min == box.Max {
		t.Error("Skeleton bounds must have extent")
	}
}

func TestCheckpointMovesRespawnPoint(t *testing.T) {
	l := floorLevel(nil)
	// Box centered at (0, 6, 0), straddling the character's spawn area so
	// it registers immediately.
	l.AddTrigger(TriggerVolume{
		Box:  AABB{Min: rl.Vector3{X: -2, Y: 1, Z: -2}, Max: rl.Vector3{X: 2, Y: 11, Z: 2}},
		Kind: TriggerCheckpoint,
	})

	l.FixedUpdate(character.Input{})

	// Force a kill-plane respawn and verify it targets the checkpoint.
	l.Config().KillPlaneY = 100
	l.FixedUpdate(character.Input{})
	head := l.Char.Particle(character.Head).Position
	if head.Y < 5 {
		t.Errorf("Expected respawn at the checkpoint height, head at %+v", head)
	}
}

func TestKillTriggerRespawns(t *testing.T) {
	l := NewLevel(nil, rl.Vector3{Y: 20})
	l.AddTrigger(TriggerVolume{
		Box:  AABB{Min: rl.Vector3{X: -5, Y: 15, Z: -5}, Max: rl.Vector3{X: 5, Y: 25, Z: 5}},
		Kind: TriggerKill,
	})

	l.FixedUpdate(character.Input{})
	for _, p := range l.Char.Body.Particles {
		if v := p.Velocity(); v != (rl.Vector3{}) {
			t.Errorf("Expected zeroed velocity after kill respawn, got %+v", v)
		}
	}
}

func TestRunawayPlatformReset(t *testing.T) {
	l := NewLevel(nil, rl.Vector3{})
	shape := physics.NewBox(rl.Vector3{X: -1, Y: -1, Z: -1}, rl.Vector3{X: 1, Y: 1, Z: 1})
	body := physics.NewRigidBody(shape, 10)
	h := l.AddPlatform(body, -1)

	body.Velocity = rl.Vector3{X: 1000}
	l.FixedUpdate(character.Input{})

	got, ok := l.Platform(h)
	if !ok {
		t.Fatal("Platform handle must stay valid")
	}
	if got.Shape.Position != (rl.Vector3{}) {
		t.Errorf("Expected runaway platform reset to its spawn pose, at %+v", got.Shape.Position)
	}
	if got.Velocity != (rl.Vector3{}) {
		t.Errorf("Expected reset to zero velocity, got %+v", got.Velocity)
	}
}

func TestRemoveHeldRopeReleasesGrab(t *testing.T) {
	l := NewLevel(nil, rl.Vector3{})
	h := l.AddRope(physics.NewRope(rl.Vector3{Y: 6}, 4.6, 4))

	in := character.Input{Squeeze: true}
	l.FixedUpdate(in)
	if !l.Char.Holding() {
		t.Fatal("Expected the character to latch onto the reachable rope")
	}

	l.RemoveRope(h)
	if l.Char.Holding() {
		t.Error("Removing the held rope must release the grab")
	}
}
