package world

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"clamber/internal/character"
	"clamber/internal/physics"
)

// FixedUpdate advances the whole simulation exactly one tick. The order is
// a correctness requirement, not a preference: scripted bodies integrate
// (and refresh their transforms) before any character particle queries
// them, and statics are resolved before platforms before hazards.
func (l *Level) FixedUpdate(in character.Input) {
	tick := l.tick
	l.tick++

	l.platforms.each(func(_ Handle, p *platform) { p.Body.Step(tick) })
	l.saws.each(func(_ Handle, s *physics.Saw) { s.Step(tick) })
	l.enforceBounds()

	l.Char.ApplyControls(in, l.cfg.Gravity)

	for _, p := range l.Char.Body.Particles {
		l.resolveAgainstStatics(p)
		l.resolveAgainstPlatforms(p)
		l.resolveAgainstSaws(p)
	}

	l.Char.UpdateGrab(in, l.liveRopes())
	l.ropes.each(func(_ Handle, r *physics.Rope) {
		r.Update(rl.Vector3{Y: -l.cfg.Gravity})
	})
	l.Char.SnapHandsToRope()

	l.checkTriggers()
	if l.Char.LowestY() < l.cfg.KillPlaneY {
		l.Char.Respawn(l.checkpoint)
	}
}

func (l *Level) resolveAgainstStatics(p *physics.Particle) {
	l.statics.each(func(_ Handle, s *physics.StaticBody) {
		mtv, hit := s.CollideWithSphere(p.Position, p.Radius)
		if !hit {
			return
		}
		friction := s.Friction
		if friction < 0 {
			friction = l.cfg.GroundFriction
		}
		if n, ok := resolveContact(p, mtv, friction, rl.Vector3{}); ok {
			l.Char.OnGroundContact(n)
		}
	})
}

func (l *Level) resolveAgainstPlatforms(p *physics.Particle) {
	l.platforms.each(func(_ Handle, plat *platform) {
		mtv, hit := plat.Body.Shape.CollideWithSphere(p.Position, p.Radius)
		if !hit {
			return
		}
		friction := plat.Friction
		if friction < 0 {
			friction = l.cfg.PlatformFriction
		}
		n := safeNormal(mtv)
		if n == (rl.Vector3{}) {
			return
		}
		contact := rl.Vector3Subtract(p.Position, rl.Vector3Scale(n, p.Radius))
		surfVel := plat.Body.VelocityAt(contact)
		if n2, ok := resolveContact(p, mtv, friction, surfVel); ok {
			l.Char.OnGroundContact(n2)
		}
	})
}

func (l *Level) resolveAgainstSaws(p *physics.Particle) {
	l.saws.each(func(_ Handle, s *physics.Saw) {
		mtv, hit := s.Body.Shape.CollideWithSphere(p.Position, p.Radius)
		if !hit {
			return
		}
		n := safeNormal(mtv)
		if n == (rl.Vector3{}) {
			return
		}
		p.Position = rl.Vector3Add(p.Position, mtv)
		contact := rl.Vector3Subtract(p.Position, rl.Vector3Scale(n, p.Radius))
		// No friction blend, no bounce tuning: the blade's surface
		// velocity, scaled way up, becomes the particle's velocity.
		p.SetVelocity(s.EjectionVelocity(contact))
		if l.OnHazardHit != nil {
			l.OnHazardHit()
		}
	})
}

// resolveContact pushes the particle out along the MTV and rewrites its
// implied velocity: the tangential part blends toward the surface velocity
// with friction controlling retained slip, the relative normal part is
// projected to zero (restitution is always zero). Returns the contact
// normal, or ok=false when the MTV is degenerate and resolution is skipped.
func resolveContact(p *physics.Particle, mtv rl.Vector3, friction float32, surfVel rl.Vector3) (rl.Vector3, bool) {
	n := safeNormal(mtv)
	if n == (rl.Vector3{}) {
		return rl.Vector3{}, false
	}
	p.Position = rl.Vector3Add(p.Position, mtv)

	vel := p.Velocity()
	velN := rl.Vector3Scale(n, rl.Vector3DotProduct(vel, n))
	velT := rl.Vector3Subtract(vel, velN)

	surfN := rl.Vector3Scale(n, rl.Vector3DotProduct(surfVel, n))
	surfT := rl.Vector3Subtract(surfVel, surfN)

	newT := rl.Vector3Add(surfT, rl.Vector3Scale(rl.Vector3Subtract(velT, surfT), friction))
	newVel := rl.Vector3Add(newT, surfN)
	p.SetVelocity(newVel)
	return n, true
}

func safeNormal(v rl.Vector3) rl.Vector3 {
	length := rl.Vector3Length(v)
	if length < 1e-8 || math32.IsNaN(length) {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(v, 1/length)
}

// charBounds is the AABB over the character's particle centers. A trigger
// box that misses it cannot contain any particle center.
func (l *Level) charBounds() AABB {
	first := l.Char.Body.Particles[0].Position
	box := AABB{Min: first, Max: first}
	for _, p := range l.Char.Body.Particles[1:] {
		box.Min = rl.Vector3Min(box.Min, p.Position)
		box.Max = rl.Vector3Max(box.Max, p.Position)
	}
	return box
}

func (l *Level) checkTriggers() {
	bounds := l.charBounds()
	l.triggers.each(func(h Handle, t *TriggerVolume) {
		inside := false
		if t.Box.Intersects(bounds) {
			for _, p := range l.Char.Body.Particles {
				if t.Box.Contains(p.Position) {
					inside = true
					break
				}
			}
		}
		entered := inside && !t.inside
		t.inside = inside
		if !entered {
			return
		}
		switch t.Kind {
		case TriggerCheckpoint:
			l.checkpoint = rl.Vector3Scale(rl.Vector3Add(t.Box.Min, t.Box.Max), 0.5)
		case TriggerKill:
			l.Char.Respawn(l.checkpoint)
		}
		if l.OnTrigger != nil {
			l.OnTrigger(t.Kind, h)
		}
	})
}
