package world

import (
	"log"

	"clamber/internal/character"
	"clamber/internal/config"
	"clamber/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// platform is a scripted RigidBody plus the spawn pose the safety-bounds
// keepalive resets it to.
type platform struct {
	Body        *physics.RigidBody
	Friction    float32
	spawnPos    rl.Vector3
	spawnOrient rl.Quaternion
}

// Level owns every simulated entity and runs the fixed-update pipeline.
// All mutable state is mutated from the single simulation goroutine only;
// there is no locking by construction.
type Level struct {
	cfg *config.Config

	statics   arena[*physics.StaticBody]
	platforms arena[*platform]
	saws      arena[*physics.Saw]
	ropes     arena[*physics.Rope]
	triggers  arena[*TriggerVolume]

	Char       *character.Character
	spawn      rl.Vector3
	checkpoint rl.Vector3

	tick int

	// OnTrigger fires once per entry of a character particle into a
	// trigger volume. OnHazardHit fires on saw contact; both are consumer
	// hooks (audio, UI, session logic), never required for simulation.
	OnTrigger   func(kind TriggerKind, h Handle)
	OnHazardHit func()

	source *LevelFile
}

// NewLevel creates an empty level with a character at spawn, tuned by cfg.
func NewLevel(cfg *config.Config, spawn rl.Vector3) *Level {
	if cfg == nil {
		cfg = config.Default()
	}
	l := &Level{
		cfg:        cfg,
		Char:       character.New(spawn),
		spawn:      spawn,
		checkpoint: spawn,
	}
	l.Char.Body.AirFriction = cfg.AirFriction
	return l
}

func (l *Level) Config() *config.Config { return l.cfg }
func (l *Level) Tick() int              { return l.tick }

// AddStatic registers immovable level geometry.
func (l *Level) AddStatic(s *physics.StaticBody) Handle {
	return l.statics.add(s)
}

// AddPlatform registers a scripted body; its current pose becomes the reset
// pose.
func (l *Level) AddPlatform(b *physics.RigidBody, friction float32) Handle {
	return l.platforms.add(&platform{
		Body:        b,
		Friction:    friction,
		spawnPos:    b.Shape.Position,
		spawnOrient: b.Shape.Orientation,
	})
}

func (l *Level) AddSaw(s *physics.Saw) Handle      { return l.saws.add(s) }
func (l *Level) AddRope(r *physics.Rope) Handle    { return l.ropes.add(r) }
func (l *Level) AddTrigger(t TriggerVolume) Handle { return l.triggers.add(&t) }

func (l *Level) RemoveStatic(h Handle) bool   { return l.statics.remove(h) }
func (l *Level) RemovePlatform(h Handle) bool { return l.platforms.remove(h) }
func (l *Level) RemoveSaw(h Handle) bool      { return l.saws.remove(h) }
func (l *Level) RemoveTrigger(h Handle) bool  { return l.triggers.remove(h) }

// RemoveRope detaches the character first if it is holding the rope being
// removed, so no dangling grab reference survives.
func (l *Level) RemoveRope(h Handle) bool {
	if r, ok := l.ropes.get(h); ok && l.Char.HeldRope() == r {
		l.Char.Release()
	}
	return l.ropes.remove(h)
}

func (l *Level) Static(h Handle) (*physics.StaticBody, bool) { return l.statics.get(h) }
func (l *Level) Rope(h Handle) (*physics.Rope, bool)         { return l.ropes.get(h) }
func (l *Level) Saw(h Handle) (*physics.Saw, bool)           { return l.saws.get(h) }

// Platform returns the rigid body behind a platform handle.
func (l *Level) Platform(h Handle) (*physics.RigidBody, bool) {
	p, ok := l.platforms.get(h)
	if !ok {
		return nil, false
	}
	return p.Body, true
}

func (l *Level) liveRopes() []*physics.Rope {
	out := make([]*physics.Rope, 0, len(l.ropes.items))
	l.ropes.each(func(_ Handle, r *physics.Rope) { out = append(out, r) })
	return out
}

// enforceBounds hard-resets any platform that drifted outside the safety
// cube. Recovery for runaway scripted motion, not a physical rule.
func (l *Level) enforceBounds() {
	b := l.cfg.SafetyBounds
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2 * b, Y: 2 * b, Z: 2 * b})
	l.platforms.each(func(h Handle, p *platform) {
		if box.Contains(p.Body.Position()) {
			return
		}
		log.Printf("level: platform %d outside safety bounds at %+v, resetting", h, p.Body.Position())
		p.Body.Shape.Position = p.spawnPos
		p.Body.Shape.Orientation = p.spawnOrient
		p.Body.Velocity = rl.Vector3{}
		p.Body.AngularVelocity = rl.Vector3{}
		p.Body.Shape.UpdateTransform()
	})
}
