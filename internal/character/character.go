package character

import (
	"clamber/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Named skeleton particles. The collision core never cares about names;
// control forces and rope grabbing address specific body parts.
const (
	Head = iota
	Chest
	Hip
	LeftHand
	RightHand
	LeftElbow
	RightElbow
	LeftKnee
	RightKnee
	LeftFoot
	RightFoot
	particleCount
)

const (
	defaultAirFriction = 0.98

	// Standing spring: pushes the head toward standHeight above the lowest
	// foot while grounded. Gain and clamp keep it from pogoing.
	standHeight  = 2.0
	standingGain = 0.02
	standingMax  = 0.05

	moveAccel = 0.004
	jumpBoost = 0.18

	// Ground contact within this many ticks counts as grounded (coyote
	// window for jump input).
	groundedWindow = 6
)

// Input is one tick of control state, already translated from raw devices
// by the caller.
type Input struct {
	// Move is the desired horizontal direction, |Move| <= 1, Y ignored.
	Move rl.Vector3
	Jump bool
	// Squeeze is the grab input; held near a rope end it latches on.
	Squeeze bool
}

// Character is the soft-bodied player: an 11-particle Verlet skeleton plus
// control state. The skeleton has no hard constraint solve — standing
// forces and pair repulsion keep its shape.
type Character struct {
	Body *physics.VerletBody

	spawn            rl.Vector3
	ticksSinceGround int
	jumpHeld         bool

	grab grabState
}

// New builds the skeleton around a spawn point.
func New(spawn rl.Vector3) *Character {
	c := &Character{
		Body:             physics.NewVerletBody(defaultAirFriction),
		spawn:            spawn,
		ticksSinceGround: groundedWindow + 1,
	}
	c.buildSkeleton(spawn)
	return c
}

func (c *Character) buildSkeleton(at rl.Vector3) {
	add := func(dx, dy, dz, r float32) {
		c.Body.AddParticle(rl.Vector3{X: at.X + dx, Y: at.Y + dy, Z: at.Z + dz}, r)
	}
	add(0, 2.0, 0, 0.45)     // head
	add(0, 1.4, 0, 0.40)     // chest
	add(0, 0.9, 0, 0.40)     // hip
	add(-0.7, 1.4, 0, 0.25)  // left hand
	add(0.7, 1.4, 0, 0.25)   // right hand
	add(-0.45, 1.4, 0, 0.2)  // left elbow
	add(0.45, 1.4, 0, 0.2)   // right elbow
	add(-0.25, 0.45, 0, 0.2) // left knee
	add(0.25, 0.45, 0, 0.2)  // right knee
	add(-0.3, 0.0, 0, 0.3)   // left foot
	add(0.3, 0.0, 0, 0.3)    // right foot

	links := [][2]int{
		{Head, Chest}, {Chest, Hip},
		{Chest, LeftElbow}, {LeftElbow, LeftHand},
		{Chest, RightElbow}, {RightElbow, RightHand},
		{Hip, LeftKnee}, {LeftKnee, LeftFoot},
		{Hip, RightKnee}, {RightKnee, RightFoot},
		{LeftFoot, RightFoot},
	}
	for _, l := range links {
		c.Body.AddConstraint(l[0], l[1])
	}
}

// Particle returns a named skeleton particle.
func (c *Character) Particle(i int) *physics.Particle {
	return c.Body.Particles[i]
}

// ApplyControls turns input into impulses on named particles, applies
// gravity, and integrates the skeleton one tick. Collision resolution and
// grab coupling happen afterwards, owned by the level.
func (c *Character) ApplyControls(in Input, gravity float32) {
	g := rl.Vector3{Y: -gravity}
	for _, p := range c.Body.Particles {
		p.ApplyImpulse(g)
	}

	move := rl.Vector3{X: in.Move.X, Z: in.Move.Z}
	if l := rl.Vector3Length(move); l > 1 {
		move = rl.Vector3Scale(move, 1/l)
	}
	step := rl.Vector3Scale(move, moveAccel)
	c.Particle(Head).ApplyImpulse(step)
	c.Particle(Hip).ApplyImpulse(step)

	if c.Grounded() {
		// Standing spring on the head, referenced to the lowest foot.
		foot := c.lowestFootY()
		err := standHeight - (c.Particle(Head).Position.Y - foot)
		impulse := err * standingGain
		if impulse > standingMax {
			impulse = standingMax
		}
		if impulse > 0 {
			c.Particle(Head).ApplyImpulse(rl.Vector3{Y: impulse})
		}

		if in.Jump && !c.jumpHeld {
			c.Particle(Head).ApplyImpulse(rl.Vector3{Y: jumpBoost})
			c.Particle(Hip).ApplyImpulse(rl.Vector3{Y: jumpBoost * 0.5})
			c.ticksSinceGround = groundedWindow + 1
		}
	}
	c.jumpHeld = in.Jump

	c.Body.Update()
	c.Body.HandleInternalCollisions()
	c.ticksSinceGround++
}

func (c *Character) lowestFootY() float32 {
	l, r := c.Particle(LeftFoot).Position.Y, c.Particle(RightFoot).Position.Y
	if r < l {
		return r
	}
	return l
}

// OnGroundContact is the collision callback for upward-facing contact
// normals. The resolver calls it; the airborne bookkeeping lives here.
func (c *Character) OnGroundContact(normal rl.Vector3) {
	if normal.Y > 0 {
		c.ticksSinceGround = 0
	}
}

// Grounded reports recent ground contact.
func (c *Character) Grounded() bool {
	return c.ticksSinceGround <= groundedWindow
}

// LowestY returns the lowest particle height, used for kill-plane checks.
func (c *Character) LowestY() float32 {
	low := c.Body.Particles[0].Position.Y
	for _, p := range c.Body.Particles[1:] {
		if p.Position.Y < low {
			low = p.Position.Y
		}
	}
	return low
}

// Respawn teleports the whole skeleton to a point, zeroing all implied
// velocity and releasing any held rope.
func (c *Character) Respawn(at rl.Vector3) {
	c.Release()
	offset := rl.Vector3Subtract(at, c.spawn)
	fresh := New(c.spawn)
	for i, p := range fresh.Body.Particles {
		c.Body.Particles[i].MoveTo(rl.Vector3Add(p.Position, offset))
	}
	c.ticksSinceGround = groundedWindow + 1
}
