package character

import (
	"clamber/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// A hand midpoint within this distance of a rope end can latch on.
	grabRadius = 1.5

	// Spring coupling between hands and rope end while holding.
	grabSpringGain = 0.08
	// Fraction of the hand spring fed back (negated) into the rope end.
	ropeFeedback = 0.5
	// Steering force the holder's movement input exerts on the rope end.
	swingGain = 0.01
	// Extra gravity on the rope end while held, so the pair sags.
	holdGravity = 0.004
)

type grabState struct {
	rope *physics.Rope
}

// Holding reports whether the character currently hangs from a rope.
func (c *Character) Holding() bool {
	return c.grab.rope != nil
}

// HeldRope returns the rope being held, or nil.
func (c *Character) HeldRope() *physics.Rope {
	return c.grab.rope
}

// Release lets go of any held rope. Takes effect immediately: no forces are
// exchanged after this within the same tick.
func (c *Character) Release() {
	c.grab.rope = nil
}

func (c *Character) handMidpoint() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(c.Particle(LeftHand).Position, c.Particle(RightHand).Position), 0.5)
}

// UpdateGrab runs the rope interaction state machine for one tick, before
// the ropes integrate. While holding it exchanges spring forces between the
// hands and the rope end; release happens the same tick the squeeze input
// drops, after which the character is in ordinary free fall.
func (c *Character) UpdateGrab(in Input, ropes []*physics.Rope) {
	if !in.Squeeze {
		c.Release()
		return
	}

	if c.grab.rope == nil {
		mid := c.handMidpoint()
		for _, r := range ropes {
			if r == nil {
				continue
			}
			if rl.Vector3Length(rl.Vector3Subtract(r.EndPosition(), mid)) <= grabRadius {
				c.grab.rope = r
				break
			}
		}
		if c.grab.rope == nil {
			return
		}
	}

	rope := c.grab.rope
	toEnd := rl.Vector3Subtract(rope.EndPosition(), c.handMidpoint())
	spring := rl.Vector3Scale(toEnd, grabSpringGain)

	c.Particle(LeftHand).ApplyImpulse(spring)
	c.Particle(RightHand).ApplyImpulse(spring)
	rope.ApplyForceToEnd(rl.Vector3Scale(spring, -ropeFeedback))

	steer := rl.Vector3{X: in.Move.X, Z: in.Move.Z}
	rope.ApplyForceToEnd(rl.Vector3Scale(steer, swingGain))
	rope.ApplyForceToEnd(rl.Vector3{Y: -holdGravity})
}

// SnapHandsToRope pins both hands exactly onto the rope end, position and
// previous position both. Runs after the physics update each tick: the
// spring coupling alone lets hands and rope drift apart visibly, the snap
// keeps the connection rigid.
func (c *Character) SnapHandsToRope() {
	if c.grab.rope == nil {
		return
	}
	end := c.grab.rope.EndPosition()
	c.Particle(LeftHand).MoveTo(end)
	c.Particle(RightHand).MoveTo(end)
}
