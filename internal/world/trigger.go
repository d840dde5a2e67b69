package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size
// dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// TriggerKind tells the level what entering a volume means.
type TriggerKind string

const (
	TriggerGoal       TriggerKind = "goal"
	TriggerCheckpoint TriggerKind = "checkpoint"
	TriggerKill       TriggerKind = "kill"
)

// TriggerVolume fires when any character particle center is inside its box.
// It has no collision response; effects happen through the level's
// OnTrigger callback.
type TriggerVolume struct {
	Box  AABB
	Kind TriggerKind

	// inside latches so a callback fires once per entry, not every tick.
	inside bool
}
