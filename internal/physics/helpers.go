package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// QuaternionFromEulerDegrees converts authoring rotations (Euler angles in
// degrees, applied X then Y then Z) to an orientation quaternion. Level data
// stores rotations this way; everything inside the engine is quaternions.
func QuaternionFromEulerDegrees(e rl.Vector3) rl.Quaternion {
	qx := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, e.X*rl.Deg2rad)
	qy := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, e.Y*rl.Deg2rad)
	qz := rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, e.Z*rl.Deg2rad)
	return rl.QuaternionNormalize(rl.QuaternionMultiply(qz, rl.QuaternionMultiply(qy, qx)))
}
