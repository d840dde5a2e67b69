// Stress test measuring convex narrow-phase throughput: every particle
// tested against every shape, the same pass the level runs each tick.
package main

import (
	"fmt"
	"math/rand"
	"time"

	"clamber/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	testCounts := []int{10, 50, 100, 250, 500, 1000}
	for _, count := range testCounts {
		testNarrowPhase(count)
	}
}

func testNarrowPhase(count int) {
	rng := rand.New(rand.NewSource(42)) // consistent results

	// Spawn boxes in a cube; size scales with count to keep density
	// comparable across runs.
	spawnSize := float32(50.0) + float32(count)/10.0

	shapes := make([]*physics.ConvexShape, count)
	for i := range shapes {
		half := rl.Vector3{
			X: 0.5 + rng.Float32()*2,
			Y: 0.5 + rng.Float32()*2,
			Z: 0.5 + rng.Float32()*2,
		}
		s := physics.NewBox(rl.Vector3Scale(half, -1), half)
		s.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		s.Orientation = physics.QuaternionFromEulerDegrees(rl.Vector3{
			X: rng.Float32() * 360,
			Y: rng.Float32() * 360,
			Z: rng.Float32() * 360,
		})
		s.UpdateTransform()
		shapes[i] = s
	}

	const particles = 11 // one character skeleton
	centers := make([]rl.Vector3, particles)
	for i := range centers {
		centers[i] = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
	}

	const iterations = 1000
	hits := 0
	start := time.Now()
	for iter := 0; iter < iterations; iter++ {
		for _, c := range centers {
			for _, s := range shapes {
				if _, hit := s.CollideWithSphere(c, 0.5); hit {
					hits++
				}
			}
		}
	}
	perTick := time.Since(start) / iterations

	fmt.Printf("%5d shapes: %8v per tick (%d queries, %d hits)\n",
		count, perTick.Round(time.Microsecond), particles*count, hits/iterations)
}
