package world

import (
	"encoding/json"
	"fmt"
	"os"

	"clamber/internal/config"
	"clamber/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// --- JSON types ---
//
// Rotations are Euler angles in degrees, applied X then Y then Z. Position
// and scale round-trip losslessly; rotation goes through a quaternion and
// back only in the simulation, never in the file, so saving a loaded level
// preserves the authored values.

type LevelFile struct {
	Name      string        `json:"name"`
	Spawn     [3]float32    `json:"spawn"`
	Platforms []PlatformDef `json:"platforms,omitempty"`
	Beams     []BeamDef     `json:"beams,omitempty"`
	Ropes     []RopeDef     `json:"ropes,omitempty"`
	Saws      []SawDef      `json:"saws,omitempty"`
	Triggers  []TriggerDef  `json:"triggers,omitempty"`
}

// PlatformDef is a unit box placed by position/rotation/scale. A platform
// without a motion program is static level geometry; with one it becomes a
// scripted rigid body.
type PlatformDef struct {
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation"`
	Scale    [3]float32 `json:"scale"`
	Mass     float32    `json:"mass,omitempty"`
	Friction *float32   `json:"friction,omitempty"`
	Motion   *MotionDef `json:"motion,omitempty"`
}

type MotionDef struct {
	Kind      string      `json:"kind"`
	Axis      [3]float32  `json:"axis,omitempty"`
	Amplitude float32     `json:"amplitude,omitempty"`
	Period    float32     `json:"period,omitempty"`
	Phase     float32     `json:"phase,omitempty"`
	Speed     float32     `json:"speed,omitempty"`
	Parts     []MotionDef `json:"parts,omitempty"`
}

type BeamDef struct {
	Start  [3]float32 `json:"start"`
	End    [3]float32 `json:"end"`
	Width  float32    `json:"width"`
	Height float32    `json:"height"`
}

type RopeDef struct {
	StartPos [3]float32 `json:"startPos"`
	Length   float32    `json:"length"`
	Segments int        `json:"segments"`
}

type SawDef struct {
	Position  [3]float32 `json:"position"`
	Rotation  [3]float32 `json:"rotation"`
	Radius    float32    `json:"radius"`
	Thickness float32    `json:"thickness"`
	SpinSpeed float32    `json:"spinSpeed"`
}

type TriggerDef struct {
	Min  [3]float32 `json:"min"`
	Max  [3]float32 `json:"max"`
	Kind string     `json:"kind"`
}

func vec(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

// --- Loading ---

func LoadLevel(path string, cfg *config.Config) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lf LevelFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	return BuildLevel(&lf, cfg)
}

// BuildLevel turns a level definition into live entities.
func BuildLevel(lf *LevelFile, cfg *config.Config) (*Level, error) {
	l := NewLevel(cfg, vec(lf.Spawn))
	l.source = lf

	for i := range lf.Platforms {
		def := &lf.Platforms[i]
		shape := physics.NewBox(rl.Vector3{X: -0.5, Y: -0.5, Z: -0.5}, rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5})
		shape.Position = vec(def.Position)
		shape.Orientation = physics.QuaternionFromEulerDegrees(vec(def.Rotation))
		scale := vec(def.Scale)
		if scale == (rl.Vector3{}) {
			scale = rl.Vector3{X: 1, Y: 1, Z: 1}
		}
		shape.Scaling = scale
		shape.UpdateTransform()

		if def.Motion == nil {
			s := physics.NewStaticBody(shape)
			if def.Friction != nil {
				s.Friction = *def.Friction
			}
			l.AddStatic(s)
			continue
		}

		mass := def.Mass
		if mass <= 0 {
			mass = 10
		}
		body := physics.NewRigidBody(shape, mass)
		body.Motion = motionFromDef(*def.Motion)
		friction := float32(-1)
		if def.Friction != nil {
			friction = *def.Friction
		}
		l.AddPlatform(body, friction)
	}

	for _, def := range lf.Beams {
		l.AddStatic(physics.NewStaticBody(physics.NewBeam(vec(def.Start), vec(def.End), def.Width, def.Height)))
	}
	for _, def := range lf.Ropes {
		if def.Segments <= 0 || def.Length <= 0 {
			return nil, fmt.Errorf("level %q: rope needs positive length and segments", lf.Name)
		}
		l.AddRope(physics.NewRope(vec(def.StartPos), def.Length, def.Segments))
	}
	for _, def := range lf.Saws {
		saw := physics.NewSaw(vec(def.Position), vec(def.Rotation), def.Radius, def.Thickness, def.SpinSpeed)
		saw.Knockback = cfgKnockback(l.cfg)
		l.AddSaw(saw)
	}
	for _, def := range lf.Triggers {
		l.AddTrigger(TriggerVolume{
			Box:  AABB{Min: vec(def.Min), Max: vec(def.Max)},
			Kind: TriggerKind(def.Kind),
		})
	}
	return l, nil
}

func cfgKnockback(cfg *config.Config) float32 {
	if cfg == nil || cfg.SawKnockback <= 0 {
		return physics.DefaultSawKnockback
	}
	return cfg.SawKnockback
}

func motionFromDef(def MotionDef) physics.MotionProgram {
	m := physics.MotionProgram{
		Kind:      physics.MotionKind(def.Kind),
		Axis:      vec(def.Axis),
		Amplitude: def.Amplitude,
		Period:    def.Period,
		Phase:     def.Phase,
		Speed:     def.Speed,
	}
	for _, part := range def.Parts {
		m.Parts = append(m.Parts, motionFromDef(part))
	}
	return m
}

// --- Saving ---

// Save writes the level definition back out. The source definition is kept
// verbatim from load, so authored positions, scales, and Euler rotations
// survive a load/save cycle bit-exactly.
func (l *Level) Save(path string) error {
	if l.source == nil {
		return fmt.Errorf("save level: level was not built from a definition")
	}
	data, err := json.MarshalIndent(l.source, "", "  ")
	if err != nil {
		return fmt.Errorf("encode level: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write level: %w", err)
	}
	return nil
}
