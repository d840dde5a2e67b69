package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.TickRate != 60 {
		t.Errorf("Expected tick rate 60, got %d", cfg.TickRate)
	}
	if cfg.Gravity != 0.01 {
		t.Errorf("Expected gravity 0.01, got %g", cfg.Gravity)
	}
	if cfg.GroundFriction == cfg.PlatformFriction {
		t.Error("Ground and platform friction are tuned separately")
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("Defaults must validate, got %v", err)
	}
}

func TestLoadOverridesPartially(t *testing.T) {
	path := writeConfig(t, "gravity: 0.02\ntickRate: 120\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gravity != 0.02 {
		t.Errorf("Expected overridden gravity 0.02, got %g", cfg.Gravity)
	}
	if cfg.TickRate != 120 {
		t.Errorf("Expected overridden tick rate 120, got %d", cfg.TickRate)
	}
	// Untouched fields keep defaults.
	if cfg.SawKnockback != 40 {
		t.Errorf("Expected default saw knockback 40, got %g", cfg.SawKnockback)
	}
	if cfg.MaxCatchUpTicks != 5 {
		t.Errorf("Expected default catch-up cap 5, got %d", cfg.MaxCatchUpTicks)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"zero tick rate", "tickRate: 0\n"},
		{"negative catch-up", "maxCatchUpTicks: -1\n"},
		{"air friction above one", "airFriction: 1.5\n"},
		{"air friction zero", "airFriction: 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.body)); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "gravity: [broken\n")); err == nil {
		t.Error("Expected a parse error")
	}
}
