package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default config invalid: %v", err)
	}
}

func TestDefaultFloorIsOnePacketPerSecond(t *testing.T) {
	cfg := Default()
	// 1504 bytes * 8 bits at one packet per second.
	if cfg.MinMbps != 0.012032 {
		t.Errorf("Expected min 0.012032 Mbps, got %g", cfg.MinMbps)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != ModeKeyboard || cfg.MaxMbps != 12.0 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkctl.yaml")
	doc := `
control_file: /tmp/test-ctl
mode: midi
min_mbps: 1.504
max_mbps: 1504.0
midi:
  port: 2
  slider_cc: 7
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != ModeMIDI || cfg.ControlFile != "/tmp/test-ctl" {
		t.Errorf("File values not applied: %+v", cfg)
	}
	if cfg.MinMbps != 1.504 || cfg.MaxMbps != 1504.0 {
		t.Errorf("Bounds not applied: %+v", cfg)
	}
	if cfg.MIDI.Port != 2 || cfg.MIDI.SliderCC != 7 {
		t.Errorf("MIDI values not applied: %+v", cfg.MIDI)
	}
	// Untouched keys keep their defaults.
	if cfg.StepMbps != 0.1 || cfg.MIDI.OutageCC != 41 {
		t.Errorf("Defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkctl.yaml")
	doc := "min_mbps: 100\nmax_mbps: 1\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path, ""); err == nil {
		t.Error("Expected error for inverted bounds")
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero min", func(c *Config) { c.MinMbps = 0 }},
		{"min above max", func(c *Config) { c.MinMbps = 100; c.MaxMbps = 1 }},
		{"zero step", func(c *Config) { c.StepMbps = 0 }},
		{"bad mode", func(c *Config) { c.Mode = "joystick" }},
		{"empty control file", func(c *Config) { c.ControlFile = "" }},
		{"controller out of range", func(c *Config) { c.MIDI.OutageCC = 128 }},
		{"negative controller", func(c *Config) { c.MIDI.SliderCC = -1 }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestValidateWithCue(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "linkctl.yaml")
	schemaPath := filepath.Join(dir, "linkctl.cue")

	doc := "mode: keyboard\nmin_mbps: 1.0\nmax_mbps: 10.0\n"
	schema := "mode?: \"keyboard\" | \"midi\"\nmin_mbps?: >0\nmax_mbps?: >0\n"
	if err := os.WriteFile(cfgPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(schemaPath, []byte(schema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	if err := ValidateWithCue(cfgPath, schemaPath); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	bad := "mode: joystick\n"
	if err := os.WriteFile(cfgPath, []byte(bad), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := ValidateWithCue(cfgPath, schemaPath); err == nil {
		t.Error("Expected schema violation for bad mode")
	}
}
