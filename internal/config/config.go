// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Input mode selectors.
const (
	ModeKeyboard = "keyboard"
	ModeMIDI     = "midi"
)

// MIDI maps a control surface onto the profiles: the port index and the
// controller numbers for the bandwidth slider and the three profile buttons.
type MIDI struct {
	Port     int `yaml:"port"`
	SliderCC int `yaml:"slider_cc"`
	OutageCC int `yaml:"outage_cc"`
	VRampCC  int `yaml:"vramp_cc"`
	RandomCC int `yaml:"random_cc"`
}

// Config is the root configuration of an interactive control session.
type Config struct {
	ControlFile string  `yaml:"control_file"`
	Mode        string  `yaml:"mode"`
	MinMbps     float64 `yaml:"min_mbps"`
	MaxMbps     float64 `yaml:"max_mbps"`
	StepMbps    float64 `yaml:"step_mbps"`
	MIDI        MIDI    `yaml:"midi"`
	UI          bool    `yaml:"ui"`
	TraceFile   string  `yaml:"trace_file"`
	TraceStdout bool    `yaml:"trace_stdout"`
}

// Default returns the built-in configuration: keyboard control of a
// 12 Mbps link whose floor is one 1504-byte packet per second.
func Default() *Config {
	return &Config{
		ControlFile: "/tmp/linkctl",
		Mode:        ModeKeyboard,
		MinMbps:     0.012032,
		MaxMbps:     12.0,
		StepMbps:    0.1,
		MIDI: MIDI{
			Port:     0,
			SliderCC: 0,
			OutageCC: 41,
			VRampCC:  42,
			RandomCC: 43,
		},
		UI: true,
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults unchanged. A non-empty cueSchemaPath validates the file against
// the CUE schema first.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the bounds and mappings that the profiles rely on.
func (c *Config) Validate() error {
	if c.MinMbps <= 0 || c.MinMbps > c.MaxMbps {
		return fmt.Errorf("bandwidth bounds must satisfy 0 < min <= max, got min=%g max=%g", c.MinMbps, c.MaxMbps)
	}
	if c.StepMbps <= 0 {
		return fmt.Errorf("step_mbps must be positive, got %g", c.StepMbps)
	}
	if c.Mode != ModeKeyboard && c.Mode != ModeMIDI {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeKeyboard, ModeMIDI, c.Mode)
	}
	if c.ControlFile == "" {
		return fmt.Errorf("control_file must not be empty")
	}
	for name, cc := range map[string]int{
		"slider_cc": c.MIDI.SliderCC,
		"outage_cc": c.MIDI.OutageCC,
		"vramp_cc":  c.MIDI.VRampCC,
		"random_cc": c.MIDI.RandomCC,
	} {
		if cc < 0 || cc > 127 {
			return fmt.Errorf("%s must be a MIDI controller number in [0,127], got %d", name, cc)
		}
	}
	return nil
}
