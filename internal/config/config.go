package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/NickelKnock/Axial-Motor-Design-Calculator/internal/motor"
)

// MaxConfigFileBytes caps how large a design file may be. Presets are a
// couple hundred bytes; anything bigger is a wrong file.
const MaxConfigFileBytes = 1 << 20

// DesignConfig holds one design preset. Optional parameters are
// pointers: an omitted YAML key stays nil and keeps its "not supplied"
// meaning through the file round trip (auto turns, no limit check,
// heuristic poles).
type DesignConfig struct {
	Coils         int     `yaml:"coils"`
	InputVoltage  float64 `yaml:"input_voltage"`
	InputIsDCBus  bool    `yaml:"input_is_dc_bus"`
	OuterRadiusM  float64 `yaml:"outer_radius_m"`
	DesiredTorque float64 `yaml:"desired_torque_nm"`
	DualPlate     bool    `yaml:"dual_plate"`

	// Exactly one of these should be present; the engine resolves the
	// other. Both present is allowed (RPM wins).
	MechanicalRPM    *float64 `yaml:"mechanical_rpm,omitempty"`
	ElectricalFreqHz *float64 `yaml:"electrical_frequency_hz,omitempty"`

	Turns *float64 `yaml:"turns,omitempty"` // absent = auto from voltage
	Poles *int     `yaml:"poles,omitempty"` // absent = heuristic from coils

	// Defaulted physics parameters: absent keys take the documented
	// defaults, an explicit value (including zero) is kept.
	FluxDensityAvgT *float64 `yaml:"flux_density_avg_t,omitempty"`
	WindingFactor   *float64 `yaml:"winding_factor,omitempty"`
	ModulationIndex *float64 `yaml:"modulation_index,omitempty"`

	// Drive limits; absent means "no check".
	PhaseCurrentLimitA *float64 `yaml:"phase_current_limit_a,omitempty"`
	DCCurrentLimitA    *float64 `yaml:"dc_current_limit_a,omitempty"`
	ESCFreqMaxHz       *float64 `yaml:"esc_freq_max_hz,omitempty"`
}

// RuntimeConfig contains generic runtime parameters.
type RuntimeConfig struct {
	DebugLevel int `yaml:"debug_level"` // 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	ListenPort int `yaml:"listen_port"` // default web port when -web is given without a value
}

// Config aggregates the design preset and runtime settings.
type Config struct {
	Design  DesignConfig  `yaml:"design"`
	Runtime RuntimeConfig `yaml:"runtime"`
}

// Load reads a YAML design file and returns the configuration.
// Structural problems (unreadable values, out-of-range fractions) fail
// here; topology and speed-specification rules belong to the engine so
// the error taxonomy has a single owner.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > MaxConfigFileBytes {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), MaxConfigFileBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) validate() error {
	d := &c.Design
	if d.Coils <= 0 {
		return fmt.Errorf("design.coils must be > 0, got %d", d.Coils)
	}
	if d.InputVoltage < 0 {
		return fmt.Errorf("design.input_voltage must be >= 0, got %g", d.InputVoltage)
	}
	if d.OuterRadiusM <= 0 {
		return fmt.Errorf("design.outer_radius_m must be > 0, got %g", d.OuterRadiusM)
	}
	if d.WindingFactor != nil && (*d.WindingFactor < 0 || *d.WindingFactor > 1) {
		return fmt.Errorf("design.winding_factor must be between 0 and 1, got %g", *d.WindingFactor)
	}
	if d.ModulationIndex != nil && (*d.ModulationIndex < 0 || *d.ModulationIndex > 1) {
		return fmt.Errorf("design.modulation_index must be between 0 and 1, got %g", *d.ModulationIndex)
	}
	if c.Runtime.DebugLevel < 0 || c.Runtime.DebugLevel > 4 {
		return fmt.Errorf("runtime.debug_level must be 0-4, got %d", c.Runtime.DebugLevel)
	}
	if c.Runtime.ListenPort < 0 || c.Runtime.ListenPort > 65535 {
		return fmt.Errorf("runtime.listen_port must be 0-65535, got %d", c.Runtime.ListenPort)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Runtime.ListenPort == 0 {
		c.Runtime.ListenPort = 8080
	}
}

// ToInputs converts the design preset into engine inputs, filling the
// documented defaults for absent physics parameters.
func (c *Config) ToInputs() motor.DesignInputs {
	in := motor.DefaultInputs()
	d := c.Design

	in.Coils = d.Coils
	in.InputVoltage = d.InputVoltage
	in.InputIsDCBus = d.InputIsDCBus
	in.OuterRadius = d.OuterRadiusM
	in.DesiredTorque = d.DesiredTorque
	in.DualPlate = d.DualPlate

	in.MechanicalRPM = d.MechanicalRPM
	in.ElectricalFreqHz = d.ElectricalFreqHz
	in.Turns = d.Turns
	in.Poles = d.Poles

	if d.FluxDensityAvgT != nil {
		in.FluxDensityAvg = *d.FluxDensityAvgT
	}
	if d.WindingFactor != nil {
		in.WindingFactor = *d.WindingFactor
	}
	if d.ModulationIndex != nil {
		in.ModulationIndex = *d.ModulationIndex
	}

	in.PhaseCurrentLimit = d.PhaseCurrentLimitA
	in.DCCurrentLimit = d.DCCurrentLimitA
	in.ESCFreqMax = d.ESCFreqMaxHz
	return in
}
