package main

import (
	"math"
	"testing"

	"github.com/NickelKnock/Axial-Motor-Design-Calculator/internal/config"
)

func baseConfig() *config.Config {
	rpm := 750.0
	poles := 8
	return &config.Config{
		Design: config.DesignConfig{
			Coils:         12,
			InputVoltage:  36,
			OuterRadiusM:  0.127,
			DesiredTorque: 50,
			MechanicalRPM: &rpm,
			Poles:         &poles,
		},
		Runtime: config.RuntimeConfig{ListenPort: 8080},
	}
}

// ---------- validateOverrides ----------

func TestValidateOverrides_AllZero(t *testing.T) {
	if err := validateOverrides(overrides{}); err != nil {
		t.Errorf("zero overrides should be valid, got: %v", err)
	}
}

func TestValidateOverrides_ValidValues(t *testing.T) {
	o := overrides{Coils: 12, Voltage: 48, Torque: 25, RPM: 1500, OuterRadius: 0.1}
	if err := validateOverrides(o); err != nil {
		t.Errorf("expected valid, got: %v", err)
	}
}

func TestValidateOverrides_NaN(t *testing.T) {
	nan := math.NaN()
	cases := []struct {
		name string
		o    overrides
	}{
		{"voltage_NaN", overrides{Voltage: nan}},
		{"torque_NaN", overrides{Torque: nan}},
		{"rpm_NaN", overrides{RPM: nan}},
		{"radius_NaN", overrides{OuterRadius: nan}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateOverrides(tc.o); err == nil {
				t.Error("expected error for NaN, got nil")
			}
		})
	}
}

func TestValidateOverrides_Infinity(t *testing.T) {
	cases := []struct {
		name string
		o    overrides
	}{
		{"voltage_+Inf", overrides{Voltage: math.Inf(1)}},
		{"rpm_-Inf", overrides{RPM: math.Inf(-1)}},
		{"freq_+Inf", overrides{Freq: math.Inf(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateOverrides(tc.o); err == nil {
				t.Error("expected error for Infinity, got nil")
			}
		})
	}
}

func TestValidateOverrides_Negative(t *testing.T) {
	cases := []struct {
		name string
		o    overrides
	}{
		{"negative_coils", overrides{Coils: -3}},
		{"negative_voltage", overrides{Voltage: -12}},
		{"negative_rpm", overrides{RPM: -100}},
		{"negative_radius", overrides{OuterRadius: -0.1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := validateOverrides(tc.o); err == nil {
				t.Error("expected error for negative value, got nil")
			}
		})
	}
}

func TestValidateOverrides_NegativeTorqueAllowed(t *testing.T) {
	// A negative torque target is a legal design point (reverse load).
	if err := validateOverrides(overrides{Torque: -10}); err != nil {
		t.Errorf("negative torque should be allowed, got: %v", err)
	}
}

// ---------- applyOverrides ----------

func TestApplyOverrides_NonZero(t *testing.T) {
	cfg := baseConfig()
	applyOverrides(cfg, overrides{Coils: 9, Voltage: 48, Torque: 25, OuterRadius: 0.1})

	if cfg.Design.Coils != 9 {
		t.Errorf("Coils = %d, want 9", cfg.Design.Coils)
	}
	if cfg.Design.InputVoltage != 48 {
		t.Errorf("InputVoltage = %v, want 48", cfg.Design.InputVoltage)
	}
	if cfg.Design.DesiredTorque != 25 {
		t.Errorf("DesiredTorque = %v, want 25", cfg.Design.DesiredTorque)
	}
	if cfg.Design.OuterRadiusM != 0.1 {
		t.Errorf("OuterRadiusM = %v, want 0.1", cfg.Design.OuterRadiusM)
	}
}

func TestApplyOverrides_ZeroLeavesUnchanged(t *testing.T) {
	cfg := baseConfig()
	applyOverrides(cfg, overrides{})

	if cfg.Design.Coils != 12 || cfg.Design.InputVoltage != 36 {
		t.Error("zero overrides should leave the config untouched")
	}
	if cfg.Design.MechanicalRPM == nil || *cfg.Design.MechanicalRPM != 750 {
		t.Error("speed specification should be untouched")
	}
}

func TestApplyOverrides_RPMReplacesFrequency(t *testing.T) {
	cfg := baseConfig()
	freq := 100.0
	cfg.Design.ElectricalFreqHz = &freq

	applyOverrides(cfg, overrides{RPM: 1500})

	if cfg.Design.MechanicalRPM == nil || *cfg.Design.MechanicalRPM != 1500 {
		t.Errorf("MechanicalRPM = %v, want 1500", cfg.Design.MechanicalRPM)
	}
	if cfg.Design.ElectricalFreqHz != nil {
		t.Errorf("ElectricalFreqHz = %v, want nil after RPM override", *cfg.Design.ElectricalFreqHz)
	}
}

func TestApplyOverrides_FrequencyReplacesRPM(t *testing.T) {
	cfg := baseConfig()
	applyOverrides(cfg, overrides{Freq: 60})

	if cfg.Design.ElectricalFreqHz == nil || *cfg.Design.ElectricalFreqHz != 60 {
		t.Errorf("ElectricalFreqHz = %v, want 60", cfg.Design.ElectricalFreqHz)
	}
	if cfg.Design.MechanicalRPM != nil {
		t.Errorf("MechanicalRPM = %v, want nil after frequency override", *cfg.Design.MechanicalRPM)
	}
}

func TestApplyOverrides_RPMWinsOverFrequency(t *testing.T) {
	cfg := baseConfig()
	applyOverrides(cfg, overrides{RPM: 900, Freq: 60})

	if cfg.Design.MechanicalRPM == nil || *cfg.Design.MechanicalRPM != 900 {
		t.Errorf("MechanicalRPM = %v, want 900 (RPM wins)", cfg.Design.MechanicalRPM)
	}
	if cfg.Design.ElectricalFreqHz != nil {
		t.Error("frequency override should be ignored when RPM is also set")
	}
}

// ---------- evaluateOnce end to end ----------

func TestEvaluateOnce_ValidDesign(t *testing.T) {
	if err := evaluateOnce(baseConfig()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEvaluateOnce_BadTopology(t *testing.T) {
	cfg := baseConfig()
	cfg.Design.Coils = 10
	if err := evaluateOnce(cfg); err == nil {
		t.Error("expected error for 10 coils, got nil")
	}
}

// ---------- webPortFlag ----------

func TestWebPortFlag_EmptyString(t *testing.T) {
	f := &webPortFlag{}
	if err := f.Set(""); err != nil {
		t.Fatalf("Set(\"\") error: %v", err)
	}
	if !f.set || f.val != 0 {
		t.Errorf("Set(\"\") → set=%v val=%d, want set with default", f.set, f.val)
	}
}

func TestWebPortFlag_ValidPorts(t *testing.T) {
	for _, p := range []string{"1", "8080", "8980", "65535"} {
		f := &webPortFlag{}
		if err := f.Set(p); err != nil {
			t.Errorf("Set(%q) error: %v", p, err)
		}
	}
}

func TestWebPortFlag_InvalidPorts(t *testing.T) {
	for _, p := range []string{"0", "-1", "65536", "abc", "80 80"} {
		f := &webPortFlag{}
		if err := f.Set(p); err == nil {
			t.Errorf("Set(%q) expected error, got nil", p)
		}
	}
}

func TestResolvePort_UnsetFlagIsDisabled(t *testing.T) {
	f := &webPortFlag{}
	if got := resolvePort(f, baseConfig()); got != 0 {
		t.Errorf("resolvePort = %d, want 0 when -web not given", got)
	}
}

func TestResolvePort_BareFlagUsesConfigDefault(t *testing.T) {
	f := &webPortFlag{}
	if err := f.Set(""); err != nil {
		t.Fatal(err)
	}
	if got := resolvePort(f, baseConfig()); got != 8080 {
		t.Errorf("resolvePort = %d, want config default 8080", got)
	}
}

func TestResolvePort_ExplicitFlagWins(t *testing.T) {
	f := &webPortFlag{}
	if err := f.Set("8980"); err != nil {
		t.Fatal(err)
	}
	if got := resolvePort(f, baseConfig()); got != 8980 {
		t.Errorf("resolvePort = %d, want 8980", got)
	}
}

func TestResolvePort_EnvFallback(t *testing.T) {
	t.Setenv("AXIALMOTOR_PORT", "9001")
	f := &webPortFlag{}
	if got := resolvePort(f, baseConfig()); got != 9001 {
		t.Errorf("resolvePort = %d, want 9001 from env", got)
	}
}

// ---------- defaultsFromConfig ----------

func TestDefaultsFromConfig(t *testing.T) {
	cfg := baseConfig()
	limit := 120.0
	cfg.Design.PhaseCurrentLimitA = &limit

	d := defaultsFromConfig(cfg)
	if d.Coils != 12 || d.InputVoltage != 36 {
		t.Errorf("defaults = %+v, want the preset values", d)
	}
	if d.MechanicalRPM == nil || *d.MechanicalRPM != 750 {
		t.Errorf("MechanicalRPM = %v, want 750", d.MechanicalRPM)
	}
	if d.PhaseCurrentLimitA == nil || *d.PhaseCurrentLimitA != 120 {
		t.Errorf("PhaseCurrentLimitA = %v, want 120", d.PhaseCurrentLimitA)
	}
	if d.Turns != nil {
		t.Errorf("Turns = %v, want nil (auto)", *d.Turns)
	}
}
