package motor

import (
	"strings"
	"testing"
)

func TestReport_ContainsEveryOrderedKey(t *testing.T) {
	rep := mustEngine(t, baseInputs()).Report()
	order := ReportOrder()
	if len(rep) != len(order) {
		t.Errorf("report has %d entries, order lists %d", len(rep), len(order))
	}
	for _, key := range order {
		if _, ok := rep[key]; !ok {
			t.Errorf("report missing key %q", key)
		}
	}
}

func TestReport_LegacyAndModernSpeedAgree(t *testing.T) {
	rep := mustEngine(t, baseInputs()).Report()
	if rep["Minimum RPM"] != rep["Mechanical RPM"] {
		t.Errorf("legacy %q and modern %q speed disagree", rep["Minimum RPM"], rep["Mechanical RPM"])
	}
	if rep["Mechanical RPM"] != "750.000000" {
		t.Errorf("Mechanical RPM = %q, want 750.000000", rep["Mechanical RPM"])
	}
	if rep["Electrical Frequency (Hz)"] != "50.000000" {
		t.Errorf("Electrical Frequency = %q, want 50.000000", rep["Electrical Frequency (Hz)"])
	}
}

func TestReport_TopologyValues(t *testing.T) {
	rep := mustEngine(t, baseInputs()).Report()
	if rep["Number of Poles"] != "8.000000" {
		t.Errorf("Number of Poles = %q, want 8.000000", rep["Number of Poles"])
	}
	if rep["Number of Magnets"] != "16.000000" {
		t.Errorf("Number of Magnets = %q, want 16.000000", rep["Number of Magnets"])
	}
}

func TestReport_ModeLabels(t *testing.T) {
	auto := mustEngine(t, baseInputs())
	if got := auto.Report()["Mode"]; got != ModeVoltageLimited {
		t.Errorf("auto mode label = %q, want %q", got, ModeVoltageLimited)
	}

	in := baseInputs()
	in.Turns = Float(40)
	fixed := mustEngine(t, in)
	if got := fixed.Report()["Mode"]; got != ModeTurnsLimited {
		t.Errorf("fixed mode label = %q, want %q", got, ModeTurnsLimited)
	}
}

func TestReport_AbsentLimitsRenderAsNotApplicable(t *testing.T) {
	rep := mustEngine(t, baseInputs()).Report()
	for _, key := range []string{
		"I-limit Pass",
		"ESC f_e Pass",
		"DC-limit Pass",
		"Max Torque @ I_limit (N-m)",
	} {
		if rep[key] != NotApplicableToken {
			t.Errorf("%s = %q, want %q", key, rep[key], NotApplicableToken)
		}
	}
}

func TestReport_ConfiguredCurrentLimit(t *testing.T) {
	in := baseInputs()
	in.PhaseCurrentLimit = Float(500)
	rep := mustEngine(t, in).Report()
	if rep["I-limit Pass"] != "YES" {
		t.Errorf("I-limit Pass = %q, want YES", rep["I-limit Pass"])
	}
	if rep["Max Torque @ I_limit (N-m)"] == NotApplicableToken {
		t.Error("Max Torque @ I_limit should be computed when a current limit is set")
	}
}

func TestReport_ZeroVoltageShowsInfUtilization(t *testing.T) {
	in := baseInputs()
	in.InputVoltage = 0
	rep := mustEngine(t, in).Report()
	if !strings.Contains(rep["Voltage Utilization (V_emf/V_avail)"], "Inf") {
		t.Errorf("utilization = %q, want an Inf token", rep["Voltage Utilization (V_emf/V_avail)"])
	}
	if rep["V-limit Pass"] != "NO" {
		t.Errorf("V-limit Pass = %q, want NO", rep["V-limit Pass"])
	}
}

func TestReport_DualPlateToken(t *testing.T) {
	in := baseInputs()
	in.DualPlate = true
	rep := mustEngine(t, in).Report()
	if rep["Dual Plate Enabled"] != "YES" {
		t.Errorf("Dual Plate Enabled = %q, want YES", rep["Dual Plate Enabled"])
	}
}

func TestReport_Idempotent(t *testing.T) {
	e := mustEngine(t, baseInputs())
	first := e.Report()
	second := e.Report()
	if len(first) != len(second) {
		t.Fatalf("repeated reports differ in size: %d vs %d", len(first), len(second))
	}
	for k, v := range first {
		if second[k] != v {
			t.Errorf("key %q changed between calls: %q vs %q", k, v, second[k])
		}
	}
}

func TestReportOrder_ReturnsCopy(t *testing.T) {
	a := ReportOrder()
	a[0] = "tampered"
	b := ReportOrder()
	if b[0] == "tampered" {
		t.Error("ReportOrder() exposes internal slice")
	}
}
