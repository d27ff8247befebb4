package motor

import "fmt"

// NotApplicableToken is rendered for a verdict or value whose limit was
// not configured.
const NotApplicableToken = "—"

// Mode labels reported by the engine.
const (
	ModeTurnsLimited   = "Turns-limited (fixed N)"
	ModeVoltageLimited = "Voltage-limited (auto N)"
)

// reportOrder is the display order of the report keys: the legacy block
// the old calculator showed first, then the modern outputs, then the
// limit verdicts.
var reportOrder = []string{
	"Number of Poles",
	"Number of Magnets",
	"Inner Radius (m)",
	"Outer Radius (m)",
	"Rotor Area (m^2)",
	"Airgap Shear Stress (N/m^2)",
	"Minimum RPM",
	"Peak Flux Density (T)",
	"Number of Coil Turns",
	"Total Torque (N-m)",
	"Required Current (A)",

	"Electrical Frequency (Hz)",
	"Mechanical RPM",
	"Flux per Pole (Wb)",
	"Winding Factor",
	"Torque Constant Kt (N·m/A)",
	"Back-EMF Const Ke_phase_peak (V·s/rad)",
	"Voltage Utilization (V_emf/V_avail)",
	"Max RPM @ V-limit (fixed N)",
	"Power Mechanical (W)",
	"Estimated DC Current (A)",
	"Shear Stress Heuristic Limit (N/m^2)",
	"Dual Plate Enabled",
	"Mode",

	"V-limit Pass",
	"I-limit Pass",
	"ESC f_e Pass",
	"DC-limit Pass",
	"Max Torque @ I_limit (N-m)",
}

// ReportOrder returns the report keys in display order, so front-ends
// render the mapping deterministically.
func ReportOrder() []string {
	out := make([]string, len(reportOrder))
	copy(out, reportOrder)
	return out
}

// Mode reports how the turns were obtained.
func (e *Engine) Mode() string {
	if e.TurnsFixed() {
		return ModeTurnsLimited
	}
	return ModeVoltageLimited
}

// fmtNum renders a numeric result with fixed precision. Non-finite
// values come out as Go's +Inf/-Inf/NaN tokens, which is intentional:
// the report always carries a complete value set and degenerate design
// points stay visible.
func fmtNum(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

// Report assembles every derived quantity into a flat label-to-value
// mapping. Legacy keys ("Minimum RPM", "Total Torque") and their modern
// duplicates are both kept so older consumers keep working. The call is
// pure: repeated calls on the same engine return identical mappings.
func (e *Engine) Report() map[string]string {
	checks := e.LimitChecks()

	maxTorque := NotApplicableToken
	if e.phaseCurrentLimit != nil {
		maxTorque = fmtNum(checks.MaxTorqueAtCurrentLimit)
	}

	return map[string]string{
		"Number of Poles":             fmtNum(float64(e.poles)),
		"Number of Magnets":           fmtNum(float64(e.magnets)),
		"Inner Radius (m)":            fmtNum(e.innerRadius),
		"Outer Radius (m)":            fmtNum(e.outerRadius),
		"Rotor Area (m^2)":            fmtNum(e.RotorArea()),
		"Airgap Shear Stress (N/m^2)": fmtNum(e.AirgapShearStress()),
		"Minimum RPM":                 fmtNum(e.mechanicalRPM),
		"Peak Flux Density (T)":       fmtNum(e.PeakFluxDensity()),
		"Number of Coil Turns":        fmtNum(e.Turns()),
		"Total Torque (N-m)":          fmtNum(e.PredictedTorque()),
		"Required Current (A)":        fmtNum(e.RequiredCurrent()),

		"Electrical Frequency (Hz)":              fmtNum(e.electricalFreqHz),
		"Mechanical RPM":                         fmtNum(e.mechanicalRPM),
		"Flux per Pole (Wb)":                     fmtNum(e.FluxPerPole()),
		"Winding Factor":                         fmtNum(e.windingFactor),
		"Torque Constant Kt (N·m/A)":             fmtNum(e.TorqueConstant()),
		"Back-EMF Const Ke_phase_peak (V·s/rad)": fmtNum(e.FluxLinkage()),
		"Voltage Utilization (V_emf/V_avail)":    fmtNum(e.VoltageUtilization()),
		"Max RPM @ V-limit (fixed N)":            fmtNum(e.MaxRPMAtVoltageLimit()),
		"Power Mechanical (W)":                   fmtNum(e.MechanicalPower()),
		"Estimated DC Current (A)":               fmtNum(e.EstimatedDCCurrent()),
		"Shear Stress Heuristic Limit (N/m^2)":   fmtNum(e.ShearStressCeiling()),
		"Dual Plate Enabled":                     yesNo(e.dualPlate),
		"Mode":                                   e.Mode(),

		"V-limit Pass":               checks.Voltage.Token(),
		"I-limit Pass":               checks.Current.Token(),
		"ESC f_e Pass":               checks.Frequency.Token(),
		"DC-limit Pass":              checks.DCSupply.Token(),
		"Max Torque @ I_limit (N-m)": maxTorque,
	}
}
