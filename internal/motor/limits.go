package motor

import "math"

const (
	mu0 = 4 * math.Pi * 1e-7 // vacuum permeability, H/m

	// shearStressCoefficient scales the magnetic pressure B²/2μ₀ down to
	// a practical airgap shear ceiling. Informational only.
	shearStressCoefficient = 0.25

	// utilizationFloor keeps the voltage-limited speed projection from
	// blowing up when utilization is vanishingly small.
	utilizationFloor = 1e-9

	// assumedDriveEfficiency is the fixed drive-train efficiency used
	// for the DC current estimate.
	assumedDriveEfficiency = 0.9
)

// AirgapShearStress returns the shear stress the desired torque asks of
// the rotor surface, in N/m².
// Formula: τ = T / (A × r_avg)
func (e *Engine) AirgapShearStress() float64 {
	return e.desiredTorque / (e.RotorArea() * e.AverageRadius())
}

// ShearStressCeiling returns the heuristic shear-stress limit
// C × B_avg² / (2μ₀). Surfaced as a reference value, never enforced.
func (e *Engine) ShearStressCeiling() float64 {
	return shearStressCoefficient * e.fluxDensityAvg * e.fluxDensityAvg / (2 * mu0)
}

// VoltageUtilization returns the ratio of the predicted line-line EMF at
// the target speed to the available line-line RMS. Above 1 the design
// cannot reach the target speed on this supply. +Inf when no voltage is
// available, never a division fault.
func (e *Engine) VoltageUtilization() float64 {
	avail := e.AvailableLineRMS()
	if avail <= 0 {
		return math.Inf(1)
	}
	phaseEMF := emfConstant * e.electricalFreqHz * e.Turns() * e.FluxPerPole() * e.windingFactor
	return math.Sqrt(3) * phaseEMF / avail
}

// MaxRPMAtVoltageLimit scales the target speed down (or up) to the point
// where utilization reaches exactly 1, holding turns fixed. In auto-turns
// mode the turns were fitted for this speed, so the result sits at the
// target speed itself. NaN when utilization is non-finite or non-positive.
func (e *Engine) MaxRPMAtVoltageLimit() float64 {
	u := e.VoltageUtilization()
	if !isFinite(u) || u <= 0 {
		return math.NaN()
	}
	return e.mechanicalRPM / math.Max(u, utilizationFloor)
}

// MechanicalPower returns the shaft power at the desired torque and
// resolved speed, in watts.
func (e *Engine) MechanicalPower() float64 {
	omega := 2 * math.Pi * e.mechanicalRPM / 60
	return e.desiredTorque * omega
}

// EstimatedDCCurrent is a rough supply-side current estimate from
// mechanical power at a fixed drive efficiency. For AC inputs the DC bus
// is back-derived from the line RMS and modulation index. NaN when the
// bus voltage is not positive.
func (e *Engine) EstimatedDCCurrent() float64 {
	var vdc float64
	if e.inputIsDCBus {
		vdc = e.inputVoltage
	} else {
		vdc = e.AvailableLineRMS() / math.Max(dcBusRMSFactor*e.modulationIndex, utilizationFloor)
	}
	if vdc <= 0 {
		return math.NaN()
	}
	return e.MechanicalPower() / (assumedDriveEfficiency * vdc)
}

// Verdict is the outcome of a single drive-limit check.
type Verdict int

const (
	// NotApplicable means the corresponding limit was not configured
	// (or, for the DC check, the estimate is non-finite).
	NotApplicable Verdict = iota
	Pass
	Fail
)

// Token renders the verdict the way the report does.
func (v Verdict) Token() string {
	switch v {
	case Pass:
		return "YES"
	case Fail:
		return "NO"
	default:
		return NotApplicableToken
	}
}

// LimitChecks carries the drive-limit verdicts for a design point.
type LimitChecks struct {
	Voltage   Verdict // predicted EMF vs available voltage; always evaluated
	Current   Verdict // required phase current vs PhaseCurrentLimit
	Frequency Verdict // electrical frequency vs ESCFreqMax
	DCSupply  Verdict // estimated DC current vs DCCurrentLimit

	// MaxTorqueAtCurrentLimit is the torque the configured phase current
	// limit allows. NaN when no current limit is configured (or the
	// torque constant is itself degenerate).
	MaxTorqueAtCurrentLimit float64
}

// LimitChecks evaluates every configured limit. Absent limits yield
// NotApplicable, never a verdict against zero.
func (e *Engine) LimitChecks() LimitChecks {
	lc := LimitChecks{MaxTorqueAtCurrentLimit: math.NaN()}

	// NaN utilization compares false and correctly lands on Fail.
	lc.Voltage = verdictOf(e.VoltageUtilization() <= 1)

	if e.phaseCurrentLimit != nil {
		lc.MaxTorqueAtCurrentLimit = e.TorqueConstant() * *e.phaseCurrentLimit
		lc.Current = verdictOf(e.RequiredCurrent() <= *e.phaseCurrentLimit)
	}
	if e.escFreqMax != nil {
		lc.Frequency = verdictOf(e.electricalFreqHz <= *e.escFreqMax)
	}
	if e.dcCurrentLimit != nil {
		if idc := e.EstimatedDCCurrent(); isFinite(idc) {
			lc.DCSupply = verdictOf(idc <= *e.dcCurrentLimit)
		}
	}
	return lc
}

func verdictOf(pass bool) Verdict {
	if pass {
		return Pass
	}
	return Fail
}
