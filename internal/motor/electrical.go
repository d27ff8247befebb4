package motor

import "math"

const (
	// emfConstant is the 4.44 of the sinusoidal transformer/EMF relation
	// E_rms = 4.44 × f × N × Φ × k_w.
	emfConstant = 4.44

	// dcBusRMSFactor converts a DC bus voltage to the approximate
	// fundamental line-line RMS an inverter can produce at modulation
	// index 1 (space-vector PWM territory, ~0.612 × Vdc).
	dcBusRMSFactor = 0.612
)

// AvailableLineRMS returns the fundamental line-line RMS voltage the
// supply can deliver. DC bus inputs are derated by the modulation index;
// AC inputs are taken as line-line RMS directly.
func (e *Engine) AvailableLineRMS() float64 {
	if e.inputIsDCBus {
		return dcBusRMSFactor * e.modulationIndex * e.inputVoltage
	}
	return e.inputVoltage
}

// PhaseVoltageRMS returns the per-phase RMS voltage assuming a balanced
// wye connection.
func (e *Engine) PhaseVoltageRMS() float64 {
	return e.AvailableLineRMS() / math.Sqrt(3)
}

// emfFitTurns solves the EMF relation for the series turns that consume
// the whole available phase voltage at the target frequency.
// Formula: N = E_ph / (4.44 × f_e × Φ × k_w)
// A non-positive denominator (zero frequency, flux, or winding factor)
// yields NaN: the design point is unusable, not a fault.
func (e *Engine) emfFitTurns() float64 {
	denom := emfConstant * e.electricalFreqHz * e.FluxPerPole() * e.windingFactor
	if denom <= 0 {
		return math.NaN()
	}
	return e.PhaseVoltageRMS() / denom
}

// Turns returns the series turns per phase: the fixed value in
// turns-limited mode, otherwise the EMF fit.
func (e *Engine) Turns() float64 {
	if e.fixedTurns != nil {
		return *e.fixedTurns
	}
	return e.emfFitTurns()
}

// TurnsFixed reports whether turns were supplied by the caller
// (turns-limited mode) rather than solved from voltage.
func (e *Engine) TurnsFixed() bool { return e.fixedTurns != nil }

// FluxLinkage returns λ = N × k_w × Φ in weber-turns. This is also the
// peak per-phase back-EMF constant in V·s/rad.
func (e *Engine) FluxLinkage() float64 {
	return e.Turns() * e.windingFactor * e.FluxPerPole()
}

// singlePlateKt is the torque constant of one rotor/stator gap with the
// d-axis current held at zero: Kt = (3/2) × p_pairs × λ.
func (e *Engine) singlePlateKt() float64 {
	return 1.5 * float64(e.poles/2) * e.FluxLinkage()
}

// TorqueConstant returns the effective torque constant in N·m/A,
// doubled for dual-plate builds.
func (e *Engine) TorqueConstant() float64 {
	if e.dualPlate {
		return 2 * e.singlePlateKt()
	}
	return e.singlePlateKt()
}

// RequiredCurrent returns the q-axis phase current needed to reach the
// desired torque. NaN when the torque constant is not positive.
func (e *Engine) RequiredCurrent() float64 {
	kt := e.TorqueConstant()
	if kt <= 0 {
		return math.NaN()
	}
	return e.desiredTorque / kt
}

// PredictedTorque returns Kt × I_required. It reproduces the desired
// torque by construction and is kept for report symmetry.
func (e *Engine) PredictedTorque() float64 {
	return e.TorqueConstant() * e.RequiredCurrent()
}
