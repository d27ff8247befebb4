// Package motor sizes an axial-flux permanent-magnet motor from a small
// set of design inputs. An Engine is built once per design point; it
// validates the topology, resolves speed against frequency, and answers
// every derived electromagnetic quantity from closed-form relations.
package motor

import (
	"errors"
	"fmt"
	"math"
)

// Input defaults applied by DefaultInputs. Explicit zero values supplied
// by a caller are honored; a zero flux density or winding factor is a
// legal degenerate design point that surfaces as non-finite turns.
const (
	DefaultFluxDensityAvg  = 0.6  // tesla, average air-gap flux density
	DefaultWindingFactor   = 0.92 // typical 0.85..0.96 for distributed windings
	DefaultModulationIndex = 0.95 // inverter modulation, 0..1
)

// InnerRadiusRatio fixes the inner radius at this fraction of the outer
// radius. Legacy optimal-ratio heuristic kept for output compatibility
// with the older calculator.
const InnerRadiusRatio = 0.58

var (
	// ErrInvalidTopology reports a coil or pole count that cannot form a
	// balanced three-phase axial machine.
	ErrInvalidTopology = errors.New("invalid motor topology")

	// ErrMissingSpeedSpec reports that neither an electrical frequency
	// nor a mechanical speed was supplied.
	ErrMissingSpeedSpec = errors.New("missing speed specification")
)

// DesignInputs is the complete parameter set for one design point.
// Optional parameters are pointers: nil means "not supplied", which keeps
// "no limit configured" distinct from a configured limit of zero.
type DesignInputs struct {
	// Coils is the total stator coil count; must be a positive multiple
	// of 3 (balanced three-phase winding).
	Coils int

	// InputVoltage is the supply voltage. Line-line RMS unless
	// InputIsDCBus is set, in which case it is the DC bus voltage and
	// ModulationIndex applies.
	InputVoltage float64

	// OuterRadius is the active outer radius of the rotor disc in
	// meters. The inner radius is derived via InnerRadiusRatio and is
	// not user-settable.
	OuterRadius float64

	// DesiredTorque is the target shaft torque in newton-meters.
	DesiredTorque float64

	// Exactly one of ElectricalFreqHz or MechanicalRPM should be set;
	// the other is derived through the pole count. When both are set,
	// MechanicalRPM wins, matching the original calculator. When
	// neither is set, construction fails with ErrMissingSpeedSpec.
	ElectricalFreqHz *float64
	MechanicalRPM    *float64

	// Turns fixes the series turns per phase. Nil selects auto mode:
	// turns are solved from the available voltage (EMF fit).
	Turns *float64

	// Poles optionally fixes the pole count (even, at least 4). Nil
	// derives it from Coils with the legacy two-poles-per-three-coils
	// rule.
	Poles *int

	FluxDensityAvg  float64 // average air-gap flux density, tesla
	WindingFactor   float64 // winding distribution/pitch factor, 0..1
	ModulationIndex float64 // inverter modulation index, clamped to 0..1
	InputIsDCBus    bool    // InputVoltage is a DC bus, not line-line RMS
	DualPlate       bool    // dual rotor/airgap build: doubles torque per amp

	// Drive limits. Nil disables the corresponding check ("not
	// applicable" in the report) rather than checking against zero.
	PhaseCurrentLimit *float64 // A, continuous phase current
	DCCurrentLimit    *float64 // A, battery/DC supply
	ESCFreqMax        *float64 // Hz, controller electrical frequency ceiling
}

// DefaultInputs returns a DesignInputs with the documented defaults
// filled in. Callers set their own values on top of it.
func DefaultInputs() DesignInputs {
	return DesignInputs{
		FluxDensityAvg:  DefaultFluxDensityAvg,
		WindingFactor:   DefaultWindingFactor,
		ModulationIndex: DefaultModulationIndex,
	}
}

// Engine evaluates one design point. It is immutable once built, so
// concurrent queries need no synchronization; a new design point needs a
// new Engine.
type Engine struct {
	coils           int
	inputVoltage    float64
	outerRadius     float64
	innerRadius     float64
	desiredTorque   float64
	fluxDensityAvg  float64
	windingFactor   float64
	modulationIndex float64
	inputIsDCBus    bool
	dualPlate       bool

	fixedTurns        *float64
	phaseCurrentLimit *float64
	dcCurrentLimit    *float64
	escFreqMax        *float64

	poles            int
	magnets          int
	mechanicalRPM    float64
	electricalFreqHz float64
}

// New validates the inputs and derives the first-order state (poles,
// magnets, inner radius, speed/frequency). It fails fast with
// ErrInvalidTopology or ErrMissingSpeedSpec; any other degeneracy is
// deferred to the query methods, which return IEEE non-finite values
// instead of failing.
func New(in DesignInputs) (*Engine, error) {
	if in.Coils <= 0 || in.Coils%3 != 0 {
		return nil, fmt.Errorf("%w: number of coils must be a positive multiple of 3, got %d", ErrInvalidTopology, in.Coils)
	}

	poles, err := resolvePoles(in)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		coils:           in.Coils,
		inputVoltage:    in.InputVoltage,
		outerRadius:     in.OuterRadius,
		innerRadius:     in.OuterRadius * InnerRadiusRatio,
		desiredTorque:   in.DesiredTorque,
		fluxDensityAvg:  in.FluxDensityAvg,
		windingFactor:   in.WindingFactor,
		modulationIndex: clamp01(in.ModulationIndex),
		inputIsDCBus:    in.InputIsDCBus,
		dualPlate:       in.DualPlate,

		fixedTurns:        cloneFloat(in.Turns),
		phaseCurrentLimit: cloneFloat(in.PhaseCurrentLimit),
		dcCurrentLimit:    cloneFloat(in.DCCurrentLimit),
		escFreqMax:        cloneFloat(in.ESCFreqMax),

		poles:   poles,
		magnets: magnetCount(poles),
	}

	// Speed/frequency must be resolved before any electrical derivation;
	// every later formula assumes both quantities exist and agree.
	switch {
	case in.MechanicalRPM != nil:
		e.mechanicalRPM = *in.MechanicalRPM
		e.electricalFreqHz = float64(e.poles) / 2 * (e.mechanicalRPM / 60)
	case in.ElectricalFreqHz != nil:
		e.electricalFreqHz = *in.ElectricalFreqHz
		e.mechanicalRPM = 120 * e.electricalFreqHz / float64(e.poles)
	default:
		return nil, fmt.Errorf("%w: provide either an electrical frequency (Hz) or a mechanical speed (RPM)", ErrMissingSpeedSpec)
	}

	return e, nil
}

// resolvePoles picks the pole count: explicit when given, otherwise the
// legacy two-poles-per-three-coils heuristic. Either way the result must
// be even and at least 4.
func resolvePoles(in DesignInputs) (int, error) {
	if in.Poles != nil {
		p := *in.Poles
		if p%2 != 0 || p < 4 {
			return 0, fmt.Errorf("%w: poles must be an even number >= 4, got %d", ErrInvalidTopology, p)
		}
		return p, nil
	}

	// Legacy heuristic: not generally valid electromagnetically, but
	// preserved for compatibility when poles are not given.
	p := (in.Coils / 3) * 2
	if p%2 != 0 || p < 4 {
		return 0, fmt.Errorf("%w: %d coils imply %d poles, need an even number >= 4 (supply poles explicitly)", ErrInvalidTopology, in.Coils, p)
	}
	return p, nil
}

// magnetCount returns the smallest value >= 2*poles that is divisible
// by 4, searching upward by 1.
func magnetCount(poles int) int {
	magnets := poles * 2
	for magnets%4 != 0 {
		magnets++
	}
	return magnets
}

// Coils returns the validated stator coil count.
func (e *Engine) Coils() int { return e.coils }

// Poles returns the resolved pole count.
func (e *Engine) Poles() int { return e.poles }

// Magnets returns the rotor magnet count derived from the pole count.
func (e *Engine) Magnets() int { return e.magnets }

// OuterRadius returns the active outer radius in meters.
func (e *Engine) OuterRadius() float64 { return e.outerRadius }

// InnerRadius returns the derived inner radius in meters.
func (e *Engine) InnerRadius() float64 { return e.innerRadius }

// MechanicalRPM returns the resolved shaft speed.
func (e *Engine) MechanicalRPM() float64 { return e.mechanicalRPM }

// ElectricalFreqHz returns the resolved electrical frequency.
func (e *Engine) ElectricalFreqHz() float64 { return e.electricalFreqHz }

// DualPlate reports whether the dual rotor/airgap build is selected.
func (e *Engine) DualPlate() bool { return e.dualPlate }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Float returns a pointer to v. Convenience for building DesignInputs
// literals with optional fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v. Convenience for the optional pole count.
func Int(v int) *int { return &v }
