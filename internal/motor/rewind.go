package motor

import (
	"fmt"
	"math"
)

// Reference winding used by the rewind estimate: the donor motor's
// measured KV (no-load RPM per volt) at its factory turn count.
const (
	DefaultReferenceKV    = 62.5 // RPM/V
	DefaultReferenceTurns = 30
)

// RewindReference describes the donor motor a rewind is scaled from.
type RewindReference struct {
	KV    float64 // measured no-load RPM per volt
	Turns int     // series turns the KV was measured at
}

// DefaultRewindReference returns the stock donor used when the caller
// has no measurement of their own.
func DefaultRewindReference() RewindReference {
	return RewindReference{KV: DefaultReferenceKV, Turns: DefaultReferenceTurns}
}

// RewindTurns estimates the series turns to rewind the reference motor
// to so that it spins at desiredRPM on volts with no load. KV scales
// inversely with turns, so turns = round(refTurns × refKV / newKV).
// A rewind target must be a real operating point: non-positive speed,
// voltage, or reference values are an error rather than a sentinel.
func RewindTurns(desiredRPM, volts float64, ref RewindReference) (int, error) {
	if !isFinite(desiredRPM) || desiredRPM <= 0 {
		return 0, fmt.Errorf("desired RPM must be a positive number, got %g", desiredRPM)
	}
	if !isFinite(volts) || volts <= 0 {
		return 0, fmt.Errorf("voltage must be a positive number, got %g", volts)
	}
	if !isFinite(ref.KV) || ref.KV <= 0 || ref.Turns <= 0 {
		return 0, fmt.Errorf("reference motor needs positive KV and turns, got %g RPM/V at %d turns", ref.KV, ref.Turns)
	}

	newKV := desiredRPM / volts
	return int(math.Round(float64(ref.Turns) * ref.KV / newKV)), nil
}
