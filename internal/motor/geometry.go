package motor

import "math"

// RotorArea returns the active annulus area in m².
// Formula: A = π × (r_outer² − r_inner²)
func (e *Engine) RotorArea() float64 {
	return math.Pi * (e.outerRadius*e.outerRadius - e.innerRadius*e.innerRadius)
}

// AverageRadius returns the mean active radius in meters, the lever arm
// used for the shear-stress figure.
func (e *Engine) AverageRadius() float64 {
	return (e.outerRadius + e.innerRadius) / 2
}

// poleArea is the annulus area carried by a single pole.
func (e *Engine) poleArea() float64 {
	return e.RotorArea() / float64(e.poles)
}

// PeakFluxDensity converts the average gap flux density to the peak of
// the sinusoidal fundamental.
// Formula: B_pk = (π/2) × B_avg
func (e *Engine) PeakFluxDensity() float64 {
	return math.Pi / 2 * e.fluxDensityAvg
}

// FluxPerPole returns the flux carried by one pole in webers.
// First-order axial-flux approximation: Φ ≈ B_avg × A_pole, ignoring
// pole-arc fraction and fringing.
func (e *Engine) FluxPerPole() float64 {
	return e.fluxDensityAvg * e.poleArea()
}
