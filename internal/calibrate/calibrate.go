// Package calibrate derives walking distance from step counts for fragments
// that carry no native distance field.
package calibrate

import "math"

// Default stride coefficients in km per step, measured against exports that
// did carry distance. The short and long values bracket the wearer's stride;
// derivation uses their mean.
const (
	DefaultStrideShortKm = 0.0007376
	DefaultStrideLongKm  = 0.0007614
)

// Calibration converts steps to kilometres using a pair of bracketing stride
// coefficients.
type Calibration struct {
	StrideShortKm float64
	StrideLongKm  float64
}

// Default returns the stock calibration.
func Default() Calibration {
	return Calibration{
		StrideShortKm: DefaultStrideShortKm,
		StrideLongKm:  DefaultStrideLongKm,
	}
}

// KmForSteps returns the derived distance for a step count, rounded to two
// decimals. It is zero at zero, never negative, and non-decreasing in steps.
func (c Calibration) KmForSteps(steps int) float64 {
	if steps <= 0 {
		return 0
	}
	km := float64(steps) * (c.StrideShortKm + c.StrideLongKm) / 2
	return math.Round(km*100) / 100
}
