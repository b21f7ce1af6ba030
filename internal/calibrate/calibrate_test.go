package calibrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKmForSteps_ZeroAndNegative(t *testing.T) {
	c := Default()
	assert.Zero(t, c.KmForSteps(0))
	assert.Zero(t, c.KmForSteps(-100))
}

func TestKmForSteps_KnownValues(t *testing.T) {
	c := Default()
	// Mean coefficient is 0.0007495 km/step.
	assert.InDelta(t, 7.50, c.KmForSteps(10000), 0.001)
	assert.InDelta(t, 5.11, c.KmForSteps(6822), 0.001)
}

func TestKmForSteps_NonDecreasing(t *testing.T) {
	c := Default()
	prev := 0.0
	for steps := 0; steps <= 50000; steps += 500 {
		km := c.KmForSteps(steps)
		assert.GreaterOrEqual(t, km, prev, "steps=%d", steps)
		assert.GreaterOrEqual(t, km, 0.0)
		prev = km
	}
}

func TestKmForSteps_CustomCalibration(t *testing.T) {
	c := Calibration{StrideShortKm: 0.001, StrideLongKm: 0.001}
	assert.InDelta(t, 1.0, c.KmForSteps(1000), 0.0001)
}
