// Package testutil provides reusable test helper functions for the
// oversampler test suites.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance  = 1e-10
	ImpulseTolerance  = 1e-5 // reference-vs-implementation comparisons
	SettlingTolerance = 1e-3 // steady-state checks after filter transients
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertSettlesTo verifies that the tail of s (after skipping the first
// skip samples of filter transient) stays within tolerance of want.
func AssertSettlesTo(t *testing.T, s []float64, want, tolerance float64, skip int, msgAndArgs ...any) bool {
	t.Helper()
	if skip >= len(s) {
		return assert.Fail(t, "nothing left after transient skip",
			"skip=%d >= len=%d", skip, len(s))
	}
	for i := skip; i < len(s); i++ {
		if !assert.InDelta(t, want, s[i], tolerance,
			"s[%d]=%f has not settled to %f", i, s[i], want) {
			return false
		}
	}
	return true
}

// AssertMatchesSlice verifies element-wise equality within tolerance.
func AssertMatchesSlice(t *testing.T, expected, actual []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, expected[i], actual[i], tolerance,
			"mismatch at index %d: expected %f, got %f", i, expected[i], actual[i]) {
			return false
		}
	}
	return true
}
