// Package testutil provides reusable test helpers for pitch filter tests.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	TableTolerance   = 1e-13
	DBTolerance      = 0.01
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

// AssertAllZero verifies that every element is exactly zero.
func AssertAllZero(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v != 0 {
			return assert.Fail(t, "non-zero sample", "s[%d]=%g", i, v)
		}
	}
	return true
}

// AssertBitIdentical verifies two slices hold exactly the same values.
// Unlike assert.Equal it reports the first differing index.
func AssertBitIdentical(t *testing.T, expected, actual []float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if math.Float64bits(expected[i]) != math.Float64bits(actual[i]) {
			return assert.Fail(t, fmt.Sprintf("samples differ at index %d: expected %v, got %v",
				i, expected[i], actual[i]), msgAndArgs...)
		}
	}
	return true
}
