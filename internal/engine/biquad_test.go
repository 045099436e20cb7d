package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-oversampler/internal/testutil"
)

// identityCoeffs passes the input through unchanged: b0=1, all other
// coefficients zero.
var identityCoeffs = []float64{1, 0, 0, 0, 0}

// referenceCascadeDF1 is a straightforward per-sample Direct Form 1
// cascade used as the comparison baseline for the block implementation.
func referenceCascadeDF1(coeffs, input []float64, stages int) []float64 {
	out := make([]float64, len(input))
	copy(out, input)

	for s := 0; s < stages; s++ {
		c := coeffs[s*CoeffsPerStage:]
		var x1, x2, y1, y2 float64
		for i, x := range out {
			y := c[0]*x + c[1]*x1 + c[2]*x2 + c[3]*y1 + c[4]*y2
			x2, x1 = x1, x
			y2, y1 = y1, y
			out[i] = y
		}
	}

	return out
}

func TestBiquadIdentityImpulse(t *testing.T) {
	f := NewBiquadFilter[float64](1)
	f.SetCoefficients(identityCoeffs)

	buf := make([]float64, 16)
	buf[0] = 1
	f.Process(buf)

	want := make([]float64, 16)
	want[0] = 1
	testutil.AssertMatchesSlice(t, want, buf, testutil.DefaultTolerance)

	// State holds the last two inputs; output history mirrors them for
	// the identity response.
	assert.InDelta(t, 0.0, f.state[0], testutil.DefaultTolerance, "x[n-1]")
	assert.InDelta(t, 0.0, f.state[1], testutil.DefaultTolerance, "x[n-2]")
	assert.InDelta(t, 0.0, f.state[2], testutil.DefaultTolerance, "y[n-1]")
	assert.InDelta(t, 0.0, f.state[3], testutil.DefaultTolerance, "y[n-2]")
}

func TestBiquadIdentityRamp(t *testing.T) {
	f := NewBiquadFilter[float64](1)
	f.SetCoefficients(identityCoeffs)

	buf := make([]float64, 32)
	for i := range buf {
		buf[i] = float64(i)
	}
	f.Process(buf)

	for i := range buf {
		assert.InDelta(t, float64(i), buf[i], testutil.DefaultTolerance, "sample %d", i)
	}

	// After a ramp, the delay lines hold the last two samples.
	assert.InDelta(t, 31.0, f.state[0], testutil.DefaultTolerance, "x[n-1]")
	assert.InDelta(t, 30.0, f.state[1], testutil.DefaultTolerance, "x[n-2]")
	assert.InDelta(t, 31.0, f.state[2], testutil.DefaultTolerance, "y[n-1]")
	assert.InDelta(t, 30.0, f.state[3], testutil.DefaultTolerance, "y[n-2]")
}

func TestBiquadImpulseResponseMatchesReference(t *testing.T) {
	const numSamples = 256

	f := NewBiquadFilter[float64](antiAliasStages)
	f.SetCoefficients(antiAliasCoeffs64)

	impulse := make([]float64, numSamples)
	impulse[0] = 1

	want := referenceCascadeDF1(antiAliasCoeffs64, impulse, antiAliasStages)

	buf := make([]float64, numSamples)
	buf[0] = 1
	f.Process(buf)

	testutil.AssertNoNaNOrInf(t, buf)
	testutil.AssertMatchesSlice(t, want, buf, testutil.ImpulseTolerance)
}

func TestBiquadOutOfPlaceMatchesInPlace(t *testing.T) {
	input := make([]float64, 128)
	for i := range input {
		input[i] = math.Sin(2 * math.Pi * float64(i) / 16)
	}

	inPlace := NewBiquadFilter[float64](antiAliasStages)
	inPlace.SetCoefficients(antiAliasCoeffs64)
	bufA := make([]float64, len(input))
	copy(bufA, input)
	inPlace.Process(bufA)

	outOfPlace := NewBiquadFilter[float64](antiAliasStages)
	outOfPlace.SetCoefficients(antiAliasCoeffs64)
	bufB := make([]float64, len(input))
	src := make([]float64, len(input))
	copy(src, input)
	outOfPlace.ProcessTo(bufB, src)

	testutil.AssertMatchesSlice(t, bufA, bufB, testutil.DefaultTolerance)

	// Out-of-place processing leaves the source untouched.
	for i := range input {
		require.Equal(t, input[i], src[i], "src modified at %d", i)
	}
}

func TestBiquadBlockSplitContinuity(t *testing.T) {
	// Filtering one long buffer must equal filtering it in two chunks:
	// the section state carries across calls.
	input := make([]float64, 200)
	for i := range input {
		input[i] = math.Sin(2*math.Pi*float64(i)/7) + 0.25*math.Cos(2*math.Pi*float64(i)/3)
	}

	whole := NewBiquadFilter[float64](antiAliasStages)
	whole.SetCoefficients(antiAliasCoeffs64)
	bufWhole := make([]float64, len(input))
	copy(bufWhole, input)
	whole.Process(bufWhole)

	split := NewBiquadFilter[float64](antiAliasStages)
	split.SetCoefficients(antiAliasCoeffs64)
	bufSplit := make([]float64, len(input))
	copy(bufSplit, input)
	split.Process(bufSplit[:77])
	split.Process(bufSplit[77:])

	testutil.AssertMatchesSlice(t, bufWhole, bufSplit, testutil.DefaultTolerance)
}

func TestBiquadStateIsolation(t *testing.T) {
	// Two instances sharing one coefficient table must never share
	// state: instance B's output depends only on its own input history.
	fa := NewBiquadFilter[float64](antiAliasStages)
	fa.SetCoefficients(antiAliasCoeffs64)
	fb := NewBiquadFilter[float64](antiAliasStages)
	fb.SetCoefficients(antiAliasCoeffs64)

	noise := make([]float64, 64)
	for i := range noise {
		noise[i] = math.Sin(float64(i) * 1.7)
	}
	fa.Process(noise)

	impulseB := make([]float64, 64)
	impulseB[0] = 1
	fb.Process(impulseB)

	fresh := NewBiquadFilter[float64](antiAliasStages)
	fresh.SetCoefficients(antiAliasCoeffs64)
	impulseFresh := make([]float64, 64)
	impulseFresh[0] = 1
	fresh.Process(impulseFresh)

	testutil.AssertMatchesSlice(t, impulseFresh, impulseB, testutil.DefaultTolerance)
}

func TestBiquadSetCoefficientsClearsState(t *testing.T) {
	f := NewBiquadFilter[float64](antiAliasStages)
	f.SetCoefficients(antiAliasCoeffs64)

	buf := make([]float64, 64)
	for i := range buf {
		buf[i] = 1
	}
	f.Process(buf)

	nonZero := false
	for _, v := range f.state {
		if v != 0 {
			nonZero = true
			break
		}
	}
	require.True(t, nonZero, "processing should have populated state")

	f.SetCoefficients(antiAliasCoeffs64)
	for i, v := range f.state {
		assert.Zero(t, v, "state[%d] not cleared", i)
	}
}

func TestBiquadResetKeepsCoefficients(t *testing.T) {
	f := NewBiquadFilter[float64](antiAliasStages)
	f.SetCoefficients(antiAliasCoeffs64)

	buf := make([]float64, 32)
	buf[0] = 1
	f.Process(buf)
	f.Reset()

	for i, v := range f.state {
		assert.Zero(t, v, "state[%d] not cleared", i)
	}

	// Filter still works without rebinding coefficients.
	buf2 := make([]float64, 32)
	buf2[0] = 1
	f.Process(buf2)
	testutil.AssertMatchesSlice(t, buf, buf2, testutil.DefaultTolerance)
}

func TestBiquadStagesClamped(t *testing.T) {
	f := NewBiquadFilter[float64](0)
	assert.Equal(t, 1, f.Stages())
	assert.Len(t, f.state, StatePerStage)
}

func TestBiquadFloat32MatchesFloat64(t *testing.T) {
	const numSamples = 256

	f64filter := NewBiquadFilter[float64](antiAliasStages)
	f64filter.SetCoefficients(antiAliasCoeffs64)
	f32filter := NewBiquadFilter[float32](antiAliasStages)
	f32filter.SetCoefficients(antiAliasCoeffs32)

	buf64 := make([]float64, numSamples)
	buf32 := make([]float32, numSamples)
	for i := range buf64 {
		v := math.Sin(2 * math.Pi * float64(i) / 48)
		buf64[i] = v
		buf32[i] = float32(v)
	}

	f64filter.Process(buf64)
	f32filter.Process(buf32)

	for i := range buf64 {
		assert.InDelta(t, buf64[i], float64(buf32[i]), 1e-4, "sample %d", i)
	}
}
