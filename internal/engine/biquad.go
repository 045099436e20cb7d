// Package engine implements the fixed-topology DSP core: a cascaded
// Direct Form 1 biquad filter and a 4x oversampler built on top of it.
//
// Everything here runs on the audio thread. No allocation, no error
// returns, no bounds checking beyond what the compiler inserts: all
// sizing preconditions are established at construction time and
// documented on each method. This mirrors the behavior of fixed-point
// DSP library routines where violating a size contract is undefined
// rather than reported.
package engine

// Float is the sample type constraint. float32 is the canonical
// precision for the real-time path; float64 is available for offline
// analysis and high-precision rendering.
type Float interface {
	float32 | float64
}

// Per-section array layouts, matching the CMSIS-style DF1 convention.
const (
	// CoeffsPerStage is the coefficient count per second-order section,
	// laid out as {b0, b1, b2, -a1, -a2}. a0 is normalized to 1 and the
	// feedback coefficients are pre-negated at design time, so the
	// recurrence is a pure multiply-accumulate.
	CoeffsPerStage = 5

	// StatePerStage is the state count per second-order section,
	// laid out as {x[n-1], x[n-2], y[n-1], y[n-2]}.
	StatePerStage = 4
)

// BiquadFilter is a cascade of Direct Form 1 second-order sections.
// Each section keeps separate delay lines for input and output history;
// the output of section s feeds the input of section s+1.
//
// The coefficient slice is caller-owned and referenced, not copied, so
// one immutable table can back multiple filter instances while each
// instance keeps its own state. The state slice is owned by the filter
// and allocated once at construction.
//
// A BiquadFilter must not be used from more than one goroutine.
type BiquadFilter[F Float] struct {
	stages int
	coeffs []F // CoeffsPerStage per section, caller-owned
	state  []F // StatePerStage per section, owned
}

// NewBiquadFilter creates a filter with the given number of cascaded
// second-order sections. stages must be at least 1. Coefficients must
// be bound with SetCoefficients before the first Process call.
func NewBiquadFilter[F Float](stages int) *BiquadFilter[F] {
	if stages < 1 {
		stages = 1
	}
	return &BiquadFilter[F]{
		stages: stages,
		state:  make([]F, stages*StatePerStage),
	}
}

// SetCoefficients binds a coefficient table of at least
// stages*CoeffsPerStage values and clears all filter state.
//
// The table is referenced, not copied; the caller must keep it alive
// and unmodified while the filter uses it. Clearing the state causes a
// brief transient in the output, which is why coefficients are bound at
// construction or topology changes, never per block.
//
// Stability is a design-time property of the table: coefficients with
// poles on or outside the unit circle produce unbounded output and are
// not detected at runtime.
func (f *BiquadFilter[F]) SetCoefficients(coeffs []F) {
	f.coeffs = coeffs
	clear(f.state)
}

// Reset clears filter memory without rebinding coefficients.
func (f *BiquadFilter[F]) Reset() {
	clear(f.state)
}

// Stages returns the number of cascaded sections.
func (f *BiquadFilter[F]) Stages() int {
	return f.stages
}

// Process filters buf in place through the full cascade.
func (f *BiquadFilter[F]) Process(buf []F) {
	f.ProcessTo(buf, buf)
}

// ProcessTo filters src into dst, leaving src intact when the slices do
// not alias. dst must be at least as long as src; dst == src is the
// in-place case.
//
// For each section the recurrence is
//
//	y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] + (-a1)*y[n-1] + (-a2)*y[n-2]
//
// with the feedback terms already negated in the coefficient table.
// Section state is carried across calls, so consecutive blocks form one
// continuous stream.
func (f *BiquadFilter[F]) ProcessTo(dst, src []F) {
	in := src
	for s := range f.stages {
		c := f.coeffs[s*CoeffsPerStage : s*CoeffsPerStage+CoeffsPerStage]
		b0, b1, b2 := c[0], c[1], c[2]
		na1, na2 := c[3], c[4]

		st := f.state[s*StatePerStage : s*StatePerStage+StatePerStage]
		x1, x2 := st[0], st[1]
		y1, y2 := st[2], st[3]

		for i, x := range in {
			y := b0*x + b1*x1 + b2*x2 + na1*y1 + na2*y2
			x2, x1 = x1, x
			y2, y1 = y1, y
			dst[i] = y
		}

		st[0], st[1] = x1, x2
		st[2], st[3] = y1, y2

		// Later sections read the previous section's output.
		in = dst[:len(src)]
	}
}
