// Package oversampler provides 4x oversampling for nonlinear audio
// processing in pure Go.
//
// Nonlinearities such as waveshaping, saturation and clipping generate
// harmonics above the Nyquist frequency of the host's sample rate;
// applied directly, those harmonics fold back into the audible band as
// aliasing. This library raises each audio block to 4x the external
// rate, lets the caller apply per-sample processing on the expanded
// buffer, and decimates the result back down, with elliptic anti-image
// and anti-alias filtering on both transitions.
//
// # Features
//
//   - Fixed 4x oversampling with a 2-section elliptic IIR design
//     (19.2 kHz cutoff at a 192 kHz internal rate for 48 kHz hosts)
//   - Cascaded Direct Form 1 biquad filter engine with explicit
//     per-section state, usable on its own through the public API
//   - Zero allocation and zero error paths during steady-state
//     processing: scratch and state buffers are sized once at
//     construction, making the processing calls safe inside a
//     real-time audio callback
//   - Generic over float32 and float64; float32 is the canonical
//     precision for the real-time path
//   - Stock waveshapers (soft clip, hard clip, drive) for the
//     oversampled stage
//
// # Quick Start
//
// For a mono effect processing 64-sample blocks:
//
//	os, err := oversampler.NewMono[float32](64)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Inside the audio callback, once per block:
//	os.ProcessBlock(block, oversampler.SoftClip)
//
// For direct access to the expanded buffer:
//
//	up := os.Upsample(block)       // len(block)*4 samples at 4x rate
//	for i, x := range up {
//	    up[i] = shape(x)           // arbitrary per-sample processing
//	}
//	os.Downsample(block)           // filtered, decimated back into block
//
// # Sequencing Contract
//
// Upsample and Downsample share one scratch buffer and form a single
// logical operation per block: Upsample must precede the matching
// Downsample, and the slice returned by Upsample must not be retained
// past it. The library validates configuration once at construction and
// performs no per-call checks after that; block sizing and call
// ordering are caller-enforced preconditions, documented on each
// method. This is a deliberate trade-off that keeps the processing path
// deterministic under real-time deadlines.
//
// # Thread Safety
//
// An [Oversampler] instance is owned by a single goroutine, typically
// the host's audio thread. Separate channels within one instance use
// disjoint filter state, but calls on the same instance must be
// serialized.
//
// # Attribution
//
// The filter topology and the elliptic coefficient set follow the
// OpenWare/OWL oversampling patches by the OWL team, which delegate the
// biquad math to the CMSIS-DSP cascaded DF1 routines. The recurrence is
// reimplemented here explicitly; the coefficient layout convention
// ({b0, b1, b2, -a1, -a2} per section, state {x[n-1], x[n-2], y[n-1],
// y[n-2]}) is kept for bit-compatible behavior.
package oversampler
