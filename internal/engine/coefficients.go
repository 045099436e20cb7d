package engine

// Anti-alias / anti-image low-pass shared by both halves of the
// oversampler. Elliptic design computed in GNU Octave:
//
//	[b, a] = ellip(4, 3, 40, 19200/(48000*4/2))
//	sos = tf2sos(b, a)
//
// Cutoff is 19.2 kHz at the 192 kHz internal rate. The two second-order
// sections are stored in the {b0, b1, b2, -a1, -a2} layout, feedback
// coefficients pre-negated. The up- and down-filters reference this one
// table and keep disjoint state; the 1/4 energy loss of zero-stuffing
// is compensated in the upsample loop rather than baked into the table,
// which would otherwise require separate up and down coefficient sets.
const antiAliasStages = 2

var antiAliasCoeffs64 = []float64{
	0.00319706223776298, 0.00452624091396112, 0.00319706223776297, 1.54996539093296581, -0.88904312844649880,
	1.00000000000000000, 0.04671345292281195, 1.00000000000000222, 1.63596919736817048, -0.71895330675421443,
}

var antiAliasCoeffs32 = []float32{
	0.00319706223776298, 0.00452624091396112, 0.00319706223776297, 1.54996539093296581, -0.88904312844649880,
	1.00000000000000000, 0.04671345292281195, 1.00000000000000222, 1.63596919736817048, -0.71895330675421443,
}

// antiAliasCoeffs returns the shared coefficient table for type F.
// The returned slice is immutable by convention; callers must not
// write to it.
func antiAliasCoeffs[F Float]() []F {
	var zero F
	switch any(zero).(type) {
	case float32:
		c, ok := any(antiAliasCoeffs32).([]F)
		if !ok {
			panic("engine: coefficient table assertion failed for float32")
		}
		return c
	case float64:
		c, ok := any(antiAliasCoeffs64).([]F)
		if !ok {
			panic("engine: coefficient table assertion failed for float64")
		}
		return c
	default:
		panic("engine: unsupported float type")
	}
}
