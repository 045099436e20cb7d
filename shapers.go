package oversampler

// Shaper is a per-sample nonlinearity applied on the oversampled
// buffer. It runs at Factor times the external rate, so it must be
// cheap and allocation-free.
type Shaper[F Float] func(F) F

// SoftClip is the cubic soft saturator x*(27+x^2)/(27+9x^2).
// Approximately unity gain below |x|=1 with smooth limiting above;
// odd-symmetric, so it generates only odd harmonics.
func SoftClip[F Float](x F) F {
	return x * (softClipNum + x*x) / (softClipNum + softClipDenom*x*x)
}

// HardClip limits the signal to [-1, 1]. Harsher spectrum than
// SoftClip, which is exactly why it benefits from oversampling.
func HardClip[F Float](x F) F {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	default:
		return x
	}
}

// Drive returns a SoftClip shaper with input gain applied, the usual
// way to control saturation depth.
func Drive[F Float](gain F) Shaper[F] {
	return func(x F) F {
		return SoftClip(gain * x)
	}
}
