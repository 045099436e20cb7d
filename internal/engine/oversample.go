package engine

// Factor is the fixed oversampling ratio between the internal
// processing rate and the external I/O rate.
const Factor = 4

// Oversampler raises a block to 4x the external rate, lets the caller
// process the expanded samples, and brings the result back down.
//
// It owns two independent 2-stage BiquadFilter instances: the up-filter
// removes the spectral images introduced by zero-stuffing, the
// down-filter band-limits the signal below the external Nyquist before
// decimation. Both share one immutable coefficient table but never a
// state buffer; each stream direction needs its own filter memory.
//
// The scratch buffer is sized once at construction from the maximum
// block size and reused for the life of the object. Nothing allocates
// after construction, which is what keeps Upsample and Downsample safe
// inside a real-time audio callback.
//
// Upsample must precede Downsample within each processing cycle; the
// pair reads and overwrites the same scratch buffer and forms one
// logical operation per block. An Oversampler must not be used from
// more than one goroutine.
type Oversampler[F Float] struct {
	upfilter   *BiquadFilter[F]
	downfilter *BiquadFilter[F]
	scratch    []F // blockSize*Factor, reused across calls
}

// NewOversampler creates an oversampler for blocks of at most blockSize
// samples. Calling Upsample or Downsample with a larger block is
// undefined. blockSize must be at least 1.
func NewOversampler[F Float](blockSize int) *Oversampler[F] {
	if blockSize < 1 {
		blockSize = 1
	}

	coeffs := antiAliasCoeffs[F]()

	up := NewBiquadFilter[F](antiAliasStages)
	up.SetCoefficients(coeffs)

	down := NewBiquadFilter[F](antiAliasStages)
	down.SetCoefficients(coeffs)

	return &Oversampler[F]{
		upfilter:   up,
		downfilter: down,
		scratch:    make([]F, blockSize*Factor),
	}
}

// Upsample expands buf to len(buf)*Factor samples in the scratch buffer
// and low-pass filters them. The returned slice aliases the scratch
// buffer, not a copy: the caller may read and mutate the expanded
// samples directly, but must not retain the slice past the matching
// Downsample call.
func (o *Oversampler[F]) Upsample(buf []F) []F {
	up := o.zeroStuff(buf)
	o.upfilter.Process(up)
	return up
}

// zeroStuff writes buf[i]*Factor at scratch position i*Factor and zeros
// at the Factor-1 interleaved positions. The gain compensates the
// energy spread across the inserted zeros, so one coefficient table
// serves both filter directions; the per-sample multiply is cheaper
// than maintaining a second, pre-scaled table.
func (o *Oversampler[F]) zeroStuff(buf []F) []F {
	up := o.scratch[:len(buf)*Factor]
	for i, x := range buf {
		j := i * Factor
		up[j] = x * Factor
		up[j+1] = 0
		up[j+2] = 0
		up[j+3] = 0
	}
	return up
}

// Downsample filters the scratch buffer written by the preceding
// Upsample call and decimates it back into buf, which must have the
// same length as the block passed to Upsample. Every Factor-th sample
// is kept; discarding the rest is only correct because the down-filter
// has already removed energy above the external Nyquist. Returns buf.
func (o *Oversampler[F]) Downsample(buf []F) []F {
	down := o.scratch[:len(buf)*Factor]
	o.downfilter.Process(down)
	for i := range buf {
		buf[i] = down[i*Factor]
	}
	return buf
}

// Reset clears both filter memories. Coefficients stay bound.
func (o *Oversampler[F]) Reset() {
	o.upfilter.Reset()
	o.downfilter.Reset()
}

// BlockSize returns the maximum block length this oversampler accepts.
func (o *Oversampler[F]) BlockSize() int {
	return len(o.scratch) / Factor
}
