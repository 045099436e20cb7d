// Package spectrum provides offline spectral measurement helpers for
// tests and analysis commands: PSD estimation, single-tone magnitude
// and band power. It operates on float64 and is never called from the
// real-time processing path.
package spectrum

import (
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// hannCoherentGain is the amplitude correction for a Hann window
	// (sum of window / N = 0.5).
	hannCoherentGain = 0.5

	// minPowerDB is the floor reported for empty bins, well below any
	// measurable signal.
	minPowerDB = -200.0
)

// ToneMagnitude measures the amplitude of a single frequency component
// by quadrature projection: the signal is correlated against cosine and
// sine at the target frequency. The dot products are the hot part and
// use SIMD kernels; table generation is allocation-heavy but this is
// analysis-side code.
//
// For a pure sine of amplitude A at freq, the result approaches A as
// the window covers an integer number of cycles.
func ToneMagnitude(signal []float64, freq, sampleRate float64) float64 {
	n := len(signal)
	if n == 0 {
		return 0
	}

	cosTable := make([]float64, n)
	sinTable := make([]float64, n)
	w := 2 * math.Pi * freq / sampleRate
	for i := range cosTable {
		phase := w * float64(i)
		cosTable[i] = math.Cos(phase)
		sinTable[i] = math.Sin(phase)
	}

	re := f64.DotProductUnsafe(signal, cosTable)
	im := f64.DotProductUnsafe(signal, sinTable)

	return 2 * math.Hypot(re, im) / float64(n)
}

// RMS returns the root-mean-square level of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	power := f64.DotProductUnsafe(signal, signal)
	return math.Sqrt(power / float64(len(signal)))
}

// PSD estimates the power spectral density of the signal using a
// Hann-windowed real FFT. It returns the bin center frequencies in Hz
// and the corresponding power levels in dB relative to a full-scale
// sine. Bin spacing is sampleRate/len(signal).
func PSD(signal []float64, sampleRate float64) (freqs, powerDB []float64) {
	n := len(signal)
	if n == 0 {
		return nil, nil
	}

	windowed := make([]float64, n)
	for i, v := range signal {
		w := hannCoherentGain * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
		windowed[i] = v * w
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, windowed)

	freqs = make([]float64, len(coeffs))
	powerDB = make([]float64, len(coeffs))
	for i, c := range coeffs {
		freqs[i] = fft.Freq(i) * sampleRate

		// Normalize to single-sided amplitude, corrected for window gain.
		mag := 2 * math.Hypot(real(c), imag(c)) / (float64(n) * hannCoherentGain)
		if i == 0 || i == len(coeffs)-1 {
			mag /= 2 // DC and Nyquist bins are not doubled
		}

		if mag > 0 {
			powerDB[i] = 20 * math.Log10(mag)
		} else {
			powerDB[i] = minPowerDB
		}
	}

	return freqs, powerDB
}

// PeakInBand returns the highest PSD level in dB within [loHz, hiHz],
// given the freqs/powerDB pair produced by PSD. Returns minPowerDB when
// the band contains no bins.
func PeakInBand(freqs, powerDB []float64, loHz, hiHz float64) float64 {
	peak := minPowerDB
	for i, f := range freqs {
		if f >= loHz && f <= hiHz && powerDB[i] > peak {
			peak = powerDB[i]
		}
	}
	return peak
}

// Floor returns the minimum level reported by PSD for silent bins.
func Floor() float64 {
	return minPowerDB
}
