package oversampler

// Channel constants
const (
	monoChannels   = 1
	stereoChannels = 2
	maxChannels    = 256 // Maximum supported channel count
)

// Block size limits
const (
	// maxBlockSize caps the scratch allocation; 64k samples per block is
	// far beyond any real host callback size.
	maxBlockSize = 65536

	// DefaultBlockSize matches the block size of typical embedded audio
	// hosts and is used by the one-shot convenience functions.
	DefaultBlockSize = 64
)

// SoftClip polynomial constants. The curve x*(27+x^2)/(27+9x^2) is the
// classic cubic soft saturator: unity gain for small signals, smooth
// limiting toward +-1 as |x| grows.
const (
	softClipNum   = 27
	softClipDenom = 9
)
