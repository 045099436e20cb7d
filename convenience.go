package oversampler

// NewMono creates a single-channel oversampler for blocks of at most
// blockSize samples.
func NewMono[F Float](blockSize int) (*Oversampler[F], error) {
	return New[F](&Config{
		BlockSize: blockSize,
		Channels:  monoChannels,
	})
}

// NewStereo creates a two-channel oversampler with independent filter
// state per channel.
func NewStereo[F Float](blockSize int) (*Oversampler[F], error) {
	return New[F](&Config{
		BlockSize: blockSize,
		Channels:  stereoChannels,
	})
}

// OversampleBlock applies shape to buf through a freshly constructed
// 4x oversampler and returns buf. One-shot convenience for offline use;
// real-time callers should construct an Oversampler once and reuse it,
// since this allocates scratch buffers per call.
func OversampleBlock[F Float](buf []F, shape Shaper[F]) ([]F, error) {
	os, err := NewMono[F](len(buf))
	if err != nil {
		return nil, err
	}
	os.ProcessBlock(buf, shape)
	return buf, nil
}
