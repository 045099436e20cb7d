package oversampler

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-audio-oversampler/internal/engine"
)

// Float is the sample type constraint: float32 for the real-time path,
// float64 for offline rendering and analysis.
type Float interface {
	float32 | float64
}

// Factor is the fixed oversampling ratio. The internal rate is always
// Factor times the external rate; it is not runtime-configurable.
const Factor = engine.Factor

// Common errors returned at construction time.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid oversampler configuration")

	// ErrChannelMismatch indicates a channel count mismatch in ProcessMulti.
	ErrChannelMismatch = errors.New("channel count mismatch")
)

// Config holds oversampler configuration. Validation happens once in
// New; the processing calls perform no further checks.
type Config struct {
	// BlockSize is the maximum number of samples per processing call.
	// The scratch buffer is sized from it at construction; passing a
	// larger block later is undefined behavior.
	BlockSize int

	// Channels is the number of independent audio channels. Each
	// channel gets its own pair of anti-alias filters with disjoint
	// state. Defaults to mono when zero.
	Channels int
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.BlockSize < 1 {
		return fmt.Errorf("%w: block size must be at least 1", ErrInvalidConfig)
	}

	if c.BlockSize > maxBlockSize {
		return fmt.Errorf("%w: block size too large (max %d)", ErrInvalidConfig, maxBlockSize)
	}

	if c.Channels < 0 || c.Channels > maxChannels {
		return fmt.Errorf("%w: channels must be 0-%d", ErrInvalidConfig, maxChannels)
	}

	return nil
}

// Oversampler applies 4x oversampling around per-sample processing.
// Each channel owns an independent engine instance, so channel state
// never cross-contaminates. All buffers are allocated at construction;
// the processing methods are allocation-free and must be called from a
// single goroutine.
type Oversampler[F Float] struct {
	config   Config
	channels []*engine.Oversampler[F]
}

// New creates an oversampler with the specified configuration.
func New[F Float](config *Config) (*Oversampler[F], error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := *config
	if cfg.Channels == 0 {
		cfg.Channels = monoChannels
	}

	o := &Oversampler[F]{
		config:   cfg,
		channels: make([]*engine.Oversampler[F], cfg.Channels),
	}
	for ch := range o.channels {
		o.channels[ch] = engine.NewOversampler[F](cfg.BlockSize)
	}

	return o, nil
}

// Upsample expands buf to len(buf)*Factor samples on the first channel
// and anti-image filters them. The returned slice aliases internal
// scratch memory and is valid only until the matching Downsample call.
// len(buf) must not exceed the configured BlockSize.
func (o *Oversampler[F]) Upsample(buf []F) []F {
	return o.channels[0].Upsample(buf)
}

// Downsample anti-alias filters the expanded samples written by the
// preceding Upsample on the first channel and decimates them back into
// buf, which must match the block passed to Upsample. Returns buf.
func (o *Oversampler[F]) Downsample(buf []F) []F {
	return o.channels[0].Downsample(buf)
}

// ProcessBlock runs one full cycle on the first channel: upsample,
// apply shape to every expanded sample, downsample. With a nil shape
// the block is passed through the filter pair unmodified, which is
// useful for latency and cost measurements.
func (o *Oversampler[F]) ProcessBlock(buf []F, shape Shaper[F]) {
	o.processChannel(0, buf, shape)
}

// ProcessMulti runs one full cycle on every configured channel.
// len(bufs) must equal Channels; each buffer is processed with its own
// filter state. The channel-count check is the only validation on the
// processing path and costs one comparison per block.
func (o *Oversampler[F]) ProcessMulti(bufs [][]F, shape Shaper[F]) error {
	if len(bufs) != len(o.channels) {
		return fmt.Errorf("%w: expected %d channels, got %d",
			ErrChannelMismatch, len(o.channels), len(bufs))
	}

	for ch := range bufs {
		o.processChannel(ch, bufs[ch], shape)
	}

	return nil
}

func (o *Oversampler[F]) processChannel(ch int, buf []F, shape Shaper[F]) {
	eng := o.channels[ch]
	up := eng.Upsample(buf)
	if shape != nil {
		for i, x := range up {
			up[i] = shape(x)
		}
	}
	eng.Downsample(buf)
}

// Reset clears the filter memory of every channel. Coefficients are
// untouched. The next processed block starts from silence, so expect
// the same brief transient as after construction.
func (o *Oversampler[F]) Reset() {
	for _, ch := range o.channels {
		ch.Reset()
	}
}

// BlockSize returns the maximum block length per processing call.
func (o *Oversampler[F]) BlockSize() int {
	return o.config.BlockSize
}

// Channels returns the configured channel count.
func (o *Oversampler[F]) Channels() int {
	return len(o.channels)
}
