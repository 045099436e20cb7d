package oversampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-oversampler/internal/testutil"
)

func TestNewMono(t *testing.T) {
	os, err := NewMono[float32](DefaultBlockSize)
	require.NoError(t, err)
	assert.Equal(t, 1, os.Channels())
	assert.Equal(t, DefaultBlockSize, os.BlockSize())
}

func TestNewStereo(t *testing.T) {
	os, err := NewStereo[float32](128)
	require.NoError(t, err)
	assert.Equal(t, 2, os.Channels())
}

func TestNewMonoInvalidBlockSize(t *testing.T) {
	_, err := NewMono[float32](0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestOversampleBlock(t *testing.T) {
	buf := make([]float64, 512)
	for i := range buf {
		buf[i] = 0.3
	}

	out, err := OversampleBlock(buf, SoftClip[float64])
	require.NoError(t, err)
	assert.Equal(t, &buf[0], &out[0], "one-shot processing is in place")
	testutil.AssertNoNaNOrInf(t, out)
}

func TestOversampleBlockEmpty(t *testing.T) {
	_, err := OversampleBlock([]float64{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
