package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV format constants
const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	wavHeaderSize      = 44
	wavRiffHeaderSize  = 36
	wavPCMSubchunkSize = 16
	wavFileSizeOffset  = 4
	wavDataSizeOffset  = 40
	bitsPerByte        = 8
	uint32Size         = 4

	wavWriterBufferSize = 256 * 1024
)

// wavInput wraps a validated WAV decoder.
type wavInput struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
}

// openWAVInput opens and validates a WAV file.
func openWAVInput(path string, verbose bool) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit",
			format.SampleRate, format.NumChannels, decoder.BitDepth)
	}

	return &wavInput{
		file:     f,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: int(decoder.BitDepth),
		format:   format,
	}, nil
}

// readBlock fills the shared buffers with the next block and returns
// the number of samples per channel.
func (in *wavInput) readBlock(b *shapeBuffers) (int, error) {
	b.intBuffer.Data = b.intBuffer.Data[:cap(b.intBuffer.Data)]

	n, err := in.decoder.PCMBuffer(b.intBuffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to read audio data: %w", err)
	}
	if n == 0 {
		return 0, nil
	}

	b.intBuffer.Data = b.intBuffer.Data[:n*in.channels]
	b.deinterleave(n)
	return n, nil
}

func (in *wavInput) Close() error {
	return in.file.Close()
}

// shapeBuffers holds the preallocated conversion buffers shared by the
// read/process/write loop.
type shapeBuffers struct {
	intBuffer *audio.IntBuffer
	channels  [][]float64
	channs    int
	invMaxVal float64
	maxVal    float64
}

func newShapeBuffers(channels, bitDepth int, format *audio.Format) *shapeBuffers {
	maxVal := pcmMaxValue(bitDepth)

	chans := make([][]float64, channels)
	for ch := range chans {
		chans[ch] = make([]float64, blockSize)
	}

	return &shapeBuffers{
		intBuffer: &audio.IntBuffer{
			Data:   make([]int, blockSize*channels),
			Format: format,
		},
		channels:  chans,
		channs:    channels,
		invMaxVal: 1.0 / maxVal,
		maxVal:    maxVal,
	}
}

// deinterleave normalizes the int block into per-channel float slices.
func (b *shapeBuffers) deinterleave(n int) {
	for i := 0; i < n; i++ {
		base := i * b.channs
		for ch := 0; ch < b.channs; ch++ {
			b.channels[ch][i] = float64(b.intBuffer.Data[base+ch]) * b.invMaxVal
		}
	}
}

// channelBlocks returns the per-channel views for n samples.
func (b *shapeBuffers) channelBlocks(n int) [][]float64 {
	blocks := make([][]float64, b.channs)
	for ch := range blocks {
		blocks[ch] = b.channels[ch][:n]
	}
	return blocks
}

// interleave clamps and converts the processed channels back into the
// int buffer, returning the element count.
func (b *shapeBuffers) interleave(n int) int {
	total := n * b.channs
	for i := 0; i < n; i++ {
		base := i * b.channs
		for ch := 0; ch < b.channs; ch++ {
			s := b.channels[ch][i]
			if s > 1.0 {
				s = 1.0
			} else if s < -1.0 {
				s = -1.0
			}
			b.intBuffer.Data[base+ch] = int(s * b.maxVal)
		}
	}
	return total
}

func pcmMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// wavOutput writes PCM data with a buffered writer and patches the
// header sizes on close.
type wavOutput struct {
	file     *os.File
	w        *bufio.Writer
	bitDepth int
	dataSize uint32
	byteBuf  []byte
}

// createWAVOutput creates the output file and writes a placeholder header.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutput, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	out := &wavOutput{
		file:     f,
		w:        bufio.NewWriterSize(f, wavWriterBufferSize),
		bitDepth: bitDepth,
		byteBuf:  make([]byte, blockSize*channels*(bitDepth/bitsPerByte)),
	}

	if err := out.writeHeader(sampleRate, channels); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}

	return out, nil
}

func (out *wavOutput) writeHeader(sampleRate, channels int) error {
	bytesPerFrame := channels * (out.bitDepth / bitsPerByte)
	header := make([]byte, wavHeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 0) // patched on close
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunkSize)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*bytesPerFrame))
	binary.LittleEndian.PutUint16(header[32:34], uint16(bytesPerFrame))
	binary.LittleEndian.PutUint16(header[34:36], uint16(out.bitDepth))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], 0) // patched on close

	_, err := out.w.Write(header)
	return err
}

// writeBlock interleaves and writes n samples per channel.
func (out *wavOutput) writeBlock(b *shapeBuffers, n int) error {
	total := b.interleave(n)
	samples := b.intBuffer.Data[:total]

	bytesPerSample := out.bitDepth / bitsPerByte
	needed := total * bytesPerSample
	if len(out.byteBuf) < needed {
		out.byteBuf = make([]byte, needed)
	}

	buf := out.byteBuf[:needed]
	switch out.bitDepth {
	case bitsPerSample24:
		for i, s := range samples {
			buf[i*3] = byte(s)
			buf[i*3+1] = byte(s >> 8)
			buf[i*3+2] = byte(s >> 16)
		}
	case bitsPerSample32:
		for i, s := range samples {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(int32(s)))
		}
	default:
		for i, s := range samples {
			binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s)))
		}
	}

	written, err := out.w.Write(buf)
	out.dataSize += uint32(written)
	if err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}

// Close flushes buffered data and patches the header with final sizes.
func (out *wavOutput) Close() error {
	if err := out.w.Flush(); err != nil {
		return err
	}

	sizeBytes := make([]byte, uint32Size)

	if _, err := out.file.Seek(wavFileSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, wavRiffHeaderSize+out.dataSize)
	if _, err := out.file.Write(sizeBytes); err != nil {
		return err
	}

	if _, err := out.file.Seek(wavDataSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, out.dataSize)
	if _, err := out.file.Write(sizeBytes); err != nil {
		return err
	}

	return out.file.Close()
}
