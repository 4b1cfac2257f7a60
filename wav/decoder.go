package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
)

var (
	// ErrPCMDataNotFound is returned when PCM data chunk is not found.
	ErrPCMDataNotFound = errors.New("PCM data not found")

	errNilChunkOrDecoder  = errors.New("nil chunk/decoder pointer")
	errUnhandledByteDepth = errors.New("unhandled byte depth")
	errNotWaveFile        = errors.New("not a RIFF/WAVE file")
	errFmtChunkTooSmall   = errors.New("fmt chunk too small")
)

// Decoder reads back the files written by Encoder, and plain integer PCM
// wav files in general.
type Decoder struct {
	r      io.ReadSeeker
	parser *riff.Parser

	NumChans       uint16
	BitDepth       uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	WavAudioFormat uint16

	// PCMSize is the size of the data chunk, excluding any pad byte.
	PCMSize  int
	PCMChunk *riff.Chunk
	// Metadata is populated by ReadMetadata, nil when the file has none.
	Metadata *Metadata

	err             error
	pendingPad      bool
	pcmDataAccessed bool
}

// NewDecoder creates a decoder for the passed wav reader.
func NewDecoder(r io.ReadSeeker) *Decoder {
	return &Decoder{
		r:      r,
		parser: riff.New(r),
	}
}

// Err returns the first non-EOF error that was encountered by the Decoder.
func (d *Decoder) Err() error {
	if errors.Is(d.err, io.EOF) {
		return nil
	}

	return d.err
}

// Rewind moves back to the start of the file and forgets everything read so
// far.
func (d *Decoder) Rewind() error {
	_, err := d.r.Seek(0, io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to seek back to the start %w", err)
	}

	*d = Decoder{r: d.r, parser: riff.New(d.r)}

	return nil
}

// ReadInfo reads the underlying reader until the fmt chunk is parsed.
// It is safe to call multiple times.
func (d *Decoder) ReadInfo() error {
	d.err = d.readHeaders()

	return d.err
}

// IsValidFile verifies that the file is a readable integer PCM wav file.
func (d *Decoder) IsValidFile() bool {
	if d.ReadInfo() != nil {
		return false
	}

	if d.NumChans < 1 || d.WavAudioFormat != PCMFormat {
		return false
	}

	return d.BitDepth >= 8 && d.BitDepth <= 32
}

// FwdToPCM forwards the underlying reader until the start of the PCM chunk,
// decoding the metadata chunks found on the way.
func (d *Decoder) FwdToPCM() error {
	if d == nil {
		return ErrPCMDataNotFound
	}

	if err := d.ReadInfo(); err != nil {
		return err
	}

	for {
		chunk, err := d.nextChunk()
		if errors.Is(err, io.EOF) {
			return ErrPCMDataNotFound
		}

		if err != nil {
			d.err = err
			return err
		}

		if chunk.ID == riff.DataFormatID {
			d.PCMSize = chunk.Size
			d.PCMChunk = chunk
			d.pcmDataAccessed = true

			return nil
		}

		if err := d.decodeChunk(chunk); err != nil {
			d.err = err
			return err
		}
	}
}

// WasPCMAccessed returns positively if the PCM data was previously accessed.
func (d *Decoder) WasPCMAccessed() bool {
	if d == nil {
		return false
	}

	return d.pcmDataAccessed
}

// PCMBytes returns the raw content of the data chunk.
func (d *Decoder) PCMBytes() ([]byte, error) {
	if !d.WasPCMAccessed() {
		if err := d.FwdToPCM(); err != nil {
			return nil, err
		}
	}

	if d.PCMChunk == nil {
		return nil, ErrPCMChunkNotFound
	}

	buf := make([]byte, d.PCMSize)

	n, err := io.ReadFull(d.PCMChunk, buf)
	if err != nil {
		return buf[:n], fmt.Errorf("failed to read PCM data: %w", err)
	}

	return buf, nil
}

// FullPCMBuffer reads the whole data chunk as integer samples. 8-bit values
// are reported unsigned, as stored in wav files.
func (d *Decoder) FullPCMBuffer() (*audio.IntBuffer, error) {
	data, err := d.PCMBytes()
	if err != nil {
		return nil, err
	}

	width := bytesPerSample(int(d.BitDepth))

	decodeF, err := sampleDecodeFunc(int(d.BitDepth))
	if err != nil {
		return nil, err
	}

	buf := &audio.IntBuffer{
		Format:         d.Format(),
		Data:           make([]int, len(data)/width),
		SourceBitDepth: int(d.BitDepth),
	}

	for i := range buf.Data {
		buf.Data[i] = decodeF(data[i*width : (i+1)*width])
	}

	return buf, nil
}

// Frames returns the number of frames in the data chunk.
func (d *Decoder) Frames() int {
	if d == nil || d.BlockAlign == 0 {
		return 0
	}

	return d.PCMSize / int(d.BlockAlign)
}

// Duration returns the play time of the data chunk at the file's rate.
func (d *Decoder) Duration() time.Duration {
	return time.Duration(d.Frames()) * sampleDuration(int(d.SampleRate))
}

// Format returns the audio format of the decoded content.
func (d *Decoder) Format() *audio.Format {
	if d == nil {
		return nil
	}

	return &audio.Format{
		NumChannels: int(d.NumChans),
		SampleRate:  int(d.SampleRate),
	}
}

// ReadMetadata walks the remaining chunks of the file, decoding LIST/INFO
// and smpl chunks and recording the data chunk size. The file must be
// rewound before reading PCM data again.
func (d *Decoder) ReadMetadata() error {
	if err := d.ReadInfo(); err != nil {
		return err
	}

	if d.PCMChunk != nil {
		d.PCMChunk.Drain()
	}

	for {
		chunk, err := d.nextChunk()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			d.err = err
			return err
		}

		if chunk.ID == riff.DataFormatID {
			d.PCMSize = chunk.Size
			chunk.Drain()

			continue
		}

		if err := d.decodeChunk(chunk); err != nil {
			d.err = err
			return err
		}
	}
}

// String implements the Stringer interface.
func (d *Decoder) String() string {
	return fmt.Sprintf("%d Hz @ %d bits, %d channel(s), %d avg bytes/sec, duration: %s",
		d.SampleRate, d.BitDepth, d.NumChans, d.AvgBytesPerSec, d.Duration())
}

// nextChunk returns the next chunk header, skipping the pad byte left by
// the previous odd-sized chunk. The returned chunk Size is the size stored
// in the file.
func (d *Decoder) nextChunk() (*riff.Chunk, error) {
	if d.pendingPad {
		d.pendingPad = false

		var pad [1]byte
		if _, err := io.ReadFull(d.r, pad[:]); err != nil {
			return nil, io.EOF
		}
	}

	id, size, err := d.parser.IDnSize()
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}

		return nil, fmt.Errorf("error reading chunk header - %w", err)
	}

	d.pendingPad = size%2 == 1

	return &riff.Chunk{
		ID:   id,
		Size: int(size),
		R:    io.LimitReader(d.r, int64(size)),
	}, nil
}

func (d *Decoder) decodeChunk(chunk *riff.Chunk) error {
	switch chunk.ID {
	case CIDList:
		return DecodeListChunk(d, chunk)
	case CIDSmpl:
		return DecodeSamplerChunk(d, chunk)
	default:
		chunk.Drain()

		return nil
	}
}

// readHeaders is safe to call multiple times.
func (d *Decoder) readHeaders() error {
	if d == nil || d.NumChans > 0 {
		return nil
	}

	id, size, err := d.parser.IDnSize()
	if err != nil {
		return fmt.Errorf("failed to read chunk ID and size: %w", err)
	}

	if id != riff.RiffID {
		return fmt.Errorf("%s - %w", id, riff.ErrFmtNotSupported)
	}

	d.parser.ID = id
	d.parser.Size = size

	err = binary.Read(d.r, binary.BigEndian, &d.parser.Format)
	if err != nil {
		return fmt.Errorf("failed to read format: %w", err)
	}

	if d.parser.Format != riff.WavFormatID {
		return fmt.Errorf("%s - %w", d.parser.Format, errNotWaveFile)
	}

	for {
		chunk, err := d.nextChunk()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("fmt chunk: %w", ErrPCMChunkNotFound)
		}

		if err != nil {
			return err
		}

		if chunk.ID == riff.FmtID {
			return d.decodeFmtChunk(chunk)
		}

		if err := d.decodeChunk(chunk); err != nil {
			return err
		}
	}
}

func (d *Decoder) decodeFmtChunk(chunk *riff.Chunk) error {
	if d == nil || chunk == nil {
		return errNilChunkOrDecoder
	}

	defer chunk.Drain()

	if chunk.Size < 16 {
		return fmt.Errorf("%w: %d bytes", errFmtChunkTooSmall, chunk.Size)
	}

	fields := []struct {
		dst  any
		name string
	}{
		{&d.WavAudioFormat, "wav format"},
		{&d.NumChans, "channels"},
		{&d.SampleRate, "sample rate"},
		{&d.AvgBytesPerSec, "avg bytes/sec"},
		{&d.BlockAlign, "block align"},
		{&d.BitDepth, "bit depth"},
	}

	for _, f := range fields {
		if err := chunk.ReadLE(f.dst); err != nil {
			return fmt.Errorf("failed to read %s: %w", f.name, err)
		}
	}

	d.parser.WavAudioFormat = d.WavAudioFormat
	d.parser.NumChannels = d.NumChans
	d.parser.SampleRate = d.SampleRate
	d.parser.AvgBytesPerSec = d.AvgBytesPerSec
	d.parser.BlockAlign = d.BlockAlign
	d.parser.BitsPerSample = d.BitDepth

	return nil
}

// sampleDecodeFunc returns a function converting one little endian sample
// into an int. Note that 8bit samples are unsigned, all other values are
// signed.
func sampleDecodeFunc(bitsPerSample int) (func([]byte) int, error) {
	switch {
	case bitsPerSample == 8:
		return func(b []byte) int {
			return int(b[0])
		}, nil
	case bitsPerSample > 8 && bitsPerSample <= 16:
		return func(b []byte) int {
			return int(int16(binary.LittleEndian.Uint16(b)))
		}, nil
	case bitsPerSample > 16 && bitsPerSample <= 24:
		return func(b []byte) int {
			return int(audio.Int24LETo32(b))
		}, nil
	case bitsPerSample > 24 && bitsPerSample <= 32:
		return func(b []byte) int {
			return int(int32(binary.LittleEndian.Uint32(b)))
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errUnhandledByteDepth, bitsPerSample)
	}
}
