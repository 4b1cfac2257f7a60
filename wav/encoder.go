package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/riff"
)

var (
	errNilEncoder       = errors.New("can't write a nil encoder")
	errNilWriter        = errors.New("can't write to a nil writer")
	errAlreadyClosed    = errors.New("encoder already closed")
	errInvalidRate      = errors.New("invalid or no sample rate defined")
	errInvalidChannels  = errors.New("invalid or no number of channels defined")
	errInvalidBitDepth  = errors.New("unsupported PCM bit depth")
	errMisalignedFrames = errors.New("PCM data is not a whole number of frames")
)

// Encoder writes integer PCM data into a wav container. The data is copied
// verbatim into the data chunk; it is the caller's job to provide bytes in
// the layout announced by BitDepth and NumChans.
type Encoder struct {
	w io.WriteSeeker

	SampleRate int
	BitDepth   int
	NumChans   int

	// Metadata is written after the data chunk on Close.
	Metadata *Metadata

	WrittenBytes    int
	pcmBytes        int
	pcmChunkStarted bool
	pcmChunkSizePos int
	wroteHeader     bool
	closed          bool
}

// NewEncoder creates an encoder writing to w. Nothing is written until the
// first call to Write or Close.
func NewEncoder(w io.WriteSeeker, sampleRate, bitDepth, numChans int) *Encoder {
	return &Encoder{
		w:          w,
		SampleRate: sampleRate,
		BitDepth:   bitDepth,
		NumChans:   numChans,
	}
}

// BlockAlign returns the size in bytes of one frame.
func (e *Encoder) BlockAlign() int {
	return e.NumChans * bytesPerSample(e.BitDepth)
}

// ByteRate returns the number of bytes per second of audio.
func (e *Encoder) ByteRate() int {
	return e.SampleRate * e.BlockAlign()
}

// Frames returns the number of frames written so far.
func (e *Encoder) Frames() int {
	if e.BlockAlign() == 0 {
		return 0
	}

	return e.pcmBytes / e.BlockAlign()
}

// AddLE serializes and adds the passed value using little endian.
func (e *Encoder) AddLE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

// AddBE serializes and adds the passed value using big endian.
func (e *Encoder) AddBE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.w, binary.BigEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write big endian: %w", err)
	}

	return nil
}

func (e *Encoder) validate() error {
	if e == nil {
		return errNilEncoder
	}

	if e.w == nil {
		return errNilWriter
	}

	if e.SampleRate <= 0 {
		return errInvalidRate
	}

	if e.NumChans <= 0 {
		return errInvalidChannels
	}

	switch e.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", errInvalidBitDepth, e.BitDepth)
	}

	return nil
}

func (e *Encoder) writeHeader() error {
	if err := e.validate(); err != nil {
		return err
	}

	e.wroteHeader = true

	err := e.AddLE(riff.RiffID)
	if err != nil {
		return err
	}
	// file size, patched on Close
	err = e.AddLE(uint32(0))
	if err != nil {
		return err
	}

	err = e.AddLE(riff.WavFormatID)
	if err != nil {
		return err
	}

	return e.writeFmtChunk()
}

func (e *Encoder) writeFmtChunk() error {
	err := e.AddLE(riff.FmtID)
	if err != nil {
		return err
	}

	err = e.AddLE(uint32(16))
	if err != nil {
		return err
	}

	err = e.AddLE(uint16(PCMFormat))
	if err != nil {
		return fmt.Errorf("error encoding the audio format - %w", err)
	}

	err = e.AddLE(uint16(e.NumChans))
	if err != nil {
		return fmt.Errorf("error encoding the number of channels - %w", err)
	}

	err = e.AddLE(uint32(e.SampleRate))
	if err != nil {
		return fmt.Errorf("error encoding the sample rate - %w", err)
	}

	err = e.AddLE(uint32(e.ByteRate()))
	if err != nil {
		return fmt.Errorf("error encoding the avg bytes per sec - %w", err)
	}

	err = e.AddLE(uint16(e.BlockAlign()))
	if err != nil {
		return fmt.Errorf("error encoding the block align - %w", err)
	}

	err = e.AddLE(uint16(e.BitDepth))
	if err != nil {
		return fmt.Errorf("error encoding bits per sample - %w", err)
	}

	return nil
}

func (e *Encoder) startPCMChunk() error {
	if !e.wroteHeader {
		err := e.writeHeader()
		if err != nil {
			return err
		}
	}

	err := e.AddLE(riff.DataFormatID)
	if err != nil {
		return fmt.Errorf("error encoding sound header %w", err)
	}

	e.pcmChunkStarted = true
	e.pcmChunkSizePos = e.WrittenBytes

	err = e.AddLE(uint32(0))
	if err != nil {
		return fmt.Errorf("%w when writing wav data chunk size header", err)
	}

	return nil
}

// Write appends raw PCM bytes to the data chunk. Don't forget to Close the
// encoder or the file won't be valid.
func (e *Encoder) Write(p []byte) (int, error) {
	if e == nil {
		return 0, errNilEncoder
	}

	if e.closed {
		return 0, errAlreadyClosed
	}

	if !e.pcmChunkStarted {
		if err := e.startPCMChunk(); err != nil {
			return 0, err
		}
	}

	n, err := e.w.Write(p)
	e.WrittenBytes += n
	e.pcmBytes += n

	if err != nil {
		return n, fmt.Errorf("failed to write PCM data: %w", err)
	}

	return n, nil
}

func (e *Encoder) writeSamplerChunk() error {
	if e.Metadata == nil || e.Metadata.SamplerInfo == nil {
		return nil
	}

	data := encodeSamplerChunk(e.Metadata.SamplerInfo)

	err := e.AddBE(CIDSmpl)
	if err != nil {
		return fmt.Errorf("failed to write the smpl chunk ID: %w", err)
	}

	err = e.AddLE(uint32(len(data)))
	if err != nil {
		return fmt.Errorf("failed to write the smpl chunk size: %w", err)
	}

	return e.AddBE(data)
}

func (e *Encoder) writeListChunk() error {
	if e.Metadata == nil {
		return nil
	}

	data := encodeInfoChunk(e.Metadata)
	if len(data) == 0 {
		return nil
	}

	err := e.AddBE(CIDList)
	if err != nil {
		return fmt.Errorf("failed to write the LIST chunk ID: %w", err)
	}

	err = e.AddLE(uint32(len(data)))
	if err != nil {
		return fmt.Errorf("failed to write the LIST chunk size: %w", err)
	}

	return e.AddBE(data)
}

// Close finishes the container: it pads the data chunk to an even size,
// writes the metadata chunks and patches the RIFF and data sizes.
// The underlying writer is NOT closed; an *os.File is synced to disk.
func (e *Encoder) Close() error {
	if e == nil || e.w == nil {
		return nil
	}

	if e.closed {
		return errAlreadyClosed
	}

	e.closed = true

	if e.pcmBytes%e.blockAlignOrOne() != 0 {
		return fmt.Errorf("%w: %d bytes, block align %d", errMisalignedFrames, e.pcmBytes, e.BlockAlign())
	}

	if !e.pcmChunkStarted {
		if err := e.startPCMChunk(); err != nil {
			return err
		}
	}

	// the data chunk size excludes the pad byte
	if e.pcmBytes%2 == 1 {
		err := e.AddLE(uint8(0))
		if err != nil {
			return fmt.Errorf("failed to write the data chunk padding: %w", err)
		}
	}

	err := e.writeSamplerChunk()
	if err != nil {
		return fmt.Errorf("failed to write sampler info - %w", err)
	}

	err = e.writeListChunk()
	if err != nil {
		return fmt.Errorf("failed to write metadata - %w", err)
	}

	if _, err := e.w.Seek(4, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to file size position: %w", err)
	}

	total := e.WrittenBytes

	err = e.AddLE(uint32(total - 8))
	if err != nil {
		return fmt.Errorf("%w when writing the total written bytes", err)
	}

	if _, err := e.w.Seek(int64(e.pcmChunkSizePos), io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to PCM chunk size position: %w", err)
	}

	err = e.AddLE(uint32(e.pcmBytes))
	if err != nil {
		return fmt.Errorf("%w when writing wav data chunk size header", err)
	}

	// the size patches are not new bytes
	e.WrittenBytes = total

	if _, err := e.w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("failed to seek to end of file: %w", err)
	}

	if f, ok := e.w.(*os.File); ok {
		return f.Sync()
	}

	return nil
}

func (e *Encoder) blockAlignOrOne() int {
	if ba := e.BlockAlign(); ba > 0 {
		return ba
	}

	return 1
}
