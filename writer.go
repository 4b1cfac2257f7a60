package modwav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cwbudde/modwav/wav"
	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
)

// OutputSampleRate is the rate written into every exported file. It is a
// fixed value and is not derived from the module.
const OutputSampleRate = 16000

// Software is stored in the ISFT entry of exported files.
const Software = "modwav"

// Format selects the output container.
type Format int

const (
	FormatWAV Format = iota
	FormatAIFF
)

var errUnknownFormat = errors.New("unknown output format")

// ParseFormat parses "wav" or "aiff".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "wav", "wave":
		return FormatWAV, nil
	case "aiff", "aif":
		return FormatAIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownFormat, s)
	}
}

// Ext returns the file extension, including the dot.
func (f Format) Ext() string {
	if f == FormatAIFF {
		return ".aif"
	}

	return ".wav"
}

func (f Format) String() string {
	if f == FormatAIFF {
		return "aiff"
	}

	return "wav"
}

// WriteWAV writes pcm as a mono wav file at OutputSampleRate. When smp is
// not nil its name and loop are stored in LIST/INFO and smpl chunks.
//
// The file is assembled under a temporary name in the destination directory
// and renamed into place once complete; on failure nothing is left behind
// and a *WriteError is returned.
func WriteWAV(path string, g Geometry, pcm []byte, smp *Sample) error {
	return writeAtomic(path, func(f *os.File) error {
		enc := wav.NewEncoder(f, OutputSampleRate, g.BitsPerSample(), 1)
		if smp != nil {
			enc.Metadata = sampleMetadata(smp)
		}

		if _, err := enc.Write(pcm); err != nil {
			return err
		}

		return enc.Close()
	})
}

// WriteAIFF writes pcm as a mono AIFF file at OutputSampleRate, with the
// same guarantees as WriteWAV.
func WriteAIFF(path string, g Geometry, pcm []byte) error {
	return writeAtomic(path, func(f *os.File) error {
		enc := aiff.NewEncoder(f, OutputSampleRate, g.BitsPerSample(), 1)

		buf := &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: OutputSampleRate},
			Data:           pcmToInts(g, pcm),
			SourceBitDepth: g.BitsPerSample(),
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("failed to encode aiff data: %w", err)
		}

		return enc.Close()
	})
}

func writeAtomic(path string, encode func(f *os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmp.Name())

		return &WriteError{Path: path, Err: err}
	}

	if err := tmp.Chmod(0o644); err != nil {
		return fail(err)
	}

	if err := encode(tmp); err != nil {
		return fail(err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return &WriteError{Path: path, Err: err}
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())

		return &WriteError{Path: path, Err: err}
	}

	return nil
}

// pcmToInts widens signed sample elements, 16-bit ones little endian.
func pcmToInts(g Geometry, pcm []byte) []int {
	out := make([]int, len(pcm)/g.ByteWidth)

	for i := range out {
		if g.ByteWidth == 2 {
			out[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
		} else {
			out[i] = int(int8(pcm[i]))
		}
	}

	return out
}

func sampleMetadata(smp *Sample) *wav.Metadata {
	meta := &wav.Metadata{
		Title:    strings.TrimSpace(smp.Name),
		Software: Software,
	}

	if !smp.Looped() {
		return meta
	}

	loopType := uint32(wav.LoopForward)

	switch {
	case smp.Flags.Has(SampleLoopBidir):
		loopType = wav.LoopAlternating
	case smp.Flags.Has(SampleLoopReverse):
		loopType = wav.LoopBackward
	}

	meta.SamplerInfo = &wav.SamplerInfo{
		SamplePeriod:  uint32(time.Second / OutputSampleRate),
		MIDIUnityNote: 60,
		Loops: []*wav.SampleLoop{{
			Type:  loopType,
			Start: uint32(smp.LoopStart),
			End:   uint32(smp.LoopEnd - 1),
		}},
	}

	return meta
}
