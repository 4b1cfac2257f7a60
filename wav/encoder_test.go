package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncoderPlainLayout(t *testing.T) {
	pcm := []byte{0x01, 0x80, 0x7f}
	outPath := encodeFile(t, 8, pcm, nil)

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{
		'R', 'I', 'F', 'F', 40, 0, 0, 0, 'W', 'A', 'V', 'E',
		'f', 'm', 't', ' ', 16, 0, 0, 0,
		1, 0, // PCM
		1, 0, // mono
		0x80, 0x3e, 0, 0, // 16000 Hz
		0x80, 0x3e, 0, 0, // byte rate
		1, 0, // block align
		8, 0, // bits
		'd', 'a', 't', 'a', 3, 0, 0, 0,
		0x01, 0x80, 0x7f, 0,
	}

	if diff := cmp.Diff(want, data); diff != "" {
		t.Fatalf("unexpected file bytes (-want +got):\n%s", diff)
	}
}

func TestEncoderHeaderFields(t *testing.T) {
	tests := []struct {
		name      string
		bitDepth  int
		pcm       []byte
		wantAlign uint16
		wantRate  uint32
		wantFrame int
	}{
		{"8 bit", 8, []byte{1, 2, 3, 4, 5}, 1, 16000, 5},
		{"16 bit", 16, []byte{1, 0, 2, 0, 3, 0}, 2, 32000, 3},
		{"16 bit empty", 16, nil, 2, 32000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := os.Open(encodeFile(t, tt.bitDepth, tt.pcm, nil))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			dec := NewDecoder(f)
			if !dec.IsValidFile() {
				t.Fatalf("invalid file: %v", dec.Err())
			}

			if dec.NumChans != 1 {
				t.Fatalf("channels=%d, want 1", dec.NumChans)
			}

			if dec.SampleRate != 16000 {
				t.Fatalf("sample rate=%d, want 16000", dec.SampleRate)
			}

			if int(dec.BitDepth) != tt.bitDepth {
				t.Fatalf("bit depth=%d, want %d", dec.BitDepth, tt.bitDepth)
			}

			if dec.BlockAlign != tt.wantAlign {
				t.Fatalf("block align=%d, want %d", dec.BlockAlign, tt.wantAlign)
			}

			if dec.AvgBytesPerSec != tt.wantRate {
				t.Fatalf("byte rate=%d, want %d", dec.AvgBytesPerSec, tt.wantRate)
			}

			got, err := dec.PCMBytes()
			if err != nil {
				t.Fatal(err)
			}

			if !bytes.Equal(got, tt.pcm) {
				t.Fatalf("pcm=%v, want %v", got, tt.pcm)
			}

			if dec.Frames() != tt.wantFrame {
				t.Fatalf("frames=%d, want %d", dec.Frames(), tt.wantFrame)
			}
		})
	}
}

func TestEncoderRiffSizeMatchesFile(t *testing.T) {
	outPath := encodeFile(t, 8, []byte{9, 9, 9, 9, 9}, &Metadata{Title: "bass"})

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}

	riffSize := binary.LittleEndian.Uint32(data[4:8])
	if int(riffSize) != len(data)-8 {
		t.Fatalf("riff size=%d, file size %d", riffSize, len(data))
	}

	chunks, err := parseWavChunks(data)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"fmt ", "data", "LIST"}, chunkIDs(chunks)); diff != "" {
		t.Fatalf("chunk order (-want +got):\n%s", diff)
	}

	if chunks[1].size != 5 {
		t.Fatalf("data size=%d, want 5", chunks[1].size)
	}
}

func TestEncoderMetadataRoundTrip(t *testing.T) {
	meta := &Metadata{
		Title:    "Lead synth",
		Software: "modwav",
		SamplerInfo: &SamplerInfo{
			SamplePeriod:  62500,
			MIDIUnityNote: 60,
			Loops: []*SampleLoop{
				{Type: LoopAlternating, Start: 2, End: 7},
			},
		},
	}

	pcm := make([]byte, 16)
	for i := range pcm {
		pcm[i] = byte(i)
	}

	f, err := os.Open(encodeFile(t, 16, pcm, meta))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := NewDecoder(f)
	if err := dec.ReadMetadata(); err != nil {
		t.Fatalf("read metadata: %v", err)
	}

	if dec.Metadata == nil {
		t.Fatal("expected metadata")
	}

	if dec.Metadata.Title != meta.Title || dec.Metadata.Software != meta.Software {
		t.Fatalf("info mismatch: %+v", dec.Metadata)
	}

	if dec.PCMSize != len(pcm) {
		t.Fatalf("pcm size=%d, want %d", dec.PCMSize, len(pcm))
	}

	info := dec.Metadata.SamplerInfo
	if info == nil {
		t.Fatal("expected sampler info")
	}

	if info.NumSampleLoops != 1 {
		t.Fatalf("loops=%d, want 1", info.NumSampleLoops)
	}

	if diff := cmp.Diff(meta.SamplerInfo.Loops, info.Loops); diff != "" {
		t.Fatalf("loop mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoderOddTitleIsWordAligned(t *testing.T) {
	// "abcd" + NUL is 5 bytes and needs a pad byte inside the LIST chunk.
	f, err := os.Open(encodeFile(t, 8, []byte{1, 2}, &Metadata{Title: "abcd", Software: "x"}))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := NewDecoder(f)
	if err := dec.ReadMetadata(); err != nil {
		t.Fatal(err)
	}

	if dec.Metadata.Title != "abcd" || dec.Metadata.Software != "x" {
		t.Fatalf("unexpected metadata %+v", dec.Metadata)
	}
}

func TestEncoderErrors(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		bitDepth int
		chans    int
		pcm      []byte
		want     error
	}{
		{"bad depth", 16000, 12, 1, []byte{0, 0}, errInvalidBitDepth},
		{"no rate", 0, 8, 1, []byte{0}, errInvalidRate},
		{"no channels", 16000, 8, 0, []byte{0}, errInvalidChannels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
			if err != nil {
				t.Fatal(err)
			}
			defer out.Close()

			enc := NewEncoder(out, tt.rate, tt.bitDepth, tt.chans)

			_, err = enc.Write(tt.pcm)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err=%v, want %v", err, tt.want)
			}
		})
	}
}

func TestEncoderMisalignedFrames(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "odd.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	enc := NewEncoder(out, 16000, 16, 1)
	if _, err := enc.Write([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	if err := enc.Close(); !errors.Is(err, errMisalignedFrames) {
		t.Fatalf("err=%v, want %v", err, errMisalignedFrames)
	}
}

func TestEncoderWriteAfterClose(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "closed.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	enc := NewEncoder(out, 16000, 8, 1)
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := enc.Write([]byte{1}); !errors.Is(err, errAlreadyClosed) {
		t.Fatalf("err=%v, want %v", err, errAlreadyClosed)
	}
}
