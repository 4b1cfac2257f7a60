package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

// parseWavChunks lists the top level chunks of a wav image, honouring the
// pad byte after odd-sized chunks.
func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func chunkIDs(chunks []testChunk) []string {
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = c.id
	}

	return ids
}

// encodeFile runs an encoder over pcm and returns the written file path.
func encodeFile(t *testing.T, bitDepth int, pcm []byte, meta *Metadata) string {
	t.Helper()

	outPath := filepath.Join(t.TempDir(), "out.wav")

	out, err := os.Create(outPath)
	if err != nil {
		t.Fatalf("create output: %v", err)
	}
	defer out.Close()

	enc := NewEncoder(out, 16000, bitDepth, 1)
	enc.Metadata = meta

	if len(pcm) > 0 {
		if _, err := enc.Write(pcm); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	if err := enc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	return outPath
}
