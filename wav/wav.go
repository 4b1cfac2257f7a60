package wav

import (
	"errors"
	"time"
)

// PCMFormat is the fmt chunk format tag for linear PCM.
const PCMFormat = 1

var (
	// CIDList is the chunk ID for a LIST chunk.
	CIDList = [4]byte{'L', 'I', 'S', 'T'}
	// CIDSmpl is the chunk ID for a smpl chunk.
	CIDSmpl = [4]byte{'s', 'm', 'p', 'l'}
	// CIDInfo is the list type of an INFO list.
	CIDInfo = [4]byte{'I', 'N', 'F', 'O'}

	// ErrPCMChunkNotFound indicates a file without a data chunk.
	ErrPCMChunkNotFound = errors.New("PCM chunk not found in audio file")
)

func nullTermStr(b []byte) string {
	return string(b[:clen(b)])
}

func clen(num []byte) int {
	for i := range num {
		if num[i] == 0 {
			return i
		}
	}

	return len(num)
}

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}

// sampleDuration is the length of one frame at the given rate.
func sampleDuration(sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}

	return time.Second / time.Duration(sampleRate)
}
