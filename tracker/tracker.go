package tracker

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/modwav"
)

// Player sample rate limits accepted by PlayerStart.
const (
	MinSampleRate = 8000
	MaxSampleRate = 128000
)

var (
	// ErrUnsupportedFormat is returned for files that are not MOD, S3M or XM
	// modules, or use a variant of those formats that is not handled.
	ErrUnsupportedFormat = errors.New("unsupported module format")
	// ErrUnsupportedSampleRate is returned by PlayerStart for rates outside
	// [MinSampleRate, MaxSampleRate].
	ErrUnsupportedSampleRate = errors.New("unsupported sample rate")
	// ErrPlayerNotStarted is returned by SamplePCM before PlayerStart.
	ErrPlayerNotStarted = errors.New("player not started")
	// ErrClosed is returned by every Handle method after Close.
	ErrClosed = errors.New("module closed")
)

type format struct {
	name   string
	check  func(b buffer) bool
	decode func(b buffer) (*song, error)
}

// Detection order matters: the MOD signature sits deepest in the file and is
// the weakest of the three.
var formats = []format{
	{"xm", isXM, decodeXM},
	{"s3m", isS3M, decodeS3M},
	{"mod", isMOD, decodeMOD},
}

// song is a decoded module and the sample data of its global sample table.
type song struct {
	mod *modwav.Module
	pcm [][]byte
}

// addSample appends a sample to the global table and returns its id.
func (s *song) addSample(smp *modwav.Sample, pcm []byte) modwav.SampleID {
	smp.ID = modwav.SampleID(len(s.mod.Samples))
	s.mod.Samples = append(s.mod.Samples, smp)
	s.pcm = append(s.pcm, pcm)

	return smp.ID
}

// Loader opens module files. It implements modwav.Loader.
type Loader struct{}

// Load reads and decodes the module at path. Failures are reported as a
// *modwav.LoadError carrying the path.
func (Loader) Load(path string) (modwav.Handle, error) {
	h, err := Open(path)
	if err != nil {
		return nil, err
	}

	return h, nil
}

// Open reads and decodes the module at path.
func Open(path string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &modwav.LoadError{Path: path, Err: unwrapPathError(err)}
	}
	defer f.Close()

	h, err := Decode(f)
	if err != nil {
		return nil, &modwav.LoadError{Path: path, Err: err}
	}

	return h, nil
}

// Decode reads a whole module from r.
func Decode(r io.Reader) (*Handle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read module: %w", err)
	}

	b := buffer(data)
	for _, f := range formats {
		if !f.check(b) {
			continue
		}

		s, err := f.decode(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}

		return &Handle{song: s}, nil
	}

	return nil, ErrUnsupportedFormat
}

// unwrapPathError drops the *os.PathError layer, whose message repeats the
// path already carried by the LoadError.
func unwrapPathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}

	return err
}

// Handle is a loaded module. It implements modwav.Handle.
type Handle struct {
	song    *song
	rate    int
	started bool
	closed  bool
}

// PlayerStart prepares the module for sample extraction. No audio is
// rendered.
func (h *Handle) PlayerStart(sampleRate int, flags int) error {
	if h.closed {
		return ErrClosed
	}

	if sampleRate < MinSampleRate || sampleRate > MaxSampleRate {
		return fmt.Errorf("%w: %d Hz", ErrUnsupportedSampleRate, sampleRate)
	}

	h.rate = sampleRate
	h.started = true

	return nil
}

// Info returns the module description. The returned values must not be
// modified.
func (h *Handle) Info() (*modwav.ModuleInfo, error) {
	if h.closed {
		return nil, ErrClosed
	}

	return &modwav.ModuleInfo{Modules: []*modwav.Module{h.song.mod}}, nil
}

// SamplePCM returns the signed PCM data of a sample. The returned slice must
// not be modified.
func (h *Handle) SamplePCM(id modwav.SampleID) ([]byte, error) {
	if h.closed {
		return nil, ErrClosed
	}

	if !h.started {
		return nil, ErrPlayerNotStarted
	}

	if id < 0 || int(id) >= len(h.song.pcm) {
		return nil, fmt.Errorf("%w: %d", modwav.ErrSampleNotFound, id)
	}

	return h.song.pcm[id], nil
}

// Close releases the sample data.
func (h *Handle) Close() error {
	if h.closed {
		return ErrClosed
	}

	h.closed = true
	h.started = false
	h.song = nil

	return nil
}
