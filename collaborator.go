package modwav

// PlayerSampleRate is the rate passed to Handle.PlayerStart before samples
// are extracted. It only satisfies the decoder; no audio is rendered.
const PlayerSampleRate = 44100

// Loader opens module files.
type Loader interface {
	// Load opens the module at path. Failures are reported as *LoadError.
	Load(path string) (Handle, error)
}

// Handle is a loaded module. It is owned by a single export run and must be
// closed when the run is over.
type Handle interface {
	// PlayerStart initialises the decoder state. It must be called before
	// SamplePCM.
	PlayerStart(sampleRate int, flags int) error
	// Info returns the module metadata. The snapshot is read-only.
	Info() (*ModuleInfo, error)
	// SamplePCM returns the raw data of a sample: signed elements, 16-bit
	// ones in little endian order, exactly as many bytes as SampleGeometry
	// reports for it.
	SamplePCM(id SampleID) ([]byte, error)
	// Close releases the module.
	Close() error
}
