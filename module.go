package modwav

// SampleID indexes a module's global sample table.
type SampleID int

// SampleFlags describe how a sample is stored and looped.
type SampleFlags uint16

const (
	// Sample16Bit marks samples made of 16-bit elements.
	Sample16Bit SampleFlags = 1 << iota
	// SampleLoop marks a looped sample.
	SampleLoop
	// SampleLoopBidir marks a ping-pong loop.
	SampleLoopBidir
	// SampleLoopReverse marks a loop played backwards.
	SampleLoopReverse
	// SampleLoopFull marks a loop that also plays the attack on repeat.
	SampleLoopFull
)

// Has reports whether all bits of f are set.
func (s SampleFlags) Has(f SampleFlags) bool {
	return s&f == f
}

// ModuleInfo is a snapshot of a loaded module.
type ModuleInfo struct {
	Modules []*Module
}

// Module holds the instrument and sample tables of a song.
type Module struct {
	Name string
	// Format names the tracker format, e.g. "Protracker M.K.".
	Format      string
	Instruments []*Instrument
	Samples     []*Sample
}

// Instrument is a logical sound made of sub-samples, usually split by key.
type Instrument struct {
	Name          string
	NumSubSamples int
	SubSamples    []SubSample
}

// SubSample references one global sample and how the instrument plays it.
type SubSample struct {
	SampleID SampleID
	// Volume is 0..64.
	Volume int
	// Pan is 0..255, 128 being the centre.
	Pan          int
	RelativeNote int
	FineTune     int
}

// Sample is a PCM waveform. Length, LoopStart and LoopEnd count elements,
// not bytes.
type Sample struct {
	ID        SampleID
	Name      string
	Length    int
	LoopStart int
	LoopEnd   int
	Flags     SampleFlags
}

// Looped reports whether the sample has a usable loop.
func (s *Sample) Looped() bool {
	return s.Flags.Has(SampleLoop) && s.LoopEnd > s.LoopStart
}
