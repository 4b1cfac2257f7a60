package wav

// Metadata holds the optional chunks written after the sample data.
type Metadata struct {
	// Title is stored as INAM.
	Title string
	// Software is stored as ISFT.
	Software string
	// Comments is stored as ICMT.
	Comments string

	SamplerInfo *SamplerInfo
}

// SamplerInfo mirrors the smpl chunk.
type SamplerInfo struct {
	// Manufacturer is the MMA code, zero for none.
	Manufacturer [4]byte
	Product      [4]byte
	// SamplePeriod is the duration of one frame in nanoseconds.
	SamplePeriod uint32
	// MIDIUnityNote is the note at which the sample plays at its own rate.
	MIDIUnityNote     uint32
	MIDIPitchFraction uint32
	SMPTEFormat       uint32
	SMPTEOffset       uint32
	NumSampleLoops    uint32
	Loops             []*SampleLoop
}

// Loop types of a smpl loop record.
const (
	LoopForward     = 0
	LoopAlternating = 1
	LoopBackward    = 2
)

// SampleLoop is one smpl loop record. Start and End are frame offsets and
// End is inclusive.
type SampleLoop struct {
	CuePointID [4]byte
	Type       uint32
	Start      uint32
	End        uint32
	Fraction   uint32
	// PlayCount zero loops forever.
	PlayCount uint32
}
