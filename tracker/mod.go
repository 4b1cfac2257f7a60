package tracker

import (
	"fmt"

	"github.com/cwbudde/modwav"
)

const (
	modInstruments   = 31
	modHeaderSize    = 1084
	modMagicOffset   = 1080
	modOrderOffset   = 952
	modSampleHeaders = 20
	modMaxChannels   = 32
)

type modMagic struct {
	tracker  string
	channels int
	// ptkLoop marks trackers that play a loop starting at 0 over the whole
	// sample on the first pass.
	ptkLoop bool
}

var modMagics = map[string]modMagic{
	"M.K.": {"Protracker", 4, true},
	"M!K!": {"Protracker", 4, true},
	"M&K!": {"Noisetracker", 4, true},
	"N.T.": {"Noisetracker", 4, true},
	"FLT4": {"Startrekker", 4, false},
	"FLT8": {"Startrekker", 8, false},
	"CD61": {"Octalyser", 6, false},
	"CD81": {"Octalyser", 8, false},
	"TDZ4": {"TakeTracker", 4, false},
	"FA04": {"Digital Tracker", 4, false},
	"FA06": {"Digital Tracker", 6, false},
	"FA08": {"Digital Tracker", 8, false},
	"NSMS": {"unknown tracker", 4, false},
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// modChannels resolves the channel count encoded in a MOD signature.
func modChannels(magic string) (modMagic, bool) {
	if m, ok := modMagics[magic]; ok {
		return m, true
	}

	if len(magic) != 4 {
		return modMagic{}, false
	}

	switch {
	case magic[1:] == "CHN" && isDigit(magic[0]):
		n := int(magic[0] - '0')
		return modMagic{"FastTracker", n, false}, n > 0
	case magic[2:] == "CH" && isDigit(magic[0]) && isDigit(magic[1]):
		n := int(magic[0]-'0')*10 + int(magic[1]-'0')
		return modMagic{"TakeTracker/FastTracker II", n, false}, n > 0 && n <= modMaxChannels
	}

	return modMagic{}, false
}

func isMOD(b buffer) bool {
	if len(b) < modHeaderSize {
		return false
	}

	_, ok := modChannels(b.tag(modMagicOffset, 4))

	return ok
}

func decodeMOD(b buffer) (*song, error) {
	magic := b.tag(modMagicOffset, 4)

	mm, ok := modChannels(magic)
	if !ok {
		return nil, fmt.Errorf("%w: signature %q", ErrUnsupportedFormat, magic)
	}

	// The pattern count is the highest referenced order plus one; values
	// above 0x7f end the list.
	numPatterns := 0
	for i := 0; i < 128; i++ {
		p := b.u8(modOrderOffset + i)
		if p > 0x7f {
			break
		}

		if p >= numPatterns {
			numPatterns = p + 1
		}
	}

	sampleBytes := 0
	for i := 0; i < modInstruments; i++ {
		sampleBytes += 2 * b.u16be(modSampleHeaders+30*i+22)
	}

	channels := mm.channels
	tracker := mm.tracker

	// Mod's Grave WOW files are 8 channel modules with an M.K. signature.
	// They are only told apart by their size.
	if magic == "M.K." && modHeaderSize+numPatterns*8*256+sampleBytes == len(b) {
		channels = 8
		tracker = "Mod's Grave"
		mm.ptkLoop = false
	}

	s := &song{mod: &modwav.Module{
		Name:   b.name(0, 20),
		Format: fmt.Sprintf("%s %s", tracker, magic),
	}}

	off := modHeaderSize + numPatterns*channels*256

	for i := 0; i < modInstruments; i++ {
		hdr := modSampleHeaders + 30*i
		name := b.name(hdr, 22)

		length := 2 * b.u16be(hdr+22)
		data := b.clamp(off, length)
		off += length

		smp := &modwav.Sample{Name: name, Length: len(data)}

		loopStart := 2 * b.u16be(hdr+26)
		loopSize := b.u16be(hdr + 28)
		loopEnd := min(loopStart+2*loopSize, smp.Length)

		if loopSize > 1 && loopEnd > 8 && loopStart < loopEnd {
			smp.Flags |= modwav.SampleLoop
			smp.LoopStart = loopStart
			smp.LoopEnd = loopEnd

			if mm.ptkLoop && loopStart == 0 && smp.Length > loopEnd {
				smp.Flags |= modwav.SampleLoopFull
			}
		}

		pcm := make([]byte, len(data))
		copy(pcm, data)

		id := s.addSample(smp, pcm)

		ins := &modwav.Instrument{
			Name: name,
			SubSamples: []modwav.SubSample{{
				SampleID: id,
				Volume:   min(b.u8(hdr+25), 64),
				Pan:      0x80,
				FineTune: int(int8(b.u8(hdr+24) << 4)),
			}},
		}

		if smp.Length > 0 {
			ins.NumSubSamples = 1
		}

		s.mod.Instruments = append(s.mod.Instruments, ins)
	}

	return s, nil
}
