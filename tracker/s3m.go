package tracker

import (
	"encoding/binary"
	"fmt"

	"github.com/cwbudde/modwav"
)

const (
	s3mHeaderSize     = 96
	s3mInstrumentSize = 80

	s3mTypeSample = 1

	s3mFlagLoop  = 0x01
	s3mFlag16Bit = 0x04

	// Sample format field of the file header.
	s3mSignedSamples = 1
)

func isS3M(b buffer) bool {
	return len(b) >= s3mHeaderSize && b.tag(44, 4) == "SCRM"
}

func decodeS3M(b buffer) (*song, error) {
	if b.u8(29) != 0x10 {
		return nil, fmt.Errorf("%w: s3m file type %#x", ErrUnsupportedFormat, b.u8(29))
	}

	numOrders := b.u16le(32)
	numInstruments := b.u16le(34)
	signed := b.u16le(42) == s3mSignedSamples

	s := &song{mod: &modwav.Module{
		Name:   b.name(0, 28),
		Format: fmt.Sprintf("Scream Tracker 3 (tracker %#04x)", b.u16le(40)),
	}}

	pointers := s3mHeaderSize + numOrders
	for i := 0; i < numInstruments; i++ {
		hdr := b.u16le(pointers+2*i) << 4

		ins := &modwav.Instrument{Name: b.name(hdr+48, 28)}
		s.mod.Instruments = append(s.mod.Instruments, ins)

		smp, pcm, ok := decodeS3MSample(b, hdr, signed)
		if !ok {
			continue
		}

		id := s.addSample(smp, pcm)

		ins.SubSamples = []modwav.SubSample{{
			SampleID: id,
			Volume:   min(b.u8(hdr+28), 64),
			Pan:      0x80,
		}}

		if smp.Length > 0 {
			ins.NumSubSamples = 1
		}
	}

	return s, nil
}

// decodeS3MSample reads a PCM instrument. AdLib and packed instruments carry
// no sample and are reported with ok set to false. Stereo samples keep the
// left channel, which is stored first.
func decodeS3MSample(b buffer, hdr int, signed bool) (smp *modwav.Sample, pcm []byte, ok bool) {
	if !b.has(hdr, s3mInstrumentSize) || b.u8(hdr) != s3mTypeSample || b.tag(hdr+76, 4) != "SCRS" {
		return nil, nil, false
	}

	if b.u8(hdr+30) != 0 {
		return nil, nil, false
	}

	flags := b.u8(hdr + 31)
	memSeg := b.u8(hdr+13)<<16 | b.u16le(hdr+14)
	length := b.u32le(hdr + 16)

	smp = &modwav.Sample{Name: b.name(hdr+48, 28)}

	width := 1
	if flags&s3mFlag16Bit != 0 {
		width = 2
		smp.Flags |= modwav.Sample16Bit
	}

	data := b.clamp(memSeg<<4, length*width)
	data = data[:len(data)/width*width]
	smp.Length = len(data) / width

	pcm = make([]byte, len(data))
	copy(pcm, data)

	if !signed {
		toSigned(pcm, width)
	}

	loopStart := b.u32le(hdr + 20)
	loopEnd := min(b.u32le(hdr+24), smp.Length)

	if flags&s3mFlagLoop != 0 && loopStart < loopEnd {
		smp.Flags |= modwav.SampleLoop
		smp.LoopStart = loopStart
		smp.LoopEnd = loopEnd
	}

	return smp, pcm, true
}

// toSigned converts unsigned PCM in place.
func toSigned(pcm []byte, width int) {
	if width == 1 {
		for i := range pcm {
			pcm[i] ^= 0x80
		}

		return
	}

	for i := 0; i+1 < len(pcm); i += 2 {
		v := binary.LittleEndian.Uint16(pcm[i:]) ^ 0x8000
		binary.LittleEndian.PutUint16(pcm[i:], v)
	}
}
