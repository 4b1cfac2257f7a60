package tracker

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cwbudde/modwav"
)

const (
	xmSignature       = "Extended Module: "
	xmVersion         = 0x0104
	xmSampleHeaderLen = 40

	xmLoopForward  = 0x01
	xmLoopPingPong = 0x02
	xmSample16Bit  = 0x10
)

func isXM(b buffer) bool {
	return b.tag(0, len(xmSignature)) == xmSignature
}

func decodeXM(b buffer) (*song, error) {
	if v := b.u16le(58); v != xmVersion {
		return nil, fmt.Errorf("%w: xm version %#04x", ErrUnsupportedFormat, v)
	}

	s := &song{mod: &modwav.Module{
		Name:   b.name(17, 20),
		Format: "FastTracker II XM",
	}}

	if tracker := b.name(38, 20); tracker != "" {
		s.mod.Format = fmt.Sprintf("FastTracker II XM (%s)", strings.TrimSpace(tracker))
	}

	numPatterns := b.u16le(70)
	numInstruments := b.u16le(72)

	off := 60 + b.u32le(60)

	for i := 0; i < numPatterns; i++ {
		headerLen := b.u32le(off)
		packedLen := b.u16le(off + 7)
		off += headerLen + packedLen
	}

	for i := 0; i < numInstruments; i++ {
		ins := &modwav.Instrument{}
		s.mod.Instruments = append(s.mod.Instruments, ins)

		if !b.has(off, 29) {
			continue
		}

		ins.Name = b.name(off+4, 22)
		numSamples := b.u16le(off + 27)

		size := b.u32le(off)
		if size < 29 {
			size = 29
		}

		off += size

		headers := off
		off += numSamples * xmSampleHeaderLen

		for j := 0; j < numSamples; j++ {
			hdr := headers + j*xmSampleHeaderLen
			byteLen := b.u32le(hdr)

			smp, pcm := decodeXMSample(b, hdr, b.clamp(off, byteLen))
			off += byteLen

			id := s.addSample(smp, pcm)

			ins.SubSamples = append(ins.SubSamples, modwav.SubSample{
				SampleID:     id,
				Volume:       b.u8(hdr + 12),
				FineTune:     b.s8(hdr + 13),
				Pan:          b.u8(hdr + 15),
				RelativeNote: b.s8(hdr + 16),
			})
		}

		ins.NumSubSamples = len(ins.SubSamples)
	}

	return s, nil
}

// decodeXMSample converts the delta encoded sample data to absolute values.
// Lengths and loop points are stored in bytes and converted to elements.
func decodeXMSample(b buffer, hdr int, data []byte) (*modwav.Sample, []byte) {
	typ := b.u8(hdr + 14)
	smp := &modwav.Sample{Name: b.name(hdr+18, 22)}

	width := 1
	if typ&xmSample16Bit != 0 {
		width = 2
		smp.Flags |= modwav.Sample16Bit
	}

	data = data[:len(data)/width*width]
	smp.Length = len(data) / width

	pcm := make([]byte, len(data))
	if width == 2 {
		var acc uint16
		for i := 0; i < len(data); i += 2 {
			acc += binary.LittleEndian.Uint16(data[i:])
			binary.LittleEndian.PutUint16(pcm[i:], acc)
		}
	} else {
		var acc byte
		for i, d := range data {
			acc += d
			pcm[i] = acc
		}
	}

	loopStart := b.u32le(hdr+4) / width
	loopEnd := min(loopStart+b.u32le(hdr+8)/width, smp.Length)

	if typ&(xmLoopForward|xmLoopPingPong) != 0 && loopStart < loopEnd {
		smp.Flags |= modwav.SampleLoop
		if typ&xmLoopPingPong != 0 {
			smp.Flags |= modwav.SampleLoopBidir
		}

		smp.LoopStart = loopStart
		smp.LoopEnd = loopEnd
	}

	return smp, pcm
}
