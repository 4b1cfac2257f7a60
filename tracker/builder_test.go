package tracker

import (
	"encoding/binary"
)

type modSampleDef struct {
	name      string
	data      []byte
	finetune  byte
	volume    byte
	loopStart int // words
	loopSize  int // words
}

// buildMOD assembles a MOD image with the given signature. The pattern area
// holds enough zero bytes for the highest order entry.
func buildMOD(magic string, channels int, orders []byte, samples []modSampleDef) []byte {
	hdr := make([]byte, modHeaderSize)
	copy(hdr, "test song")

	for i, s := range samples {
		off := modSampleHeaders + 30*i
		copy(hdr[off:off+22], s.name)
		binary.BigEndian.PutUint16(hdr[off+22:], uint16(len(s.data)/2))
		hdr[off+24] = s.finetune
		hdr[off+25] = s.volume
		binary.BigEndian.PutUint16(hdr[off+26:], uint16(s.loopStart))
		binary.BigEndian.PutUint16(hdr[off+28:], uint16(s.loopSize))
	}

	hdr[950] = byte(len(orders))
	copy(hdr[modOrderOffset:], orders)
	copy(hdr[modMagicOffset:], magic)

	numPatterns := 0
	for _, o := range orders {
		if int(o) >= numPatterns {
			numPatterns = int(o) + 1
		}
	}

	out := append(hdr, make([]byte, numPatterns*channels*256)...)
	for _, s := range samples {
		out = append(out, s.data...)
	}

	return out
}

type s3mInstrumentDef struct {
	typ       byte
	name      string
	data      []byte
	length    int
	loopStart int
	loopEnd   int
	volume    byte
	packed    byte
	flags     byte
}

// buildS3M assembles an S3M image. Instrument headers and sample data are
// laid out on paragraph boundaries after the header.
func buildS3M(signedSamples bool, instruments []s3mInstrumentDef) []byte {
	const numOrders = 2

	align := func(n int) int { return (n + 15) &^ 15 }

	buf := make([]byte, align(s3mHeaderSize+numOrders+2*len(instruments)))
	copy(buf, "s3m song")
	buf[28] = 0x1a
	buf[29] = 0x10
	binary.LittleEndian.PutUint16(buf[32:], numOrders)
	binary.LittleEndian.PutUint16(buf[34:], uint16(len(instruments)))
	binary.LittleEndian.PutUint16(buf[40:], 0x1320)

	ffi := uint16(2)
	if signedSamples {
		ffi = 1
	}

	binary.LittleEndian.PutUint16(buf[42:], ffi)
	copy(buf[44:], "SCRM")
	buf[s3mHeaderSize] = 0
	buf[s3mHeaderSize+1] = 0xff

	headerOffsets := make([]int, len(instruments))
	for i := range instruments {
		headerOffsets[i] = len(buf)
		binary.LittleEndian.PutUint16(buf[s3mHeaderSize+numOrders+2*i:], uint16(len(buf)>>4))
		buf = append(buf, make([]byte, s3mInstrumentSize)...)
	}

	for i, ins := range instruments {
		hdr := buf[headerOffsets[i]:]
		hdr[0] = ins.typ
		copy(hdr[48:76], ins.name)

		if ins.typ != s3mTypeSample {
			copy(hdr[76:], "SCRI")
			continue
		}

		copy(hdr[76:], "SCRS")

		for len(buf)%16 != 0 {
			buf = append(buf, 0)
		}

		seg := len(buf) >> 4
		hdr = buf[headerOffsets[i]:]
		hdr[13] = byte(seg >> 16)
		binary.LittleEndian.PutUint16(hdr[14:], uint16(seg))
		binary.LittleEndian.PutUint32(hdr[16:], uint32(ins.length))
		binary.LittleEndian.PutUint32(hdr[20:], uint32(ins.loopStart))
		binary.LittleEndian.PutUint32(hdr[24:], uint32(ins.loopEnd))
		hdr[28] = ins.volume
		hdr[30] = ins.packed
		hdr[31] = ins.flags
		binary.LittleEndian.PutUint32(hdr[32:], 8363)

		buf = append(buf, ins.data...)
	}

	return buf
}

type xmSampleDef struct {
	name      string
	deltas    []byte
	loopStart int // bytes
	loopLen   int // bytes
	typ       byte
	volume    byte
	finetune  int8
	pan       byte
	relNote   int8
}

type xmInstrumentDef struct {
	name    string
	samples []xmSampleDef
}

// buildXM assembles a version 0x0104 XM image with one empty pattern.
func buildXM(instruments []xmInstrumentDef) []byte {
	buf := make([]byte, 60)
	copy(buf, xmSignature)
	copy(buf[17:37], "xm song")
	buf[37] = 0x1a
	copy(buf[38:58], "FastTracker v2.00")
	binary.LittleEndian.PutUint16(buf[58:], xmVersion)

	hdr := make([]byte, 276)
	binary.LittleEndian.PutUint32(hdr[0:], 276)
	binary.LittleEndian.PutUint16(hdr[4:], 1)  // song length
	binary.LittleEndian.PutUint16(hdr[8:], 4)  // channels
	binary.LittleEndian.PutUint16(hdr[10:], 1) // patterns
	binary.LittleEndian.PutUint16(hdr[12:], uint16(len(instruments)))
	buf = append(buf, hdr...)

	pattern := make([]byte, 9)
	binary.LittleEndian.PutUint32(pattern[0:], 9)
	binary.LittleEndian.PutUint16(pattern[5:], 64)
	buf = append(buf, pattern...)

	for _, ins := range instruments {
		size := 29
		if len(ins.samples) > 0 {
			size = 263
		}

		ih := make([]byte, size)
		binary.LittleEndian.PutUint32(ih[0:], uint32(size))
		copy(ih[4:26], ins.name)
		binary.LittleEndian.PutUint16(ih[27:], uint16(len(ins.samples)))

		if len(ins.samples) > 0 {
			binary.LittleEndian.PutUint32(ih[29:], xmSampleHeaderLen)
		}

		buf = append(buf, ih...)

		for _, s := range ins.samples {
			sh := make([]byte, xmSampleHeaderLen)
			binary.LittleEndian.PutUint32(sh[0:], uint32(len(s.deltas)))
			binary.LittleEndian.PutUint32(sh[4:], uint32(s.loopStart))
			binary.LittleEndian.PutUint32(sh[8:], uint32(s.loopLen))
			sh[12] = s.volume
			sh[13] = byte(s.finetune)
			sh[14] = s.typ
			sh[15] = s.pan
			sh[16] = byte(s.relNote)
			copy(sh[18:40], s.name)
			buf = append(buf, sh...)
		}

		for _, s := range ins.samples {
			buf = append(buf, s.deltas...)
		}
	}

	return buf
}
