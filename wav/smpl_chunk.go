package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// smpl chunk is documented here:
// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#smpl

var (
	errSmplNilChunk   = errors.New("can't decode a nil chunk")
	errSmplNilDecoder = errors.New("nil decoder")
)

// smplHeader is the fixed part of the chunk, up to and including the
// sampler data size.
type smplHeader struct {
	Manufacturer      [4]byte
	Product           [4]byte
	SamplePeriod      uint32
	MIDIUnityNote     uint32
	MIDIPitchFraction uint32
	SMPTEFormat       uint32
	SMPTEOffset       uint32
	NumSampleLoops    uint32
	SamplerDataSize   uint32
}

// DecodeSamplerChunk decodes a smpl chunk and puts the data in
// Decoder.Metadata.SamplerInfo.
func DecodeSamplerChunk(d *Decoder, ch *riff.Chunk) error {
	if ch == nil {
		return errSmplNilChunk
	}

	if d == nil {
		return errSmplNilDecoder
	}

	defer ch.Drain()

	buf := make([]byte, ch.Size)

	n, err := io.ReadFull(ch, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("failed to read the smpl chunk - %w", err)
	}

	reader := bytes.NewReader(buf[:n])

	var hdr smplHeader
	if err := binary.Read(reader, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("failed to read the smpl header: %w", err)
	}

	info := &SamplerInfo{
		Manufacturer:      hdr.Manufacturer,
		Product:           hdr.Product,
		SamplePeriod:      hdr.SamplePeriod,
		MIDIUnityNote:     hdr.MIDIUnityNote,
		MIDIPitchFraction: hdr.MIDIPitchFraction,
		SMPTEFormat:       hdr.SMPTEFormat,
		SMPTEOffset:       hdr.SMPTEOffset,
		NumSampleLoops:    hdr.NumSampleLoops,
	}

	for range hdr.NumSampleLoops {
		loop := &SampleLoop{}

		err := binary.Read(reader, binary.LittleEndian, loop)
		if err != nil {
			return fmt.Errorf("failed to read sample loop %d: %w", len(info.Loops), err)
		}

		info.Loops = append(info.Loops, loop)
	}

	if d.Metadata == nil {
		d.Metadata = &Metadata{}
	}

	d.Metadata.SamplerInfo = info

	return nil
}

func encodeSamplerChunk(info *SamplerInfo) []byte {
	buf := bytes.NewBuffer(nil)

	hdr := smplHeader{
		Manufacturer:      info.Manufacturer,
		Product:           info.Product,
		SamplePeriod:      info.SamplePeriod,
		MIDIUnityNote:     info.MIDIUnityNote,
		MIDIPitchFraction: info.MIDIPitchFraction,
		SMPTEFormat:       info.SMPTEFormat,
		SMPTEOffset:       info.SMPTEOffset,
		NumSampleLoops:    uint32(len(info.Loops)),
	}

	binary.Write(buf, binary.LittleEndian, hdr)

	for _, loop := range info.Loops {
		binary.Write(buf, binary.LittleEndian, loop)
	}

	return buf.Bytes()
}
