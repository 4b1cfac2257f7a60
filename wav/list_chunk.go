package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

var (
	// See http://bwfmetaedit.sourceforge.net/listinfo.html
	markerINAM = [4]byte{'I', 'N', 'A', 'M'}
	markerISFT = [4]byte{'I', 'S', 'F', 'T'}
	markerICMT = [4]byte{'I', 'C', 'M', 'T'}

	errListNilChunk   = errors.New("can't decode a nil chunk")
	errListNilDecoder = errors.New("nil decoder")
)

// DecodeListChunk decodes a LIST/INFO chunk into d.Metadata. Other list
// types and unknown INFO entries are skipped.
func DecodeListChunk(d *Decoder, ch *riff.Chunk) error {
	if ch == nil {
		return errListNilChunk
	}

	if d == nil {
		return errListNilDecoder
	}

	defer ch.Drain()

	buf := make([]byte, ch.Size)

	n, err := io.ReadFull(ch, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("failed to read the LIST chunk - %w", err)
	}

	buf = buf[:n]
	if len(buf) < 4 || !bytes.Equal(buf[:4], CIDInfo[:]) {
		return nil
	}

	if d.Metadata == nil {
		d.Metadata = &Metadata{}
	}

	for rest := buf[4:]; len(rest) >= 8; {
		var id [4]byte

		copy(id[:], rest[:4])
		size := int(binary.LittleEndian.Uint32(rest[4:8]))
		rest = rest[8:]

		if size > len(rest) {
			return fmt.Errorf("INFO entry %s overruns the LIST chunk", id)
		}

		val := nullTermStr(rest[:size])

		switch id {
		case markerINAM:
			d.Metadata.Title = val
		case markerISFT:
			d.Metadata.Software = val
		case markerICMT:
			d.Metadata.Comments = val
		}

		// entries are word aligned
		if size%2 == 1 && size < len(rest) {
			size++
		}

		rest = rest[size:]
	}

	return nil
}

func encodeInfoChunk(m *Metadata) []byte {
	if m == nil {
		return nil
	}

	buf := bytes.NewBuffer(nil)

	writeSection := func(id [4]byte, val string) {
		if val == "" {
			return
		}

		size := len(val) + 1

		buf.Write(id[:])
		binary.Write(buf, binary.LittleEndian, uint32(size))
		buf.WriteString(val)
		buf.WriteByte(0)

		if size%2 == 1 {
			buf.WriteByte(0)
		}
	}

	writeSection(markerINAM, m.Title)
	writeSection(markerICMT, m.Comments)
	writeSection(markerISFT, m.Software)

	if buf.Len() == 0 {
		return nil
	}

	return append(CIDInfo[:], buf.Bytes()...)
}
