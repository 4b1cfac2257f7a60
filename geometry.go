package modwav

// Geometry is the storage layout of a sample.
type Geometry struct {
	// ByteWidth is 1 or 2.
	ByteWidth  int
	ByteLength int
}

// BitsPerSample returns the element size in bits.
func (g Geometry) BitsPerSample() int {
	return g.ByteWidth * 8
}

// Frames returns the number of elements.
func (g Geometry) Frames() int {
	if g.ByteWidth == 0 {
		return 0
	}
	return g.ByteLength / g.ByteWidth
}

// SampleGeometry computes the byte width and byte length of a sample from its
// element count and 16-bit flag.
func SampleGeometry(s *Sample) (Geometry, error) {
	if s == nil {
		return Geometry{}, &InvalidSampleError{SampleID: -1}
	}

	if s.Length < 0 {
		return Geometry{}, &InvalidSampleError{SampleID: s.ID, Length: s.Length}
	}

	width := 1
	if s.Flags.Has(Sample16Bit) {
		width = 2
	}

	return Geometry{ByteWidth: width, ByteLength: s.Length * width}, nil
}
