package modwav

import (
	"errors"
	"fmt"
)

var (
	// ErrSampleNotFound is matched by *SampleResolutionError.
	ErrSampleNotFound = errors.New("sample not found")
	// ErrInvalidSample is matched by *InvalidSampleError.
	ErrInvalidSample = errors.New("invalid sample")
	// ErrExtraction is matched by *ExtractionError.
	ErrExtraction = errors.New("sample extraction failed")
	// ErrWrite is matched by *WriteError.
	ErrWrite = errors.New("write failed")
	// ErrInstrumentRange is matched by *InstrumentRangeError.
	ErrInstrumentRange = errors.New("instrument out of range")
	// ErrNoModule is returned when a ModuleInfo holds no module.
	ErrNoModule = errors.New("module info holds no module")
)

// LoadError reports a module that could not be opened or recognised.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// InstrumentRangeError reports an instrument number outside the module's
// instrument table.
type InstrumentRangeError struct {
	Instrument int
	Count      int
}

func (e *InstrumentRangeError) Error() string {
	return fmt.Sprintf("instrument %d: out of range, module has %d instruments", e.Instrument, e.Count)
}

func (e *InstrumentRangeError) Is(target error) bool {
	return target == ErrInstrumentRange
}

// SampleResolutionError reports a sub-sample whose id is not in the sample
// table.
type SampleResolutionError struct {
	Instrument int
	SubSample  int
	SampleID   SampleID
}

func (e *SampleResolutionError) Error() string {
	return fmt.Sprintf("instrument %d sub-sample %d: sample %d: %v", e.Instrument, e.SubSample, e.SampleID, ErrSampleNotFound)
}

func (e *SampleResolutionError) Is(target error) bool {
	return target == ErrSampleNotFound
}

// InvalidSampleError reports a malformed sample record.
type InvalidSampleError struct {
	SampleID SampleID
	Length   int
}

func (e *InvalidSampleError) Error() string {
	return fmt.Sprintf("sample %d: %v: length %d", e.SampleID, ErrInvalidSample, e.Length)
}

func (e *InvalidSampleError) Is(target error) bool {
	return target == ErrInvalidSample
}

// ExtractionError reports a failed or short PCM read from the decoder.
type ExtractionError struct {
	SampleID SampleID
	Want     int
	Got      int
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sample %d: %v: %v", e.SampleID, ErrExtraction, e.Err)
	}

	return fmt.Sprintf("sample %d: %v: got %d bytes, want %d", e.SampleID, ErrExtraction, e.Got, e.Want)
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// WriteError reports an output file that could not be written. No file is
// left at Path when it is returned.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, ErrWrite, e.Err)
}

func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
