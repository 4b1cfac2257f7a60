package modwav

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/ausocean/utils/logging"
)

// Policy decides what happens when one sub-sample fails to export.
type Policy int

const (
	// ContinueOnError skips the failed sub-sample and exports the rest.
	ContinueOnError Policy = iota
	// StopOnError returns at the first failure.
	StopOnError
)

// Exporter writes the sub-samples of an instrument to files, one at a time
// and in declaration order.
type Exporter struct {
	Handle Handle
	Info   *ModuleInfo

	// Dir is the output directory, the working directory when empty.
	Dir    string
	Format Format
	// Metadata adds the sample name and loop to wav files.
	Metadata bool
	Policy   Policy

	// Progress receives one line per written file.
	Progress io.Writer
	// Log is optional.
	Log logging.Logger
}

// FileName returns the output name of a sub-sample.
func FileName(instrument, subSample int, format Format) string {
	return fmt.Sprintf("sample-%02x-%02x%s", instrument, subSample, format.Ext())
}

// ExportInstrument writes every sub-sample of the instrument and returns the
// number of files written. With ContinueOnError the returned error joins
// every per-sample failure; an out of range instrument always fails the
// whole call.
func (e *Exporter) ExportInstrument(instrument int) (int, error) {
	if e.Info == nil || len(e.Info.Modules) == 0 || e.Info.Modules[0] == nil {
		return 0, ErrNoModule
	}

	mod := e.Info.Modules[0]

	resolved, err := ResolveSubSamples(mod, instrument)
	if err != nil {
		return 0, err
	}

	e.debug("exporting instrument", "instrument", instrument, "subsamples", len(resolved), "format", e.Format.String())

	var (
		written int
		errs    []error
	)

	for _, rs := range resolved {
		err := rs.Err
		if err == nil {
			err = e.exportSample(instrument, rs.SubSample, rs.Sample)
		}

		if err != nil {
			if e.Policy == StopOnError {
				return written, err
			}

			e.warning("skipping sub-sample", "instrument", instrument, "subsample", rs.SubSample, "error", err.Error())
			errs = append(errs, err)

			continue
		}

		written++
	}

	return written, errors.Join(errs...)
}

func (e *Exporter) exportSample(instrument, sub int, smp *Sample) error {
	g, err := SampleGeometry(smp)
	if err != nil {
		return err
	}

	pcm, err := e.Handle.SamplePCM(smp.ID)
	if err != nil {
		return &ExtractionError{SampleID: smp.ID, Want: g.ByteLength, Err: err}
	}

	if len(pcm) != g.ByteLength {
		return &ExtractionError{SampleID: smp.ID, Want: g.ByteLength, Got: len(pcm)}
	}

	name := FileName(instrument, sub, e.Format)
	path := filepath.Join(e.Dir, name)

	switch e.Format {
	case FormatAIFF:
		err = WriteAIFF(path, g, pcm)
	default:
		var meta *Sample
		if e.Metadata {
			meta = smp
		}

		err = WriteWAV(path, g, pcm, meta)
	}

	if err != nil {
		return err
	}

	e.debug("wrote sample", "path", path, "sample", int(smp.ID), "bits", g.BitsPerSample(), "bytes", g.ByteLength)

	if e.Progress != nil {
		fmt.Fprintf(e.Progress, "Dump sample %d as %s (%d bytes)\n", sub, name, g.ByteLength)
	}

	return nil
}

func (e *Exporter) debug(msg string, args ...interface{}) {
	if e.Log != nil {
		e.Log.Debug(msg, args...)
	}
}

func (e *Exporter) warning(msg string, args ...interface{}) {
	if e.Log != nil {
		e.Log.Warning(msg, args...)
	}
}
