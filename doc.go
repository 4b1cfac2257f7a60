// Package modwav exports the instrument samples of a tracker module as
// standalone mono PCM files.
//
// A module is opened through a Loader, which yields a Handle: the decoder
// that owns the module's metadata and raw sample data. ResolveSubSamples
// walks an instrument's sub-samples to their sample records, SampleGeometry
// computes how many bytes each sample occupies, and an Exporter writes one
// file per sub-sample:
//
//	h, err := tracker.Loader{}.Load(path)
//	...
//	defer h.Close()
//	h.PlayerStart(modwav.PlayerSampleRate, 0)
//	info, err := h.Info()
//	...
//	exp := &modwav.Exporter{Handle: h, Info: info, Progress: os.Stdout}
//	n, err := exp.ExportInstrument(3)
//
// Output files are named sample-XX-YY.wav, XX being the instrument and YY
// the sub-sample index in two-digit lowercase hex, and are always written at
// OutputSampleRate regardless of the module's own tuning.
package modwav
