/*
Package tracker loads the sample tables of tracker modules.

Protracker style MOD files (including the common multi channel variants),
Scream Tracker 3 S3M files and FastTracker II XM files are supported. Only
instruments and sample data are decoded; patterns are skipped.

The loaded module follows the model of package modwav: instruments reference
samples of a single global sample table, and sample data is kept as signed
PCM, little endian for 16-bit samples.

	h, err := tracker.Loader{}.Load("song.xm")
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.PlayerStart(modwav.PlayerSampleRate, 0); err != nil {
		return err
	}
	info, _ := h.Info()
*/
package tracker
