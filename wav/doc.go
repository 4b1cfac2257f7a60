// Package wav writes and reads the small part of RIFF/WAVE needed to store a
// single tracker sample as a standalone file.
//
// Encoder emits an integer PCM fmt chunk followed by the data chunk, with the
// payload copied verbatim. Optional metadata adds a LIST/INFO chunk and a smpl
// chunk carrying the sample loop. Decoder reads those files back and is used
// to inspect exported samples.
package wav
