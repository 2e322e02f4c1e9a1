// ABOUTME: Audio encoder package for writing PCM buffers
// ABOUTME: Provides raw PCM byte packing for playback and WAV file writing
// Package encode turns decoded buffers back into bytes.
//
// PCM packs int32 samples into little-endian 16-bit or 24-bit frames, the
// layout audio devices expect. WriteWAV stores a buffer as a 16-bit RIFF
// WAVE file, used when long recordings are split into training clips.
//
// Example:
//
//	if err := encode.WriteWAVFile("clip_chunk0.wav", chunk); err != nil {
//	    return err
//	}
package encode
