// Package renderer implements the song renderer core: a compact binary
// deserializer for a pre-authored song blob, a multi-threaded track
// scheduler that respects inter-track send dependencies, and a block-based
// sample synthesis loop that fills a caller-supplied int16 stereo buffer.
//
// The package does not decode audio files, does not perform I/O, and does
// not know anything about the concrete DSP performed by a Device beyond the
// four-method contract in device.go. Callers supply a song blob and a
// DeviceFactory; everything else is driven by Renderer.RenderSamples.
package renderer
