package devices

import (
	"encoding/binary"
	"math"
)

// Gain emits a constant-amplitude signal on both channels, scaled by a
// single float32 read from its device chunk. It exists for songs that
// want a deterministic, silence-free signal source — useful for
// exercising the mixing and clamping path without a SoundFont.
type Gain struct {
	amplitude float32
}

func NewGain() *Gain { return &Gain{} }

func (g *Gain) SetSampleRate(sampleRate float32) {}

func (g *Gain) SetTempo(bpm int) {}

// SetChunk reads a single little-endian float32: the constant amplitude.
func (g *Gain) SetChunk(chunk []byte) {
	if len(chunk) < 4 {
		return
	}
	bits := binary.LittleEndian.Uint32(chunk)
	g.amplitude = math.Float32frombits(bits)
}

func (g *Gain) ProcessBlock(numFloatSamples int) (left, right []float32) {
	left = make([]float32, numFloatSamples)
	right = make([]float32, numFloatSamples)
	for i := range left {
		left[i] = g.amplitude
		right[i] = g.amplitude
	}
	return left, right
}
