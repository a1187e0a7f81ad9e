package devices

// Silence is a Device that always renders zeroed buffers. It is a
// harmless default for device IDs that a song blob declares but never
// actually drives, and a deliberately simple device for scheduler tests.
type Silence struct{}

func NewSilence() *Silence { return &Silence{} }

func (s *Silence) SetSampleRate(sampleRate float32) {}
func (s *Silence) SetTempo(bpm int)                 {}
func (s *Silence) SetChunk(chunk []byte)            {}

func (s *Silence) ProcessBlock(numFloatSamples int) (left, right []float32) {
	return make([]float32, numFloatSamples), make([]float32, numFloatSamples)
}
