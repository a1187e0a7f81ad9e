package devices

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/sinshu/go-meltysynth/meltysynth"
	"gitlab.com/gomidi/midi/v2"
)

// Synth is a SoundFont-backed device. Its device chunk is the patch
// program number to select on channel 0 at construction time; all note
// events after that arrive through NoteOn/NoteOff.
type Synth struct {
	soundFont  *meltysynth.SoundFont
	synth      *meltysynth.Synthesizer
	sampleRate float32
	program    byte
	log        *slog.Logger
}

// NewSynth builds a Synth from pre-parsed SoundFont data. sampleRate is
// supplied later via SetSampleRate, matching every other Device.
func NewSynth(soundFont *meltysynth.SoundFont, log *slog.Logger) *Synth {
	if log == nil {
		log = slog.Default()
	}
	return &Synth{soundFont: soundFont, log: log}
}

// LoadSoundFont parses raw SoundFont bytes, the shape every caller of
// NewSynth is expected to feed it.
func LoadSoundFont(data []byte) (*meltysynth.SoundFont, error) {
	sf, err := meltysynth.NewSoundFont(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("devices: parse soundfont: %w", err)
	}
	return sf, nil
}

func (s *Synth) SetSampleRate(sampleRate float32) {
	s.sampleRate = sampleRate
	settings := meltysynth.NewSynthesizerSettings(int32(sampleRate))
	synth, err := meltysynth.NewSynthesizer(s.soundFont, settings)
	if err != nil {
		s.log.Error("devices: failed to create synthesizer", "error", err)
		return
	}
	s.synth = synth
	if s.program != 0 {
		s.send(midi.ProgramChange(0, s.program))
	}
}

func (s *Synth) SetTempo(bpm int) {}

// SetChunk reads a single byte: the program (patch) number to select on
// MIDI channel 0.
func (s *Synth) SetChunk(chunk []byte) {
	if len(chunk) > 0 {
		s.program = chunk[0]
	}
	if s.synth != nil {
		s.send(midi.ProgramChange(0, s.program))
	}
}

func (s *Synth) ProcessBlock(numFloatSamples int) (left, right []float32) {
	left = make([]float32, numFloatSamples)
	right = make([]float32, numFloatSamples)
	if s.synth == nil {
		return left, right
	}
	s.synth.Render(left, right)
	return left, right
}

// NoteOn implements renderer.MIDISink. tick is ignored here: event timing
// is resolved by the hosting track before this is called.
func (s *Synth) NoteOn(tick int32, note, velocity byte) {
	s.send(midi.NoteOn(0, note, velocity))
}

// NoteOff implements renderer.MIDISink.
func (s *Synth) NoteOff(tick int32, note byte) {
	s.send(midi.NoteOff(0, note, 0))
}

// send pulls the raw status/data bytes out of a gomidi message and
// forwards them to ProcessMidiMessage directly, rather than relying on
// per-message-type accessors.
func (s *Synth) send(msg midi.Message) {
	if s.synth == nil {
		return
	}
	raw := msg.Bytes()
	if len(raw) == 0 {
		return
	}
	status := raw[0]
	var channel, command byte
	if status >= 0x80 && status < 0xF0 {
		channel = status & 0x0F
		command = status & 0xF0
	} else {
		command = status
	}
	var data1, data2 byte
	if len(raw) > 1 {
		data1 = raw[1]
	}
	if len(raw) > 2 {
		data2 = raw[2]
	}
	s.synth.ProcessMidiMessage(int32(channel), int32(command), int32(data1), int32(data2))
}
