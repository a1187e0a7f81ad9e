package devices

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sinshu/go-meltysynth/meltysynth"
	"github.com/kaelstrom/wavegraph/pkg/renderer"
)

// Device IDs a song blob may reference. A blob that references an ID
// outside this set gets ErrUnknownDevice from Registry.Factory.
const (
	DeviceIDSilence renderer.DeviceID = 0
	DeviceIDGain    renderer.DeviceID = 1
	DeviceIDSynth   renderer.DeviceID = 2
)

// Registry constructs devices, lazily loading the SoundFont a Synth
// needs the first time one is requested.
type Registry struct {
	soundFontPath string
	soundFont     *meltysynth.SoundFont
	log           *slog.Logger
}

// NewRegistry builds a Registry that loads soundFontPath on first use.
// soundFontPath may be empty if the song never references DeviceIDSynth.
func NewRegistry(soundFontPath string, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{soundFontPath: soundFontPath, log: log}
}

// Factory returns a renderer.DeviceFactory bound to this registry.
func (r *Registry) Factory() renderer.DeviceFactory {
	return func(id renderer.DeviceID) (renderer.Device, error) {
		switch id {
		case DeviceIDSilence:
			return NewSilence(), nil
		case DeviceIDGain:
			return NewGain(), nil
		case DeviceIDSynth:
			sf, err := r.loadSoundFont()
			if err != nil {
				return nil, err
			}
			return NewSynth(sf, r.log), nil
		default:
			return nil, fmt.Errorf("devices: %w: %d", ErrUnknownDevice, id)
		}
	}
}

func (r *Registry) loadSoundFont() (*meltysynth.SoundFont, error) {
	if r.soundFont != nil {
		return r.soundFont, nil
	}
	if r.soundFontPath == "" {
		return nil, ErrNoSoundFontPath
	}
	data, err := os.ReadFile(r.soundFontPath)
	if err != nil {
		return nil, fmt.Errorf("devices: read soundfont: %w", err)
	}
	sf, err := LoadSoundFont(data)
	if err != nil {
		return nil, err
	}
	r.soundFont = sf
	return sf, nil
}
