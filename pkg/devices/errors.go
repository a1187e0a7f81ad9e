package devices

import "errors"

var (
	// ErrUnknownDevice is returned when a song blob references a device ID
	// the registry has no factory for.
	ErrUnknownDevice = errors.New("devices: unknown device id")

	// ErrNoSoundFontPath is returned when a song blob references a Synth
	// device but the registry was built without a SoundFont path.
	ErrNoSoundFontPath = errors.New("devices: synth device requires a soundfont path")
)
