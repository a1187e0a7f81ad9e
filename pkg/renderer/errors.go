package renderer

import "errors"

// These are the few conditions this package checks at construction time.
// Everything past construction trusts the blob and the device factory,
// so RenderSamples stays zero-cost and unchecked.
var (
	// ErrNoTracks is returned when a song blob declares zero tracks. The
	// last track is always the master; a renderer with no tracks has no
	// output.
	ErrNoTracks = errors.New("renderer: song has no tracks")

	// ErrBadReceive is returned when a track's receive refers to a
	// sending track index that is not strictly less than the track's own
	// index, violating the topological-by-construction invariant.
	ErrBadReceive = errors.New("renderer: receive does not satisfy sending_track_index < owner index")

	// ErrBadLaneRef is returned when a track refers to a MIDI lane index
	// outside the blob's declared lane list.
	ErrBadLaneRef = errors.New("renderer: track references an out-of-range MIDI lane")

	// ErrBadDeviceRef is returned when a track refers to a device index
	// outside the blob's declared device list.
	ErrBadDeviceRef = errors.New("renderer: track references an out-of-range device")

	// ErrNilDevice is returned when a DeviceFactory reports success but
	// hands back a nil Device. A factory returning an error is the
	// expected way to report a failed construction; a nil Device with a
	// nil error is a factory bug we refuse to silently propagate as a
	// later nil-pointer panic deep inside the scheduler.
	ErrNilDevice = errors.New("renderer: device factory returned a nil device")

	// ErrOddSampleCount is returned by CheckEvenSampleCount when asked to
	// validate an odd numSamples. RenderSamples itself does not enforce
	// this policy — an odd count silently truncates the trailing sample,
	// per spec — so hosts that want the stricter behavior call
	// CheckEvenSampleCount themselves before rendering.
	ErrOddSampleCount = errors.New("renderer: numSamples must be even")
)

// CheckEvenSampleCount returns ErrOddSampleCount if numSamples is odd,
// nil otherwise. RenderSamples does not call this itself; callers that
// would rather fail loudly than silently truncate a trailing sample can
// invoke it before every RenderSamples call.
func CheckEvenSampleCount(numSamples int) error {
	if numSamples%2 != 0 {
		return ErrOddSampleCount
	}
	return nil
}
