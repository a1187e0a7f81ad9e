package renderer

// DeviceID identifies the kind of device a song blob asks the caller's
// factory to construct. It is read as a single byte from the blob; the
// renderer never interprets its value itself.
type DeviceID byte

// Device is the opaque DSP node a hosting track drives. The renderer
// never inspects what a Device does internally — it only ever drives one
// through this contract, immediately after construction and then once
// per block per hosting track.
type Device interface {
	// SetSampleRate configures the device's operating sample rate. Called
	// once, immediately after construction.
	SetSampleRate(sampleRate float32)

	// SetTempo configures the device's tempo in beats per minute. Called
	// once, immediately after construction.
	SetTempo(bpm int)

	// SetChunk restores device state from the bytes the song blob
	// reserved for it. The slice aliases the song blob and must not be
	// retained past this call if the device needs to mutate it.
	SetChunk(chunk []byte)

	// ProcessBlock renders numFloatSamples per channel into the device's
	// own output buffers and returns them. The returned slices must have
	// length >= numFloatSamples and remain valid until the next call to
	// ProcessBlock.
	ProcessBlock(numFloatSamples int) (left, right []float32)
}

// DeviceFactory allocates a Device of the requested kind. The renderer
// calls it once per device entry in the song blob, then immediately calls
// SetSampleRate, SetTempo and SetChunk on the result. A factory returning
// an error is the expected way to report a failed construction; the one
// other thing this package checks is a nil Device coming back alongside a
// nil error, which it treats as ErrNilDevice, since that is a cheap,
// construction-time check that avoids a baffling nil-pointer panic three
// layers down in a worker.
type DeviceFactory func(id DeviceID) (Device, error)
