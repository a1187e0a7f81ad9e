package renderer

// MIDISink is an optional capability a Device may implement to receive
// note-on/note-off events from the MIDI lanes bound to its hosting track.
// The base Device contract says nothing about note delivery, so this
// package treats it as an extension a concrete device opts into, rather
// than a requirement every Device must satisfy.
type MIDISink interface {
	NoteOn(tick int32, note, velocity byte)
	NoteOff(tick int32, note byte)
}

// Receive is a directed edge from a sending track to a receiving track —
// the scheduler's dependency edge. SendingTrackIndex must be strictly
// less than the owning track's own index.
type Receive struct {
	SendingTrackIndex int
	Gain              float32
}

// Track is a DSP sub-graph node. It owns two per-channel output buffers,
// the devices it hosts, the upstream tracks it receives from, and the
// MIDI lanes bound to it. Receives and the renderer back-reference are
// relations, not ownership.
type Track struct {
	renderer  *Renderer
	index     int
	devices   []Device
	receives  []Receive
	midiLanes []*MIDILane

	left, right []float32
	samplePos   int64
}

func newTrack(r *Renderer, index int, devices []Device, receives []Receive, lanes []*MIDILane) *Track {
	return &Track{
		renderer:  r,
		index:     index,
		devices:   devices,
		receives:  receives,
		midiLanes: lanes,
	}
}

// Buffers returns the track's two per-channel output buffers. After Run
// returns they hold at least numFloatSamples valid samples per channel.
func (t *Track) Buffers() (left, right []float32) {
	return t.left, t.right
}

// Run renders numFloatSamples per channel: it delivers any MIDI lane
// events due in this block to devices implementing MIDISink, lets each
// hosted device process the block, sums the devices' output, then mixes
// in every receive's upstream buffer scaled by its gain. The scheduler
// only calls this once every upstream receive has finished its own Run,
// so reading their buffers here is safe without additional
// synchronization.
func (t *Track) Run(numFloatSamples int) {
	if cap(t.left) < numFloatSamples {
		t.left = make([]float32, numFloatSamples)
		t.right = make([]float32, numFloatSamples)
	}
	t.left = t.left[:numFloatSamples]
	t.right = t.right[:numFloatSamples]
	for i := range t.left {
		t.left[i] = 0
		t.right[i] = 0
	}

	blockStart := t.samplePos
	blockEnd := blockStart + int64(numFloatSamples)
	t.dispatchMIDI(blockStart, blockEnd)

	for _, d := range t.devices {
		dl, dr := d.ProcessBlock(numFloatSamples)
		for i := 0; i < numFloatSamples; i++ {
			t.left[i] += dl[i]
			t.right[i] += dr[i]
		}
	}

	for _, recv := range t.receives {
		upstream := t.renderer.tracks[recv.SendingTrackIndex]
		ul, ur := upstream.Buffers()
		for i := 0; i < numFloatSamples; i++ {
			t.left[i] += ul[i] * recv.Gain
			t.right[i] += ur[i] * recv.Gain
		}
	}

	t.samplePos = blockEnd
}

func (t *Track) dispatchMIDI(blockStart, blockEnd int64) {
	for _, lane := range t.midiLanes {
		for _, ev := range lane.Events {
			ts := int64(ev.TimeStamp)
			if ts < blockStart || ts >= blockEnd {
				continue
			}
			for _, d := range t.devices {
				sink, ok := d.(MIDISink)
				if !ok {
					continue
				}
				if ev.Type == NoteOn {
					sink.NoteOn(ev.TimeStamp, ev.Note, ev.Velocity)
				} else {
					sink.NoteOff(ev.TimeStamp, ev.Note)
				}
			}
		}
	}
}
