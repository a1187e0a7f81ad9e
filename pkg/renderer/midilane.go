package renderer

// EventType distinguishes a note-on from a note-off within a MIDI lane.
type EventType byte

const (
	// NoteOn carries an explicit velocity.
	NoteOn EventType = iota
	// NoteOff always has an implicit velocity of zero.
	NoteOff
)

// noteOffBit is the high bit of the note byte in the blob encoding; when
// set the event is a note-off and no velocity byte follows.
const noteOffBit = 0x80

// Event is one note-on or note-off in a MIDI lane.
type Event struct {
	TimeStamp int32
	Type      EventType
	Note      byte
	Velocity  byte
}

// MIDILane owns a sorted array of note-on/note-off events. Tracks
// reference lanes by index; the lane itself has no notion of which track
// uses it.
type MIDILane struct {
	Events []Event
}

// readMIDILane parses one MIDI lane from the blob: a count followed by
// that many events, each a time stamp and a note byte whose high bit
// selects note-on (velocity byte follows) or note-off (velocity is
// implicitly zero, no byte follows).
func readMIDILane(r *blobReader) *MIDILane {
	numEvents := r.readInt32()
	events := make([]Event, numEvents)
	for i := range events {
		ts := r.readInt32()
		noteByte := r.readByte()
		if noteByte&noteOffBit == 0 {
			events[i] = Event{
				TimeStamp: ts,
				Type:      NoteOn,
				Note:      noteByte & 0x7F,
				Velocity:  r.readByte(),
			}
		} else {
			events[i] = Event{
				TimeStamp: ts,
				Type:      NoteOff,
				Note:      noteByte & 0x7F,
				Velocity:  0,
			}
		}
	}
	return &MIDILane{Events: events}
}
