package renderer

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kaelstrom/wavegraph/internal/fpguard"
)

// trackSpec is the result of parsing one track's substructure from the
// blob, before the Track values (which back-reference the Renderer and
// each other) are constructed. The binary layout chosen for this
// substructure (receives as length-prefixed {int32 index, float32 gain}
// pairs, then device refs and lane refs as length-prefixed int32 arrays)
// is recorded in DESIGN.md.
type trackSpec struct {
	receives   []Receive
	deviceRefs []int32
	laneRefs   []int32
}

// Renderer is the public entry point: materializes a song blob into a
// device/lane/track graph, then renders it block by block via
// RenderSamples. It owns every device, lane, track, the per-track state
// vector, the trace ring, and the worker goroutines.
type Renderer struct {
	bpm        int
	sampleRate int
	length     float64

	devices []Device
	lanes   []*MIDILane
	tracks  []*Track

	sched *scheduler
	tr    *trace
	log   *slog.Logger

	renderSamplesCalls int32
	startedAt          time.Time
}

// New parses songBlob and constructs a Renderer with numWorkerThreads
// worker goroutines, started immediately.
func New(songBlob []byte, factory DeviceFactory, numWorkerThreads int) (*Renderer, error) {
	return NewWithOptions(songBlob, factory, numWorkerThreads, DefaultMaxTraceEvents, nil)
}

// NewWithOptions is New with the trace ring capacity and logger exposed,
// for callers that need either (e.g. the CLI driver, or tests sizing the
// ring tightly to an expected event count).
func NewWithOptions(songBlob []byte, factory DeviceFactory, numWorkerThreads, traceCapacity int, log *slog.Logger) (*Renderer, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	r := newBlobReader(songBlob)

	bpm := int(r.readInt32())
	sampleRate := int(r.readInt32())
	length := r.readFloat64()

	devices, err := readDevices(r, factory, bpm, sampleRate)
	if err != nil {
		return nil, err
	}

	numLanes := int(r.readInt32())
	lanes := make([]*MIDILane, numLanes)
	for i := range lanes {
		lanes[i] = readMIDILane(r)
	}

	numTracks := int(r.readInt32())
	if numTracks == 0 {
		return nil, ErrNoTracks
	}
	specs := make([]trackSpec, numTracks)
	for i := range specs {
		spec, err := readTrackSpec(r, i, len(devices), len(lanes))
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}

	rend := &Renderer{
		bpm:        bpm,
		sampleRate: sampleRate,
		length:     length,
		devices:    devices,
		lanes:      lanes,
		log:        log,
	}

	tracks := make([]*Track, numTracks)
	for i, spec := range specs {
		trackDevices := make([]Device, len(spec.deviceRefs))
		for j, ref := range spec.deviceRefs {
			trackDevices[j] = devices[ref]
		}
		trackLanes := make([]*MIDILane, len(spec.laneRefs))
		for j, ref := range spec.laneRefs {
			trackLanes[j] = lanes[ref]
		}
		tracks[i] = newTrack(rend, i, trackDevices, spec.receives, trackLanes)
	}
	rend.tracks = tracks

	rend.startedAt = time.Now()
	rend.tr = newTrace(traceCapacity, log)
	rend.sched = newScheduler(tracks, rend.tr, numWorkerThreads, log, rend.startedAt)
	rend.sched.start()

	return rend, nil
}

func readDevices(r *blobReader, factory DeviceFactory, bpm, sampleRate int) ([]Device, error) {
	numDevices := int(r.readInt32())
	devices := make([]Device, numDevices)
	for i := range devices {
		id := DeviceID(r.readByte())
		dev, err := factory(id)
		if err != nil {
			return nil, fmt.Errorf("renderer: device factory for id %d: %w", id, err)
		}
		if dev == nil {
			return nil, ErrNilDevice
		}
		dev.SetSampleRate(float32(sampleRate))
		dev.SetTempo(bpm)
		chunkSize := r.readInt32()
		dev.SetChunk(r.readChunk(chunkSize))
		devices[i] = dev
	}
	return devices, nil
}

func readTrackSpec(r *blobReader, ownerIndex, numDevices, numLanes int) (trackSpec, error) {
	numReceives := int(r.readInt32())
	receives := make([]Receive, numReceives)
	for i := range receives {
		sendingIndex := int(r.readInt32())
		if sendingIndex >= ownerIndex {
			return trackSpec{}, ErrBadReceive
		}
		receives[i] = Receive{SendingTrackIndex: sendingIndex, Gain: r.readFloat32()}
	}

	numDeviceRefs := int(r.readInt32())
	deviceRefs := make([]int32, numDeviceRefs)
	for i := range deviceRefs {
		ref := r.readInt32()
		if int(ref) < 0 || int(ref) >= numDevices {
			return trackSpec{}, ErrBadDeviceRef
		}
		deviceRefs[i] = ref
	}

	numLaneRefs := int(r.readInt32())
	laneRefs := make([]int32, numLaneRefs)
	for i := range laneRefs {
		ref := r.readInt32()
		if int(ref) < 0 || int(ref) >= numLanes {
			return trackSpec{}, ErrBadLaneRef
		}
		laneRefs[i] = ref
	}

	return trackSpec{receives: receives, deviceRefs: deviceRefs, laneRefs: laneRefs}, nil
}

// RenderSamples renders one block: it resets every track to Idle, lets
// the worker pool race to render the DAG, waits for the master track
// (the last one, the DAG's terminal node) to finish, then clamps and
// interleaves its float buffers into out as L,R,L,R int16. numSamples
// must be even; an odd count truncates the trailing sample rather than
// returning an error.
func (r *Renderer) RenderSamples(out []int16, numSamples int) {
	release := fpguard.Guard()
	defer release()

	callIndex := r.renderSamplesCalls
	r.tr.append(r.blockEvent(PhaseBegin, callIndex))

	numFloatSamples := numSamples / 2
	r.sched.resetForBlock(numFloatSamples)
	r.sched.waitForMaster()

	master := r.tracks[len(r.tracks)-1]
	left, right := master.Buffers()
	for i := 0; i < numFloatSamples*2; i++ {
		channel := i & 1
		idx := i >> 1
		var sample float32
		if channel == 0 {
			sample = left[idx]
		} else {
			sample = right[idx]
		}
		out[i] = clampSample(sample)
	}

	r.tr.append(r.blockEvent(PhaseEnd, callIndex))
	r.renderSamplesCalls++
}

func clampSample(s float32) int16 {
	v := int32(s * 32767.0)
	if v < -32768 {
		v = -32768
	}
	if v > 32767 {
		v = 32767
	}
	return int16(v)
}

func (r *Renderer) blockEvent(phase Phase, callIndex int32) TraceEvent {
	return TraceEvent{
		Kind:                   RenderSamplesEvent,
		Name:                   "Render",
		Category:               "Tracks",
		Phase:                  phase,
		TsUs:                   time.Since(r.startedAt).Microseconds(),
		Pid:                    osPid,
		Tid:                    goroutineID(),
		RenderSamplesCallIndex: callIndex,
	}
}

// GetTempo returns the song's tempo in BPM.
func (r *Renderer) GetTempo() int { return r.bpm }

// GetSampleRate returns the song's sample rate in Hz.
func (r *Renderer) GetSampleRate() int { return r.sampleRate }

// GetLength returns the song's authored length in seconds.
func (r *Renderer) GetLength() float64 { return r.length }

// TraceEvents returns the trace ring recorded so far. Safe to call after
// rendering completes; the ring's fields map 1:1 to chrome-trace JSON
// fields.
func (r *Renderer) TraceEvents() []TraceEvent { return r.tr.Events() }

// Close signals shutdown and joins every worker goroutine, then releases
// references to devices, lanes and tracks.
func (r *Renderer) Close() {
	r.sched.stop()
	r.devices = nil
	r.lanes = nil
	r.tracks = nil
}
