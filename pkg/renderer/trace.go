package renderer

import (
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// EventKind distinguishes the two trace event families.
type EventKind int

const (
	// RenderSamplesEvent brackets one call to Renderer.RenderSamples.
	RenderSamplesEvent EventKind = iota
	// RenderTrackEvent brackets one track's Run.
	RenderTrackEvent
)

// Phase is chrome-trace's "ph" field: "B" begin, "E" end.
type Phase string

const (
	PhaseBegin Phase = "B"
	PhaseEnd   Phase = "E"
)

// DefaultMaxTraceEvents sizes the trace ring generously above what a
// single worker-threaded render of a few dozen tracks over one block
// needs; callers rendering many blocks without draining the trace should
// size their own ring via NewWithOptions.
const DefaultMaxTraceEvents = 4096

// TraceEvent is one timed record, laid out to map 1:1 onto chrome-trace
// JSON fields: Name/Category/Phase/TsUs/Pid/Tid map directly to
// "name"/"cat"/"ph"/"ts"/"pid"/"tid". RenderSamplesCallIndex and
// TrackIndex disambiguate which call or track an event belongs to, for
// consumers that fold them into the event name.
type TraceEvent struct {
	Kind                   EventKind
	Name                   string
	Category               string
	Phase                  Phase
	TsUs                   int64
	Pid                    int
	Tid                    int64
	RenderSamplesCallIndex int32
	TrackIndex             int32
}

// trace is a fixed-capacity append-only ring. Wrap-around is not
// supported: once capacity is reached, further appends are dropped and a
// one-time warning is logged instead of silently overwriting events.
type trace struct {
	events   []TraceEvent
	index    atomic.Int64
	capacity int64
	warnOnce sync.Once
	log      *slog.Logger
}

func newTrace(capacity int, log *slog.Logger) *trace {
	if capacity <= 0 {
		capacity = DefaultMaxTraceEvents
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &trace{
		events:   make([]TraceEvent, capacity),
		capacity: int64(capacity),
		log:      log,
	}
}

// append records an event, saturating once capacity is reached. The
// index is a single atomic counter so it is safe to call both from a
// worker holding the scheduler lock and from the façade goroutine
// outside it.
func (t *trace) append(ev TraceEvent) {
	i := t.index.Add(1) - 1
	if i >= t.capacity {
		t.warnOnce.Do(func() {
			t.log.Warn("trace ring saturated, dropping further events", "capacity", t.capacity)
		})
		return
	}
	t.events[i] = ev
}

// Events returns the events recorded so far, oldest first.
func (t *trace) Events() []TraceEvent {
	n := t.index.Load()
	if n > t.capacity {
		n = t.capacity
	}
	return t.events[:n]
}
