package renderer

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kaelstrom/wavegraph/internal/fpguard"
)

// renderState is a per-track value in {Idle, Rendering, Finished}. The
// zero value is deliberately not Idle: states start life as Finished so
// the first block's reset to Idle is well-defined.
type renderState int32

const (
	stateFinished renderState = iota
	stateIdle
	stateRendering
)

// DefaultWorkerThreads matches the reference player's default.
const DefaultWorkerThreads = 3

// scheduler assigns ready tracks to worker goroutines, respecting each
// track's receive list, while keeping workers busy. Readiness is
// determined by a linear scan of a shared state array under one mutex,
// never a graph walk or a work-stealing queue.
type scheduler struct {
	mu       sync.Mutex
	state    []renderState
	numFloat int

	tracks    []*Track
	trace     *trace
	log       *slog.Logger
	startedAt time.Time

	masterDone atomic.Bool // acquire/release completion signal for the terminal track

	numWorkers int
	shutdown   bool
	wg         sync.WaitGroup
}

func newScheduler(tracks []*Track, tr *trace, numWorkers int, log *slog.Logger, startedAt time.Time) *scheduler {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerThreads
	}
	s := &scheduler{
		state:      make([]renderState, len(tracks)),
		tracks:     tracks,
		trace:      tr,
		log:        log,
		startedAt:  startedAt,
		numWorkers: numWorkers,
	}
	for i := range s.state {
		s.state[i] = stateFinished
	}
	return s
}

// start launches the worker goroutines. They run until stop is called.
func (s *scheduler) start() {
	for i := 0; i < s.numWorkers; i++ {
		s.wg.Add(1)
		go s.workerLoop()
	}
}

// stop signals shutdown and waits for every worker to return. Worst-case
// latency is one in-flight track's render time: workers observe shutdown
// at the top of the critical section each iteration.
func (s *scheduler) stop() {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()
	s.wg.Wait()
}

// resetForBlock marks every track Idle and records the block size, ready
// for workers to begin claiming tracks. Called by the façade at the top
// of RenderSamples.
func (s *scheduler) resetForBlock(numFloatSamples int) {
	s.mu.Lock()
	for i := range s.state {
		s.state[i] = stateIdle
	}
	s.numFloat = numFloatSamples
	s.masterDone.Store(false)
	s.mu.Unlock()
}

// waitForMaster spin-waits (yielding) until the master track — the last
// one, by construction the terminal node of the DAG — has finished. This
// is the sole completion signal for a block.
func (s *scheduler) waitForMaster() {
	for !s.masterDone.Load() {
		runtime.Gosched()
	}
}

// workerLoop implements the three-state claim loop: a previously-claimed
// track is finished first, then the state array is scanned from index
// zero for the earliest Idle track whose receives are all Finished. The
// first iteration's "no previous claim" sentinel is numTracks itself —
// never a valid track index — so the "finish previous" branch is
// correctly skipped on a worker's first pass without a separate sentinel
// type.
func (s *scheduler) workerLoop() {
	defer s.wg.Done()

	numTracks := len(s.tracks)
	claimed := numTracks

	for {
		release := fpguard.Guard()
		s.mu.Lock()

		if s.shutdown {
			s.mu.Unlock()
			release()
			return
		}

		if claimed < numTracks {
			s.trace.append(s.trackEvent(PhaseEnd, claimed))
			s.state[claimed] = stateFinished
			if claimed == numTracks-1 {
				s.masterDone.Store(true)
			}
		}

		claimed = numTracks
		for i := 0; i < numTracks; i++ {
			if s.state[i] != stateIdle {
				continue
			}
			ready := true
			for _, r := range s.tracks[i].receives {
				if s.state[r.SendingTrackIndex] != stateFinished {
					ready = false
					break
				}
			}
			if ready {
				claimed = i
				break
			}
		}

		if claimed < numTracks {
			s.state[claimed] = stateRendering
			s.trace.append(s.trackEvent(PhaseBegin, claimed))
		}

		s.mu.Unlock()

		if claimed < numTracks {
			s.tracks[claimed].Run(s.numFloat)
		} else {
			runtime.Gosched()
		}
		release()
	}
}

func (s *scheduler) trackEvent(phase Phase, trackIndex int) TraceEvent {
	return TraceEvent{
		Kind:       RenderTrackEvent,
		Name:       "Render",
		Category:   "Tracks",
		Phase:      phase,
		TsUs:       time.Since(s.startedAt).Microseconds(),
		Pid:        osPid,
		Tid:        goroutineID(),
		TrackIndex: int32(trackIndex),
	}
}
