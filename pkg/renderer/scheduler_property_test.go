package renderer

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// chainDevice adds a fixed amount to whatever it starts with (always 0,
// since Device has no input) — used only to mark a track as non-silent;
// the real signal in these tests flows through receives.
type chainDevice struct{ amount float32 }

func (d *chainDevice) SetSampleRate(float32) {}
func (d *chainDevice) SetTempo(int)          {}
func (d *chainDevice) SetChunk([]byte)       {}
func (d *chainDevice) ProcessBlock(n int) ([]float32, []float32) {
	l := make([]float32, n)
	r := make([]float32, n)
	for i := range l {
		l[i] = d.amount
		r[i] = d.amount
	}
	return l, r
}

// buildChain constructs n tracks where track i (i>0) receives from i-1
// with unit gain and adds 1.0 of its own; track 0 just emits 1.0. The
// master (last) track's output should equal n after one block.
func buildChain(n int) []*Track {
	rend := &Renderer{}
	tracks := make([]*Track, n)
	for i := 0; i < n; i++ {
		var receives []Receive
		if i > 0 {
			receives = []Receive{{SendingTrackIndex: i - 1, Gain: 1}}
		}
		tracks[i] = newTrack(rend, i, []Device{&chainDevice{amount: 1}}, receives, nil)
	}
	rend.tracks = tracks
	return tracks
}

func TestSchedulerRendersChainToCorrectSum(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("every track finishes and the master sums the whole chain", prop.ForAll(
		func(n, numWorkers int) bool {
			tracks := buildChain(n)
			tr := newTrace(DefaultMaxTraceEvents, nil)
			sched := newScheduler(tracks, tr, numWorkers, nil, time.Now())
			sched.start()
			defer sched.stop()

			sched.resetForBlock(4)
			sched.waitForMaster()

			for _, s := range sched.state {
				if renderState(s) != stateFinished {
					return false
				}
			}

			left, right := tracks[n-1].Buffers()
			for i := 0; i < 4; i++ {
				if left[i] != float32(n) || right[i] != float32(n) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(1, 4),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSchedulerRendersMultipleBlocksInSequence(t *testing.T) {
	tracks := buildChain(5)
	tr := newTrace(DefaultMaxTraceEvents, nil)
	sched := newScheduler(tracks, tr, 3, nil, time.Now())
	sched.start()
	defer sched.stop()

	for block := 0; block < 3; block++ {
		sched.resetForBlock(8)
		sched.waitForMaster()
		left, _ := tracks[len(tracks)-1].Buffers()
		for i := 0; i < 8; i++ {
			if left[i] != 5 {
				t.Fatalf("block %d sample %d = %v, want 5", block, i, left[i])
			}
		}
	}
}

func TestSchedulerStopJoinsWorkers(t *testing.T) {
	tracks := buildChain(3)
	tr := newTrace(DefaultMaxTraceEvents, nil)
	sched := newScheduler(tracks, tr, 2, nil, time.Now())
	sched.start()
	sched.resetForBlock(4)
	sched.waitForMaster()
	sched.stop() // must return; workers observe shutdown and exit
}
