package persistence

import (
	"time"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/controller"
)

const runIdLayout = "20060102-150405"

// Recorder keeps the most recent samples of the control loop in memory.
// Observe is called on the loop goroutine, Finish must only be called after the loop returned.
type Recorder struct {
	sampleEvery uint64

	startedAt time.Time
	command   base.Wrench
	last      controller.LoopStatus

	samples []Sample
	next    int
	full    bool
}

func NewRecorder(sampleEvery int, maxSamples int, command base.Wrench, startedAt time.Time) *Recorder {
	if sampleEvery <= 0 {
		sampleEvery = 1
	}
	if maxSamples <= 0 {
		maxSamples = 1
	}
	return &Recorder{
		sampleEvery: uint64(sampleEvery),
		startedAt:   startedAt,
		command:     command,
		samples:     make([]Sample, maxSamples),
	}
}

func (r *Recorder) Observe(status controller.LoopStatus, state *base.State, result *controller.Result) {
	r.last = status
	if status.Iteration%r.sampleEvery != 0 {
		return
	}

	r.samples[r.next] = Sample{
		Iteration:   status.Iteration,
		Timestep:    status.Timestep,
		Shaped:      result.Shaped,
		PivotAngles: state.PivotAngles,
		Torques:     result.Torques,
		FeedForward: result.FeedForward,
	}
	r.next++
	if r.next == len(r.samples) {
		r.next = 0
		r.full = true
	}
}

// Samples returns the buffered samples, oldest first
func (r *Recorder) Samples() []Sample {
	if !r.full {
		return append([]Sample{}, r.samples[:r.next]...)
	}
	result := make([]Sample, 0, len(r.samples))
	result = append(result, r.samples[r.next:]...)
	return append(result, r.samples[:r.next]...)
}

// Finish turns the buffer into a run
func (r *Recorder) Finish(reason string, finishedAt time.Time) *Run {
	return &Run{
		RunSummary: RunSummary{
			Id:         r.startedAt.Format(runIdLayout),
			StartedAt:  r.startedAt,
			Duration:   finishedAt.Sub(r.startedAt).Seconds(),
			Solver:     r.last.Solver,
			Command:    r.command,
			Reason:     reason,
			Iterations: r.last.Iteration,
			Overruns:   r.last.Overruns,
		},
		Samples: r.Samples(),
	}
}

var _ controller.Observer = (*Recorder)(nil)
