package persistence

import (
	"testing"
	"time"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/controller"
	"github.com/stretchr/testify/assert"
)

func observe(recorder *Recorder, iterations int) {
	for i := 1; i <= iterations; i++ {
		result := &controller.Result{}
		result.Torques[0] = float64(i)
		recorder.Observe(controller.LoopStatus{Iteration: uint64(i), Solver: "cgls", Overruns: 1}, &base.State{}, result)
	}
}

func TestRecorder_SampleEvery(t *testing.T) {
	// GIVEN
	recorder := NewRecorder(10, 100, base.Wrench{}, time.Now())

	// WHEN
	observe(recorder, 35)

	// THEN
	samples := recorder.Samples()
	assert.Len(t, samples, 3)
	assert.Equal(t, uint64(10), samples[0].Iteration)
	assert.Equal(t, uint64(30), samples[2].Iteration)
	assert.Equal(t, 30.0, samples[2].Torques[0])
}

func TestRecorder_DropsOldestSamples(t *testing.T) {
	// GIVEN
	recorder := NewRecorder(1, 4, base.Wrench{}, time.Now())

	// WHEN
	observe(recorder, 10)

	// THEN
	samples := recorder.Samples()
	assert.Len(t, samples, 4)
	for i, sample := range samples {
		assert.Equal(t, uint64(7+i), sample.Iteration)
	}
}

func TestRecorder_Finish(t *testing.T) {
	// GIVEN
	startedAt := time.Date(2024, 3, 2, 12, 30, 15, 0, time.UTC)
	recorder := NewRecorder(5, 100, base.Wrench{TorqueZ: 1}, startedAt)
	observe(recorder, 12)

	// WHEN
	run := recorder.Finish("terminated", startedAt.Add(2*time.Second))

	// THEN
	assert.Equal(t, "20240302-123015", run.Id)
	assert.Equal(t, 2.0, run.Duration)
	assert.Equal(t, "cgls", run.Solver)
	assert.Equal(t, "terminated", run.Reason)
	assert.Equal(t, uint64(12), run.Iterations)
	assert.Equal(t, uint64(1), run.Overruns)
	assert.Equal(t, 1.0, run.Command.TorqueZ)
	assert.Len(t, run.Samples, 2)
	assert.Equal(t, 2, run.Summary().SampleCount)
}
