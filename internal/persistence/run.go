package persistence

import (
	"time"

	"github.com/markusressel/base2go/internal/base"
)

// Sample of a single control loop iteration
type Sample struct {
	Iteration   uint64                  `json:"iteration"`
	Timestep    float64                 `json:"timestep"`
	Shaped      base.Wrench             `json:"shaped"`
	PivotAngles [base.NumWheels]float64 `json:"pivotAngles"`
	Torques     base.Torques            `json:"torques"`
	FeedForward [base.NumWheels]float64 `json:"feedForward"`
}

// RunSummary describes a recorded run without its samples
type RunSummary struct {
	Id          string      `json:"id"`
	StartedAt   time.Time   `json:"startedAt"`
	Duration    float64     `json:"duration"`
	Solver      string      `json:"solver"`
	Command     base.Wrench `json:"command"`
	Reason      string      `json:"reason"`
	Iterations  uint64      `json:"iterations"`
	Overruns    uint64      `json:"overruns"`
	SampleCount int         `json:"sampleCount"`
}

// Run is a recording of a single controller run
type Run struct {
	RunSummary
	Samples []Sample `json:"samples"`
}

func (r *Run) Summary() RunSummary {
	summary := r.RunSummary
	summary.SampleCount = len(r.Samples)
	return summary
}
