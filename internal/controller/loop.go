package controller

import (
	"context"
	"runtime"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/platform"
	"github.com/markusressel/base2go/internal/ui"
	"github.com/markusressel/base2go/internal/util"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Clock is the time source of the loop
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock uses the monotonic wall clock
var SystemClock Clock = systemClock{}

// SteppingClock advances by Step on every call to Now. A loop using it runs
// as fast as possible while still observing Step sized timesteps.
type SteppingClock struct {
	Current time.Time
	Step    time.Duration
}

func (c *SteppingClock) Now() time.Time {
	now := c.Current
	c.Current = c.Current.Add(c.Step)
	return now
}

// LoopStatus is a snapshot of the loop timing
type LoopStatus struct {
	Iteration      uint64  `json:"iteration"`
	Timestep       float64 `json:"timestep"`
	MinTimestep    float64 `json:"minTimestep"`
	MaxTimestep    float64 `json:"maxTimestep"`
	AvgTimestep    float64 `json:"avgTimestep"`
	Overruns       uint64  `json:"overruns"`
	TorquesEnabled bool    `json:"torquesEnabled"`
	Solver         string  `json:"solver"`
}

// Observer is notified after every iteration of the loop. It is called on the
// loop goroutine and must not block.
type Observer interface {
	Observe(status LoopStatus, state *base.State, result *Result)
}

type LoopParameters struct {
	Period time.Duration
	// WarmupIterations are computed without sending torques to the platform
	WarmupIterations int
	// MaxIterations ends the loop, 0 means unlimited
	MaxIterations int
	// LogEvery n-th iteration a debug line is printed, 0 disables it
	LogEvery int
	// TimingWindowSize is the number of timesteps used for the timing statistics
	TimingWindowSize int
}

// Loop runs the controller at a fixed rate until a shutdown is requested
type Loop struct {
	platform   platform.Platform
	controller *BaseController
	shutdown   *ShutdownCoordinator
	clock      Clock
	params     LoopParameters
	observers  []Observer

	timing *rolling.PointPolicy
	status LoopStatus
}

func NewLoop(p platform.Platform, c *BaseController, shutdown *ShutdownCoordinator, clock Clock, params LoopParameters, observers ...Observer) *Loop {
	if params.TimingWindowSize <= 0 {
		params.TimingWindowSize = 1000
	}
	return &Loop{
		platform:   p,
		controller: c,
		shutdown:   shutdown,
		clock:      clock,
		params:     params,
		observers:  observers,
		timing:     util.CreateFilledRollingWindow(params.TimingWindowSize, params.Period.Seconds()),
		status: LoopStatus{
			Solver: c.Distributor().Name(),
		},
	}
}

// Status returns the status after the last finished iteration.
// Must only be called from the loop goroutine or after Run returned.
func (l *Loop) Status() LoopStatus {
	return l.status
}

// Run executes the loop on the calling goroutine, which is locked to its OS thread.
// A requested shutdown releases the platform and returns nil.
func (l *Loop) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	period := l.params.Period
	overrunThreshold := period + period/10
	dt := period.Seconds()

	var state base.State
	start := l.clock.Now()
	for iteration := uint64(1); ; iteration++ {
		if ctx.Err() != nil {
			l.shutdown.Interrupt()
		}
		if l.params.MaxIterations > 0 && iteration > uint64(l.params.MaxIterations) {
			l.shutdown.Interrupt()
		}
		if l.shutdown.Requested() {
			ui.Info("Stopping control loop after %d iterations (%s)", iteration-1, l.shutdown.Reason())
			return l.release()
		}

		if err := l.platform.ReadState(&state); err != nil {
			return multierr.Append(errors.Wrap(err, "reading platform state failed"), l.release())
		}

		result := l.controller.Step(&state, dt)

		torquesEnabled := iteration > uint64(l.params.WarmupIterations)
		if torquesEnabled {
			if err := l.platform.SetTorques(result.Torques); err != nil {
				return multierr.Append(errors.Wrap(err, "sending torques failed"), l.release())
			}
		}

		if l.params.LogEvery > 0 && iteration%uint64(l.params.LogEvery) == 0 {
			ui.Debug("Iteration %d: dt=%.6fs shaped=(%.3f, %.3f, %.3f) torques=%v", iteration, dt, result.Shaped.ForceX, result.Shaped.ForceY, result.Shaped.TorqueZ, result.Torques)
		}

		// observers run after the wait, their time counts towards the next iteration
		now := l.waitForPeriod(start)
		elapsed := now.Sub(start)
		start = now
		dt = elapsed.Seconds()
		if elapsed > overrunThreshold {
			l.status.Overruns++
		}
		l.updateStatus(iteration, dt, torquesEnabled)

		for _, observer := range l.observers {
			observer.Observe(l.status, &state, &result)
		}
	}
}

// waitForPeriod spins until at least one period has passed since start and returns the time it stopped at
func (l *Loop) waitForPeriod(start time.Time) time.Time {
	for {
		now := l.clock.Now()
		if now.Sub(start) >= l.params.Period {
			return now
		}
	}
}

func (l *Loop) updateStatus(iteration uint64, dt float64, torquesEnabled bool) {
	l.timing.Append(dt)
	l.status.Iteration = iteration
	l.status.Timestep = dt
	l.status.TorquesEnabled = torquesEnabled
	l.status.MinTimestep = util.GetWindowMin(l.timing)
	l.status.MaxTimestep = util.GetWindowMax(l.timing)
	l.status.AvgTimestep = util.GetWindowAvg(l.timing)
}

// release zeroes all torques and closes the platform
func (l *Loop) release() error {
	err := l.platform.SetTorques(base.Torques{})
	err = multierr.Append(err, l.platform.Close())
	if err != nil {
		ui.Warning("Error releasing platform %s: %v", l.platform.Name(), err)
	}
	return err
}
