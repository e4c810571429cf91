package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/markusressel/base2go/internal/base"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockPlatform struct {
	State        base.State
	ReadErr      error
	SetErr       error
	ReadCount    int
	SetTorqueLog []base.Torques
	Closed       int
	onRead       func()
}

func (p *MockPlatform) Name() string {
	return "mock"
}

func (p *MockPlatform) Connect(ctx context.Context) error {
	return nil
}

func (p *MockPlatform) ReadState(state *base.State) error {
	p.ReadCount++
	if p.onRead != nil {
		p.onRead()
	}
	if p.ReadErr != nil {
		return p.ReadErr
	}
	*state = p.State
	return nil
}

func (p *MockPlatform) SetTorques(torques base.Torques) error {
	p.SetTorqueLog = append(p.SetTorqueLog, torques)
	return p.SetErr
}

func (p *MockPlatform) Close() error {
	p.Closed++
	return nil
}

type RecordingObserver struct {
	Statuses []LoopStatus
	Results  []Result
}

func (o *RecordingObserver) Observe(status LoopStatus, state *base.State, result *Result) {
	o.Statuses = append(o.Statuses, status)
	o.Results = append(o.Results, *result)
}

func createLoop(t *testing.T, p *MockPlatform, command base.Wrench, params LoopParameters) (*Loop, *ShutdownCoordinator, *RecordingObserver) {
	c := createController(t, createControllerConfig(), command)
	shutdown := NewShutdownCoordinator()
	observer := &RecordingObserver{}
	clock := &SteppingClock{Current: time.Unix(0, 0), Step: 70 * time.Microsecond}
	return NewLoop(p, c, shutdown, clock, params, observer), shutdown, observer
}

func TestLoop_WarmupAndRelease(t *testing.T) {
	// GIVEN
	p := &MockPlatform{}
	loop, shutdown, observer := createLoop(t, p, base.Wrench{ForceX: 10}, LoopParameters{
		Period:           time.Millisecond,
		WarmupIterations: 2,
		MaxIterations:    5,
	})

	// WHEN
	err := loop.Run(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 5, p.ReadCount)
	// iterations 3, 4 and 5 send torques, followed by the release
	require.Len(t, p.SetTorqueLog, 4)
	assert.NotEqual(t, base.Torques{}, p.SetTorqueLog[0])
	assert.Equal(t, base.Torques{}, p.SetTorqueLog[3])
	assert.Equal(t, 1, p.Closed)
	assert.True(t, shutdown.Requested())
	assert.Equal(t, "interrupted", shutdown.Reason())

	require.Len(t, observer.Statuses, 5)
	assert.False(t, observer.Statuses[1].TorquesEnabled)
	assert.True(t, observer.Statuses[2].TorquesEnabled)
	assert.Equal(t, uint64(5), loop.Status().Iteration)
	assert.Equal(t, "weighted", loop.Status().Solver)
}

func TestLoop_NeverReturnsEarly(t *testing.T) {
	// GIVEN
	p := &MockPlatform{}
	period := time.Millisecond
	loop, _, observer := createLoop(t, p, base.Wrench{}, LoopParameters{
		Period:        period,
		MaxIterations: 20,
	})

	// WHEN
	err := loop.Run(context.Background())

	// THEN
	assert.NoError(t, err)
	for _, status := range observer.Statuses {
		assert.GreaterOrEqual(t, status.Timestep, period.Seconds())
		assert.GreaterOrEqual(t, status.MinTimestep, period.Seconds())
	}
	assert.Equal(t, uint64(0), loop.Status().Overruns)
}

func TestLoop_CountsOverruns(t *testing.T) {
	// GIVEN
	p := &MockPlatform{}
	c := createController(t, createControllerConfig(), base.Wrench{})
	clock := &SteppingClock{Current: time.Unix(0, 0), Step: 3 * time.Millisecond}
	loop := NewLoop(p, c, NewShutdownCoordinator(), clock, LoopParameters{
		Period:           time.Millisecond,
		MaxIterations:    3,
		TimingWindowSize: 3,
	})

	// WHEN
	err := loop.Run(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), loop.Status().Overruns)
	assert.InDelta(t, 0.003, loop.Status().AvgTimestep, 1e-12)
}

type clockAdvancingObserver struct {
	clock   *SteppingClock
	advance time.Duration
}

func (o *clockAdvancingObserver) Observe(status LoopStatus, state *base.State, result *Result) {
	o.clock.Current = o.clock.Current.Add(o.advance)
}

func TestLoop_ObserverTimeIsMeasured(t *testing.T) {
	// GIVEN
	p := &MockPlatform{}
	c := createController(t, createControllerConfig(), base.Wrench{})
	clock := &SteppingClock{Current: time.Unix(0, 0), Step: 70 * time.Microsecond}
	slow := &clockAdvancingObserver{clock: clock, advance: 5 * time.Millisecond}
	recorder := &RecordingObserver{}
	loop := NewLoop(p, c, NewShutdownCoordinator(), clock, LoopParameters{
		Period:        time.Millisecond,
		MaxIterations: 5,
	}, recorder, slow)

	// WHEN
	err := loop.Run(context.Background())

	// THEN
	assert.NoError(t, err)
	require.Len(t, recorder.Statuses, 5)
	// the first iteration has no preceding observer call
	assert.Less(t, recorder.Statuses[0].Timestep, 0.0011)
	for _, status := range recorder.Statuses[1:] {
		assert.GreaterOrEqual(t, status.Timestep, 0.005)
	}
	assert.Equal(t, uint64(4), loop.Status().Overruns)
}

func TestLoop_ShutdownRequestedBeforeStart(t *testing.T) {
	// GIVEN
	p := &MockPlatform{}
	loop, shutdown, _ := createLoop(t, p, base.Wrench{ForceX: 10}, LoopParameters{Period: time.Millisecond})
	shutdown.Interrupt()

	// WHEN
	err := loop.Run(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0, p.ReadCount)
	assert.Equal(t, []base.Torques{{}}, p.SetTorqueLog)
	assert.Equal(t, 1, p.Closed)
}

func TestLoop_ShutdownDuringRun(t *testing.T) {
	// GIVEN
	p := &MockPlatform{}
	loop, shutdown, _ := createLoop(t, p, base.Wrench{ForceX: 10}, LoopParameters{Period: time.Millisecond})
	p.onRead = func() {
		if p.ReadCount == 10 {
			shutdown.Interrupt()
		}
	}

	// WHEN
	err := loop.Run(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 10, p.ReadCount)
	assert.Equal(t, base.Torques{}, p.SetTorqueLog[len(p.SetTorqueLog)-1])
}

func TestLoop_ContextCancelled(t *testing.T) {
	// GIVEN
	p := &MockPlatform{}
	loop, shutdown, _ := createLoop(t, p, base.Wrench{}, LoopParameters{Period: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	err := loop.Run(ctx)

	// THEN
	assert.NoError(t, err)
	assert.True(t, shutdown.Requested())
	assert.Equal(t, 0, p.ReadCount)
}

func TestLoop_ReadErrorReleasesPlatform(t *testing.T) {
	// GIVEN
	p := &MockPlatform{ReadErr: errors.New("bus timeout")}
	loop, _, _ := createLoop(t, p, base.Wrench{}, LoopParameters{Period: time.Millisecond})

	// WHEN
	err := loop.Run(context.Background())

	// THEN
	assert.EqualError(t, err, "reading platform state failed: bus timeout")
	assert.Equal(t, 1, p.Closed)
}
