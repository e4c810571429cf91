package telemetry

import (
	"strconv"
	"sync"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/controller"
	"github.com/markusressel/base2go/internal/geometry"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// WheelStatus is the last known state of a single caster unit
type WheelStatus struct {
	Id              string  `json:"id"`
	BusIndex        int     `json:"busIndex"`
	PivotAngle      float64 `json:"pivotAngle"`
	PivotVelocity   float64 `json:"pivotVelocity"`
	LinearOffset    float64 `json:"linearOffset"`
	AngularOffset   float64 `json:"angularOffset"`
	AlignmentActive bool    `json:"alignmentActive"`
	FeedForward     float64 `json:"feedForward"`
	RightTorque     float64 `json:"rightTorque"`
	LeftTorque      float64 `json:"leftTorque"`
}

// LoopSnapshot is the last known state of the control loop
type LoopSnapshot struct {
	controller.LoopStatus

	Command  base.Wrench `json:"command"`
	Shaped   base.Wrench `json:"shaped"`
	Pose     base.Pose2D `json:"pose"`
	Velocity base.Pose2D `json:"velocity"`
	Clamped  int         `json:"clamped"`
}

// Store keeps the latest loop and wheel state for readers outside of the loop goroutine
type Store struct {
	every  uint64
	wheels cmap.ConcurrentMap[string, WheelStatus]

	mu   sync.RWMutex
	loop LoopSnapshot
}

// NewStore creates a store that takes a sample every n-th iteration
func NewStore(g *geometry.BaseGeometry, every int) *Store {
	if every <= 0 {
		every = 1
	}
	s := &Store{
		every:  uint64(every),
		wheels: cmap.New[WheelStatus](),
	}
	for i, wheel := range g.Wheels {
		id := WheelId(i)
		s.wheels.Set(id, WheelStatus{
			Id:       id,
			BusIndex: wheel.BusIndex,
		})
	}
	return s
}

// WheelId is the public identifier of the wheel unit at the given index
func WheelId(index int) string {
	return strconv.Itoa(index)
}

func (s *Store) Observe(status controller.LoopStatus, state *base.State, result *controller.Result) {
	if status.Iteration%s.every != 0 {
		return
	}

	s.mu.Lock()
	s.loop = LoopSnapshot{
		LoopStatus: status,
		Command:    result.Command,
		Shaped:     result.Shaped,
		Pose:       state.Pose,
		Velocity:   state.Velocity,
		Clamped:    result.Clamped,
	}
	s.mu.Unlock()

	for i := 0; i < base.NumWheels; i++ {
		id := WheelId(i)
		s.wheels.Upsert(id, WheelStatus{}, func(exist bool, current WheelStatus, _ WheelStatus) WheelStatus {
			current.Id = id
			current.PivotAngle = state.PivotAngles[i]
			current.PivotVelocity = state.PivotVelocities[i]
			current.LinearOffset = result.Offsets[i].Linear
			current.AngularOffset = result.Offsets[i].Angular
			current.AlignmentActive = result.Signals[i].Active
			current.FeedForward = result.FeedForward[i]
			current.RightTorque = result.Torques[base.RightIndex(i)]
			current.LeftTorque = result.Torques[base.LeftIndex(i)]
			return current
		})
	}
}

func (s *Store) Loop() LoopSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loop
}

func (s *Store) Wheel(id string) (WheelStatus, bool) {
	return s.wheels.Get(id)
}

// Wheels returns all wheels ordered by their index
func (s *Store) Wheels() []WheelStatus {
	result := make([]WheelStatus, 0, base.NumWheels)
	for i := 0; i < base.NumWheels; i++ {
		if wheel, ok := s.wheels.Get(WheelId(i)); ok {
			result = append(result, wheel)
		}
	}
	return result
}

var _ controller.Observer = (*Store)(nil)
