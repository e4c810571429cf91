package stiction

import (
	"math"
	"math/rand"
	"testing"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/stretchr/testify/assert"
)

const (
	rampStep = 0.01
	rampCap  = 0.3
)

func createRamper() *Ramper {
	return NewRamper(configuration.StictionConfig{
		Enabled:           true,
		VelocityThreshold: 0.05,
		RampStep:          rampStep,
		Cap:               rampCap,
	})
}

func TestRamper_RampsUpMonotonicAndBounded(t *testing.T) {
	// GIVEN
	ramper := createRamper()
	signals := [base.NumWheels]base.AlignmentSignal{
		{Linear: 0.5, Active: true},
		{Angular: -0.2, Active: true},
		{Linear: 0.1, Angular: 0.1, Active: true},
		{Linear: 1, Active: true},
	}
	stuck := [base.NumWheels]float64{0, 0.01, -0.04, 0}

	previous := ramper.Values
	for i := 0; i < 100; i++ {
		// WHEN
		ramper.Update(stuck, signals)

		// THEN
		for wheel, value := range ramper.Values {
			assert.GreaterOrEqual(t, value, previous[wheel])
			assert.GreaterOrEqual(t, value, 0.0)
			assert.LessOrEqual(t, value, 0.3)
		}
		previous = ramper.Values
	}
	for _, value := range ramper.Values {
		assert.Equal(t, 0.3, value)
	}
}

func TestRamper_RampsDownWhenMoving(t *testing.T) {
	// GIVEN
	ramper := createRamper()
	ramper.Values = [base.NumWheels]float64{0.3, 0.3, 0.005, 0}
	signals := [base.NumWheels]base.AlignmentSignal{
		{Linear: 0.5, Active: true},
		{},
		{Linear: 0.5, Active: true},
		{Linear: 0.5, Active: true},
	}
	moving := [base.NumWheels]float64{0.5, 0, -0.5, 1}

	// WHEN
	ramper.Update(moving, signals)

	// THEN
	assert.InDelta(t, 0.29, ramper.Values[0], 1e-12)
	// no correction requested
	assert.InDelta(t, 0.29, ramper.Values[1], 1e-12)
	assert.Equal(t, 0.0, ramper.Values[2])
	assert.Equal(t, 0.0, ramper.Values[3])
}

func TestRamper_Apply(t *testing.T) {
	// GIVEN
	ramper := createRamper()
	ramper.Values = [base.NumWheels]float64{0.1, 0.2, 0.3, 0}
	offsets := [base.NumWheels]base.AlignmentOffset{
		{Linear: 0.002},
		{Linear: -0.001, Angular: -0.001},
		{},
		{Linear: 1},
	}
	torques := base.Torques{1, 1, 1, 1, 1, 1, 1, 1}

	// WHEN
	ramper.Apply(&torques, offsets)

	// THEN
	assert.Equal(t, base.Torques{1.1, 1.1, 0.8, 0.8, 1, 1, 1, 1}, torques)
}

func TestRamper_MixedSequenceStaysBounded(t *testing.T) {
	// GIVEN
	ramper := createRamper()
	random := rand.New(rand.NewSource(42))

	for step := 0; step < 2000; step++ {
		var velocities [base.NumWheels]float64
		var signals [base.NumWheels]base.AlignmentSignal
		for i := range velocities {
			velocities[i] = (random.Float64() - 0.5) * 0.2
			switch random.Intn(3) {
			case 0:
				signals[i] = base.AlignmentSignal{Linear: 1, Active: true}
			case 1:
				signals[i] = base.AlignmentSignal{Angular: -1, Active: true}
			}
		}
		previous := ramper.Values

		// WHEN
		ramper.Update(velocities, signals)

		// THEN
		for i, value := range ramper.Values {
			assert.LessOrEqual(t, math.Abs(value-previous[i]), rampStep+1e-12, "step %d wheel %d", step, i)
			assert.GreaterOrEqual(t, value, 0.0, "step %d wheel %d", step, i)
			assert.LessOrEqual(t, value, rampCap, "step %d wheel %d", step, i)
		}
	}
}
