package control_loop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestImpedance(t *testing.T) {
	// GIVEN
	err := mat.NewVecDense(3, []float64{0.1, -0.2, 0.05})
	errDot := mat.NewVecDense(3, []float64{1, 0, -1})
	stiffness := mat.NewDiagDense(3, []float64{50, 50, 10})
	damping := mat.NewDiagDense(3, []float64{10, 10, 2})

	// WHEN
	result := Impedance(err, errDot, stiffness, damping)

	// THEN
	assert.InDelta(t, 15.0, result.AtVec(0), 1e-12)
	assert.InDelta(t, -10.0, result.AtVec(1), 1e-12)
	assert.InDelta(t, -1.5, result.AtVec(2), 1e-12)
}

func TestImpedance_ZeroError(t *testing.T) {
	// GIVEN
	zero := mat.NewVecDense(3, nil)
	stiffness := mat.NewDiagDense(3, []float64{50, 50, 10})
	damping := mat.NewDiagDense(3, []float64{10, 10, 2})

	// WHEN
	result := Impedance(zero, zero, stiffness, damping)

	// THEN
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, result.AtVec(i))
	}
}
