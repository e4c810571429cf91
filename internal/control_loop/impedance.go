package control_loop

import "gonum.org/v1/gonum/mat"

// Impedance computes stiffness*err + damping*errDot for diagonal stiffness and damping matrices
func Impedance(err, errDot mat.Vector, stiffness, damping *mat.DiagDense) *mat.VecDense {
	result := mat.NewVecDense(err.Len(), nil)
	var dampingTerm mat.VecDense
	result.MulVec(stiffness, err)
	dampingTerm.MulVec(damping, errDot)
	result.AddVec(result, &dampingTerm)
	return result
}
