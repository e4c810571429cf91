package solver

import (
	"errors"
	"math"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/geometry"
	"gonum.org/v1/gonum/mat"
)

const pseudoInverseRcond = 1e-12

// WeightedDistributor computes the minimum-norm torques realizing the wrench in
// closed form and superimposes the alignment signals, weighted by how much of
// the wrench is linear force and how much is yaw torque.
type WeightedDistributor struct {
	geometry *geometry.BaseGeometry
	rho      float64
}

func NewWeightedDistributor(g *geometry.BaseGeometry) *WeightedDistributor {
	return &WeightedDistributor{
		geometry: g,
		rho:      g.CharacteristicRadius(),
	}
}

func (d *WeightedDistributor) Name() string {
	return "weighted"
}

func (d *WeightedDistributor) Distribute(
	wrench base.Wrench,
	pivotAngles [base.NumWheels]float64,
	signals [base.NumWheels]base.AlignmentSignal,
) base.Torques {
	var result base.Torques
	if wrench.IsZero() {
		return result
	}

	j := d.geometry.Jacobian(pivotAngles)
	tau, err := minimumNormSolution(j, wrenchVector(wrench))
	if err == nil {
		copy(result[:], tau)
	}

	linearWeight, momentWeight := d.Weights(wrench)
	for i, signal := range signals {
		a := linearWeight*signal.Linear + momentWeight*signal.Angular
		applyDifferential(&result, i, a)
	}

	return result
}

// Weights returns the share of the linear force and the yaw torque in the given wrench.
// Both are zero for a zero wrench.
func (d *WeightedDistributor) Weights(wrench base.Wrench) (linear float64, moment float64) {
	force := wrench.Force()
	torque := math.Abs(wrench.TorqueZ)
	if d.rho > 0 {
		torque /= d.rho
	}
	total := force + torque
	if total <= 0 {
		return 0, 0
	}
	linear = force / total
	return linear, 1 - linear
}

func wrenchVector(wrench base.Wrench) *mat.VecDense {
	return mat.NewVecDense(base.NumAxes, []float64{wrench.ForceX, wrench.ForceY, wrench.TorqueZ})
}

// minimumNormSolution solves j*x = w with the smallest |x| using x = j^T (j j^T)^-1 w.
// A singular j j^T falls back to the SVD based pseudo-inverse.
func minimumNormSolution(j *mat.Dense, w *mat.VecDense) ([]float64, error) {
	_, cols := j.Dims()

	var jjt mat.Dense
	jjt.Mul(j, j.T())

	var lambda mat.VecDense
	if err := lambda.SolveVec(&jjt, w); err == nil {
		x := mat.NewVecDense(cols, nil)
		x.MulVec(j.T(), &lambda)
		return x.RawVector().Data, nil
	}

	var svd mat.SVD
	if !svd.Factorize(j, mat.SVDThin) {
		return nil, errors.New("svd factorization failed")
	}
	rank := svd.Rank(pseudoInverseRcond)
	if rank == 0 {
		return make([]float64, cols), nil
	}
	x := mat.NewVecDense(cols, nil)
	svd.SolveVecTo(x, w, rank)
	return x.RawVector().Data, nil
}
