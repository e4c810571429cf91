package solver

import (
	"math"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/geometry"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// CglsDistributor solves the stacked least squares problem of realizing the
// wrench and every active alignment signal with conjugate gradients on the
// normal equations. Starting at zero yields the minimum-norm solution.
type CglsDistributor struct {
	geometry      *geometry.BaseGeometry
	maxIterations int
	tolerance     float64

	// Iterations used by the last call
	Iterations int
	// Residual norm |A^T r| after the last call
	Residual float64
}

func NewCglsDistributor(g *geometry.BaseGeometry, maxIterations int, tolerance float64) *CglsDistributor {
	return &CglsDistributor{
		geometry:      g,
		maxIterations: maxIterations,
		tolerance:     tolerance,
	}
}

func (d *CglsDistributor) Name() string {
	return "cgls"
}

func (d *CglsDistributor) Distribute(
	wrench base.Wrench,
	pivotAngles [base.NumWheels]float64,
	signals [base.NumWheels]base.AlignmentSignal,
) base.Torques {
	a, b := d.buildSystem(wrench, pivotAngles, signals)

	x := d.solve(a, b)

	var result base.Torques
	copy(result[:], x)
	return result
}

// buildSystem stacks the jacobian rows with one row (tau_R - tau_L) / 2 = signal per active wheel
func (d *CglsDistributor) buildSystem(
	wrench base.Wrench,
	pivotAngles [base.NumWheels]float64,
	signals [base.NumWheels]base.AlignmentSignal,
) (*mat.Dense, []float64) {
	active := 0
	for _, signal := range signals {
		if signal.Active {
			active++
		}
	}

	rows := base.NumAxes + active
	a := mat.NewDense(rows, base.NumMotors, nil)
	a.Slice(0, base.NumAxes, 0, base.NumMotors).(*mat.Dense).Copy(d.geometry.Jacobian(pivotAngles))

	b := make([]float64, rows)
	b[0], b[1], b[2] = wrench.ForceX, wrench.ForceY, wrench.TorqueZ

	row := base.NumAxes
	for i, signal := range signals {
		if !signal.Active {
			continue
		}
		a.Set(row, base.RightIndex(i), 0.5)
		a.Set(row, base.LeftIndex(i), -0.5)
		b[row] = signal.Linear + signal.Angular
		row++
	}
	return a, b
}

func (d *CglsDistributor) solve(a *mat.Dense, b []float64) []float64 {
	rows, cols := a.Dims()

	x := make([]float64, cols)
	r := make([]float64, rows)
	copy(r, b)

	s := mat.NewVecDense(cols, nil)
	s.MulVec(a.T(), mat.NewVecDense(rows, r))
	p := make([]float64, cols)
	copy(p, s.RawVector().Data)
	gamma := floats.Dot(s.RawVector().Data, s.RawVector().Data)

	d.Iterations = 0
	d.Residual = math.Sqrt(gamma)
	if gamma == 0 {
		return x
	}

	q := mat.NewVecDense(rows, nil)
	for d.Iterations < d.maxIterations {
		d.Iterations++

		q.MulVec(a, mat.NewVecDense(cols, p))
		delta := floats.Dot(q.RawVector().Data, q.RawVector().Data)
		if delta == 0 {
			break
		}
		alpha := gamma / delta

		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q.RawVector().Data)

		s.MulVec(a.T(), mat.NewVecDense(rows, r))
		gammaNext := floats.Dot(s.RawVector().Data, s.RawVector().Data)
		d.Residual = math.Sqrt(gammaNext)
		if d.Residual <= d.tolerance {
			break
		}

		beta := gammaNext / gamma
		// p = s + beta * p
		floats.Scale(beta, p)
		floats.Add(p, s.RawVector().Data)
		gamma = gammaNext
	}

	return x
}
