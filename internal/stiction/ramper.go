package stiction

import (
	"math"

	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/util"
)

// Ramper builds up a feed-forward torque on casters that should turn but
// are stuck, and releases it again once they move.
type Ramper struct {
	config configuration.StictionConfig

	// Values holds the current (unsigned) feed-forward per wheel, always within [0, cap]
	Values [base.NumWheels]float64
}

func NewRamper(config configuration.StictionConfig) *Ramper {
	return &Ramper{
		config: config,
	}
}

// Update advances the ramp of every wheel by one step
func (r *Ramper) Update(pivotVelocities [base.NumWheels]float64, signals [base.NumWheels]base.AlignmentSignal) {
	for i := range r.Values {
		correcting := signals[i].Linear != 0 || signals[i].Angular != 0
		if correcting && math.Abs(pivotVelocities[i]) < r.config.VelocityThreshold {
			r.Values[i] = math.Min(r.Values[i]+r.config.RampStep, r.config.Cap)
		} else {
			r.Values[i] = math.Max(r.Values[i]-r.config.RampStep, 0)
		}
	}
}

// Apply adds the signed feed-forward to both motors of every wheel. The sign
// follows the combined alignment offset of the wheel.
func (r *Ramper) Apply(torques *base.Torques, offsets [base.NumWheels]base.AlignmentOffset) {
	for i, value := range r.Values {
		bias := util.Sign(offsets[i].Linear+offsets[i].Angular) * value
		torques[base.RightIndex(i)] += bias
		torques[base.LeftIndex(i)] += bias
	}
}
