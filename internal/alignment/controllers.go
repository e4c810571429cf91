package alignment

import (
	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/control_loop"
)

// Controllers holds a linear and an angular PID accumulator per wheel
type Controllers struct {
	// Margin is the offset magnitude below which a wheel counts as aligned
	Margin float64

	Linear  [base.NumWheels]*control_loop.PidAccumulator
	Angular [base.NumWheels]*control_loop.PidAccumulator
}

func NewControllers(margin float64, linear, angular control_loop.PidGains) *Controllers {
	c := &Controllers{
		Margin: margin,
	}
	for i := 0; i < base.NumWheels; i++ {
		c.Linear[i] = control_loop.NewPidAccumulator(linear)
		c.Angular[i] = control_loop.NewPidAccumulator(angular)
	}
	return c
}

// Update runs the controllers of every misaligned wheel. Aligned wheels produce
// a zero signal and their accumulators are left untouched.
func (c *Controllers) Update(offsets [base.NumWheels]base.AlignmentOffset, dt float64) [base.NumWheels]base.AlignmentSignal {
	var result [base.NumWheels]base.AlignmentSignal
	for i, offset := range offsets {
		if offset.Magnitude() <= c.Margin {
			continue
		}
		result[i] = base.AlignmentSignal{
			Linear:  c.Linear[i].Update(offset.Linear, dt),
			Angular: c.Angular[i].Update(offset.Angular, dt),
			Active:  true,
		}
	}
	return result
}
