package control_loop

import (
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/util"
)

// PidGains of a PidAccumulator
type PidGains struct {
	P float64
	I float64
	D float64
	// Clamp bounds the output symmetrically, 0 disables it
	Clamp float64
	// IntegralLimit bounds the error sum symmetrically, 0 disables it
	IntegralLimit float64
}

func PidGainsFromConfig(config configuration.PidConfig) PidGains {
	return PidGains{
		P:             config.P,
		I:             config.I,
		D:             config.D,
		Clamp:         config.Clamp,
		IntegralLimit: config.IntegralLimit,
	}
}

// PidAccumulator is a discrete PID controller driven by an externally measured timestep.
// The error sum grows without bound unless IntegralLimit is set.
type PidAccumulator struct {
	Gains PidGains

	PreviousError float64
	ErrorSum      float64
}

var _ ControlLoop = (*PidAccumulator)(nil)

func NewPidAccumulator(gains PidGains) *PidAccumulator {
	return &PidAccumulator{
		Gains: gains,
	}
}

// Update computes the next output. dt must be > 0.
func (p *PidAccumulator) Update(err float64, dt float64) float64 {
	p.ErrorSum += err * dt
	if p.Gains.IntegralLimit > 0 {
		p.ErrorSum = util.CoerceSymmetric(p.ErrorSum, p.Gains.IntegralLimit)
	}

	proportionalTerm := p.Gains.P * err
	integralTerm := p.Gains.I * p.ErrorSum
	derivativeTerm := p.Gains.D * (err - p.PreviousError) / dt

	p.PreviousError = err

	return util.CoerceSymmetric(proportionalTerm+integralTerm+derivativeTerm, p.Gains.Clamp)
}

func (p *PidAccumulator) Reset() {
	p.PreviousError = 0
	p.ErrorSum = 0
}
