package controller

import (
	"github.com/markusressel/base2go/internal/alignment"
	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/control_loop"
	"github.com/markusressel/base2go/internal/geometry"
	"github.com/markusressel/base2go/internal/shaper"
	"github.com/markusressel/base2go/internal/solver"
	"github.com/markusressel/base2go/internal/stiction"
)

// Result of a single controller step
type Result struct {
	Command     base.Wrench                          `json:"command"`
	Shaped      base.Wrench                          `json:"shaped"`
	Offsets     [base.NumWheels]base.AlignmentOffset `json:"offsets"`
	Signals     [base.NumWheels]base.AlignmentSignal `json:"signals"`
	FeedForward [base.NumWheels]float64              `json:"feedForward"`
	Shaper      [base.NumAxes]shaper.AxisStatus      `json:"shaper"`
	Torques     base.Torques                         `json:"torques"`
	Clamped     int                                  `json:"clamped"`
}

// BaseController turns the commanded wrench and the measured state into motor torques
type BaseController struct {
	geometry *geometry.BaseGeometry
	command  base.Wrench

	poseHold    *PoseHold
	shaper      *shaper.ForceShaper
	offsets     *alignment.OffsetComputer
	alignment   *alignment.Controllers
	distributor solver.Distributor
	stiction    *stiction.Ramper

	torqueLimit float64
}

func NewBaseController(config configuration.ControllerConfig, g *geometry.BaseGeometry, command base.Wrench) (*BaseController, error) {
	distributor, err := solver.NewDistributor(config, g)
	if err != nil {
		return nil, err
	}

	c := &BaseController{
		geometry:    g,
		command:     command,
		shaper:      shaper.NewForceShaper(config.Shaper),
		offsets:     alignment.NewOffsetComputer(g, config.Alignment.Epsilon),
		alignment:   alignment.NewControllers(config.Alignment.Margin, control_loop.PidGainsFromConfig(config.Alignment.Linear), control_loop.PidGainsFromConfig(config.Alignment.Angular)),
		distributor: distributor,
		torqueLimit: config.TorqueLimit,
	}
	if config.PoseHold.Enabled {
		c.poseHold = NewPoseHold(config.PoseHold)
	}
	if config.Stiction.Enabled {
		c.stiction = stiction.NewRamper(config.Stiction)
	}
	return c, nil
}

func (c *BaseController) Command() base.Wrench {
	return c.command
}

func (c *BaseController) Distributor() solver.Distributor {
	return c.distributor
}

// Step runs the full pipeline once. dt is the duration of the previous iteration in seconds.
func (c *BaseController) Step(state *base.State, dt float64) Result {
	result := Result{
		Command: c.command,
	}
	if c.poseHold != nil {
		result.Command = result.Command.Add(c.poseHold.Wrench(state.Pose, state.Velocity))
	}

	result.Shaped = c.shaper.Shape(result.Command, state.Velocity, dt)
	result.Shaper = c.shaper.Status

	result.Offsets = c.offsets.Compute(result.Shaped, state.PivotAngles)
	result.Signals = c.alignment.Update(result.Offsets, dt)

	result.Torques = c.distributor.Distribute(result.Shaped, state.PivotAngles, result.Signals)

	if c.stiction != nil {
		c.stiction.Update(state.PivotVelocities, result.Signals)
		c.stiction.Apply(&result.Torques, result.Offsets)
		result.FeedForward = c.stiction.Values
	}

	result.Clamped = ClampTorques(&result.Torques, c.torqueLimit)
	return result
}
