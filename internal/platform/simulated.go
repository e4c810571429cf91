package platform

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/golang/geo/r2"
	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/geometry"
	"github.com/markusressel/base2go/internal/util"
)

// SimulatedPlatform integrates a simple rigid body model of the base.
// Every call to ReadState advances the simulation by one period using the
// torques of the last SetTorques call.
type SimulatedPlatform struct {
	Config   configuration.SimulatedPlatformConfig
	geometry *geometry.BaseGeometry
	dt       float64

	mu        sync.Mutex
	connected bool
	pose      base.Pose2D
	velocity  base.Pose2D
	pivots    [base.NumWheels]float64
	// pivotRates caused by motor torques, excluding the trailing motion
	pivotRates [base.NumWheels]float64
	pivotSpeed [base.NumWheels]float64
	torques    base.Torques
}

func NewSimulatedPlatform(config configuration.SimulatedPlatformConfig, g *geometry.BaseGeometry, period time.Duration) *SimulatedPlatform {
	p := &SimulatedPlatform{
		Config:   config,
		geometry: g,
		dt:       period.Seconds(),
	}
	for i := 0; i < base.NumWheels && i < len(config.InitialPivotAngles); i++ {
		p.pivots[i] = util.NormalizeAngle(config.InitialPivotAngles[i])
	}
	return p
}

func (p *SimulatedPlatform) Name() string {
	return "simulated"
}

func (p *SimulatedPlatform) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.connected = true
	return nil
}

func (p *SimulatedPlatform) ReadState(state *base.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.step()

	state.Pose = p.pose
	state.Velocity = p.velocity
	state.PivotAngles = p.pivots
	state.PivotVelocities = p.pivotSpeed
	return nil
}

func (p *SimulatedPlatform) SetTorques(torques base.Torques) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.torques = torques
	return nil
}

func (p *SimulatedPlatform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.torques = base.Torques{}
	p.connected = false
	return nil
}

// Torques returns the torques currently applied to the simulation
func (p *SimulatedPlatform) Torques() base.Torques {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.torques
}

func (p *SimulatedPlatform) step() {
	dt := p.dt
	if dt <= 0 {
		return
	}
	cfg := p.Config
	g := p.geometry

	// platform dynamics in the platform frame
	wrench := g.Wrench(p.pivots, p.torques)
	ax := (wrench.ForceX-cfg.LinearDamping*p.velocity.X)/cfg.Mass + p.velocity.Yaw*p.velocity.Y
	ay := (wrench.ForceY-cfg.LinearDamping*p.velocity.Y)/cfg.Mass - p.velocity.Yaw*p.velocity.X
	alpha := (wrench.TorqueZ - cfg.AngularDamping*p.velocity.Yaw) / cfg.Inertia

	p.velocity.X += ax * dt
	p.velocity.Y += ay * dt
	p.velocity.Yaw += alpha * dt

	cos, sin := math.Cos(p.pose.Yaw), math.Sin(p.pose.Yaw)
	p.pose.X += (cos*p.velocity.X - sin*p.velocity.Y) * dt
	p.pose.Y += (sin*p.velocity.X + cos*p.velocity.Y) * dt
	p.pose.Yaw = util.NormalizeAngle(p.pose.Yaw + p.velocity.Yaw*dt)

	// caster dynamics: the differential torque turns the unit, the trailing
	// contact point drags it into the direction the pivot moves
	v := r2.Point{X: p.velocity.X, Y: p.velocity.Y}
	for i, wheel := range g.Wheels {
		moment := g.PivotMoment(p.torques[base.RightIndex(i)], p.torques[base.LeftIndex(i)])
		p.pivotRates[i] += (moment - cfg.PivotDamping*p.pivotRates[i]) / cfg.PivotInertia * dt

		pivotVelocity := v.Add(wheel.Position.Ortho().Mul(p.velocity.Yaw))
		trailing := geometry.LateralAxis(p.pivots[i]).Dot(pivotVelocity)/g.CastorOffset - p.velocity.Yaw

		p.pivotSpeed[i] = p.pivotRates[i] + trailing
		p.pivots[i] = util.NormalizeAngle(p.pivots[i] + p.pivotSpeed[i]*dt)
	}
}
