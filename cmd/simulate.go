package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/base2go/cmd/global"
	"github.com/markusressel/base2go/internal/base"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/controller"
	"github.com/markusressel/base2go/internal/geometry"
	"github.com/markusressel/base2go/internal/platform"
	"github.com/markusressel/base2go/internal/ui"
	"github.com/spf13/cobra"
)

var simulationIterations int

// trace collects the course of a simulation run
type trace struct {
	velocity [base.NumAxes][]float64
	pivots   [base.NumWheels][]float64
}

func (t *trace) Observe(status controller.LoopStatus, state *base.State, result *controller.Result) {
	for axis := 0; axis < base.NumAxes; axis++ {
		t.velocity[axis] = append(t.velocity[axis], state.Velocity.Axis(axis))
	}
	for i := 0; i < base.NumWheels; i++ {
		t.pivots[i] = append(t.pivots[i], state.PivotAngles[i])
	}
}

// validateIterations rejects counts the loop would treat as unlimited
func validateIterations(iterations int) error {
	if iterations <= 0 {
		return fmt.Errorf("iterations must be > 0, was: %d", iterations)
	}
	return nil
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the controller against the simulated platform",
	Long:  `Runs the control loop against the simulated platform as fast as possible and plots the platform velocity and the pivot angles`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateIterations(simulationIterations); err != nil {
			return err
		}
		global.LoadValidatedConfig()
		config := configuration.CurrentConfig

		pivots, err := parsePivots(pivotDegrees)
		if err != nil {
			return err
		}
		g, err := geometry.NewBaseGeometry(config.Geometry)
		if err != nil {
			return err
		}
		c, err := controller.NewBaseController(config.Controller, g, config.Command.Wrench())
		if err != nil {
			return err
		}

		simulatedConfig := configuration.DefaultSimulatedPlatform
		if config.Platform.Simulated != nil {
			simulatedConfig = *config.Platform.Simulated
		}
		if cmd.Flags().Changed("pivots") {
			simulatedConfig.InitialPivotAngles = pivots[:]
		}
		p := platform.NewSimulatedPlatform(simulatedConfig, g, config.Period())

		t := &trace{}
		params := controller.LoopParameters{
			Period:           config.Period(),
			WarmupIterations: config.WarmupIterations,
			MaxIterations:    simulationIterations,
			TimingWindowSize: config.TimingWindowSize,
		}
		clock := &controller.SteppingClock{Current: time.Now(), Step: config.Period()}
		loop := controller.NewLoop(p, c, controller.NewShutdownCoordinator(), clock, params, t)

		if err := p.Connect(context.Background()); err != nil {
			return err
		}
		if err := loop.Run(context.Background()); err != nil {
			return err
		}

		duration := time.Duration(simulationIterations) * config.Period()
		ui.Printfln(asciigraph.PlotMany(t.velocity[:],
			asciigraph.Height(15),
			asciigraph.Width(100),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
			asciigraph.Caption("Platform velocity x (red), y (green), yaw (blue) over "+duration.String()),
		))
		ui.Printfln("")
		ui.Printfln(asciigraph.PlotMany(t.pivots[:],
			asciigraph.Height(15),
			asciigraph.Width(100),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue, asciigraph.Yellow),
			asciigraph.Caption("Pivot angles of wheel 0 (red), 1 (green), 2 (blue), 3 (yellow) in rad"),
		))
		return nil
	},
}

func init() {
	addPivotFlag(simulateCmd)
	simulateCmd.Flags().IntVarP(&simulationIterations, "iterations", "n", 3000, "Number of control loop iterations to simulate")
	rootCmd.AddCommand(simulateCmd)
}
