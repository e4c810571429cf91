package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/base2go/internal/api"
	"github.com/markusressel/base2go/internal/configuration"
	"github.com/markusressel/base2go/internal/controller"
	"github.com/markusressel/base2go/internal/geometry"
	"github.com/markusressel/base2go/internal/persistence"
	"github.com/markusressel/base2go/internal/platform"
	"github.com/markusressel/base2go/internal/statistics"
	"github.com/markusressel/base2go/internal/telemetry"
	"github.com/markusressel/base2go/internal/ui"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// telemetryRate is the rate in Hz at which the telemetry store is updated
const telemetryRate = 50

func RunDaemon() {
	os.Exit(exitCode(Run(context.Background(), configuration.CurrentConfig)))
}

// exitCode reports the outcome of a run and maps it to the process exit code
func exitCode(err error) int {
	if err != nil {
		ui.Error("%v", err)
		return 1
	}
	ui.Info("Done.")
	return 0
}

// Run drives the base until the control loop stops, either because of a
// termination signal, the configured iteration limit or ctx being canceled.
func Run(ctx context.Context, config configuration.Configuration) error {
	baseGeometry, err := geometry.NewBaseGeometry(config.Geometry)
	if err != nil {
		return errors.Wrap(err, "invalid geometry")
	}
	baseController, err := controller.NewBaseController(config.Controller, baseGeometry, config.Command.Wrench())
	if err != nil {
		return errors.Wrap(err, "invalid controller configuration")
	}
	p, err := platform.NewPlatform(config.Platform, baseGeometry, config.Period())
	if err != nil {
		return err
	}

	store := telemetry.NewStore(baseGeometry, config.Frequency/telemetryRate)
	observers := []controller.Observer{store}

	var recorder *persistence.Recorder
	if config.Recorder.Enabled {
		recorder = persistence.NewRecorder(config.Recorder.SampleEvery, config.Recorder.MaxSamples, baseController.Command(), time.Now())
		observers = append(observers, recorder)
	}

	shutdown := controller.NewShutdownCoordinator()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			statistics.Register(statistics.NewLoopCollector(store))
			statistics.Register(statistics.NewWheelCollector(store))

			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			addServer(&g, "statistics", api.CreateMetricsServer(), fmt.Sprintf(":%d", port))
		}
	}
	{
		if config.Api.Enabled {
			// === REST api
			rest := api.CreateRestService(store, prometheus.DefaultRegisterer)
			addServer(&g, "api", rest, fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port))
		}
	}
	{
		// === control loop
		params := controller.LoopParameters{
			Period:           config.Period(),
			WarmupIterations: config.WarmupIterations,
			MaxIterations:    config.MaxIterations,
			LogEvery:         config.LogEvery,
			TimingWindowSize: config.TimingWindowSize,
		}

		g.Add(func() error {
			if err := p.Connect(ctx); err != nil {
				return errors.Wrapf(err, "connecting to platform %s failed", p.Name())
			}

			loop := controller.NewLoop(p, baseController, shutdown, controller.SystemClock, params, observers...)
			ui.Info("Starting control loop at %d Hz using the %s solver on platform %s", config.Frequency, baseController.Distributor().Name(), p.Name())
			err := loop.Run(ctx)

			status := loop.Status()
			ui.Info("Control loop stopped after %d iterations (%d overruns, avg timestep %.6fs)", status.Iteration, status.Overruns, status.AvgTimestep)

			if recorder != nil {
				saveRecording(config.DbPath, recorder.Finish(shutdown.Reason(), time.Now()))
			}
			return err
		}, func(err error) {
			shutdown.Interrupt()
		})
	}
	{
		// === termination signals
		g.Add(func() error {
			return shutdown.Listen(ctx)
		}, func(err error) {
			cancel()
		})
	}

	return g.Run()
}

func addServer(g *run.Group, name string, server *echo.Echo, addr string) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "cannot start %s server", name)
		}
		return nil
	}, func(err error) {
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		} else {
			ui.Info("Stopped %s server.", name)
		}
	})
}

func saveRecording(dbPath string, recording *persistence.Run) {
	pers := persistence.NewPersistence(dbPath)
	if err := pers.Init(); err != nil {
		ui.Error("Unable to prepare database %s: %v", dbPath, err)
		return
	}
	if err := pers.SaveRun(recording); err != nil {
		ui.Error("Unable to save recording %s: %v", recording.Id, err)
		return
	}
	ui.Info("Saved recording %s with %d samples", recording.Id, len(recording.Samples))
}
