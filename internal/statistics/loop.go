package statistics

import (
	"github.com/markusressel/base2go/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemLoop = "loop"

type LoopCollector struct {
	store *telemetry.Store

	iterations  *prometheus.Desc
	overruns    *prometheus.Desc
	timestep    *prometheus.Desc
	minTimestep *prometheus.Desc
	maxTimestep *prometheus.Desc
	avgTimestep *prometheus.Desc
	wrench      *prometheus.Desc
	clamped     *prometheus.Desc
}

func NewLoopCollector(store *telemetry.Store) *LoopCollector {
	return &LoopCollector{
		store: store,
		iterations: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "iterations"),
			"Number of finished control loop iterations",
			nil, nil,
		),
		overruns: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "overruns"),
			"Number of iterations that took longer than the loop period allows",
			nil, nil,
		),
		timestep: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "timestep_seconds"),
			"Duration of the last iteration",
			nil, nil,
		),
		minTimestep: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "timestep_min_seconds"),
			"Shortest iteration within the timing window",
			nil, nil,
		),
		maxTimestep: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "timestep_max_seconds"),
			"Longest iteration within the timing window",
			nil, nil,
		),
		avgTimestep: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "timestep_avg_seconds"),
			"Average iteration duration within the timing window",
			nil, nil,
		),
		wrench: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "wrench"),
			"Commanded and shaped wrench per axis",
			[]string{"stage", "axis"}, nil,
		),
		clamped: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLoop, "clamped_torques"),
			"Number of motor torques clamped to the torque limit in the last iteration",
			nil, nil,
		),
	}
}

func (collector *LoopCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.iterations
	ch <- collector.overruns
	ch <- collector.timestep
	ch <- collector.minTimestep
	ch <- collector.maxTimestep
	ch <- collector.avgTimestep
	ch <- collector.wrench
	ch <- collector.clamped
}

// Collect implements required collect function for all prometheus collectors
func (collector *LoopCollector) Collect(ch chan<- prometheus.Metric) {
	loop := collector.store.Loop()

	ch <- prometheus.MustNewConstMetric(collector.iterations, prometheus.CounterValue, float64(loop.Iteration))
	ch <- prometheus.MustNewConstMetric(collector.overruns, prometheus.CounterValue, float64(loop.Overruns))
	ch <- prometheus.MustNewConstMetric(collector.timestep, prometheus.GaugeValue, loop.Timestep)
	ch <- prometheus.MustNewConstMetric(collector.minTimestep, prometheus.GaugeValue, loop.MinTimestep)
	ch <- prometheus.MustNewConstMetric(collector.maxTimestep, prometheus.GaugeValue, loop.MaxTimestep)
	ch <- prometheus.MustNewConstMetric(collector.avgTimestep, prometheus.GaugeValue, loop.AvgTimestep)
	ch <- prometheus.MustNewConstMetric(collector.clamped, prometheus.GaugeValue, float64(loop.Clamped))

	for i, axis := range axisNames {
		ch <- prometheus.MustNewConstMetric(collector.wrench, prometheus.GaugeValue, loop.Command.Axis(i), "command", axis)
		ch <- prometheus.MustNewConstMetric(collector.wrench, prometheus.GaugeValue, loop.Shaped.Axis(i), "shaped", axis)
	}
}

var axisNames = []string{"x", "y", "yaw"}
