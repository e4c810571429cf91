package statistics

import (
	"github.com/markusressel/base2go/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemWheel = "wheel"

type WheelCollector struct {
	store *telemetry.Store

	pivotAngle    *prometheus.Desc
	pivotVelocity *prometheus.Desc
	offset        *prometheus.Desc
	alignment     *prometheus.Desc
	feedForward   *prometheus.Desc
	torque        *prometheus.Desc
}

func NewWheelCollector(store *telemetry.Store) *WheelCollector {
	return &WheelCollector{
		store: store,
		pivotAngle: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemWheel, "pivot_angle_radians"),
			"Calibrated pivot angle of the caster",
			[]string{"id"}, nil,
		),
		pivotVelocity: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemWheel, "pivot_velocity_radians_per_second"),
			"Pivot angular velocity of the caster",
			[]string{"id"}, nil,
		),
		offset: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemWheel, "alignment_offset_meters"),
			"Misalignment of the caster relative to the force and torque direction",
			[]string{"id", "kind"}, nil,
		),
		alignment: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemWheel, "alignment_active"),
			"1 if the alignment controllers of the caster are running",
			[]string{"id"}, nil,
		),
		feedForward: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemWheel, "stiction_feed_forward"),
			"Stiction compensation torque added to both motors",
			[]string{"id"}, nil,
		),
		torque: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemWheel, "torque"),
			"Torque sent to the motor",
			[]string{"id", "motor"}, nil,
		),
	}
}

func (collector *WheelCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.pivotAngle
	ch <- collector.pivotVelocity
	ch <- collector.offset
	ch <- collector.alignment
	ch <- collector.feedForward
	ch <- collector.torque
}

// Collect implements required collect function for all prometheus collectors
func (collector *WheelCollector) Collect(ch chan<- prometheus.Metric) {
	for _, wheel := range collector.store.Wheels() {
		id := wheel.Id
		active := 0.0
		if wheel.AlignmentActive {
			active = 1
		}
		ch <- prometheus.MustNewConstMetric(collector.pivotAngle, prometheus.GaugeValue, wheel.PivotAngle, id)
		ch <- prometheus.MustNewConstMetric(collector.pivotVelocity, prometheus.GaugeValue, wheel.PivotVelocity, id)
		ch <- prometheus.MustNewConstMetric(collector.offset, prometheus.GaugeValue, wheel.LinearOffset, id, "linear")
		ch <- prometheus.MustNewConstMetric(collector.offset, prometheus.GaugeValue, wheel.AngularOffset, id, "angular")
		ch <- prometheus.MustNewConstMetric(collector.alignment, prometheus.GaugeValue, active, id)
		ch <- prometheus.MustNewConstMetric(collector.feedForward, prometheus.GaugeValue, wheel.FeedForward, id)
		ch <- prometheus.MustNewConstMetric(collector.torque, prometheus.GaugeValue, wheel.RightTorque, id, "right")
		ch <- prometheus.MustNewConstMetric(collector.torque, prometheus.GaugeValue, wheel.LeftTorque, id, "left")
	}
}
