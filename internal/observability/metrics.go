// Package observability bundles Prometheus metrics for a running
// inspection mission.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MissionCollector holds the mission-level Prometheus metrics and
// provides a handler to serve them.
type MissionCollector struct {
	gatherer prometheus.Gatherer

	Battery       prometheus.Gauge
	WaypointIndex prometheus.Gauge
	Ticks         prometheus.Counter
	Anomalies     *prometheus.CounterVec
	Alerts        prometheus.Counter
	FramesSkipped prometheus.Counter
}

// NewMissionCollector registers mission metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewMissionCollector(reg prometheus.Registerer) (*MissionCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &MissionCollector{
		gatherer: gatherer,
		Battery: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mission_battery_percent",
			Help: "Current drone battery level in percent.",
		}),
		WaypointIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mission_waypoint_index",
			Help: "Index of the waypoint the drone is flying toward.",
		}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mission_ticks_total",
			Help: "Total number of processed simulation ticks.",
		}),
		Anomalies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mission_anomalies_total",
			Help: "Total detected anomalies, labeled by type and severity.",
		}, []string{"type", "severity"}),
		Alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mission_alerts_total",
			Help: "Total critical-severity alerts fired.",
		}),
		FramesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mission_frames_skipped_total",
			Help: "Ticks where detection was skipped because no frame was available.",
		}),
	}

	for _, col := range []prometheus.Collector{
		c.Battery, c.WaypointIndex, c.Ticks, c.Anomalies, c.Alerts, c.FramesSkipped,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Handler serves the collector's registry in Prometheus text format.
func (c *MissionCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
