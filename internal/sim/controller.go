// Mission controller driving the per-tick simulation protocol
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"droneinspect-sim/internal/config"
	"droneinspect-sim/internal/detect"
	"droneinspect-sim/internal/drone"
	"droneinspect-sim/internal/logging"
	"droneinspect-sim/internal/observability"
	"droneinspect-sim/internal/telemetry"

	"github.com/google/uuid"
)

// Controller drives the tick loop: it advances the drone, invokes the
// detector, folds results into running statistics, evaluates the alert
// rule, and publishes immutable snapshots. Only the controller mutates
// the authoritative state, always from within a tick.
type Controller struct {
	missionID string
	droneID   string

	drone    *drone.Simulator
	detector *detect.Detector
	frames   detect.FrameSource

	writer        TelemetryWriter
	anomalyWriter AnomalyWriter
	alertWriter   AlertWriter
	metrics       *observability.MissionCollector

	tickInterval time.Duration
	dt           float64

	tick      int
	anomalies []detect.Anomaly
	stats     MissionStats
	alerted   map[string]struct{}
	done      bool
	published Snapshot

	now func() time.Time
	mu  sync.Mutex
}

// NewController arms the drone with the configured route and wires the
// detector and frame source from the seeded RNG streams. Route
// validation failures surface synchronously; the mission never begins.
func NewController(cfg *config.Config, writer TelemetryWriter, anomalyWriter AnomalyWriter, alertWriter AlertWriter, metrics *observability.MissionCollector, tickInterval time.Duration, dt float64) (*Controller, error) {
	detCfg, err := cfg.DetectorConfig()
	if err != nil {
		return nil, err
	}

	d := drone.NewSimulator(cfg.DroneConfig())
	if err := d.Start(cfg.Waypoints()); err != nil {
		return nil, fmt.Errorf("mission %s: %w", cfg.MissionID, err)
	}

	// Detector and frame source get separate streams derived from the
	// configured seed, so frame dropouts never shift detection draws
	// between runs with differing dropout settings.
	c := &Controller{
		missionID:     cfg.MissionID,
		droneID:       inspectorID(cfg.MissionID),
		drone:         d,
		detector:      detect.NewDetector(detCfg, rand.New(rand.NewSource(cfg.RNGSeed))),
		frames:        detect.NewSyntheticFrameSource(rand.New(rand.NewSource(cfg.RNGSeed+1)), cfg.FrameDropout),
		writer:        writer,
		anomalyWriter: anomalyWriter,
		alertWriter:   alertWriter,
		metrics:       metrics,
		tickInterval:  tickInterval,
		dt:            dt,
		stats:         newMissionStats(),
		alerted:       make(map[string]struct{}),
		now:           time.Now,
	}
	c.mu.Lock()
	c.publishLocked()
	c.mu.Unlock()
	return c, nil
}

// inspectorID derives a stable drone identity from the mission ID.
func inspectorID(missionID string) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("inspector/"+missionID))
	return "inspector-" + id.String()
}

// Run processes ticks at the configured interval until the mission
// reaches a terminal state or the context is canceled.
func (c *Controller) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting mission controller", "mission_id", c.missionID, "tick_interval", c.tickInterval)
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.step(ctx)
			if c.Done() {
				log.Info("mission complete, stopping ticks", "mission_id", c.missionID)
				return
			}
		case <-ctx.Done():
			log.Info("stopping mission controller", "mission_id", c.missionID)
			return
		}
	}
}

// step is one logical tick. No tick is processed after completion.
func (c *Controller) step(ctx context.Context) {
	log := logging.FromContext(ctx)

	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}

	st := c.drone.Advance(c.dt)
	c.tick++
	c.stats.Ticks = c.tick
	c.stats.BatteryHistory = append(c.stats.BatteryHistory, st.Battery)

	var newAnomalies []detect.Anomaly
	var newAlerts []Alert
	if st.Status.Terminal() {
		c.done = true
		c.stats.MissionComplete = true
		log.Info("mission finished",
			"status", st.Status,
			"waypoint_index", st.WaypointIndex,
			"battery", st.Battery,
			"anomalies", len(c.anomalies))
	} else if frame, ok := c.frames.Frame(c.tick); !ok {
		c.stats.FramesSkipped++
		if c.metrics != nil {
			c.metrics.FramesSkipped.Inc()
		}
		log.Warn("frame unavailable, skipping detection", "tick", c.tick)
	} else {
		newAnomalies = c.detector.Detect(st.Position, frame, c.tick)
		for _, a := range newAnomalies {
			c.anomalies = append(c.anomalies, a)
			c.stats.ByType[a.Type]++
			c.stats.BySeverity[a.Severity]++
			if c.metrics != nil {
				c.metrics.Anomalies.WithLabelValues(string(a.Type), string(a.Severity)).Inc()
			}
			if a.Severity == detect.SeverityCritical {
				if alert, fired := c.fireAlertLocked(a, st.WaypointIndex); fired {
					newAlerts = append(newAlerts, alert)
				}
			}
		}
	}

	if c.metrics != nil {
		c.metrics.Ticks.Inc()
		c.metrics.Battery.Set(st.Battery)
		c.metrics.WaypointIndex.Set(float64(st.WaypointIndex))
	}

	c.publishLocked()
	tick := c.tick
	c.mu.Unlock()

	// Sinks are written outside the lock so a slow writer never blocks
	// concurrent Snapshot polls.
	c.writeRows(ctx, st, tick, newAnomalies, newAlerts)
}

// fireAlertLocked fires at most one alert per underlying condition. The
// condition is keyed by anomaly type within the current route segment,
// so redetections of the same condition across ticks do not re-fire.
func (c *Controller) fireAlertLocked(a detect.Anomaly, waypointIndex int) (Alert, bool) {
	key := string(a.Type) + "#" + strconv.Itoa(waypointIndex)
	if _, seen := c.alerted[key]; seen {
		return Alert{}, false
	}
	c.alerted[key] = struct{}{}

	alert := Alert{
		AnomalyID:     a.ID,
		Type:          a.Type,
		Severity:      a.Severity,
		WaypointIndex: waypointIndex,
		Tick:          a.Tick,
	}
	c.stats.Alerts = append(c.stats.Alerts, alert)
	if c.metrics != nil {
		c.metrics.Alerts.Inc()
	}
	return alert, true
}

// publishLocked replaces the published snapshot with fresh copies of
// all mutable state (copy-on-publish).
func (c *Controller) publishLocked() {
	c.published = Snapshot{
		MissionID:  c.missionID,
		DroneID:    c.droneID,
		Drone:      c.drone.State(),
		Route:      c.drone.Route().Waypoints(),
		FlightPath: c.drone.FlightPath(),
		Anomalies:  append([]detect.Anomaly(nil), c.anomalies...),
		Stats:      c.stats.clone(),
	}
}

func (c *Controller) writeRows(ctx context.Context, st drone.State, tick int, anomalies []detect.Anomaly, alerts []Alert) {
	log := logging.FromContext(ctx)
	now := c.now().UTC()

	row := telemetry.TelemetryRow{
		MissionID:     c.missionID,
		DroneID:       c.droneID,
		X:             st.Position.X,
		Y:             st.Position.Y,
		Z:             st.Position.Z,
		Battery:       st.Battery,
		Status:        string(st.Status),
		WaypointIndex: st.WaypointIndex,
		Tick:          tick,
		Timestamp:     now,
	}
	if err := c.writer.Write(row); err != nil {
		log.Error("telemetry write failed", "drone_id", c.droneID, "err", err)
	}

	if len(anomalies) > 0 && c.anomalyWriter != nil {
		rows := make([]telemetry.AnomalyRow, len(anomalies))
		for i, a := range anomalies {
			rows[i] = telemetry.AnomalyRow{
				MissionID:  c.missionID,
				DroneID:    c.droneID,
				AnomalyID:  a.ID,
				Type:       string(a.Type),
				Confidence: a.Confidence,
				Severity:   string(a.Severity),
				X:          a.Position.X,
				Y:          a.Position.Y,
				Z:          a.Position.Z,
				Tick:       a.Tick,
				Timestamp:  now,
			}
		}
		if bw, ok := c.anomalyWriter.(batchAnomalyWriter); ok {
			if err := bw.WriteAnomalies(rows); err != nil {
				log.Error("anomaly batch write failed", "err", err)
			}
		} else {
			for _, r := range rows {
				if err := c.anomalyWriter.WriteAnomaly(r); err != nil {
					log.Error("anomaly write failed", "anomaly_id", r.AnomalyID, "err", err)
				}
			}
		}
	}

	if len(alerts) > 0 && c.alertWriter != nil {
		for _, al := range alerts {
			r := telemetry.AlertRow{
				MissionID:     c.missionID,
				DroneID:       c.droneID,
				AnomalyID:     al.AnomalyID,
				Type:          string(al.Type),
				Severity:      string(al.Severity),
				WaypointIndex: al.WaypointIndex,
				Tick:          al.Tick,
				Timestamp:     now,
			}
			if err := c.alertWriter.WriteAlert(r); err != nil {
				log.Error("alert write failed", "anomaly_id", r.AnomalyID, "err", err)
			}
		}
	}
}

// Snapshot returns a copy of the last published snapshot. Safe for
// concurrent readers; mutations by the caller never reach the
// controller.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.published.clone()
}

// Done reports whether the mission has reached a terminal state.
func (c *Controller) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// MissionID returns the configured mission identity.
func (c *Controller) MissionID() string {
	return c.missionID
}
