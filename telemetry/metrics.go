package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports aquarium counters in the Prometheus text format.
// There is no network surface; the registry is written to a textfile
// for node_exporter-style collection.
type Metrics struct {
	registry *prometheus.Registry

	tickDuration prometheus.Histogram
	fishCount    prometheus.Gauge
	speciesCount *prometheus.GaugeVec
	fishEvents   *prometheus.CounterVec
	fishing      *prometheus.CounterVec
	saves        *prometheus.CounterVec
}

// NewMetrics creates a metrics set on its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		tickDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pixeltank_tick_duration_seconds",
			Help:    "Time spent in one aquarium tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
		}),
		fishCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pixeltank_fish",
			Help: "Current number of fish in the tank",
		}),
		speciesCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "pixeltank_fish_by_species",
			Help: "Current number of fish per species",
		}, []string{"species"}),
		fishEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pixeltank_fish_events_total",
			Help: "Fish added to or removed from the tank",
		}, []string{"event"}), // Bounded: "added", "removed"
		fishing: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pixeltank_fishing_sessions_total",
			Help: "Finished fishing sessions by outcome",
		}, []string{"outcome"}), // Bounded: "caught", "escaped", "cancelled"
		saves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pixeltank_saves_total",
			Help: "Store writes by result",
		}, []string{"result"}), // Bounded: "ok", "error"
	}
}

// ObserveTick records the wall time of one tick.
func (m *Metrics) ObserveTick(d time.Duration) {
	m.tickDuration.Observe(d.Seconds())
}

// ObserveWindow folds a flushed window into the gauges and counters.
func (m *Metrics) ObserveWindow(s WindowStats) {
	m.fishCount.Set(float64(s.FishCount))
	m.speciesCount.WithLabelValues("pufferfish").Set(float64(s.Pufferfish))
	m.speciesCount.WithLabelValues("goldfish").Set(float64(s.Goldfish))
	m.speciesCount.WithLabelValues("tetra").Set(float64(s.Tetra))
	m.speciesCount.WithLabelValues("beta").Set(float64(s.Beta))
	m.fishEvents.WithLabelValues("added").Add(float64(s.Added))
	m.fishEvents.WithLabelValues("removed").Add(float64(s.Removed))
	m.fishing.WithLabelValues("caught").Add(float64(s.Catches))
	m.fishing.WithLabelValues("escaped").Add(float64(s.Escapes))
	m.fishing.WithLabelValues("cancelled").Add(float64(s.Cancels))
	m.saves.WithLabelValues("ok").Add(float64(s.Saves))
	m.saves.WithLabelValues("error").Add(float64(s.SaveErrors))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes all metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
