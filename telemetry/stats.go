package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	FishCount  int `csv:"fish"`
	Pufferfish int `csv:"pufferfish"`
	Goldfish   int `csv:"goldfish"`
	Tetra      int `csv:"tetra"`
	Beta       int `csv:"beta"`
	Moving     int `csv:"moving"`

	// Events during window
	Added    int `csv:"added"`
	Removed  int `csv:"removed"`
	Catches  int `csv:"catches"`
	Escapes  int `csv:"escapes"`
	Cancels  int `csv:"cancels"`
	Attempts int `csv:"attempts"`

	CatchRate float64 `csv:"catch_rate"`

	// Speed distribution of moving fish (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Persistence
	Saves      int `csv:"saves"`
	SaveErrors int `csv:"save_errors"`
}

// SpeedStats holds the distribution summary of a speed sample.
type SpeedStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeSpeedStats calculates mean, standard deviation and percentiles.
// Returns zeros for an empty sample.
func ComputeSpeedStats(values []float64) SpeedStats {
	if len(values) == 0 {
		return SpeedStats{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return SpeedStats{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.LinInterp, sorted, nil),
		P50:  stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P90:  stat.Quantile(0.90, stat.LinInterp, sorted, nil),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("fish", s.FishCount),
		slog.Int("moving", s.Moving),
		slog.Int("added", s.Added),
		slog.Int("removed", s.Removed),
		slog.Int("catches", s.Catches),
		slog.Int("escapes", s.Escapes),
		slog.Int("cancels", s.Cancels),
		slog.Float64("catch_rate", s.CatchRate),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Int("saves", s.Saves),
		slog.Int("save_errors", s.SaveErrors),
	)
}
