package systems

import "math"

const twoPi = 2 * math.Pi

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// normalizeHeading wraps a heading to [0, 2*Pi).
func normalizeHeading(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	// Mod of a tiny negative value can round up to exactly 2*Pi
	if h >= twoPi {
		h = 0
	}
	return h
}

// uniform draws from [lo, hi).
func uniform(rng interface{ Float64() float64 }, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
