// Package trend classifies directional change in noisy longitudinal metric
// series using a windowed-average comparison, plus small descriptive helpers
// shared by the insights and statistics layers.
package trend

import "github.com/claude/biosync/internal/models"

const (
	// minSamples is the floor below which no directional signal is computed.
	minSamples = 3
	// maxWindow caps the comparison windows at one week of samples.
	maxWindow = 7
	// threshold is the relative change beyond which a series is no longer
	// considered stable.
	threshold = 0.05
)

// Classify compares the earlier and recent windows of a chronologically
// ordered series. Series shorter than three points, and series whose earlier
// window averages exactly zero, return a stable result — a low-confidence
// default, not a confirmed signal.
func Classify(series []float64) models.TrendResult {
	if len(series) < minSamples {
		return models.TrendResult{Direction: models.TrendStable}
	}

	w := len(series) / 2
	if w > maxWindow {
		w = maxWindow
	}

	earlierAvg := Mean(series[:w])
	recentAvg := Mean(series[len(series)-w:])

	result := models.TrendResult{
		Direction:  models.TrendStable,
		RecentAvg:  recentAvg,
		EarlierAvg: earlierAvg,
	}

	if earlierAvg == 0 {
		return result
	}

	change := (recentAvg - earlierAvg) / earlierAvg
	switch {
	case change > threshold:
		result.Direction = models.TrendImproving
	case change < -threshold:
		result.Direction = models.TrendDeclining
	}
	return result
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// MostCommon returns the most frequent value in values. Ties resolve to
// whichever value reaches the max count first in scan order.
func MostCommon(values []string) string {
	counts := make(map[string]int, len(values))
	var best string
	bestCount := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	return best
}
