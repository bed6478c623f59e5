// Package stats produces full-window rollups over a merged daily timeline.
// Everything here is recomputed from scratch on each request; nothing is
// cached between calls.
package stats

import (
	"math"

	"github.com/claude/biosync/internal/models"
	"github.com/claude/biosync/internal/trend"
)

// Compute derives summary statistics over the merged records for a lookback
// window of windowDays. Each average counts only records where the field is
// present; a day missing the field never contributes a zero.
func Compute(merged []models.DailyRecord, windowDays int) models.HistoricalStatistics {
	out := models.HistoricalStatistics{
		WindowDays:   windowDays,
		DaysWithData: len(merged),
	}

	var sleepMinutes, steps, activeMinutes, weight, restingHR, hrv []float64
	var workoutTypes []string

	for _, rec := range merged {
		if rec.Sleep != nil && rec.Sleep.TotalMinutes != nil {
			sleepMinutes = append(sleepMinutes, float64(*rec.Sleep.TotalMinutes))
		}
		if rec.Activity != nil {
			if rec.Activity.Steps != nil {
				steps = append(steps, float64(*rec.Activity.Steps))
			}
			if rec.Activity.ActiveMinutes != nil {
				activeMinutes = append(activeMinutes, float64(*rec.Activity.ActiveMinutes))
			}
		}
		if rec.Body != nil {
			if rec.Body.WeightKg != nil {
				weight = append(weight, *rec.Body.WeightKg)
			}
			if rec.Body.RestingHRBpm != nil {
				restingHR = append(restingHR, *rec.Body.RestingHRBpm)
			}
			if rec.Body.HRVAvgMs != nil {
				hrv = append(hrv, *rec.Body.HRVAvgMs)
			}
		}
		for _, w := range rec.Workouts {
			out.TotalWorkouts++
			workoutTypes = append(workoutTypes, w.Type)
		}
	}

	out.AvgSleepMinutes = avgOrNil(sleepMinutes)
	out.AvgSteps = avgOrNil(steps)
	out.AvgActiveMinutes = avgOrNil(activeMinutes)
	out.AvgWeightKg = avgOrNil(weight)
	out.AvgRestingHR = avgOrNil(restingHR)
	out.AvgHRVMs = avgOrNil(hrv)
	out.MostCommonWorkout = trend.MostCommon(workoutTypes)

	if windowDays > 0 {
		out.WorkoutsPerWeek = roundOneDecimal(float64(out.TotalWorkouts) / float64(windowDays) * 7)
	}
	return out
}

// avgOrNil distinguishes "no samples" from an average of zero.
func avgOrNil(series []float64) *float64 {
	if len(series) == 0 {
		return nil
	}
	v := trend.Mean(series)
	return &v
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
