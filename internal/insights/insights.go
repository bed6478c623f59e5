// Package insights composes trend classifications across metric families
// (sleep, recovery, activity) into a single report for a lookback window.
package insights

import (
	"github.com/claude/biosync/internal/models"
	"github.com/claude/biosync/internal/trend"
)

// Report messages for the three distinct empty/populated states. A caller
// rendering an empty state must be able to tell "never linked" apart from
// "linked but nothing came back".
const (
	MsgNotLinked = "no wearable provider linked; connect a device to see insights"
	MsgNoData    = "provider linked but no data was returned for this window"
)

// Build assembles the insights report from merged daily records. A metric
// family with zero non-null samples across the window is reported as nil
// rather than a defaulted stable trend.
func Build(merged []models.DailyRecord, lookbackDays int, linked bool) models.InsightsReport {
	report := models.InsightsReport{
		Linked:       linked,
		DaysAnalyzed: len(merged),
	}

	if !linked {
		report.Message = MsgNotLinked
		return report
	}
	if len(merged) == 0 {
		report.Message = MsgNoData
		return report
	}

	report.Sleep = buildSleep(merged)
	report.Recovery = buildRecovery(merged)
	report.Activity = buildActivity(merged)

	// Extraction is lenient, so a window can be non-empty yet carry no usable
	// samples for any family. Surface that the same way as zero records.
	if report.Sleep == nil && report.Recovery == nil && report.Activity == nil {
		report.Message = MsgNoData
	}
	return report
}

func buildSleep(merged []models.DailyRecord) *models.SleepInsights {
	var minutes, scores []float64
	for _, rec := range merged {
		if rec.Sleep == nil {
			continue
		}
		if rec.Sleep.TotalMinutes != nil {
			minutes = append(minutes, float64(*rec.Sleep.TotalMinutes))
		}
		if rec.Sleep.EfficiencyScore != nil {
			scores = append(scores, *rec.Sleep.EfficiencyScore)
		}
	}
	if len(minutes) == 0 && len(scores) == 0 {
		return nil
	}
	return &models.SleepInsights{
		DurationTrend:   trend.Classify(minutes),
		EfficiencyTrend: trend.Classify(scores),
		AvgMinutes:      trend.Mean(minutes),
		AvgEfficiency:   trend.Mean(scores),
		Nights:          len(minutes),
	}
}

func buildRecovery(merged []models.DailyRecord) *models.RecoveryInsights {
	var hrv, restingHR []float64
	for _, rec := range merged {
		// HRV can arrive on the sleep record (overnight average) or the body
		// record depending on provider; prefer body, fall back to sleep.
		switch {
		case rec.Body != nil && rec.Body.HRVAvgMs != nil:
			hrv = append(hrv, *rec.Body.HRVAvgMs)
		case rec.Sleep != nil && rec.Sleep.AvgHRVMs != nil:
			hrv = append(hrv, *rec.Sleep.AvgHRVMs)
		}
		if rec.Body != nil && rec.Body.RestingHRBpm != nil {
			restingHR = append(restingHR, *rec.Body.RestingHRBpm)
		}
	}
	if len(hrv) == 0 && len(restingHR) == 0 {
		return nil
	}
	samples := len(hrv)
	if len(restingHR) > samples {
		samples = len(restingHR)
	}
	return &models.RecoveryInsights{
		HRVTrend:       trend.Classify(hrv),
		RestingHRTrend: trend.Classify(restingHR),
		AvgHRVMs:       trend.Mean(hrv),
		AvgRestingHR:   trend.Mean(restingHR),
		Samples:        samples,
	}
}

func buildActivity(merged []models.DailyRecord) *models.ActivityInsights {
	var steps, activeMinutes []float64
	for _, rec := range merged {
		if rec.Activity == nil {
			continue
		}
		if rec.Activity.Steps != nil {
			steps = append(steps, float64(*rec.Activity.Steps))
		}
		if rec.Activity.ActiveMinutes != nil {
			activeMinutes = append(activeMinutes, float64(*rec.Activity.ActiveMinutes))
		}
	}
	if len(steps) == 0 && len(activeMinutes) == 0 {
		return nil
	}
	return &models.ActivityInsights{
		StepsTrend:       trend.Classify(steps),
		AvgSteps:         trend.Mean(steps),
		AvgActiveMinutes: trend.Mean(activeMinutes),
		Days:             len(steps),
	}
}
