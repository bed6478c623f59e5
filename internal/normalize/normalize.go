// Package normalize converts raw provider records into canonical per-category
// records. Providers share no field-naming contract, so every canonical
// attribute is resolved through an ordered list of candidate source fields;
// the first present, non-null field wins. All "guess the field name" logic
// lives here — no other package ever sees a RawRecord.
package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/claude/biosync/internal/models"
)

// Unit conversion factors. Durations are rounded to whole minutes at
// normalization time so merged aggregates operate on pre-rounded integers.
const (
	metersPerKilometer = 1000.0
	metersPerMile      = 1609.34
	kilogramsPerPound  = 0.45359237
	gramsPerKilogram   = 1000.0
)

// field is one candidate source field with its conversion into canonical
// units. Candidates are tried in order.
type field struct {
	key   string
	scale func(float64) float64
}

func identity(v float64) float64     { return v }
func fromKm(v float64) float64       { return v * metersPerKilometer }
func fromMiles(v float64) float64    { return v * metersPerMile }
func fromPounds(v float64) float64   { return v * kilogramsPerPound }
func fromGrams(v float64) float64    { return v / gramsPerKilogram }
func secondsToMin(v float64) float64 { return math.Round(v / 60) }

// number coerces a raw JSON value to float64. Providers deliver numbers as
// float64 (encoding/json), integers, json.Number, or numeric strings.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// resolve returns the first candidate field present in raw with a usable
// numeric value, converted to canonical units.
func resolve(raw models.RawRecord, candidates []field) *float64 {
	for _, c := range candidates {
		v, ok := raw[c.key]
		if !ok || v == nil {
			continue
		}
		n, ok := number(v)
		if !ok {
			continue
		}
		out := c.scale(n)
		return &out
	}
	return nil
}

// resolveMinutes is resolve for duration fields, rounding to whole minutes.
func resolveMinutes(raw models.RawRecord, candidates []field) *int {
	v := resolve(raw, candidates)
	if v == nil {
		return nil
	}
	m := int(math.Round(*v))
	return &m
}

// resolveInt is resolve for count fields (steps etc.).
func resolveInt(raw models.RawRecord, candidates []field) *int {
	v := resolve(raw, candidates)
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}

var dateKeys = []string{"date", "day", "calendar_date", "summary_date", "start_date", "start_time", "timestamp"}

// dateLayouts are tried in order when the raw value is not already YYYY-MM-DD.
var dateLayouts = []string{
	models.DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05",
}

// resolveDate extracts the calendar date, the required merge key. Timestamps
// are truncated to their date component.
func resolveDate(raw models.RawRecord) (string, bool) {
	for _, key := range dateKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(models.DateLayout), true
			}
		}
	}
	return "", false
}

var sourceKeys = []string{"source", "provider", "origin", "device"}

func resolveSource(raw models.RawRecord) string {
	for _, key := range sourceKeys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return "unknown"
}

func resolveString(raw models.RawRecord, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Sleep normalizes one raw sleep record. Returns nil when the record has no
// parseable date — without the merge key it cannot be placed in the timeline.
func Sleep(raw models.RawRecord) *models.SleepRecord {
	date, ok := resolveDate(raw)
	if !ok {
		return nil
	}
	return &models.SleepRecord{
		Date:   date,
		Source: resolveSource(raw),
		TotalMinutes: resolveMinutes(raw, []field{
			{"duration_total_seconds", secondsToMin},
			{"total_sleep_seconds", secondsToMin},
			{"duration", identity},
			{"total_sleep_minutes", identity},
		}),
		DeepMinutes: resolveMinutes(raw, []field{
			{"deep_sleep_seconds", secondsToMin},
			{"duration_deep_seconds", secondsToMin},
			{"deep_minutes", identity},
		}),
		REMMinutes: resolveMinutes(raw, []field{
			{"rem_sleep_seconds", secondsToMin},
			{"duration_rem_seconds", secondsToMin},
			{"rem_minutes", identity},
		}),
		LightMinutes: resolveMinutes(raw, []field{
			{"light_sleep_seconds", secondsToMin},
			{"duration_light_seconds", secondsToMin},
			{"light_minutes", identity},
		}),
		EfficiencyScore: resolve(raw, []field{
			{"efficiency", identity},
			{"efficiency_score", identity},
			{"sleep_score", identity},
		}),
		AvgHRVMs: resolve(raw, []field{
			{"avg_hrv_rmssd_milli", identity},
			{"hrv_avg_ms", identity},
			{"average_hrv", identity},
		}),
	}
}

// Activity normalizes one raw daily-activity record.
func Activity(raw models.RawRecord) *models.ActivityRecord {
	date, ok := resolveDate(raw)
	if !ok {
		return nil
	}
	return &models.ActivityRecord{
		Date:   date,
		Source: resolveSource(raw),
		Steps: resolveInt(raw, []field{
			{"steps", identity},
			{"step_count", identity},
			{"daily_steps", identity},
		}),
		ActiveMinutes: resolveMinutes(raw, []field{
			{"active_duration_seconds", secondsToMin},
			{"high_intensity_seconds", secondsToMin},
			{"active_minutes", identity},
		}),
		CaloriesActive: resolve(raw, []field{
			{"calories_active", identity},
			{"active_calories", identity},
			{"cal_active", identity},
		}),
		DistanceMeters: resolve(raw, []field{
			{"distance_meters", identity},
			{"equivalent_walking_distance_meters", identity},
			{"distance_km", fromKm},
			{"distance_miles", fromMiles},
		}),
	}
}

// Body normalizes one raw body-composition record.
func Body(raw models.RawRecord) *models.BodyRecord {
	date, ok := resolveDate(raw)
	if !ok {
		return nil
	}
	return &models.BodyRecord{
		Date:   date,
		Source: resolveSource(raw),
		WeightKg: resolve(raw, []field{
			{"weight_kg", identity},
			{"weight_gram", fromGrams},
			{"weight_lb", fromPounds},
			{"weight", identity},
		}),
		BodyFatPct: resolve(raw, []field{
			{"body_fat_pct", identity},
			{"bodyfat_percentage", identity},
			{"fat_percent", identity},
		}),
		RestingHRBpm: resolve(raw, []field{
			{"resting_hr_bpm", identity},
			{"resting_heart_rate", identity},
			{"rhr", identity},
		}),
		HRVAvgMs: resolve(raw, []field{
			{"hrv_avg_ms", identity},
			{"avg_hrv_rmssd_milli", identity},
			{"heart_rate_variability", identity},
		}),
		SpO2Pct: resolve(raw, []field{
			{"spo2_pct", identity},
			{"spo2_percentage", identity},
			{"oxygen_saturation", identity},
		}),
	}
}

// Workout normalizes one raw workout event. Untyped workouts fall back to
// "unknown" rather than being dropped; only a missing date is fatal.
func Workout(raw models.RawRecord) *models.WorkoutRecord {
	date, ok := resolveDate(raw)
	if !ok {
		return nil
	}
	wType := resolveString(raw, "type", "sport", "activity_type", "name")
	if wType == "" {
		wType = "unknown"
	}
	return &models.WorkoutRecord{
		Date:   date,
		Source: resolveSource(raw),
		Type:   wType,
		DurationMinutes: resolveMinutes(raw, []field{
			{"duration_seconds", secondsToMin},
			{"active_duration_seconds", secondsToMin},
			{"duration_minutes", identity},
		}),
		Calories: resolve(raw, []field{
			{"calories", identity},
			{"energy_kcal", identity},
			{"kilocalories", identity},
		}),
		DistanceMeters: resolve(raw, []field{
			{"distance_meters", identity},
			{"distance_km", fromKm},
			{"distance_miles", fromMiles},
		}),
		AvgHR: resolve(raw, []field{
			{"avg_hr", identity},
			{"average_heart_rate", identity},
			{"hr_average", identity},
		}),
		MaxHR: resolve(raw, []field{
			{"max_hr", identity},
			{"max_heart_rate", identity},
			{"hr_max", identity},
		}),
	}
}
