package models

import (
	"fmt"
	"time"
)

// Category identifies one of the four per-day measurement categories a
// provider can report.
type Category string

const (
	CategorySleep    Category = "sleep"
	CategoryActivity Category = "activity"
	CategoryBody     Category = "body"
	CategoryWorkout  Category = "workout"
)

// Categories lists all fetchable categories in a fixed order.
var Categories = []Category{CategorySleep, CategoryActivity, CategoryBody, CategoryWorkout}

// RawRecord is one provider-specific record as decoded from JSON. Field names,
// units, and granularity vary per provider; only the normalizer may read it.
type RawRecord map[string]any

// DateLayout is the canonical calendar-date format used as the merge key.
const DateLayout = "2006-01-02"

// ParseDate parses a canonical YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// SleepRecord is one night of sleep in canonical units. All durations are
// whole minutes, rounded at normalization time.
type SleepRecord struct {
	Date            string   `json:"date"`
	Source          string   `json:"source"`
	TotalMinutes    *int     `json:"total_minutes,omitempty"`
	DeepMinutes     *int     `json:"deep_minutes,omitempty"`
	REMMinutes      *int     `json:"rem_minutes,omitempty"`
	LightMinutes    *int     `json:"light_minutes,omitempty"`
	EfficiencyScore *float64 `json:"efficiency_score,omitempty"`
	AvgHRVMs        *float64 `json:"avg_hrv_ms,omitempty"`
}

// ActivityRecord is one day of movement totals in canonical units.
type ActivityRecord struct {
	Date           string   `json:"date"`
	Source         string   `json:"source"`
	Steps          *int     `json:"steps,omitempty"`
	ActiveMinutes  *int     `json:"active_minutes,omitempty"`
	CaloriesActive *float64 `json:"calories_active,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

// BodyRecord is one day of body composition and vitals in canonical units.
type BodyRecord struct {
	Date         string   `json:"date"`
	Source       string   `json:"source"`
	WeightKg     *float64 `json:"weight_kg,omitempty"`
	BodyFatPct   *float64 `json:"body_fat_pct,omitempty"`
	RestingHRBpm *float64 `json:"resting_hr_bpm,omitempty"`
	HRVAvgMs     *float64 `json:"hrv_avg_ms,omitempty"`
	SpO2Pct      *float64 `json:"spo2_pct,omitempty"`
}

// WorkoutRecord is a single workout session in canonical units. Unlike the
// daily categories, several workouts may share one date.
type WorkoutRecord struct {
	Date            string   `json:"date"`
	Source          string   `json:"source"`
	Type            string   `json:"type"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Calories        *float64 `json:"calories,omitempty"`
	DistanceMeters  *float64 `json:"distance_meters,omitempty"`
	AvgHR           *float64 `json:"avg_hr,omitempty"`
	MaxHR           *float64 `json:"max_hr,omitempty"`
}

// DailyRecord is the merged per-day view across all categories, keyed by
// (date, source). At most one sleep/activity/body record per key; workouts
// accumulate as a list. Absent categories stay nil — absence is distinct
// from zero.
type DailyRecord struct {
	Date     string          `json:"date"`
	Source   string          `json:"source"`
	Sleep    *SleepRecord    `json:"sleep,omitempty"`
	Activity *ActivityRecord `json:"activity,omitempty"`
	Body     *BodyRecord     `json:"body,omitempty"`
	Workouts []WorkoutRecord `json:"workouts,omitempty"`
}
