package models

// TrendDirection classifies how a metric series moved between the earlier and
// recent comparison windows.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// TrendResult is the outcome of a windowed-average comparison over one
// numeric series. A series with fewer than three points, or an earlier
// window averaging zero, yields TrendStable as a low-confidence default.
type TrendResult struct {
	Direction  TrendDirection `json:"direction"`
	RecentAvg  float64        `json:"recent_avg"`
	EarlierAvg float64        `json:"earlier_avg"`
}

// SleepInsights summarizes the sleep metric family over the lookback window.
type SleepInsights struct {
	DurationTrend   TrendResult `json:"duration_trend"`
	EfficiencyTrend TrendResult `json:"efficiency_trend"`
	AvgMinutes      float64     `json:"avg_minutes"`
	AvgEfficiency   float64     `json:"avg_efficiency"`
	Nights          int         `json:"nights"`
}

// RecoveryInsights summarizes heart and recovery metrics (HRV, resting HR).
type RecoveryInsights struct {
	HRVTrend       TrendResult `json:"hrv_trend"`
	RestingHRTrend TrendResult `json:"resting_hr_trend"`
	AvgHRVMs       float64     `json:"avg_hrv_ms"`
	AvgRestingHR   float64     `json:"avg_resting_hr"`
	Samples        int         `json:"samples"`
}

// ActivityInsights summarizes daily movement over the lookback window.
type ActivityInsights struct {
	StepsTrend       TrendResult `json:"steps_trend"`
	AvgSteps         float64     `json:"avg_steps"`
	AvgActiveMinutes float64     `json:"avg_active_minutes"`
	Days             int         `json:"days"`
}

// InsightsReport is the aggregated per-family view handed to the
// presentation layer. A nil family means no samples existed for it in the
// window — deliberately distinct from a populated family with a stable trend.
type InsightsReport struct {
	Linked       bool              `json:"linked"`
	Message      string            `json:"message,omitempty"`
	DaysAnalyzed int               `json:"days_analyzed"`
	Sleep        *SleepInsights    `json:"sleep"`
	Recovery     *RecoveryInsights `json:"recovery"`
	Activity     *ActivityInsights `json:"activity"`
}

// HistoricalStatistics holds full-window rollups over a merged timeline.
// Averages count only records where the field is present; missing fields are
// excluded from the denominator, never treated as zero.
type HistoricalStatistics struct {
	WindowDays        int      `json:"window_days"`
	DaysWithData      int      `json:"days_with_data"`
	AvgSleepMinutes   *float64 `json:"avg_sleep_minutes,omitempty"`
	AvgSteps          *float64 `json:"avg_steps,omitempty"`
	AvgActiveMinutes  *float64 `json:"avg_active_minutes,omitempty"`
	AvgWeightKg       *float64 `json:"avg_weight_kg,omitempty"`
	AvgRestingHR      *float64 `json:"avg_resting_hr,omitempty"`
	AvgHRVMs          *float64 `json:"avg_hrv_ms,omitempty"`
	TotalWorkouts     int      `json:"total_workouts"`
	WorkoutsPerWeek   float64  `json:"workouts_per_week"`
	MostCommonWorkout string   `json:"most_common_workout,omitempty"`
}
