package normalize

import (
	"testing"

	"github.com/claude/biosync/internal/models"
)

func TestSleepDurationConversion(t *testing.T) {
	rec := Sleep(models.RawRecord{
		"date":                   "2025-03-10",
		"source":                 "oura",
		"duration_total_seconds": float64(27000),
	})
	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.TotalMinutes == nil || *rec.TotalMinutes != 450 {
		t.Errorf("TotalMinutes = %v, want 450", rec.TotalMinutes)
	}
	if rec.Date != "2025-03-10" {
		t.Errorf("Date = %q, want 2025-03-10", rec.Date)
	}
	if rec.Source != "oura" {
		t.Errorf("Source = %q, want oura", rec.Source)
	}
}

func TestSleepFieldPriority(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawRecord
		want int
	}{
		{
			name: "seconds field wins over minutes field",
			raw: models.RawRecord{
				"date":                   "2025-03-10",
				"duration_total_seconds": float64(21600),
				"duration":               float64(999),
			},
			want: 360,
		},
		{
			name: "legacy minutes field used when seconds absent",
			raw: models.RawRecord{
				"date":     "2025-03-10",
				"duration": float64(420),
			},
			want: 420,
		},
		{
			name: "alternate seconds field",
			raw: models.RawRecord{
				"date":                "2025-03-10",
				"total_sleep_seconds": float64(25200),
			},
			want: 420,
		},
		{
			name: "rounds to nearest minute",
			raw: models.RawRecord{
				"date":                   "2025-03-10",
				"duration_total_seconds": float64(27010),
			},
			want: 450,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Sleep(tt.raw)
			if rec == nil {
				t.Fatal("expected record, got nil")
			}
			if rec.TotalMinutes == nil || *rec.TotalMinutes != tt.want {
				t.Errorf("TotalMinutes = %v, want %d", rec.TotalMinutes, tt.want)
			}
		})
	}
}

func TestMissingDateDropsRecord(t *testing.T) {
	if rec := Sleep(models.RawRecord{"duration": float64(400)}); rec != nil {
		t.Errorf("sleep record without date should be dropped, got %+v", rec)
	}
	if rec := Activity(models.RawRecord{"steps": float64(9000)}); rec != nil {
		t.Errorf("activity record without date should be dropped, got %+v", rec)
	}
	if rec := Workout(models.RawRecord{"type": "run"}); rec != nil {
		t.Errorf("workout record without date should be dropped, got %+v", rec)
	}
	if rec := Sleep(models.RawRecord{"date": "not-a-date", "duration": float64(1)}); rec != nil {
		t.Errorf("unparseable date should drop the record, got %+v", rec)
	}
}

func TestTimestampTruncatedToDate(t *testing.T) {
	rec := Workout(models.RawRecord{
		"start_time":       "2025-03-11T06:30:00Z",
		"type":             "running",
		"duration_seconds": float64(1800),
	})
	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.Date != "2025-03-11" {
		t.Errorf("Date = %q, want 2025-03-11", rec.Date)
	}
	if rec.DurationMinutes == nil || *rec.DurationMinutes != 30 {
		t.Errorf("DurationMinutes = %v, want 30", rec.DurationMinutes)
	}
}

func TestActivityDistanceUnits(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawRecord
		want float64
	}{
		{"meters passthrough", models.RawRecord{"date": "2025-03-10", "distance_meters": float64(5200)}, 5200},
		{"kilometers converted", models.RawRecord{"date": "2025-03-10", "distance_km": float64(5.2)}, 5200},
		{"miles converted", models.RawRecord{"date": "2025-03-10", "distance_miles": float64(2)}, 3218.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Activity(tt.raw)
			if rec == nil {
				t.Fatal("expected record, got nil")
			}
			if rec.DistanceMeters == nil {
				t.Fatal("DistanceMeters is nil")
			}
			if diff := *rec.DistanceMeters - tt.want; diff > 0.01 || diff < -0.01 {
				t.Errorf("DistanceMeters = %v, want %v", *rec.DistanceMeters, tt.want)
			}
		})
	}
}

func TestBodyWeightUnits(t *testing.T) {
	tests := []struct {
		name string
		raw  models.RawRecord
		want float64
	}{
		{"kilograms passthrough", models.RawRecord{"date": "2025-03-10", "weight_kg": float64(80.5)}, 80.5},
		{"grams converted", models.RawRecord{"date": "2025-03-10", "weight_gram": float64(80500)}, 80.5},
		{"pounds converted", models.RawRecord{"date": "2025-03-10", "weight_lb": float64(180)}, 81.646},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Body(tt.raw)
			if rec == nil {
				t.Fatal("expected record, got nil")
			}
			if rec.WeightKg == nil {
				t.Fatal("WeightKg is nil")
			}
			if diff := *rec.WeightKg - tt.want; diff > 0.001 || diff < -0.001 {
				t.Errorf("WeightKg = %v, want %v", *rec.WeightKg, tt.want)
			}
		})
	}
}

func TestAbsentFieldsStayNil(t *testing.T) {
	rec := Body(models.RawRecord{"date": "2025-03-10", "weight_kg": float64(75)})
	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.BodyFatPct != nil {
		t.Errorf("BodyFatPct should be nil when absent, got %v", *rec.BodyFatPct)
	}
	if rec.RestingHRBpm != nil {
		t.Errorf("RestingHRBpm should be nil when absent, got %v", *rec.RestingHRBpm)
	}
}

func TestNumberCoercion(t *testing.T) {
	rec := Activity(models.RawRecord{
		"date":  "2025-03-10",
		"steps": "10432",
	})
	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.Steps == nil || *rec.Steps != 10432 {
		t.Errorf("Steps = %v, want 10432", rec.Steps)
	}
}

func TestWorkoutTypeFallback(t *testing.T) {
	rec := Workout(models.RawRecord{"date": "2025-03-10"})
	if rec == nil {
		t.Fatal("expected record, got nil")
	}
	if rec.Type != "unknown" {
		t.Errorf("Type = %q, want unknown", rec.Type)
	}
}
