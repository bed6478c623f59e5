package merge

import (
	"reflect"
	"testing"

	"github.com/claude/biosync/internal/models"
)

func intPtr(v int) *int { return &v }

func sleepRec(date, source string, minutes int) models.SleepRecord {
	return models.SleepRecord{Date: date, Source: source, TotalMinutes: intPtr(minutes)}
}

func activityRec(date, source string, steps int) models.ActivityRecord {
	return models.ActivityRecord{Date: date, Source: source, Steps: intPtr(steps)}
}

func workoutRec(date, source, wType string) models.WorkoutRecord {
	return models.WorkoutRecord{Date: date, Source: source, Type: wType}
}

func TestDailyMergesCategoriesByDate(t *testing.T) {
	out := Daily(
		[]models.SleepRecord{sleepRec("2025-03-10", "oura", 440)},
		[]models.ActivityRecord{activityRec("2025-03-10", "oura", 9000)},
		nil,
		[]models.WorkoutRecord{workoutRec("2025-03-10", "oura", "running")},
	)

	if len(out) != 1 {
		t.Fatalf("expected 1 merged record, got %d", len(out))
	}
	rec := out[0]
	if rec.Sleep == nil || *rec.Sleep.TotalMinutes != 440 {
		t.Errorf("sleep not merged: %+v", rec.Sleep)
	}
	if rec.Activity == nil || *rec.Activity.Steps != 9000 {
		t.Errorf("activity not merged: %+v", rec.Activity)
	}
	if rec.Body != nil {
		t.Errorf("body should be nil, got %+v", rec.Body)
	}
	if len(rec.Workouts) != 1 {
		t.Errorf("expected 1 workout, got %d", len(rec.Workouts))
	}
}

func TestDailyWorkoutsAccumulate(t *testing.T) {
	out := Daily(nil, nil, nil, []models.WorkoutRecord{
		workoutRec("2025-03-10", "garmin", "running"),
		workoutRec("2025-03-10", "garmin", "cycling"),
		workoutRec("2025-03-10", "garmin", "yoga"),
	})

	if len(out) != 1 {
		t.Fatalf("expected 1 merged record, got %d", len(out))
	}
	if len(out[0].Workouts) != 3 {
		t.Fatalf("expected 3 workouts retained, got %d", len(out[0].Workouts))
	}
}

func TestDailyDuplicateCategoryOverwritesOwnSlotOnly(t *testing.T) {
	out := Daily(
		[]models.SleepRecord{
			sleepRec("2025-03-10", "oura", 400),
			sleepRec("2025-03-10", "oura", 460),
		},
		[]models.ActivityRecord{activityRec("2025-03-10", "oura", 7500)},
		nil, nil,
	)

	if len(out) != 1 {
		t.Fatalf("expected 1 merged record, got %d", len(out))
	}
	if *out[0].Sleep.TotalMinutes != 460 {
		t.Errorf("later sleep record should overwrite, got %d", *out[0].Sleep.TotalMinutes)
	}
	if out[0].Activity == nil || *out[0].Activity.Steps != 7500 {
		t.Errorf("activity must survive a sleep overwrite, got %+v", out[0].Activity)
	}
}

func TestDailySeparateSourcesStaySeparate(t *testing.T) {
	out := Daily(
		[]models.SleepRecord{
			sleepRec("2025-03-10", "oura", 420),
			sleepRec("2025-03-10", "whoop", 410),
		},
		nil, nil, nil,
	)

	if len(out) != 2 {
		t.Fatalf("expected 2 merged records for 2 sources, got %d", len(out))
	}
}

func TestDailySortedAscendingByDate(t *testing.T) {
	out := Daily(
		[]models.SleepRecord{
			sleepRec("2025-03-12", "oura", 400),
			sleepRec("2025-03-10", "oura", 410),
			sleepRec("2025-03-11", "oura", 420),
		},
		nil, nil, nil,
	)

	want := []string{"2025-03-10", "2025-03-11", "2025-03-12"}
	for i, rec := range out {
		if rec.Date != want[i] {
			t.Errorf("out[%d].Date = %q, want %q", i, rec.Date, want[i])
		}
	}
}

func TestDailyDeterministic(t *testing.T) {
	sleep := []models.SleepRecord{
		sleepRec("2025-03-10", "oura", 420),
		sleepRec("2025-03-11", "whoop", 430),
	}
	activity := []models.ActivityRecord{
		activityRec("2025-03-10", "whoop", 8000),
		activityRec("2025-03-11", "oura", 6000),
	}
	workouts := []models.WorkoutRecord{
		workoutRec("2025-03-10", "oura", "running"),
	}

	first := Daily(sleep, activity, nil, workouts)
	for i := 0; i < 20; i++ {
		again := Daily(sleep, activity, nil, workouts)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("merge output differs between identical calls:\nfirst: %+v\nagain: %+v", first, again)
		}
	}
}
