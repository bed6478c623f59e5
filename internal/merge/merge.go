// Package merge combines normalized per-category records into one daily view
// per (date, source). Each call builds a fresh keyed map scoped to the call —
// the engine holds no state and is safe for concurrent use across requests.
package merge

import (
	"sort"

	"github.com/claude/biosync/internal/models"
)

type key struct {
	date   string
	source string
}

// Daily merges the four category lists into one record per (date, source),
// sorted ascending by date then source. Duplicate sleep/activity/body records
// for the same key overwrite only their own category; workouts always append.
// Days with partial category coverage are kept with nil category pointers.
func Daily(sleep []models.SleepRecord, activity []models.ActivityRecord, body []models.BodyRecord, workouts []models.WorkoutRecord) []models.DailyRecord {
	byKey := make(map[key]*models.DailyRecord)

	slot := func(date, source string) *models.DailyRecord {
		k := key{date: date, source: source}
		rec, ok := byKey[k]
		if !ok {
			rec = &models.DailyRecord{Date: date, Source: source}
			byKey[k] = rec
		}
		return rec
	}

	for i := range sleep {
		slot(sleep[i].Date, sleep[i].Source).Sleep = &sleep[i]
	}
	for i := range activity {
		slot(activity[i].Date, activity[i].Source).Activity = &activity[i]
	}
	for i := range body {
		slot(body[i].Date, body[i].Source).Body = &body[i]
	}
	for i := range workouts {
		rec := slot(workouts[i].Date, workouts[i].Source)
		rec.Workouts = append(rec.Workouts, workouts[i])
	}

	out := make([]models.DailyRecord, 0, len(byKey))
	for _, rec := range byKey {
		out = append(out, *rec)
	}

	// Map iteration order is random; sort so identical inputs always produce
	// identical output.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Source < out[j].Source
	})
	return out
}
