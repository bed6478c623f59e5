// Package fetch fans out the four per-category provider fetches for one
// request and normalizes the results. Raw provider records never leave this
// package.
package fetch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/biosync/internal/gateway"
	"github.com/claude/biosync/internal/models"
	"github.com/claude/biosync/internal/normalize"
	"github.com/claude/biosync/internal/observability"
)

// Bundle holds the normalized output of one fetch batch. Linked=false means
// no remote identity existed and no fetches were issued — distinct from a
// linked user whose fetches all came back empty.
type Bundle struct {
	Linked   bool
	Sleep    []models.SleepRecord
	Activity []models.ActivityRecord
	Body     []models.BodyRecord
	Workouts []models.WorkoutRecord
}

// Orchestrator issues category fetches concurrently against the provider
// gateway. It is stateless; every request gets its own fan-out.
type Orchestrator struct {
	client gateway.Client
	log    *slog.Logger
}

// New creates an Orchestrator.
func New(client gateway.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{client: client, log: log}
}

// FetchAll fetches all four categories in parallel and waits for every task.
// A category whose fetch fails contributes an empty list — partial data is
// always preferable to total failure, so errors are logged and counted but
// never returned. Each goroutine writes only its own result field; the
// WaitGroup join is the only synchronization needed.
func (o *Orchestrator) FetchAll(ctx context.Context, remoteUserID string, start, end time.Time) Bundle {
	if remoteUserID == "" {
		return Bundle{}
	}

	bundle := Bundle{Linked: true}

	var wg sync.WaitGroup
	wg.Add(len(models.Categories))

	go func() {
		defer wg.Done()
		for _, raw := range o.fetch(ctx, remoteUserID, models.CategorySleep, start, end) {
			if rec := normalize.Sleep(raw); rec != nil {
				bundle.Sleep = append(bundle.Sleep, *rec)
			} else {
				observability.RecordDroppedRecord(string(models.CategorySleep))
			}
		}
	}()
	go func() {
		defer wg.Done()
		for _, raw := range o.fetch(ctx, remoteUserID, models.CategoryActivity, start, end) {
			if rec := normalize.Activity(raw); rec != nil {
				bundle.Activity = append(bundle.Activity, *rec)
			} else {
				observability.RecordDroppedRecord(string(models.CategoryActivity))
			}
		}
	}()
	go func() {
		defer wg.Done()
		for _, raw := range o.fetch(ctx, remoteUserID, models.CategoryBody, start, end) {
			if rec := normalize.Body(raw); rec != nil {
				bundle.Body = append(bundle.Body, *rec)
			} else {
				observability.RecordDroppedRecord(string(models.CategoryBody))
			}
		}
	}()
	go func() {
		defer wg.Done()
		for _, raw := range o.fetch(ctx, remoteUserID, models.CategoryWorkout, start, end) {
			if rec := normalize.Workout(raw); rec != nil {
				bundle.Workouts = append(bundle.Workouts, *rec)
			} else {
				observability.RecordDroppedRecord(string(models.CategoryWorkout))
			}
		}
	}()

	wg.Wait()
	return bundle
}

// fetch runs one guarded category fetch. Failures degrade to nil.
func (o *Orchestrator) fetch(ctx context.Context, remoteUserID string, category models.Category, start, end time.Time) []models.RawRecord {
	began := time.Now()
	records, err := o.client.FetchCategory(ctx, remoteUserID, category, start, end)
	observability.RecordFetchDuration(string(category), time.Since(began))
	if err != nil {
		observability.RecordFetchFailure(string(category))
		o.log.Warn("category fetch failed, continuing with empty result",
			"category", category,
			"remote_user", remoteUserID,
			"error", err,
		)
		return nil
	}
	return records
}
