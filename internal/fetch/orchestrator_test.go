package fetch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/claude/biosync/internal/models"
)

// fakeGateway returns canned records per category and can fail selectively.
type fakeGateway struct {
	mu      sync.Mutex
	records map[models.Category][]models.RawRecord
	fail    map[models.Category]bool
	calls   []models.Category
}

func (f *fakeGateway) FetchCategory(ctx context.Context, remoteUserID string, category models.Category, start, end time.Time) ([]models.RawRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, category)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.fail[category] {
		return nil, errors.New("upstream unavailable")
	}
	return f.records[category], nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dateRange() (time.Time, time.Time) {
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, 0, -7), end
}

func TestFetchAllNormalizesEveryCategory(t *testing.T) {
	gw := &fakeGateway{records: map[models.Category][]models.RawRecord{
		models.CategorySleep: {
			{"date": "2025-03-10", "duration_total_seconds": float64(27000)},
		},
		models.CategoryActivity: {
			{"date": "2025-03-10", "steps": float64(8000)},
		},
		models.CategoryBody: {
			{"date": "2025-03-10", "weight_kg": float64(80)},
		},
		models.CategoryWorkout: {
			{"date": "2025-03-10", "type": "running", "duration_seconds": float64(1800)},
			{"date": "2025-03-10", "type": "yoga", "duration_seconds": float64(2400)},
		},
	}}

	start, end := dateRange()
	bundle := New(gw, testLogger()).FetchAll(context.Background(), "remote-1", start, end)

	if !bundle.Linked {
		t.Error("Linked should be true when a remote user id was supplied")
	}
	if len(bundle.Sleep) != 1 || *bundle.Sleep[0].TotalMinutes != 450 {
		t.Errorf("sleep bundle = %+v, want one record with 450 minutes", bundle.Sleep)
	}
	if len(bundle.Activity) != 1 || len(bundle.Body) != 1 {
		t.Errorf("activity/body bundles wrong: %d/%d", len(bundle.Activity), len(bundle.Body))
	}
	if len(bundle.Workouts) != 2 {
		t.Errorf("expected 2 workouts, got %d", len(bundle.Workouts))
	}
	if len(gw.calls) != 4 {
		t.Errorf("expected 4 category fetches, got %d", len(gw.calls))
	}
}

func TestFetchAllIsolatesCategoryFailure(t *testing.T) {
	gw := &fakeGateway{
		records: map[models.Category][]models.RawRecord{
			models.CategorySleep: {
				{"date": "2025-03-10", "duration_total_seconds": float64(25200)},
			},
			models.CategoryWorkout: {
				{"date": "2025-03-10", "type": "running"},
			},
		},
		fail: map[models.Category]bool{models.CategoryActivity: true},
	}

	start, end := dateRange()
	bundle := New(gw, testLogger()).FetchAll(context.Background(), "remote-1", start, end)

	if len(bundle.Activity) != 0 {
		t.Errorf("failed category should yield empty, got %d records", len(bundle.Activity))
	}
	if len(bundle.Sleep) != 1 {
		t.Errorf("sleep must survive an activity failure, got %d records", len(bundle.Sleep))
	}
	if len(bundle.Workouts) != 1 {
		t.Errorf("workouts must survive an activity failure, got %d records", len(bundle.Workouts))
	}
	if !bundle.Linked {
		t.Error("Linked should remain true on partial failure")
	}
}

func TestFetchAllTotalFailureStillReturnsBundle(t *testing.T) {
	gw := &fakeGateway{fail: map[models.Category]bool{
		models.CategorySleep:    true,
		models.CategoryActivity: true,
		models.CategoryBody:     true,
		models.CategoryWorkout:  true,
	}}

	start, end := dateRange()
	bundle := New(gw, testLogger()).FetchAll(context.Background(), "remote-1", start, end)

	if !bundle.Linked {
		t.Error("Linked should be true even when every fetch failed")
	}
	if len(bundle.Sleep)+len(bundle.Activity)+len(bundle.Body)+len(bundle.Workouts) != 0 {
		t.Error("all bundles should be empty on total failure")
	}
}

func TestFetchAllNoRemoteUserShortCircuits(t *testing.T) {
	gw := &fakeGateway{}

	start, end := dateRange()
	bundle := New(gw, testLogger()).FetchAll(context.Background(), "", start, end)

	if bundle.Linked {
		t.Error("Linked should be false with no remote user")
	}
	if len(gw.calls) != 0 {
		t.Errorf("no fetches should be issued without a remote user, got %d", len(gw.calls))
	}
}

func TestFetchAllDropsDatelessRecords(t *testing.T) {
	gw := &fakeGateway{records: map[models.Category][]models.RawRecord{
		models.CategorySleep: {
			{"duration_total_seconds": float64(27000)},
			{"date": "2025-03-10", "duration_total_seconds": float64(24000)},
		},
	}}

	start, end := dateRange()
	bundle := New(gw, testLogger()).FetchAll(context.Background(), "remote-1", start, end)

	if len(bundle.Sleep) != 1 {
		t.Fatalf("dateless record must be dropped, got %d records", len(bundle.Sleep))
	}
	if bundle.Sleep[0].Date != "2025-03-10" {
		t.Errorf("surviving record has wrong date %q", bundle.Sleep[0].Date)
	}
}
