// Package service exposes the analysis core to the presentation layer:
// insights, historical statistics, and the merged timeline. The service is
// stateless; every call fetches fresh from providers, merges, and derives.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/biosync/internal/fetch"
	"github.com/claude/biosync/internal/insights"
	"github.com/claude/biosync/internal/link"
	"github.com/claude/biosync/internal/merge"
	"github.com/claude/biosync/internal/models"
	"github.com/claude/biosync/internal/stats"
)

// ValidationError marks caller misuse (bad dates, non-positive windows).
// It is the only error class that propagates out of the read APIs; upstream
// fetch failures degrade to partial data instead.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// maxWindowDays bounds lookback windows to keep provider fetches sane.
const maxWindowDays = 365

// Store receives best-effort snapshots of merged timelines. Implementations
// must tolerate repeated writes for the same keys.
type Store interface {
	SaveDailyRecords(ctx context.Context, userID string, records []models.DailyRecord) (int64, error)
}

// Service wires the link provider, fetch orchestrator, and data store.
type Service struct {
	linker link.Provider
	orch   *fetch.Orchestrator
	store  Store
	log    *slog.Logger
	now    func() time.Time
}

// New creates a Service. store may be nil to disable snapshot persistence.
func New(linker link.Provider, orch *fetch.Orchestrator, store Store, log *slog.Logger) *Service {
	return &Service{
		linker: linker,
		orch:   orch,
		store:  store,
		log:    log,
		now:    time.Now,
	}
}

// HistoricalData pairs the merged timeline with its full-window statistics.
type HistoricalData struct {
	Linked         bool                        `json:"linked"`
	HistoricalData []models.DailyRecord        `json:"historical_data"`
	Statistics     models.HistoricalStatistics `json:"statistics"`
}

// GetInsights fetches, merges, and classifies trends over the last `days`
// days for the user.
func (s *Service) GetInsights(ctx context.Context, userID string, days int) (models.InsightsReport, error) {
	if err := validateWindow(days); err != nil {
		return models.InsightsReport{}, err
	}

	merged, linked, err := s.buildTimeline(ctx, userID, s.windowRange(days))
	if err != nil {
		return models.InsightsReport{}, err
	}
	return insights.Build(merged, days, linked), nil
}

// GetHistoricalData returns the merged timeline plus summary statistics over
// an arbitrary lookback window.
func (s *Service) GetHistoricalData(ctx context.Context, userID string, days int) (HistoricalData, error) {
	if err := validateWindow(days); err != nil {
		return HistoricalData{}, err
	}

	merged, linked, err := s.buildTimeline(ctx, userID, s.windowRange(days))
	if err != nil {
		return HistoricalData{}, err
	}
	return HistoricalData{
		Linked:         linked,
		HistoricalData: merged,
		Statistics:     stats.Compute(merged, days),
	}, nil
}

// GetMergedTimeline returns merged daily records for an explicit date range.
// Both bounds are required and must be YYYY-MM-DD with start <= end.
func (s *Service) GetMergedTimeline(ctx context.Context, userID, startDate, endDate string) ([]models.DailyRecord, error) {
	if startDate == "" || endDate == "" {
		return nil, validationErrorf("start and end dates are required")
	}
	start, err := models.ParseDate(startDate)
	if err != nil {
		return nil, validationErrorf("invalid start date %q: expected YYYY-MM-DD", startDate)
	}
	end, err := models.ParseDate(endDate)
	if err != nil {
		return nil, validationErrorf("invalid end date %q: expected YYYY-MM-DD", endDate)
	}
	if end.Before(start) {
		return nil, validationErrorf("end date %s is before start date %s", endDate, startDate)
	}

	merged, _, err := s.buildTimeline(ctx, userID, dateRange{start: start, end: end})
	return merged, err
}

// StartLink creates the remote identity (if needed) and returns a link token
// for the device-link handshake.
func (s *Service) StartLink(ctx context.Context, userID string) (string, error) {
	remoteID, err := s.linker.RemoteUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("resolving remote user: %w", err)
	}
	if remoteID == "" {
		remoteID, err = s.linker.CreateRemoteUser(ctx, userID)
		if err != nil {
			return "", fmt.Errorf("creating remote user: %w", err)
		}
	}
	token, err := s.linker.GenerateLinkToken(ctx, remoteID)
	if err != nil {
		return "", fmt.Errorf("generating link token: %w", err)
	}
	return token, nil
}

type dateRange struct {
	start, end time.Time
}

func (s *Service) windowRange(days int) dateRange {
	end := s.now().UTC().Truncate(24 * time.Hour)
	return dateRange{start: end.AddDate(0, 0, -days), end: end}
}

func validateWindow(days int) error {
	if days < 1 {
		return validationErrorf("days must be at least 1, got %d", days)
	}
	if days > maxWindowDays {
		return validationErrorf("days must be at most %d, got %d", maxWindowDays, days)
	}
	return nil
}

// buildTimeline resolves the remote identity, fans out the category fetches,
// and merges the results. The returned bool reports whether the user has a
// linked remote identity at all.
func (s *Service) buildTimeline(ctx context.Context, userID string, r dateRange) ([]models.DailyRecord, bool, error) {
	remoteID, err := s.linker.RemoteUserID(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("resolving remote user: %w", err)
	}
	if remoteID == "" {
		return nil, false, nil
	}

	bundle := s.orch.FetchAll(ctx, remoteID, r.start, r.end)
	merged := merge.Daily(bundle.Sleep, bundle.Activity, bundle.Body, bundle.Workouts)

	// Snapshot persistence is best-effort; a failed write never fails a read.
	if s.store != nil && len(merged) > 0 {
		if _, err := s.store.SaveDailyRecords(ctx, userID, merged); err != nil {
			s.log.Warn("daily record snapshot failed", "user", userID, "error", err)
		}
	}
	return merged, true, nil
}
