// Package gateway talks to the wearable-data aggregation vendor that proxies
// the individual providers. The rest of the system only sees the Client
// interface; retries and rate limiting are the vendor's concern, not ours.
package gateway

import (
	"context"
	"time"

	"github.com/claude/biosync/internal/models"
)

// Client fetches raw per-category records for a remote user over a date
// range. Implementations may fail per call; the fetch orchestrator degrades a
// failed category to an empty list rather than aborting the batch.
type Client interface {
	FetchCategory(ctx context.Context, remoteUserID string, category models.Category, start, end time.Time) ([]models.RawRecord, error)
}
