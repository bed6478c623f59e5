package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/biosync/internal/models"
)

// SaveDailyRecords upserts a batch of merged records for a user. Category
// payloads are stored as JSONB so schema drift in the canonical records never
// requires a migration. Returns the number of rows written.
func (db *DB) SaveDailyRecords(ctx context.Context, userID string, records []models.DailyRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batchCount := int64(0)
	for _, rec := range records {
		date, err := models.ParseDate(rec.Date)
		if err != nil {
			return batchCount, fmt.Errorf("saving daily record: %w", err)
		}

		payload, err := json.Marshal(rec)
		if err != nil {
			return batchCount, fmt.Errorf("encoding daily record %s/%s: %w", rec.Date, rec.Source, err)
		}

		tag, err := db.Pool.Exec(ctx,
			`INSERT INTO daily_records (user_id, date, source, payload, updated_at)
			 VALUES ($1, $2, $3, $4, now())
			 ON CONFLICT (user_id, date, source)
			 DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
			userID, date, rec.Source, payload)
		if err != nil {
			return batchCount, fmt.Errorf("upserting daily record %s/%s: %w", rec.Date, rec.Source, err)
		}
		batchCount += tag.RowsAffected()
	}
	return batchCount, nil
}

// QueryDailyRecords returns stored merged records for a user within
// [start, end], ascending by date.
func (db *DB) QueryDailyRecords(ctx context.Context, userID string, start, end time.Time) ([]models.DailyRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT payload FROM daily_records
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date, source`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying daily records: %w", err)
	}
	defer rows.Close()

	var out []models.DailyRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning daily record: %w", err)
		}
		var rec models.DailyRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("decoding daily record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
