package link

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists the local-user → remote-user mapping and issued link tokens
// in a local SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite link database at dir/links.db.
func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating link dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "links.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening link db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS links (
		local_user_id  TEXT PRIMARY KEY,
		remote_user_id TEXT NOT NULL,
		linked_at      TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS link_tokens (
		token          TEXT PRIMARY KEY,
		remote_user_id TEXT NOT NULL,
		issued_at      TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating link tables: %w", err)
	}

	return &Store{db: db}, nil
}

// RemoteUserID returns the stored remote identity for a local user, or ""
// when the user never linked.
func (s *Store) RemoteUserID(ctx context.Context, localUserID string) (string, error) {
	var remote string
	err := s.db.QueryRowContext(ctx,
		`SELECT remote_user_id FROM links WHERE local_user_id = ?`, localUserID,
	).Scan(&remote)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying link for %s: %w", localUserID, err)
	}
	return remote, nil
}

// SaveLink records a local→remote mapping, replacing any previous one.
func (s *Store) SaveLink(ctx context.Context, localUserID, remoteUserID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO links (local_user_id, remote_user_id) VALUES (?, ?)`,
		localUserID, remoteUserID,
	)
	if err != nil {
		return fmt.Errorf("saving link for %s: %w", localUserID, err)
	}
	return nil
}

// SaveToken records an issued link token so the vendor's webhook callback can
// be matched back to a remote user.
func (s *Store) SaveToken(ctx context.Context, token, remoteUserID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO link_tokens (token, remote_user_id) VALUES (?, ?)`,
		token, remoteUserID,
	)
	if err != nil {
		return fmt.Errorf("saving link token: %w", err)
	}
	return nil
}

// PruneTokens deletes tokens issued before the cutoff.
func (s *Store) PruneTokens(ctx context.Context, cutoff time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM link_tokens WHERE issued_at < ?`, cutoff.UTC(),
	)
	return err
}

// Close closes the link database.
func (s *Store) Close() error {
	return s.db.Close()
}
