package hoststore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// PostgresStore is the system-of-record adapter: one row per context
// key, upserted on every Save, so only the latest blob is kept and
// updated_at records when it was written. It is the backend a host
// should point at when it needs the blob to survive a restart.
type PostgresStore struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPostgresStore wraps db. timeout bounds every query issued through
// this store, mirroring the teacher's per-repo fixed deadline.
func NewPostgresStore(db *sqlx.DB, timeout time.Duration) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout}
}

type modelStateRow struct {
	Key     string `db:"key"`
	Blob    []byte `db:"blob"`
	WriteID string `db:"write_id"`
}

// Load returns the most recently saved blob for key.
func (p *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var row modelStateRow
	err := p.db.GetContext(ctx, &row, `
		SELECT key, blob, write_id
		FROM ratingengine_model_states
		WHERE key = $1`, key)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("hoststore: postgres load: %w", err)
	}
	return row.Blob, nil
}

// Save upserts blob for key, stamping a fresh write id on every call.
func (p *PostgresStore) Save(ctx context.Context, key string, blob []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	writeID := newWriteID()
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO ratingengine_model_states (key, blob, write_id, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE SET
			blob = EXCLUDED.blob,
			write_id = EXCLUDED.write_id,
			updated_at = EXCLUDED.updated_at`,
		key, blob, writeID)
	if err != nil {
		return "", fmt.Errorf("hoststore: postgres save: %w", err)
	}
	return writeID, nil
}
