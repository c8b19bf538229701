package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"collab-notifier/domain/model"
	"collab-notifier/infrastructure/logger"
	"collab-notifier/infrastructure/utils"
)

// EnsureSnapshotSchema creates the snapshot object table if it does not exist
func EnsureSnapshotSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS listing_snapshots (
        bucket TEXT NOT NULL,
        object_key TEXT NOT NULL,
        body BYTEA NOT NULL,
        created_at TIMESTAMPTZ NOT NULL,
        PRIMARY KEY (bucket, object_key)
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create listing_snapshots table: %w", err)
	}
	return nil
}

const (
	putSnapshotQuery = `INSERT INTO listing_snapshots (bucket, object_key, body, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (bucket, object_key) DO UPDATE SET body = EXCLUDED.body, created_at = EXCLUDED.created_at`

	getSnapshotQuery = `SELECT body FROM listing_snapshots WHERE bucket = $1 AND object_key = $2`

	// Keys directly under the prefix only, like a delimited object listing,
	// compared byte-wise whatever the database locale.
	listKeysQuery = `SELECT object_key FROM listing_snapshots
	WHERE bucket = $1 AND object_key COLLATE "C" > $2
	AND left(object_key, length($3)) = $3
	AND strpos(substr(object_key, length($3) + 1), '/') = 0
	ORDER BY object_key COLLATE "C"
	LIMIT $4`
)

// SnapshotRepository stores listing snapshots in PostgreSQL, one bucket per repository.
type SnapshotRepository struct {
	db     *sql.DB
	bucket string
}

func NewSnapshotRepository(db *sql.DB, bucket string) *SnapshotRepository {
	return &SnapshotRepository{db: db, bucket: bucket}
}

func (r *SnapshotRepository) PutSnapshot(ctx context.Context, key string, body []byte) error {
	if r.db == nil {
		return fmt.Errorf("snapshot store: %w", ErrNotConfigured)
	}
	if _, err := r.db.ExecContext(ctx, putSnapshotQuery, r.bucket, key, body, utils.GetCurrentTime()); err != nil {
		return fmt.Errorf("failed to put snapshot %s: %w", key, err)
	}
	logger.GetLogger().WithFields(map[string]interface{}{"bucket": r.bucket, "key": key, "size": len(body)}).Info("Snapshot stored")
	return nil
}

func (r *SnapshotRepository) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	if r.db == nil {
		return nil, fmt.Errorf("snapshot store: %w", ErrNotConfigured)
	}
	var body []byte
	err := r.db.QueryRowContext(ctx, getSnapshotQuery, r.bucket, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", key, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %s: %w", key, err)
	}
	return body, nil
}

func (r *SnapshotRepository) ListKeys(ctx context.Context, prefix, startAfter string, limit int) ([]string, error) {
	if r.db == nil {
		return nil, fmt.Errorf("snapshot store: %w", ErrNotConfigured)
	}
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	rows, err := r.db.QueryContext(ctx, listKeysQuery, r.bucket, startAfter, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return keys, nil
}
