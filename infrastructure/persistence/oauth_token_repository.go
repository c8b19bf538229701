package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"collab-notifier/domain/model"
	"collab-notifier/infrastructure/utils"
)

// EnsureOAuthTokenSchema creates the oauth_tokens table if it does not exist
func EnsureOAuthTokenSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS oauth_tokens (
        platform TEXT PRIMARY KEY,
        access_token TEXT NOT NULL,
        refresh_token TEXT NOT NULL,
        token_type TEXT NOT NULL,
        expires_at TIMESTAMPTZ NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create oauth_tokens table: %w", err)
	}
	return nil
}

const (
	upsertTokenQuery = `INSERT INTO oauth_tokens (platform, access_token, refresh_token, token_type, expires_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (platform) DO UPDATE SET
		access_token = EXCLUDED.access_token,
		refresh_token = EXCLUDED.refresh_token,
		token_type = EXCLUDED.token_type,
		expires_at = EXCLUDED.expires_at,
		updated_at = EXCLUDED.updated_at`

	getTokenQuery = `SELECT platform, access_token, refresh_token, token_type, expires_at, updated_at
	FROM oauth_tokens WHERE platform = $1`
)

type OAuthTokenRepository struct{ db *sql.DB }

func NewOAuthTokenRepository(db *sql.DB) *OAuthTokenRepository { return &OAuthTokenRepository{db: db} }

func (r *OAuthTokenRepository) UpsertToken(ctx context.Context, t *model.OAuthToken) error {
	if r.db == nil {
		return fmt.Errorf("token store: %w", ErrNotConfigured)
	}
	t.UpdatedAt = utils.GetCurrentTime()
	_, err := r.db.ExecContext(ctx, upsertTokenQuery, t.Platform, t.AccessToken, t.RefreshToken, t.TokenType, t.ExpiresAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to store %s token: %w", t.Platform, err)
	}
	return nil
}

func (r *OAuthTokenRepository) GetToken(ctx context.Context, platform string) (*model.OAuthToken, error) {
	if r.db == nil {
		return nil, fmt.Errorf("token store: %w", ErrNotConfigured)
	}
	tok := &model.OAuthToken{}
	var exp sql.NullTime
	err := r.db.QueryRowContext(ctx, getTokenQuery, platform).
		Scan(&tok.Platform, &tok.AccessToken, &tok.RefreshToken, &tok.TokenType, &exp, &tok.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s token: %w", platform, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s token: %w", platform, err)
	}
	if exp.Valid {
		tok.ExpiresAt = &exp.Time
	}
	return tok, nil
}
