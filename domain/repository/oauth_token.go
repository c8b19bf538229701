package repository

import (
	"context"

	"collab-notifier/domain/model"
)

// IOAuthToken keeps rotated OAuth tokens across restarts.
// GetToken returns model.ErrNotFound when nothing was stored for platform.
type IOAuthToken interface {
	GetToken(ctx context.Context, platform string) (*model.OAuthToken, error)
	UpsertToken(ctx context.Context, token *model.OAuthToken) error
}
