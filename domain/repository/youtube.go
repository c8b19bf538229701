package repository

import (
	"context"

	"collab-notifier/domain/model"
)

// IYouTube defines the YouTube Data API operations used by the pipeline
type IYouTube interface {
	// GetVideoDetail returns nil without error when the video does not exist.
	GetVideoDetail(ctx context.Context, stub model.VideoStub) (*model.VideoRecord, error)
}
