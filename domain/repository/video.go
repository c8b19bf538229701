package repository

import (
	"context"

	"collab-notifier/domain/model"
)

// IVideo stores enriched video records keyed by URL.
type IVideo interface {
	// GetVideo returns model.ErrNotFound when the URL is unknown.
	GetVideo(ctx context.Context, url model.VideoURL) (*model.VideoRecord, error)
	// InsertVideo stores video unless a record with the same URL exists.
	// created reports whether this call wrote it.
	InsertVideo(ctx context.Context, video *model.VideoRecord) (created bool, err error)
}
