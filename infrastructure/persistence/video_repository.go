package persistence

import (
	"context"
	"errors"
	"fmt"

	"collab-notifier/domain/model"
	"collab-notifier/infrastructure/logger"
	"collab-notifier/infrastructure/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// VideoRepository stores video records in MongoDB keyed by URL.
type VideoRepository struct {
	collection *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	if db == nil {
		return &VideoRepository{}
	}
	return &VideoRepository{collection: db.Collection(videoCollection)}
}

func (r *VideoRepository) GetVideo(ctx context.Context, url model.VideoURL) (*model.VideoRecord, error) {
	if r.collection == nil {
		return nil, fmt.Errorf("video store: %w", ErrNotConfigured)
	}
	var doc videoDocument
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: url.String()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("video %s: %w", url, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video %s: %w", url, err)
	}
	return decodeVideo(doc)
}

func (r *VideoRepository) InsertVideo(ctx context.Context, video *model.VideoRecord) (bool, error) {
	if r.collection == nil {
		return false, fmt.Errorf("video store: %w", ErrNotConfigured)
	}
	_, err := r.collection.InsertOne(ctx, encodeVideo(video, utils.GetCurrentTime()))
	if mongo.IsDuplicateKeyError(err) {
		logger.GetLogger().WithField("url", video.URL).Debug("video already stored")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert video %s: %w", video.URL, err)
	}
	return true, nil
}
