package persistence

import (
	"context"
	"errors"
	"fmt"

	"collab-notifier/domain/model"
	"collab-notifier/infrastructure/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ChannelRepository is the channel registry backed by MongoDB.
type ChannelRepository struct {
	collection *mongo.Collection
}

func NewChannelRepository(db *mongo.Database) *ChannelRepository {
	if db == nil {
		return &ChannelRepository{}
	}
	return &ChannelRepository{collection: db.Collection(channelCollection)}
}

func (r *ChannelRepository) GetChannel(ctx context.Context, url model.ChannelURL) (*model.ChannelRecord, error) {
	if r.collection == nil {
		return nil, fmt.Errorf("channel store: %w", ErrNotConfigured)
	}
	var doc channelDocument
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: url.String()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel %s: %w", url, err)
	}
	return decodeChannel(doc), nil
}

func (r *ChannelRepository) UpsertChannelListing(ctx context.Context, channel *model.ChannelRecord) error {
	if r.collection == nil {
		return fmt.Errorf("channel store: %w", ErrNotConfigured)
	}
	set := bson.D{
		{Key: "name", Value: channel.Name},
		{Key: "affiliations", Value: channel.Affiliations},
		{Key: "updated_at", Value: utils.GetCurrentTime()},
	}
	if channel.Thumbnail != nil {
		set = append(set, bson.E{Key: "thumbnail", Value: *channel.Thumbnail})
	}
	_, err := r.collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: channel.URL.String()}},
		bson.D{{Key: "$set", Value: set}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert channel %s: %w", channel.URL, err)
	}
	return nil
}

func (r *ChannelRepository) UpdateBlacklist(ctx context.Context, url model.ChannelURL, update model.BlacklistUpdate) (*model.ChannelRecord, error) {
	if r.collection == nil {
		return nil, fmt.Errorf("channel store: %w", ErrNotConfigured)
	}
	set := bson.D{{Key: "updated_at", Value: utils.GetCurrentTime()}}
	if update.IsHostBlacklisted != nil {
		set = append(set, bson.E{Key: "is_host_blacklisted", Value: *update.IsHostBlacklisted})
	}
	if update.IsGuestBlacklisted != nil {
		set = append(set, bson.E{Key: "is_guest_blacklisted", Value: *update.IsGuestBlacklisted})
	}

	var doc channelDocument
	err := r.collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: url.String()}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("channel %s: %w", url, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update channel %s: %w", url, err)
	}
	return decodeChannel(doc), nil
}
