package repository

import (
	"context"

	"collab-notifier/domain/model"
)

// IChannelReader looks up registered channels.
// An unknown URL yields (nil, nil); errors are transport failures only.
type IChannelReader interface {
	GetChannel(ctx context.Context, url model.ChannelURL) (*model.ChannelRecord, error)
}

type IChannel interface {
	IChannelReader
	// UpsertChannelListing writes name, thumbnail and affiliations and leaves
	// the blacklist flags as they are.
	UpsertChannelListing(ctx context.Context, channel *model.ChannelRecord) error
	// UpdateBlacklist returns model.ErrNotFound when the channel is not registered.
	UpdateBlacklist(ctx context.Context, url model.ChannelURL, update model.BlacklistUpdate) (*model.ChannelRecord, error)
}
