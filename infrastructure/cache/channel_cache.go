package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"collab-notifier/domain/model"
	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const (
	channelKeyPrefix = "channel:"
	// stored for channels missing from the registry
	missingChannel = "-"
)

// Store is the subset of the Redis client used by the cache.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ChannelCache is a read-through cache in front of the channel registry.
// Redis failures fall back to the registry.
type ChannelCache struct {
	next  repository.IChannel
	store Store
	ttl   time.Duration
}

func NewChannelCache(next repository.IChannel, store Store, ttl time.Duration) repository.IChannel {
	if store == nil {
		return next
	}
	return &ChannelCache{next: next, store: store, ttl: ttl}
}

func channelKey(url model.ChannelURL) string {
	return channelKeyPrefix + url.String()
}

func (c *ChannelCache) GetChannel(ctx context.Context, url model.ChannelURL) (*model.ChannelRecord, error) {
	key := channelKey(url)
	raw, err := c.store.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if string(raw) == missingChannel {
			return nil, nil
		}
		var channel model.ChannelRecord
		if jsonErr := json.Unmarshal(raw, &channel); jsonErr == nil {
			return &channel, nil
		}
		logger.GetLogger().WithField("key", key).Warn("Discarding unreadable cache entry")
	case errors.Is(err, redis.Nil):
	default:
		logger.GetLogger().WithField("error", err).Warn("Channel cache read failed")
	}

	channel, err := c.next.GetChannel(ctx, url)
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, channel)
	return channel, nil
}

func (c *ChannelCache) put(ctx context.Context, key string, channel *model.ChannelRecord) {
	var value []byte
	if channel == nil {
		value = []byte(missingChannel)
	} else {
		var err error
		if value, err = json.Marshal(channel); err != nil {
			return
		}
	}
	if err := c.store.Set(ctx, key, value, c.ttl).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Channel cache write failed")
	}
}

func (c *ChannelCache) invalidate(ctx context.Context, url model.ChannelURL) {
	if err := c.store.Del(ctx, channelKey(url)).Err(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Channel cache invalidation failed")
	}
}

func (c *ChannelCache) UpsertChannelListing(ctx context.Context, channel *model.ChannelRecord) error {
	if err := c.next.UpsertChannelListing(ctx, channel); err != nil {
		return err
	}
	c.invalidate(ctx, channel.URL)
	return nil
}

func (c *ChannelCache) UpdateBlacklist(ctx context.Context, url model.ChannelURL, update model.BlacklistUpdate) (*model.ChannelRecord, error) {
	channel, err := c.next.UpdateBlacklist(ctx, url, update)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, url)
	return channel, nil
}
