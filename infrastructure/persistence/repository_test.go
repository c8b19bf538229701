package persistence

import (
	"context"
	"testing"

	"collab-notifier/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestChannelRepository_WithoutDatabase(t *testing.T) {
	repository := NewChannelRepository(nil)
	url := model.ChannelURL("https://www.youtube.com/channel/UC1")

	// An unreachable store must not look like an unregistered channel.
	channel, err := repository.GetChannel(context.Background(), url)
	assert.Nil(t, channel)
	assert.ErrorIs(t, err, ErrNotConfigured)

	err = repository.UpsertChannelListing(context.Background(), &model.ChannelRecord{URL: url, Name: "name"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	yes := true
	_, err = repository.UpdateBlacklist(context.Background(), url, model.BlacklistUpdate{IsHostBlacklisted: &yes})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestVideoRepository_WithoutDatabase(t *testing.T) {
	repository := NewVideoRepository(nil)
	url := model.VideoURL("https://www.youtube.com/watch?v=KNi82VggtBo")

	_, err := repository.GetVideo(context.Background(), url)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.NotErrorIs(t, err, model.ErrNotFound)

	created, err := repository.InsertVideo(context.Background(), &model.VideoRecord{URL: url})
	assert.False(t, created)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
