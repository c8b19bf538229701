package usecase_test

import (
	"context"
	"strings"

	"collab-notifier/domain/model"
	"collab-notifier/domain/repository"

	"github.com/stretchr/testify/mock"
)

type MockSnapshot struct {
	mock.Mock
}

func (m *MockSnapshot) PutSnapshot(ctx context.Context, key string, body []byte) error {
	args := m.Called(ctx, key, body)
	return args.Error(0)
}

func (m *MockSnapshot) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSnapshot) ListKeys(ctx context.Context, prefix, startAfter string, limit int) ([]string, error) {
	args := m.Called(ctx, prefix, startAfter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockYouTube struct {
	mock.Mock
}

func (m *MockYouTube) GetVideoDetail(ctx context.Context, stub model.VideoStub) (*model.VideoRecord, error) {
	args := m.Called(ctx, stub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoRecord), args.Error(1)
}

type MockVideo struct {
	mock.Mock
}

func (m *MockVideo) GetVideo(ctx context.Context, url model.VideoURL) (*model.VideoRecord, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoRecord), args.Error(1)
}

func (m *MockVideo) InsertVideo(ctx context.Context, video *model.VideoRecord) (bool, error) {
	args := m.Called(ctx, video)
	return args.Bool(0), args.Error(1)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, topic string, payload []byte) (string, error) {
	args := m.Called(ctx, topic, payload)
	return args.String(0), args.Error(1)
}

func (m *MockEventBus) Receive(ctx context.Context, subscription string, handler repository.MessageHandler) error {
	args := m.Called(ctx, subscription, handler)
	return args.Error(0)
}

type MockWebpage struct {
	mock.Mock
}

func (m *MockWebpage) Fetch(ctx context.Context, url string) (*model.Page, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Page), args.Error(1)
}

type MockChannel struct {
	MockChannelReader
}

func (m *MockChannel) UpsertChannelListing(ctx context.Context, channel *model.ChannelRecord) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

func (m *MockChannel) UpdateBlacklist(ctx context.Context, url model.ChannelURL, update model.BlacklistUpdate) (*model.ChannelRecord, error) {
	args := m.Called(ctx, url, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelRecord), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

// listingParser parses a body of whitespace separated video ids.
type listingParser struct{}

func (listingParser) ParseListing(html string) ([]model.VideoStub, error) {
	var stubs []model.VideoStub
	for _, id := range strings.Fields(html) {
		stubs = append(stubs, model.VideoStub{URL: model.VideoURL("https://www.youtube.com/watch?v=" + id)})
	}
	return stubs, nil
}

type channelListParser struct {
	channels []model.ChannelRecord
	err      error
}

func (p channelListParser) ParseChannelList(string) ([]model.ChannelRecord, error) {
	return p.channels, p.err
}
