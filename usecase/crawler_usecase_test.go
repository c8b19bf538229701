package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"collab-notifier/domain/dto"
	"collab-notifier/domain/model"
	"collab-notifier/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	listingURL    = "https://example.com/antenna/"
	snapshotTopic = "snapshot-stored"
	bucket        = "collab-snapshots"
)

func TestCrawlerUsecase_CrawlListing(t *testing.T) {
	webpage := new(MockWebpage)
	snapshots := new(MockSnapshot)
	bus := new(MockEventBus)
	crawledAt := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	wantKey := "antenna/251792841599.json.gz"

	webpage.On("Fetch", mock.Anything, listingURL).Return(&model.Page{
		URL:        listingURL,
		StatusCode: http.StatusOK,
		Body:       "<html></html>",
		Date:       crawledAt,
	}, nil)

	var stored []byte
	snapshots.On("PutSnapshot", mock.Anything, wantKey, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(2).([]byte) }).
		Return(nil)
	var published []byte
	bus.On("Publish", mock.Anything, snapshotTopic, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(2).([]byte) }).
		Return("server-1", nil)

	uc := usecase.NewCrawlerUsecase(webpage, snapshots, bus, bucket, snapshotTopic)
	event, err := uc.CrawlListing(context.Background(), listingURL, "antenna")

	require.NoError(t, err)
	assert.Equal(t, wantKey, event.Key)
	assert.Equal(t, bucket, event.Bucket)

	item, err := model.DecodePageItem(stored)
	require.NoError(t, err)
	assert.Equal(t, listingURL, item.URL)
	assert.Equal(t, "<html></html>", item.Body)
	assert.True(t, crawledAt.Equal(item.CrawledAt))

	var got dto.SnapshotStoredEvent
	require.NoError(t, json.Unmarshal(published, &got))
	assert.Equal(t, wantKey, got.Key)
	assert.Equal(t, bucket, got.Bucket)
}

func TestCrawlerUsecase_CrawlListing_WithoutDateHeader(t *testing.T) {
	webpage := new(MockWebpage)
	snapshots := new(MockSnapshot)
	webpage.On("Fetch", mock.Anything, listingURL).Return(&model.Page{URL: listingURL, StatusCode: http.StatusOK, Body: "x"}, nil)
	snapshots.On("PutSnapshot", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) == len("antenna/000000000000.json.gz") && model.SnapshotPrefix(key) == "antenna"
	}), mock.Anything).Return(nil)

	uc := usecase.NewCrawlerUsecase(webpage, snapshots, nil, bucket, snapshotTopic)
	event, err := uc.CrawlListing(context.Background(), listingURL, "/antenna/")

	require.NoError(t, err)
	assert.False(t, event.CrawledAt.IsZero())
	snapshots.AssertExpectations(t)
}

func TestCrawlerUsecase_CrawlListing_ErrorStatus(t *testing.T) {
	webpage := new(MockWebpage)
	snapshots := new(MockSnapshot)
	bus := new(MockEventBus)
	webpage.On("Fetch", mock.Anything, listingURL).Return(&model.Page{URL: listingURL, StatusCode: http.StatusBadGateway, Body: "bad gateway"}, nil)

	uc := usecase.NewCrawlerUsecase(webpage, snapshots, bus, bucket, snapshotTopic)
	_, err := uc.CrawlListing(context.Background(), listingURL, "antenna")

	assert.ErrorIs(t, err, usecase.ErrPageUnavailable)
	snapshots.AssertNotCalled(t, "PutSnapshot", mock.Anything, mock.Anything, mock.Anything)
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCrawlerUsecase_CrawlListing_StoreFailure(t *testing.T) {
	webpage := new(MockWebpage)
	snapshots := new(MockSnapshot)
	bus := new(MockEventBus)
	webpage.On("Fetch", mock.Anything, listingURL).Return(&model.Page{URL: listingURL, StatusCode: http.StatusOK, Body: "x"}, nil)
	snapshots.On("PutSnapshot", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	uc := usecase.NewCrawlerUsecase(webpage, snapshots, bus, bucket, snapshotTopic)
	_, err := uc.CrawlListing(context.Background(), listingURL, "")

	assert.Error(t, err)
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
