package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"collab-notifier/domain/dto"
	"collab-notifier/domain/model"
	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"
	"collab-notifier/infrastructure/utils"
)

// ErrPageUnavailable is returned when a crawled page does not answer 2xx.
var ErrPageUnavailable = errors.New("page unavailable")

type ICrawlerUsecase interface {
	// CrawlListing stores a snapshot of the listing at url under prefix and
	// announces it on the snapshot topic.
	CrawlListing(ctx context.Context, url, prefix string) (*dto.SnapshotStoredEvent, error)
}

type CrawlerUsecase struct {
	webpage       repository.IWebpage
	snapshots     repository.ISnapshot
	bus           repository.IEventBus
	bucket        string
	snapshotTopic string
}

func NewCrawlerUsecase(webpage repository.IWebpage, snapshots repository.ISnapshot, bus repository.IEventBus, bucket, snapshotTopic string) ICrawlerUsecase {
	return &CrawlerUsecase{
		webpage:       webpage,
		snapshots:     snapshots,
		bus:           bus,
		bucket:        bucket,
		snapshotTopic: snapshotTopic,
	}
}

func (u *CrawlerUsecase) CrawlListing(ctx context.Context, url, prefix string) (*dto.SnapshotStoredEvent, error) {
	page, err := u.webpage.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if !page.OK() {
		logger.GetLogger().WithFields(map[string]interface{}{
			"url":    url,
			"status": page.StatusCode,
			"body":   page.Body,
		}).Warn("Listing page returned an error status")
		return nil, fmt.Errorf("%w: %s returned %d", ErrPageUnavailable, url, page.StatusCode)
	}

	crawledAt := page.Date
	if crawledAt.IsZero() {
		crawledAt = utils.GetCurrentTime()
	}
	crawledAt = crawledAt.UTC()

	body, err := model.EncodePageItem(model.PageItem{URL: url, Body: page.Body, CrawledAt: crawledAt})
	if err != nil {
		return nil, err
	}
	key := model.SnapshotKey(prefix, crawledAt)
	if err := u.snapshots.PutSnapshot(ctx, key, body); err != nil {
		return nil, err
	}

	event := &dto.SnapshotStoredEvent{
		Bucket:    u.bucket,
		Key:       key,
		SourceURL: url,
		CrawledAt: crawledAt,
	}
	if u.bus != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal snapshot event: %w", err)
		}
		if _, err := u.bus.Publish(ctx, u.snapshotTopic, payload); err != nil {
			return event, fmt.Errorf("snapshot %s stored but not announced: %w", key, err)
		}
	}

	logger.GetLogger().WithFields(map[string]interface{}{"url": url, "key": key}).Info("Listing crawled")
	return event, nil
}
