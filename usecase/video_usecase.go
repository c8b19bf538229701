package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"collab-notifier/domain/dto"
	"collab-notifier/domain/model"
	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"

	"golang.org/x/sync/errgroup"
)

const defaultEnrichConcurrency = 4

// IVideoUsecase turns a stored listing snapshot into persisted video records.
type IVideoUsecase interface {
	HandleSnapshotStored(ctx context.Context, event dto.SnapshotStoredEvent) ([]model.VideoRecord, error)
}

type VideoUsecase struct {
	snapshots   repository.ISnapshot
	parsers     map[string]repository.IListingParser
	youtube     repository.IYouTube
	videos      repository.IVideo
	bus         repository.IEventBus
	videoTopic  string
	concurrency int
}

// NewVideoUsecase builds the video pipeline. parsers is keyed by snapshot
// prefix. bus may be nil, in which case no VideoChanged events are published.
func NewVideoUsecase(
	snapshots repository.ISnapshot,
	parsers map[string]repository.IListingParser,
	youtube repository.IYouTube,
	videos repository.IVideo,
	bus repository.IEventBus,
	videoTopic string,
	concurrency int,
) IVideoUsecase {
	if concurrency <= 0 {
		concurrency = defaultEnrichConcurrency
	}
	return &VideoUsecase{
		snapshots:   snapshots,
		parsers:     parsers,
		youtube:     youtube,
		videos:      videos,
		bus:         bus,
		videoTopic:  videoTopic,
		concurrency: concurrency,
	}
}

// HandleSnapshotStored diffs the snapshot at event.Key against the one
// crawled just before it and stores every video that is new. It returns the
// records inserted by this call, sorted by URL. An error after the diff means
// at least one VideoChanged event could not be published.
func (u *VideoUsecase) HandleSnapshotStored(ctx context.Context, event dto.SnapshotStoredEvent) ([]model.VideoRecord, error) {
	prefix := model.SnapshotPrefix(event.Key)
	parser, ok := u.parsers[prefix]
	if !ok {
		return nil, fmt.Errorf("no listing parser for prefix %q", prefix)
	}

	current, err := u.loadStubs(ctx, parser, event.Key)
	if err != nil {
		return nil, err
	}

	// Keys sort newest first, so the previous crawl is the next key.
	keys, err := u.snapshots.ListKeys(ctx, prefix, event.Key, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to find previous snapshot: %w", err)
	}
	var previous *model.VideoStubSet
	if len(keys) > 0 {
		stubs, err := u.loadStubs(ctx, parser, keys[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load previous snapshot: %w", err)
		}
		previous = &stubs
	}

	newStubs := ComputeNewVideos(current, previous)
	logger.GetLogger().WithFields(map[string]interface{}{
		"key":         event.Key,
		"previousKey": keys,
		"current":     len(current),
		"new":         len(newStubs),
	}).Info("Snapshot diffed")

	created, err := u.enrich(ctx, newStubs)
	if err != nil {
		return created, fmt.Errorf("failed to announce new videos: %w", err)
	}
	return created, nil
}

func (u *VideoUsecase) loadStubs(ctx context.Context, parser repository.IListingParser, key string) (model.VideoStubSet, error) {
	body, err := u.snapshots.GetSnapshot(ctx, key)
	if err != nil {
		return nil, err
	}
	item, err := model.DecodePageItem(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	stubs, err := parser.ParseListing(item.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", key, err)
	}
	return model.NewVideoStubSet(stubs...), nil
}

// enrich fetches, stores and announces each stub on its own goroutine.
// A fetch or store failure only drops its own video. Failed announcements are
// returned so the snapshot event is delivered again.
func (u *VideoUsecase) enrich(ctx context.Context, stubs model.VideoStubSet) ([]model.VideoRecord, error) {
	var (
		mu        sync.Mutex
		created   []model.VideoRecord
		publishes []error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)

	for _, stub := range stubs {
		g.Go(func() error {
			record, isNew, err := u.storeVideo(gctx, stub)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				publishes = append(publishes, err)
			}
			if isNew {
				created = append(created, *record)
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(created, func(i, j int) bool { return created[i].URL < created[j].URL })
	return created, errors.Join(publishes...)
}

// storeVideo announces the record whether or not this call inserted it, so a
// redelivered snapshot retries announcements that failed the first time.
func (u *VideoUsecase) storeVideo(ctx context.Context, stub model.VideoStub) (*model.VideoRecord, bool, error) {
	log := logger.GetLogger().WithField("url", stub.URL)

	detail, err := u.youtube.GetVideoDetail(ctx, stub)
	if err != nil {
		log.WithField("error", err).Error("Failed to fetch video detail")
		return nil, false, nil
	}
	if detail == nil {
		log.Info("Video not found on YouTube")
		return nil, false, nil
	}

	record := detail.Normalize()
	created, err := u.videos.InsertVideo(ctx, &record)
	if err != nil {
		log.WithField("error", err).Error("Failed to store video")
		return nil, false, nil
	}
	if !created {
		log.Debug("Video already stored - announcing again")
	}

	if err := u.publishVideoChanged(ctx, &record); err != nil {
		log.WithField("error", err).Error("Failed to publish video changed event")
		return &record, created, fmt.Errorf("video %s: %w", record.URL, err)
	}
	return &record, created, nil
}

func (u *VideoUsecase) publishVideoChanged(ctx context.Context, record *model.VideoRecord) error {
	if u.bus == nil {
		return nil
	}
	payload, err := json.Marshal(dto.VideoChangedEvent{Video: *record})
	if err != nil {
		return fmt.Errorf("failed to marshal video changed event: %w", err)
	}
	_, err = u.bus.Publish(ctx, u.videoTopic, payload)
	return err
}

// SnapshotStoredHandler adapts uc to an event bus delivery. Payloads that are
// not valid events are logged and acknowledged.
func SnapshotStoredHandler(uc IVideoUsecase) repository.MessageHandler {
	return func(ctx context.Context, payload []byte) error {
		var event dto.SnapshotStoredEvent
		if err := json.Unmarshal(payload, &event); err != nil || event.Key == "" {
			logger.GetLogger().WithFields(map[string]interface{}{"error": err, "payload": string(payload)}).Error("Dropping malformed snapshot event")
			return nil
		}
		_, err := uc.HandleSnapshotStored(ctx, event)
		if errors.Is(err, model.ErrNotFound) {
			logger.GetLogger().WithFields(map[string]interface{}{"error": err, "key": event.Key}).Warn("Snapshot vanished before processing")
			return nil
		}
		return err
	}
}
