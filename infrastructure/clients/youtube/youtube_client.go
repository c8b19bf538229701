package youtube

import (
	"context"
	"fmt"
	"time"

	"collab-notifier/domain/model"
	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const defaultLiveBroadcastContent = "none"

// Client represents YouTube Data API client
type Client struct {
	service *youtube.Service
}

// Config represents YouTube API configuration
type Config struct {
	APIKey string `json:"api_key"`
}

// NewYouTubeClient creates a read-only client authenticated with an API key.
// Extra options are passed to the service, e.g. a custom endpoint in tests.
func NewYouTubeClient(ctx context.Context, config *Config, opts ...option.ClientOption) (repository.IYouTube, error) {
	if config.APIKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(config.APIKey)}, opts...)
	}
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// GetVideoDetail fetches the snippet of stub's video. The counts come from
// the stub since the listing already carries them.
func (c *Client) GetVideoDetail(ctx context.Context, stub model.VideoStub) (*model.VideoRecord, error) {
	id, err := stub.URL.ID()
	if err != nil {
		return nil, err
	}

	resp, err := c.service.Videos.List([]string{"snippet"}).Id(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video %s: %w", id, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, nil
	}

	video := snippetToRecord(resp.Items[0].Snippet)
	video.URL = stub.URL
	video.WatchCount = stub.WatchCount
	video.LikeCount = stub.LikeCount
	return video, nil
}

func snippetToRecord(s *youtube.VideoSnippet) *model.VideoRecord {
	video := &model.VideoRecord{
		ChannelTitle:         model.StringPtr(s.ChannelTitle),
		Title:                model.StringPtr(s.Title),
		Description:          model.StringPtr(s.Description),
		Tags:                 s.Tags,
		LiveBroadcastContent: model.StringPtr(s.LiveBroadcastContent),
		CategoryID:           model.StringPtr(s.CategoryId),
		DefaultLanguage:      model.StringPtr(s.DefaultLanguage),
	}
	if video.Tags == nil {
		video.Tags = []string{}
	}
	if video.LiveBroadcastContent == nil {
		video.LiveBroadcastContent = model.StringPtr(defaultLiveBroadcastContent)
	}
	if s.ChannelId != "" {
		if u, err := model.ChannelURLFromID(s.ChannelId); err == nil {
			video.ChannelURL = &u
		} else {
			logger.GetLogger().WithField("channelId", s.ChannelId).Warn("Ignoring unexpected channel id")
		}
	}
	if s.PublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
			t = t.UTC()
			video.PublishedAt = &t
		}
	}
	if s.Localized != nil {
		video.Localized = &model.Localized{
			Title:       model.StringPtr(s.Localized.Title),
			Description: model.StringPtr(s.Localized.Description),
		}
	}
	video.Thumbnails = thumbnails(s.Thumbnails)
	return video
}

func thumbnails(d *youtube.ThumbnailDetails) map[string]model.Thumbnail {
	if d == nil {
		return nil
	}
	out := make(map[string]model.Thumbnail)
	for size, th := range map[string]*youtube.Thumbnail{
		"default":  d.Default,
		"medium":   d.Medium,
		"high":     d.High,
		"standard": d.Standard,
		"maxres":   d.Maxres,
	} {
		if th == nil {
			continue
		}
		out[size] = model.Thumbnail{URL: model.StringPtr(th.Url), Width: th.Width, Height: th.Height}
	}
	return out
}
