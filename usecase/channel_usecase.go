package usecase

import (
	"context"
	"errors"
	"fmt"

	"collab-notifier/domain/dto"
	"collab-notifier/domain/model"
	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"
)

var ErrEmptyBlacklistUpdate = errors.New("blacklist update sets no flag")

type IChannelUsecase interface {
	// CrawlChannels refreshes the registry from the channel list page and
	// returns how many channels were written.
	CrawlChannels(ctx context.Context, listURL string) (int, error)
	GetChannel(ctx context.Context, rawURL string) (*model.ChannelRecord, error)
	UpdateBlacklist(ctx context.Context, req dto.ChannelBlacklistRequest) (*model.ChannelRecord, error)
}

type ChannelUsecase struct {
	webpage  repository.IWebpage
	parser   repository.IChannelListParser
	channels repository.IChannel
}

func NewChannelUsecase(webpage repository.IWebpage, parser repository.IChannelListParser, channels repository.IChannel) IChannelUsecase {
	return &ChannelUsecase{webpage: webpage, parser: parser, channels: channels}
}

func (u *ChannelUsecase) CrawlChannels(ctx context.Context, listURL string) (int, error) {
	page, err := u.webpage.Fetch(ctx, listURL)
	if err != nil {
		return 0, err
	}
	if !page.OK() {
		logger.GetLogger().WithFields(map[string]interface{}{
			"url":    listURL,
			"status": page.StatusCode,
		}).Warn("Channel list returned an error status")
		return 0, fmt.Errorf("%w: %s returned %d", ErrPageUnavailable, listURL, page.StatusCode)
	}

	channels, err := u.parser.ParseChannelList(page.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse channel list: %w", err)
	}

	stored := 0
	for i := range channels {
		if err := u.channels.UpsertChannelListing(ctx, &channels[i]); err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{
				"error": err,
				"url":   channels[i].URL,
			}).Error("Failed to store channel")
			continue
		}
		stored++
	}

	logger.GetLogger().WithFields(map[string]interface{}{"parsed": len(channels), "stored": stored}).Info("Channel list crawled")
	return stored, nil
}

// GetChannel returns model.ErrNotFound for an unregistered channel.
func (u *ChannelUsecase) GetChannel(ctx context.Context, rawURL string) (*model.ChannelRecord, error) {
	url, err := model.ParseChannelURL(rawURL)
	if err != nil {
		return nil, err
	}
	channel, err := u.channels.GetChannel(ctx, url)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, model.ErrNotFound
	}
	return channel, nil
}

func (u *ChannelUsecase) UpdateBlacklist(ctx context.Context, req dto.ChannelBlacklistRequest) (*model.ChannelRecord, error) {
	url, err := model.ParseChannelURL(req.URL)
	if err != nil {
		return nil, err
	}
	update := model.BlacklistUpdate{
		IsHostBlacklisted:  req.IsHostBlacklisted,
		IsGuestBlacklisted: req.IsGuestBlacklisted,
	}
	if update.Empty() {
		return nil, ErrEmptyBlacklistUpdate
	}

	channel, err := u.channels.UpdateBlacklist(ctx, url, update)
	if err != nil {
		return nil, err
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"url":                url,
		"isHostBlacklisted":  channel.IsHostBlacklisted,
		"isGuestBlacklisted": channel.IsGuestBlacklisted,
	}).Info("Channel blacklist updated")
	return channel, nil
}
