package usecase

import (
	"context"
	"fmt"
	"sort"

	"collab-notifier/domain/model"
	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"
)

// ResolveParticipants returns the display names of the registered channels
// taking part in video: the host plus every non-blacklisted channel mentioned
// in the description. A blacklisted host yields an empty set. Channels missing
// from the registry are ignored; lookup failures are returned.
func ResolveParticipants(ctx context.Context, video *model.VideoRecord, lookup repository.IChannelReader) (map[string]struct{}, error) {
	participants := make(map[string]struct{})

	var host *model.ChannelRecord
	if video.ChannelURL != nil {
		var err error
		host, err = lookup.GetChannel(ctx, *video.ChannelURL)
		if err != nil {
			return nil, fmt.Errorf("failed to look up host channel %s: %w", *video.ChannelURL, err)
		}
	}
	if host != nil {
		if host.IsHostBlacklisted {
			logger.GetLogger().WithField("channel", host.URL).Debug("host channel is blacklisted")
			return participants, nil
		}
		addParticipant(participants, host)
	}

	for _, mention := range video.MentionedChannelURLs() {
		guest, err := lookup.GetChannel(ctx, mention)
		if err != nil {
			return nil, fmt.Errorf("failed to look up mentioned channel %s: %w", mention, err)
		}
		if guest == nil {
			logger.GetLogger().WithField("channel", mention).Debug("mentioned channel is not registered")
			continue
		}
		if guest.IsGuestBlacklisted {
			continue
		}
		addParticipant(participants, guest)
	}

	return participants, nil
}

func addParticipant(participants map[string]struct{}, channel *model.ChannelRecord) {
	if channel.Name == "" {
		return
	}
	participants[channel.Name] = struct{}{}
}

// SortedNames returns the participant names in ascending order.
func SortedNames(participants map[string]struct{}) []string {
	names := make([]string, 0, len(participants))
	for name := range participants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
