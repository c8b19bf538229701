package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"collab-notifier/domain/dto"
	"collab-notifier/domain/model"
	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"
)

// minParticipants is the smallest participant count worth announcing.
const minParticipants = 2

type INotifierUsecase interface {
	// HandleVideoChanged announces video when it is a collaboration. Publishing
	// failures are logged and swallowed.
	HandleVideoChanged(ctx context.Context, video *model.VideoRecord) error
	// Preview shows what HandleVideoChanged would post for a stored video.
	Preview(ctx context.Context, rawURL string) (*dto.NotifyPreviewResponse, error)
}

type NotifierUsecase struct {
	channels  repository.IChannelReader
	videos    repository.IVideo
	publisher repository.IPublisher
	validator *TweetValidator
}

func NewNotifierUsecase(channels repository.IChannelReader, videos repository.IVideo, publisher repository.IPublisher, validator *TweetValidator) INotifierUsecase {
	if validator == nil {
		validator = NewTweetValidator()
	}
	return &NotifierUsecase{
		channels:  channels,
		videos:    videos,
		publisher: publisher,
		validator: validator,
	}
}

func (u *NotifierUsecase) HandleVideoChanged(ctx context.Context, video *model.VideoRecord) error {
	log := logger.GetLogger().WithField("url", video.URL)

	participants, err := ResolveParticipants(ctx, video, u.channels)
	if err != nil {
		return err
	}
	if len(participants) < minParticipants {
		log.WithField("participants", len(participants)).Debug("Not a collaboration")
		return nil
	}

	// Texts the platform refused as too long are not offered again.
	rejected := make(map[string]struct{})
	isValid := func(text string) bool {
		if _, ok := rejected[text]; ok {
			return false
		}
		return u.validator.IsValid(text)
	}

	for {
		message, err := ComposeMessage(video, participants, isValid)
		if errors.Is(err, ErrNoValidVariant) {
			log.WithField("participants", SortedNames(participants)).Warn("No message variant fits, dropping notification")
			return nil
		}
		if err != nil {
			return err
		}

		postID, err := u.publisher.Publish(ctx, message)
		switch {
		case err == nil:
			log.WithFields(map[string]interface{}{"postId": postID, "participants": SortedNames(participants)}).Info("Collaboration announced")
			return nil
		case errors.Is(err, repository.ErrDuplicatePost):
			log.Info("Collaboration already announced")
			return nil
		case errors.Is(err, repository.ErrMessageTooLong):
			log.WithField("length", u.validator.WeightedLength(message)).Warn("Message rejected as too long, trying a shorter one")
			rejected[message] = struct{}{}
		default:
			log.WithField("error", err).Error("Failed to publish notification")
			return nil
		}
	}
}

func (u *NotifierUsecase) Preview(ctx context.Context, rawURL string) (*dto.NotifyPreviewResponse, error) {
	url, err := model.ParseVideoURL(rawURL)
	if err != nil {
		return nil, err
	}
	video, err := u.videos.GetVideo(ctx, url)
	if err != nil {
		return nil, err
	}
	participants, err := ResolveParticipants(ctx, video, u.channels)
	if err != nil {
		return nil, err
	}

	res := &dto.NotifyPreviewResponse{
		Video:        *video,
		Participants: SortedNames(participants),
		Eligible:     len(participants) >= minParticipants,
	}
	candidates, err := Candidates(video, participants)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		valid := u.validator.IsValid(c.Text)
		res.Candidates = append(res.Candidates, dto.NotifyCandidate{Variant: string(c.Variant), Text: c.Text, Valid: valid})
		if valid && res.Message == "" {
			res.Message = c.Text
		}
	}
	return res, nil
}

// VideoChangedHandler adapts uc to an event bus delivery. Payloads that are
// not valid events are logged and acknowledged.
func VideoChangedHandler(uc INotifierUsecase) repository.MessageHandler {
	return func(ctx context.Context, payload []byte) error {
		var event dto.VideoChangedEvent
		if err := json.Unmarshal(payload, &event); err != nil || event.Video.URL == "" {
			logger.GetLogger().WithFields(map[string]interface{}{"error": err, "payload": string(payload)}).Error("Dropping malformed video event")
			return nil
		}
		return uc.HandleVideoChanged(ctx, &event.Video)
	}
}
