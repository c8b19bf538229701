package twitter

import (
	"context"
	"errors"
	"sync"
	"time"

	"collab-notifier/domain/model"
	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"

	"golang.org/x/oauth2"
)

const platform = "twitter"

// persistingTokenSource saves every token its base source hands out for the
// first time. X rotates the refresh token on each refresh, so the configured
// one stops working after the first refresh.
type persistingTokenSource struct {
	base  oauth2.TokenSource
	store repository.IOAuthToken

	mu   sync.Mutex
	last string
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken == s.last {
		return token, nil
	}
	stored := &model.OAuthToken{
		Platform:     platform,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.Type(),
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		stored.ExpiresAt = &expiry
	}
	// The token is still usable when it cannot be saved, so only log.
	if err := s.store.UpsertToken(context.Background(), stored); err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to persist rotated Twitter token")
		return token, nil
	}
	s.last = token.AccessToken
	return token, nil
}

// initialToken prefers the last persisted token over the configured one.
func initialToken(ctx context.Context, config *Config, store repository.IOAuthToken) *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  config.AccessToken,
		RefreshToken: config.RefreshToken,
		TokenType:    "Bearer",
	}
	if store != nil {
		saved, err := store.GetToken(ctx, platform)
		switch {
		case err == nil:
			token = &oauth2.Token{
				AccessToken:  saved.AccessToken,
				RefreshToken: saved.RefreshToken,
				TokenType:    saved.TokenType,
			}
			if saved.ExpiresAt != nil {
				token.Expiry = *saved.ExpiresAt
			}
		case errors.Is(err, model.ErrNotFound):
			logger.GetLogger().Info("No persisted Twitter token - using configured credentials")
		default:
			logger.GetLogger().WithField("error", err).Warn("Failed to load persisted Twitter token - using configured credentials")
		}
	}
	if token.AccessToken == "" {
		// force a refresh on first use
		token.Expiry = time.Now().Add(-1 * time.Minute)
	}
	return token
}

// tokenSource refreshes through oauthConfig and, when store is set, persists
// every rotated token.
func tokenSource(ctx context.Context, oauthConfig *oauth2.Config, config *Config, store repository.IOAuthToken) oauth2.TokenSource {
	token := initialToken(ctx, config, store)
	source := oauthConfig.TokenSource(ctx, token)
	if store == nil {
		return source
	}
	return &persistingTokenSource{base: source, store: store, last: token.AccessToken}
}
