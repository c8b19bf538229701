package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"

	"golang.org/x/oauth2"
)

const (
	DefaultEndpoint = "https://api.twitter.com"
	authURL         = "https://twitter.com/i/oauth2/authorize"
	tokenURL        = "https://api.twitter.com/2/oauth2/token"

	// platform error codes carried over from API v1.1
	codeMessageTooLong = 186
	codeDuplicatePost  = 187
)

// Config holds the OAuth 2.0 user context credentials
type Config struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
}

// Client posts tweets through the v2 API.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type errorResponse struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// NewTwitterClient returns a publisher whose token refreshes itself from the
// refresh token when the access token is missing or expired. Rotated tokens
// are written to tokens, which may be nil.
func NewTwitterClient(ctx context.Context, config *Config, tokens repository.IOAuthToken) repository.IPublisher {
	oauthConfig := &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
		Scopes: []string{"tweet.read", "tweet.write", "users.read", "offline.access"},
	}
	return NewTwitterClientWithHTTP(oauth2.NewClient(ctx, tokenSource(ctx, oauthConfig, config, tokens)), DefaultEndpoint)
}

// NewTwitterClientWithHTTP uses an already authorised HTTP client.
func NewTwitterClientWithHTTP(httpClient *http.Client, endpoint string) *Client {
	return &Client{httpClient: httpClient, endpoint: strings.TrimRight(endpoint, "/")}
}

func (c *Client) Publish(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(tweetRequest{Text: message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal tweet: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/2/tweets", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build tweet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to post tweet: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read tweet response: %w", err)
	}

	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK {
		var out tweetResponse
		if err := json.Unmarshal(body, &out); err != nil {
			return "", fmt.Errorf("failed to decode tweet response: %w", err)
		}
		logger.GetLogger().WithField("id", out.Data.ID).Info("Tweet created")
		return out.Data.ID, nil
	}
	return "", classifyError(resp.StatusCode, body)
}

func classifyError(status int, body []byte) error {
	pubErr := &repository.PublishError{StatusCode: status, Detail: strings.TrimSpace(string(body))}

	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return pubErr
	}
	messages := []string{resp.Detail}
	if resp.Detail != "" {
		pubErr.Detail = resp.Detail
	}
	for _, e := range resp.Errors {
		messages = append(messages, e.Message)
		if pubErr.Code == 0 {
			pubErr.Code = e.Code
		}
		switch e.Code {
		case codeDuplicatePost:
			pubErr.Err = repository.ErrDuplicatePost
		case codeMessageTooLong:
			pubErr.Err = repository.ErrMessageTooLong
		}
	}
	if pubErr.Err != nil {
		return pubErr
	}

	text := strings.ToLower(strings.Join(messages, " "))
	switch {
	case strings.Contains(text, "duplicate"):
		pubErr.Err = repository.ErrDuplicatePost
	case strings.Contains(text, "too long"):
		pubErr.Err = repository.ErrMessageTooLong
	}
	return pubErr
}
