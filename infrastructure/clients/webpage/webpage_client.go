package webpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"collab-notifier/domain/model"
	"collab-notifier/domain/repository"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "collab-notifier/1.0 (+https://github.com/collab-notifier)"
	// listing pages are small; anything bigger is not a listing
	maxBodySize = 16 << 20
)

type Client struct {
	httpClient *http.Client
}

func NewWebpageClient(httpClient *http.Client) repository.IWebpage {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{httpClient: httpClient}
}

// Fetch GETs url. Non-2xx responses are returned as pages, not errors.
func (c *Client) Fetch(ctx context.Context, url string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	page := &model.Page{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
	if date := resp.Header.Get("Date"); date != "" {
		if t, err := http.ParseTime(date); err == nil {
			page.Date = t.UTC()
		}
	}
	return page, nil
}
