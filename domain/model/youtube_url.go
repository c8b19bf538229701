package model

import (
	"fmt"
	"net/url"
	"regexp"
)

const (
	youtubeScheme    = "https"
	youtubeHost      = "www.youtube.com"
	youtubeWatchPath = "/watch"
	shortURLPrefix   = "https://youtu.be/"
	channelURLPrefix = "https://www.youtube.com/channel/"
)

var (
	videoIDPattern    = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
	channelURLPattern = regexp.MustCompile(`https://www\.youtube\.com/(?:channel|c|user)/[a-zA-Z0-9_\-]+`)
	channelURLExact   = regexp.MustCompile(`^` + channelURLPattern.String() + `$`)
)

// VideoURL is a canonical watch URL, https://www.youtube.com/watch?v=<id>.
// Values obtained through ParseVideoURL are always valid.
type VideoURL string

// ParseVideoURL validates raw and returns it as a VideoURL.
// Extra query parameters are tolerated, the v parameter must hold a video id.
func ParseVideoURL(raw string) (VideoURL, error) {
	if _, err := videoID(raw); err != nil {
		return "", err
	}
	return VideoURL(raw), nil
}

// VideoURLFromID builds the canonical watch URL for a video id.
func VideoURLFromID(id string) (VideoURL, error) {
	return ParseVideoURL(fmt.Sprintf("https://%s%s?v=%s", youtubeHost, youtubeWatchPath, id))
}

func videoID(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoURL, raw)
	}
	if u.Scheme != youtubeScheme || u.Host != youtubeHost || u.Path != youtubeWatchPath {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoURL, raw)
	}
	ids := u.Query()["v"]
	if len(ids) == 0 || !videoIDPattern.MatchString(ids[0]) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoURL, raw)
	}
	return ids[0], nil
}

func (v VideoURL) String() string {
	return string(v)
}

// ID returns the video id carried in the v parameter.
func (v VideoURL) ID() (string, error) {
	return videoID(string(v))
}

// Short returns the https://youtu.be/<id> form of the URL.
func (v VideoURL) Short() (string, error) {
	id, err := v.ID()
	if err != nil {
		return "", err
	}
	return shortURLPrefix + id, nil
}

// ChannelURL is https://www.youtube.com/{channel,c,user}/<id>.
type ChannelURL string

func ParseChannelURL(raw string) (ChannelURL, error) {
	if !channelURLExact.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidChannelURL, raw)
	}
	return ChannelURL(raw), nil
}

// ChannelURLFromID builds the /channel/<id> form used by the YouTube API.
func ChannelURLFromID(id string) (ChannelURL, error) {
	return ParseChannelURL(channelURLPrefix + id)
}

func (c ChannelURL) String() string {
	return string(c)
}

// ExtractChannelURLs returns the distinct channel URLs found in text in the
// order of their first occurrence.
func ExtractChannelURLs(text string) []ChannelURL {
	matches := channelURLPattern.FindAllString(text, -1)
	seen := make(map[ChannelURL]struct{}, len(matches))
	urls := make([]ChannelURL, 0, len(matches))
	for _, m := range matches {
		c := ChannelURL(m)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		urls = append(urls, c)
	}
	return urls
}
