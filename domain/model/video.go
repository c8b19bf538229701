package model

import "time"

// VideoStub is a video as it appears on a listing page. Identity is the URL only.
type VideoStub struct {
	URL        VideoURL `json:"url"`
	WatchCount *int64   `json:"n_watch,omitempty"`
	LikeCount  *int64   `json:"n_like,omitempty"`
}

// VideoStubSet holds stubs keyed by URL.
type VideoStubSet map[VideoURL]VideoStub

func NewVideoStubSet(stubs ...VideoStub) VideoStubSet {
	set := make(VideoStubSet, len(stubs))
	for _, s := range stubs {
		set.Add(s)
	}
	return set
}

// Add keeps the first stub seen for a URL.
func (s VideoStubSet) Add(stub VideoStub) {
	if _, ok := s[stub.URL]; ok {
		return
	}
	s[stub.URL] = stub
}

func (s VideoStubSet) Contains(u VideoURL) bool {
	_, ok := s[u]
	return ok
}

func (s VideoStubSet) URLs() []VideoURL {
	urls := make([]VideoURL, 0, len(s))
	for u := range s {
		urls = append(urls, u)
	}
	return urls
}

type Thumbnail struct {
	URL    *string `json:"url,omitempty"`
	Width  int64   `json:"width,omitempty"`
	Height int64   `json:"height,omitempty"`
}

type Localized struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// VideoRecord is an enriched video. Every field except URL is optional.
type VideoRecord struct {
	URL                  VideoURL             `json:"url"`
	ChannelURL           *ChannelURL          `json:"channel_url,omitempty"`
	ChannelTitle         *string              `json:"channel_title,omitempty"`
	Title                *string              `json:"title,omitempty"`
	Description          *string              `json:"description,omitempty"`
	PublishedAt          *time.Time           `json:"published_at,omitempty"`
	Tags                 []string             `json:"tags,omitempty"`
	Thumbnails           map[string]Thumbnail `json:"thumbnails,omitempty"`
	LiveBroadcastContent *string              `json:"live_broadcast_content,omitempty"`
	CategoryID           *string              `json:"category_id,omitempty"`
	DefaultLanguage      *string              `json:"default_language,omitempty"`
	Localized            *Localized           `json:"localized,omitempty"`
	WatchCount           *int64               `json:"n_watch,omitempty"`
	LikeCount            *int64               `json:"n_like,omitempty"`
}

// MentionedChannelURLs returns the channel URLs found in the description,
// deduplicated and without the video's own channel.
func (v *VideoRecord) MentionedChannelURLs() []ChannelURL {
	if v.Description == nil {
		return nil
	}
	all := ExtractChannelURLs(*v.Description)
	mentions := make([]ChannelURL, 0, len(all))
	for _, c := range all {
		if v.ChannelURL != nil && c == *v.ChannelURL {
			continue
		}
		mentions = append(mentions, c)
	}
	return mentions
}

// Normalize returns a copy of v where empty strings are absent values.
// It recurses into thumbnails and localized text and drops empty tags.
func (v VideoRecord) Normalize() VideoRecord {
	out := v
	out.ChannelURL = nilIfEmptyChannel(v.ChannelURL)
	out.ChannelTitle = nilIfEmpty(v.ChannelTitle)
	out.Title = nilIfEmpty(v.Title)
	out.Description = nilIfEmpty(v.Description)
	out.LiveBroadcastContent = nilIfEmpty(v.LiveBroadcastContent)
	out.CategoryID = nilIfEmpty(v.CategoryID)
	out.DefaultLanguage = nilIfEmpty(v.DefaultLanguage)

	out.Tags = nil
	for _, tag := range v.Tags {
		if tag != "" {
			out.Tags = append(out.Tags, tag)
		}
	}

	out.Thumbnails = nil
	for size, th := range v.Thumbnails {
		th.URL = nilIfEmpty(th.URL)
		if th.URL == nil {
			continue
		}
		if out.Thumbnails == nil {
			out.Thumbnails = make(map[string]Thumbnail, len(v.Thumbnails))
		}
		out.Thumbnails[size] = th
	}

	out.Localized = nil
	if v.Localized != nil {
		l := Localized{
			Title:       nilIfEmpty(v.Localized.Title),
			Description: nilIfEmpty(v.Localized.Description),
		}
		if l.Title != nil || l.Description != nil {
			out.Localized = &l
		}
	}
	return out
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func nilIfEmptyChannel(c *ChannelURL) *ChannelURL {
	if c == nil || *c == "" {
		return nil
	}
	return c
}

// StringPtr returns nil for the empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
