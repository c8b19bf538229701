package persistence

import (
	"time"

	"collab-notifier/domain/model"
)

// videoDocument is the stored form of a VideoRecord. Absent values are left
// out of the document, zero counts are kept.
type videoDocument struct {
	URL                  string                       `bson:"_id"`
	ChannelURL           *string                      `bson:"channel_url,omitempty"`
	ChannelTitle         *string                      `bson:"channel_title,omitempty"`
	Title                *string                      `bson:"title,omitempty"`
	Description          *string                      `bson:"description,omitempty"`
	PublishedAt          *time.Time                   `bson:"published_at,omitempty"`
	Tags                 []string                     `bson:"tags,omitempty"`
	Thumbnails           map[string]thumbnailDocument `bson:"thumbnails,omitempty"`
	LiveBroadcastContent *string                      `bson:"live_broadcast_content,omitempty"`
	CategoryID           *string                      `bson:"category_id,omitempty"`
	DefaultLanguage      *string                      `bson:"default_language,omitempty"`
	Localized            *localizedDocument           `bson:"localized,omitempty"`
	WatchCount           *int64                       `bson:"n_watch,omitempty"`
	LikeCount            *int64                       `bson:"n_like,omitempty"`
	CreatedAt            time.Time                    `bson:"created_at"`
}

type thumbnailDocument struct {
	URL    *string `bson:"url,omitempty"`
	Width  int64   `bson:"width"`
	Height int64   `bson:"height"`
}

type localizedDocument struct {
	Title       *string `bson:"title,omitempty"`
	Description *string `bson:"description,omitempty"`
}

func encodeVideo(v *model.VideoRecord, createdAt time.Time) videoDocument {
	doc := videoDocument{
		URL:                  v.URL.String(),
		ChannelTitle:         v.ChannelTitle,
		Title:                v.Title,
		Description:          v.Description,
		PublishedAt:          v.PublishedAt,
		Tags:                 v.Tags,
		LiveBroadcastContent: v.LiveBroadcastContent,
		CategoryID:           v.CategoryID,
		DefaultLanguage:      v.DefaultLanguage,
		WatchCount:           v.WatchCount,
		LikeCount:            v.LikeCount,
		CreatedAt:            createdAt,
	}
	if v.ChannelURL != nil {
		s := v.ChannelURL.String()
		doc.ChannelURL = &s
	}
	if len(v.Thumbnails) > 0 {
		doc.Thumbnails = make(map[string]thumbnailDocument, len(v.Thumbnails))
		for size, th := range v.Thumbnails {
			doc.Thumbnails[size] = thumbnailDocument{URL: th.URL, Width: th.Width, Height: th.Height}
		}
	}
	if v.Localized != nil {
		doc.Localized = &localizedDocument{Title: v.Localized.Title, Description: v.Localized.Description}
	}
	return doc
}

func decodeVideo(doc videoDocument) (*model.VideoRecord, error) {
	u, err := model.ParseVideoURL(doc.URL)
	if err != nil {
		return nil, err
	}
	v := &model.VideoRecord{
		URL:                  u,
		ChannelTitle:         doc.ChannelTitle,
		Title:                doc.Title,
		Description:          doc.Description,
		PublishedAt:          doc.PublishedAt,
		Tags:                 doc.Tags,
		LiveBroadcastContent: doc.LiveBroadcastContent,
		CategoryID:           doc.CategoryID,
		DefaultLanguage:      doc.DefaultLanguage,
		WatchCount:           doc.WatchCount,
		LikeCount:            doc.LikeCount,
	}
	if doc.ChannelURL != nil {
		c := model.ChannelURL(*doc.ChannelURL)
		v.ChannelURL = &c
	}
	if len(doc.Thumbnails) > 0 {
		v.Thumbnails = make(map[string]model.Thumbnail, len(doc.Thumbnails))
		for size, th := range doc.Thumbnails {
			v.Thumbnails[size] = model.Thumbnail{URL: th.URL, Width: th.Width, Height: th.Height}
		}
	}
	if doc.Localized != nil {
		v.Localized = &model.Localized{Title: doc.Localized.Title, Description: doc.Localized.Description}
	}
	return v, nil
}
