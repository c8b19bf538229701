package dto

import (
	"time"

	"collab-notifier/domain/model"
)

// SnapshotStoredEvent is published after a listing snapshot is written.
type SnapshotStoredEvent struct {
	Bucket    string    `json:"bucket"`
	Key       string    `json:"key"`
	SourceURL string    `json:"source_url,omitempty"`
	CrawledAt time.Time `json:"crawled_at"`
}

// VideoChangedEvent is published after a video record is inserted for the first time.
type VideoChangedEvent struct {
	Video model.VideoRecord `json:"video"`
}

// PubSubPushRequest is the envelope of a Pub/Sub push delivery.
type PubSubPushRequest struct {
	Message      PubSubPushMessage `json:"message" binding:"required"`
	Subscription string            `json:"subscription"`
}

type PubSubPushMessage struct {
	Data        []byte            `json:"data"`
	MessageID   string            `json:"messageId"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	PublishTime time.Time         `json:"publishTime"`
}
