package persistence

import (
	"time"

	"collab-notifier/domain/model"
)

// channelDocument is the stored form of a ChannelRecord. Blacklist flags may
// be missing from older documents and then read as false.
type channelDocument struct {
	URL                string     `bson:"_id"`
	Name               string     `bson:"name"`
	Thumbnail          *string    `bson:"thumbnail,omitempty"`
	Affiliations       []string   `bson:"affiliations,omitempty"`
	IsHostBlacklisted  *bool      `bson:"is_host_blacklisted,omitempty"`
	IsGuestBlacklisted *bool      `bson:"is_guest_blacklisted,omitempty"`
	UpdatedAt          *time.Time `bson:"updated_at,omitempty"`
}

func encodeChannel(c *model.ChannelRecord) channelDocument {
	host, guest := c.IsHostBlacklisted, c.IsGuestBlacklisted
	return channelDocument{
		URL:                c.URL.String(),
		Name:               c.Name,
		Thumbnail:          c.Thumbnail,
		Affiliations:       c.Affiliations,
		IsHostBlacklisted:  &host,
		IsGuestBlacklisted: &guest,
	}
}

func decodeChannel(doc channelDocument) *model.ChannelRecord {
	c := &model.ChannelRecord{
		URL:          model.ChannelURL(doc.URL),
		Name:         doc.Name,
		Thumbnail:    doc.Thumbnail,
		Affiliations: doc.Affiliations,
	}
	if doc.IsHostBlacklisted != nil {
		c.IsHostBlacklisted = *doc.IsHostBlacklisted
	}
	if doc.IsGuestBlacklisted != nil {
		c.IsGuestBlacklisted = *doc.IsGuestBlacklisted
	}
	return c
}
