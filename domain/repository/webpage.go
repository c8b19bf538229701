package repository

import (
	"context"

	"collab-notifier/domain/model"
)

// IWebpage fetches listing pages.
type IWebpage interface {
	Fetch(ctx context.Context, url string) (*model.Page, error)
}

// IListingParser extracts video stubs from a listing page.
// Malformed markup yields an empty result, not an error.
type IListingParser interface {
	ParseListing(html string) ([]model.VideoStub, error)
}

// IChannelListParser extracts channel records from the channel list page.
type IChannelListParser interface {
	ParseChannelList(html string) ([]model.ChannelRecord, error)
}
