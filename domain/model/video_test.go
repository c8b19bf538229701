package model_test

import (
	"testing"

	"collab-notifier/domain/model"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestVideoStubSet_FirstStubWins(t *testing.T) {
	u := model.VideoURL("https://www.youtube.com/watch?v=a")
	set := model.NewVideoStubSet(
		model.VideoStub{URL: u, WatchCount: ptr(int64(1))},
		model.VideoStub{URL: u, WatchCount: ptr(int64(2))},
	)

	assert.Len(t, set, 1)
	assert.True(t, set.Contains(u))
	assert.Equal(t, int64(1), *set[u].WatchCount)
}

func TestVideoRecord_MentionedChannelURLs(t *testing.T) {
	host := model.ChannelURL("https://www.youtube.com/channel/host")
	video := model.VideoRecord{
		URL:        "https://www.youtube.com/watch?v=a",
		ChannelURL: &host,
		Description: ptr("https://www.youtube.com/channel/host\n" +
			"https://www.youtube.com/channel/guest\n" +
			"https://www.youtube.com/channel/guest"),
	}

	assert.Equal(t, []model.ChannelURL{"https://www.youtube.com/channel/guest"}, video.MentionedChannelURLs())

	video.Description = nil
	assert.Empty(t, video.MentionedChannelURLs())
}

func TestVideoRecord_Normalize(t *testing.T) {
	empty := model.ChannelURL("")
	in := model.VideoRecord{
		URL:                  "https://www.youtube.com/watch?v=a",
		ChannelURL:           &empty,
		ChannelTitle:         ptr("channel"),
		Title:                ptr(""),
		Description:          ptr(""),
		Tags:                 []string{"", "tag", ""},
		LiveBroadcastContent: ptr("none"),
		CategoryID:           ptr(""),
		DefaultLanguage:      ptr("ja"),
		Thumbnails: map[string]model.Thumbnail{
			"default": {URL: ptr("https://i.ytimg.com/vi/a/default.jpg"), Width: 120, Height: 90},
			"maxres":  {URL: ptr("")},
		},
		Localized:  &model.Localized{Title: ptr(""), Description: ptr("")},
		WatchCount: ptr(int64(0)),
	}

	out := in.Normalize()

	assert.Nil(t, out.ChannelURL)
	assert.Equal(t, "channel", *out.ChannelTitle)
	assert.Nil(t, out.Title)
	assert.Nil(t, out.Description)
	assert.Equal(t, []string{"tag"}, out.Tags)
	assert.Nil(t, out.CategoryID)
	assert.Equal(t, "ja", *out.DefaultLanguage)
	assert.Len(t, out.Thumbnails, 1)
	assert.Equal(t, int64(120), out.Thumbnails["default"].Width)
	assert.Nil(t, out.Localized)
	// zero counts are values, not absence
	assert.Equal(t, int64(0), *out.WatchCount)

	// input untouched
	assert.Len(t, in.Thumbnails, 2)
	assert.Equal(t, "", *in.Title)
}

func TestVideoRecord_NormalizeKeepsPartialLocalized(t *testing.T) {
	in := model.VideoRecord{
		URL:       "https://www.youtube.com/watch?v=a",
		Localized: &model.Localized{Title: ptr("title"), Description: ptr("")},
		Tags:      []string{"", ""},
	}

	out := in.Normalize()

	assert.Nil(t, out.Tags)
	if assert.NotNil(t, out.Localized) {
		assert.Equal(t, "title", *out.Localized.Title)
		assert.Nil(t, out.Localized.Description)
	}
}
