package parser_test

import (
	"testing"

	"collab-notifier/domain/model"
	"collab-notifier/infrastructure/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const channelListHTML = `<html><body>
<div id="main-area">
  <div class="channel">
    <ul class="icon">
      <li><h3 id="カバー">カバー</h3></li>
      <li>
        <p class="thumbnail"><a href="/channel/?id=UCp6993wxpyDPHUpavwDFqgg"><img src="https://yt3.ggpht.com/sora.jpg"></a></p>
        <p class="channelName"><a href="/channel/?id=UCp6993wxpyDPHUpavwDFqgg">SoraCh. ときのそらチャンネル</a></p>
      </li>
      <li class="empty"></li>
      <li><h3 id="ホロライブ">ホロライブ</h3></li>
      <li>
        <p class="thumbnail"><a href="/channel/?id=UCp6993wxpyDPHUpavwDFqgg"><img src="https://yt3.ggpht.com/sora.jpg"></a></p>
        <p class="channelName"><a href="/channel/?id=UCp6993wxpyDPHUpavwDFqgg">SoraCh. ときのそらチャンネル</a></p>
      </li>
      <li>
        <p class="thumbnail"><a href="/channel/?id=UC-other_1"><img src=""></a></p>
        <p class="channelName"><a href="/channel/?id=UC-other_1">Other</a></p>
      </li>
      <li>
        <p class="channelName"><a href="/c/not-a-channel-id">Broken</a></p>
      </li>
    </ul>
  </div>
</div>
</body></html>`

func TestChannelListParser_FoldsCategories(t *testing.T) {
	channels, err := parser.NewChannelListParser().ParseChannelList(channelListHTML)

	require.NoError(t, err)
	require.Len(t, channels, 2)

	sora := channels[0]
	assert.Equal(t, model.ChannelURL("https://www.youtube.com/channel/UCp6993wxpyDPHUpavwDFqgg"), sora.URL)
	assert.Equal(t, "SoraCh. ときのそらチャンネル", sora.Name)
	assert.Equal(t, "https://yt3.ggpht.com/sora.jpg", *sora.Thumbnail)
	assert.Equal(t, []string{"カバー", "ホロライブ"}, sora.Affiliations)
	assert.False(t, sora.IsHostBlacklisted)
	assert.False(t, sora.IsGuestBlacklisted)

	other := channels[1]
	assert.Equal(t, model.ChannelURL("https://www.youtube.com/channel/UC-other_1"), other.URL)
	assert.Nil(t, other.Thumbnail)
	assert.Equal(t, []string{"ホロライブ"}, other.Affiliations)
}

func TestChannelListParser_ChannelsBeforeAnyHeader(t *testing.T) {
	html := `<div id="main-area"><div class="channel"><ul class="icon">
	<li><p class="channelName"><a href="/channel/?id=UC1">One</a></p></li>
	</ul></div></div>`

	channels, err := parser.NewChannelListParser().ParseChannelList(html)

	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Empty(t, channels[0].Affiliations)
}

func TestChannelListParser_EmptyPage(t *testing.T) {
	channels, err := parser.NewChannelListParser().ParseChannelList("")

	require.NoError(t, err)
	assert.Empty(t, channels)
}
