package parser

import (
	"fmt"
	"regexp"
	"strings"

	"collab-notifier/domain/model"
	"collab-notifier/infrastructure/logger"

	"github.com/PuerkitoBio/goquery"
)

var channelHrefPattern = regexp.MustCompile(`^/channel/\?id=(.+)$`)

// listItem is one li of the channel list: either a category header or a channel.
type listItem struct {
	category  string
	isHeader  bool
	href      string
	name      string
	thumbnail string
}

// channelFold is the accumulator threaded through the list items.
type channelFold struct {
	category string
	order    []model.ChannelURL
	channels map[model.ChannelURL]*model.ChannelRecord
}

// ChannelListParser reads the channel list page where h3 headers open a
// category that applies to every following channel.
type ChannelListParser struct{}

func NewChannelListParser() ChannelListParser {
	return ChannelListParser{}
}

func (ChannelListParser) ParseChannelList(html string) ([]model.ChannelRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse channel list: %w", err)
	}

	var parsed []listItem
	doc.Find("div#main-area div.channel ul.icon li:not(.empty)").Each(func(_ int, li *goquery.Selection) {
		parsed = append(parsed, readListItem(li))
	})

	acc := channelFold{channels: make(map[model.ChannelURL]*model.ChannelRecord)}
	for _, item := range parsed {
		acc = acc.step(item)
	}
	return acc.result(), nil
}

func readListItem(li *goquery.Selection) listItem {
	if h3 := li.Find("h3").First(); h3.Length() > 0 {
		return listItem{isHeader: true, category: h3.AttrOr("id", "")}
	}
	a := li.Find("p.channelName a").First()
	return listItem{
		href:      a.AttrOr("href", ""),
		name:      a.Text(),
		thumbnail: li.Find("p.thumbnail a img").First().AttrOr("src", ""),
	}
}

// step applies one item to the fold. Headers switch the current category,
// channels are merged by URL so repeated entries collect affiliations.
func (f channelFold) step(item listItem) channelFold {
	if item.isHeader {
		f.category = item.category
		return f
	}

	m := channelHrefPattern.FindStringSubmatch(item.href)
	if m == nil {
		logger.GetLogger().WithField("href", item.href).Warn("Skipping channel entry without channel id")
		return f
	}
	u, err := model.ChannelURLFromID(m[1])
	if err != nil {
		logger.GetLogger().WithField("href", item.href).Warn("Skipping channel entry with invalid channel id")
		return f
	}

	channel, seen := f.channels[u]
	if !seen {
		channel = &model.ChannelRecord{
			URL:       u,
			Name:      item.name,
			Thumbnail: model.StringPtr(item.thumbnail),
		}
		f.channels[u] = channel
		f.order = append(f.order, u)
	}
	if f.category != "" {
		channel.Affiliations = append(channel.Affiliations, f.category)
	}
	return f
}

func (f channelFold) result() []model.ChannelRecord {
	out := make([]model.ChannelRecord, 0, len(f.order))
	for _, u := range f.order {
		out = append(out, *f.channels[u])
	}
	return out
}
