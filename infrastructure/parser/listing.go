package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"collab-notifier/domain/model"
	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"

	"github.com/PuerkitoBio/goquery"
)

const (
	LayoutAntenna = "antenna"
	LayoutRanking = "ranking"
)

var digitsPattern = regexp.MustCompile(`[0-9][0-9,]*`)

// ForLayout returns the listing parser for a page layout. An empty layout is antenna.
func ForLayout(layout string) (repository.IListingParser, error) {
	switch layout {
	case "", LayoutAntenna:
		return AntennaParser{}, nil
	case LayoutRanking:
		return RankingParser{}, nil
	}
	return nil, fmt.Errorf("unknown listing layout %q", layout)
}

// AntennaParser reads the "new videos" list of the antenna site.
type AntennaParser struct{}

func (AntennaParser) ParseListing(html string) ([]model.VideoStub, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}

	var stubs []model.VideoStub
	doc.Find("div#main-area div.movie ul.movieList.new li:not(.empty)").Each(func(_ int, item *goquery.Selection) {
		href, ok := item.Find("p.movieTitle a").Attr("href")
		if !ok {
			return
		}
		u, err := model.ParseVideoURL(strings.TrimSpace(href))
		if err != nil {
			logger.GetLogger().WithField("href", href).Warn("Skipping listing entry with invalid video URL")
			return
		}
		stubs = append(stubs, model.VideoStub{URL: u})
	})
	return stubs, nil
}

// RankingParser reads table rows carrying data-video-url with watch and like counts.
type RankingParser struct{}

func (RankingParser) ParseListing(html string) ([]model.VideoStub, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}

	var stubs []model.VideoStub
	doc.Find("table tbody > tr").Each(func(_ int, row *goquery.Selection) {
		href, ok := row.Attr("data-video-url")
		if !ok {
			return
		}
		u, err := model.ParseVideoURL(strings.TrimSpace(href))
		if err != nil {
			logger.GetLogger().WithField("href", href).Warn("Skipping ranking row with invalid video URL")
			return
		}
		stubs = append(stubs, model.VideoStub{
			URL:        u,
			WatchCount: countAfterIcon(row, "i.fa-eye"),
			LikeCount:  countAfterIcon(row, "i.fa-thumbs-up"),
		})
	})
	return stubs, nil
}

// countAfterIcon reads the number printed next to an icon, nil when missing.
func countAfterIcon(row *goquery.Selection, icon string) *int64 {
	sel := row.Find(icon).First()
	if sel.Length() == 0 {
		return nil
	}
	text := sel.Text()
	if strings.TrimSpace(text) == "" {
		text = sel.Parent().Text()
	}
	digits := digitsPattern.FindString(text)
	if digits == "" {
		return nil
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(digits, ",", ""), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
