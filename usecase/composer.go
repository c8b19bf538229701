package usecase

import (
	"errors"
	"strings"

	"collab-notifier/domain/model"
)

const (
	collabHashtag      = "#VTuberコラボ通知"
	participantsHeader = "【参加者】"
)

var ErrNoValidVariant = errors.New("no message variant satisfies the platform constraints")

type Variant string

const (
	VariantMax   Variant = "max"
	VariantLong  Variant = "long"
	VariantMid   Variant = "mid"
	VariantShort Variant = "short"
)

type Candidate struct {
	Variant Variant
	Text    string
}

// Candidates returns the message variants for video from longest to
// shortest. Participant names are listed in ascending order.
func Candidates(video *model.VideoRecord, participants map[string]struct{}) ([]Candidate, error) {
	shortURL, err := video.URL.Short()
	if err != nil {
		return nil, err
	}

	short := collabHashtag + "\n" + shortURL
	mid := short
	if video.Title != nil {
		mid = collabHashtag + "\n" + *video.Title + "\n" + shortURL
	}
	names := participantsHeader + "\n" + strings.Join(SortedNames(participants), "\n")

	return []Candidate{
		{Variant: VariantMax, Text: mid + "\n\n" + names},
		{Variant: VariantLong, Text: short + "\n\n" + names},
		{Variant: VariantMid, Text: mid},
		{Variant: VariantShort, Text: short},
	}, nil
}

// ComposeMessage returns the longest variant accepted by isValid.
func ComposeMessage(video *model.VideoRecord, participants map[string]struct{}, isValid func(string) bool) (string, error) {
	candidates, err := Candidates(video, participants)
	if err != nil {
		return "", err
	}
	for _, c := range candidates {
		if isValid(c.Text) {
			return c.Text, nil
		}
	}
	return "", ErrNoValidVariant
}
