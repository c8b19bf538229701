package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	defaultMaxWeightedLength = 280
	defaultURLLength         = 23
)

var tweetURLPattern = regexp.MustCompile(`https?://[^\s\x{3000}]+`)

type weightRange struct {
	start, end rune
}

// Code points in these ranges count as one, everything else as two.
var lightRanges = []weightRange{
	{0, 4351},
	{8192, 8205},
	{8208, 8223},
	{8242, 8247},
}

// TweetValidator checks text against the X posting rules.
type TweetValidator struct {
	MaxWeightedLength int
	URLLength         int
}

func NewTweetValidator() *TweetValidator {
	return &TweetValidator{
		MaxWeightedLength: defaultMaxWeightedLength,
		URLLength:         defaultURLLength,
	}
}

// WeightedLength returns the length the platform charges for text after NFC
// normalisation. Every URL costs URLLength regardless of its size.
func (v *TweetValidator) WeightedLength(text string) int {
	text = norm.NFC.String(text)

	length := 0
	last := 0
	for _, loc := range tweetURLPattern.FindAllStringIndex(text, -1) {
		length += weightOf(text[last:loc[0]])
		length += v.URLLength
		last = loc[1]
	}
	return length + weightOf(text[last:])
}

// IsValid reports whether text can be posted as is.
func (v *TweetValidator) IsValid(text string) bool {
	if strings.TrimSpace(text) == "" || !utf8.ValidString(text) {
		return false
	}
	for _, r := range text {
		if isForbiddenRune(r) {
			return false
		}
	}
	return v.WeightedLength(text) <= v.MaxWeightedLength
}

func weightOf(s string) int {
	n := 0
	for _, r := range s {
		n += runeWeight(r)
	}
	return n
}

func runeWeight(r rune) int {
	for _, wr := range lightRanges {
		if r >= wr.start && r <= wr.end {
			return 1
		}
	}
	return 2
}

func isForbiddenRune(r rune) bool {
	switch {
	case r == 0xFFFE, r == 0xFEFF, r == 0xFFFF:
		return true
	case r >= 0x202A && r <= 0x202E:
		return true
	}
	return false
}
