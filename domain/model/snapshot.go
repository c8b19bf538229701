package model

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

const SnapshotSuffix = ".json.gz"

// maxDateTime is the largest representable datetime, 9999-12-31T23:59:59.999999Z.
var maxDateTime = time.Date(9999, time.December, 31, 23, 59, 59, 999999000, time.UTC)

var crawledAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
}

// PageItem is a fetched page as stored in a snapshot.
type PageItem struct {
	URL       string
	Body      string
	CrawledAt time.Time
}

type pageItemJSON struct {
	URL       string `json:"url"`
	Body      string `json:"body"`
	CrawledAt string `json:"crawled_at"`
}

// ReverseTimestamp returns whole seconds from t until maxDateTime, zero padded
// to 12 digits so that later times sort lexicographically first.
func ReverseTimestamp(t time.Time) string {
	secs := maxDateTime.Unix() - t.Unix()
	if t.Nanosecond() > maxDateTime.Nanosecond() {
		secs--
	}
	return fmt.Sprintf("%012d", secs)
}

// SnapshotKey returns "<prefix>/<reverse timestamp>.json.gz", or the bare
// file name when prefix is empty.
func SnapshotKey(prefix string, crawledAt time.Time) string {
	name := ReverseTimestamp(crawledAt) + SnapshotSuffix
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// SnapshotPrefix is the source prefix of key, "" for top-level keys.
func SnapshotPrefix(key string) string {
	dir := path.Dir(key)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// EncodePageItem serialises item as gzip compressed UTF-8 JSON.
func EncodePageItem(item PageItem) ([]byte, error) {
	raw, err := json.Marshal(pageItemJSON{
		URL:       item.URL,
		Body:      item.Body,
		CrawledAt: item.CrawledAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal page item: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("failed to compress page item: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress page item: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePageItem reverses EncodePageItem. crawled_at is optional and accepts
// both RFC 3339 and the space separated form.
func DecodePageItem(data []byte) (PageItem, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return PageItem{}, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return PageItem{}, fmt.Errorf("failed to decompress page item: %w", err)
	}

	var doc pageItemJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return PageItem{}, fmt.Errorf("failed to unmarshal page item: %w", err)
	}

	item := PageItem{URL: doc.URL, Body: doc.Body}
	if doc.CrawledAt != "" {
		for _, layout := range crawledAtLayouts {
			if t, err := time.Parse(layout, doc.CrawledAt); err == nil {
				item.CrawledAt = t.UTC()
				break
			}
		}
	}
	return item, nil
}
