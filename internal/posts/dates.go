package posts

import (
	"sort"
	"strings"
	"time"
)

// dateLayouts is the accepted front-matter date grammar, tried in order.
// Values without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate interprets a front-matter date. Unparseable or empty values
// report false and the zero time, which orders as the oldest possible date.
func ParseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// SortByDate orders posts newest first. The sort is stable, so posts with
// equal (or equally unparseable) dates keep their filename order.
func SortByDate(posts []Post) {
	for i := range posts {
		posts[i].sortKey, _ = ParseDate(posts[i].Date)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].sortKey.After(posts[j].sortKey)
	})
}
