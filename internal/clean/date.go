// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// dateLayouts are tried before falling back to dateparse. CORD-19 exports
// mostly carry full ISO dates or a bare year.
var dateLayouts = []string{
	time.DateOnly,
	"2006",
	"2006-01",
	time.DateTime,
	time.RFC3339,
}

// ParseDate parses a publish_time value into a UTC calendar date.
// It reports false instead of failing when the value is not a date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOf(t), true
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return dateOf(t), true
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
