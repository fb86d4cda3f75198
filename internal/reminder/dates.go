package reminder

import (
	"strings"
	"time"
)

// dateLayouts are tried in order by ParseDate. Layouts without a zone are
// read in the caller's location.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"Jan 2 2006 15:04",
	"Jan 2, 2006 15:04",
	"January 2 2006 15:04",
	"January 2, 2006 15:04",
	"2 Jan 2006 15:04",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"January 2 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseDate parses s with the first matching layout from dateLayouts.
// A nil loc means time.Local.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".!?")
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
