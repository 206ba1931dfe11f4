package parser

import (
	"errors"
	"strings"
	"time"
)

// zonedLayouts carry their own offset. Fractional seconds are accepted
// after the seconds field by every layout.
var zonedLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05Z07",
}

// localLayouts are read in the report timezone
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var errTimestamp = errors.New("not an ISO-8601 timestamp")

// ParseTimestamp reads an ISO-8601 timestamp and returns it in loc. Timestamps
// without an offset are taken to be in loc already.
func ParseTimestamp(text string, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, errTimestamp
	}

	for _, layout := range zonedLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts.In(loc), nil
		}
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, text, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, errTimestamp
}
