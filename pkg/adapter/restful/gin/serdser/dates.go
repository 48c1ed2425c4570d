package serdser

import (
	"fmt"
	"time"
)

// timeLayouts are tried in order; a layout without an explicit zone
// is interpreted as UTC wall clock time.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses a client-provided timestamp, accepting an RFC3339
// value, a zone-less timestamp, or a bare calendar date. Zone-less
// values are taken as UTC.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"value %q is not a known timestamp format", value,
	)
}
