// internal/domain/models/time.go
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Time decodes the date values the backend sends: RFC 3339 timestamps,
// timestamps without a zone (read as UTC), bare dates, epoch
// milliseconds, and "" or null. Anything it cannot read becomes the zero
// time so one bad record never fails a whole list.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(data []byte) error {
	t.Time = time.Time{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] != '"' {
		if ms, err := strconv.ParseInt(string(data), 10, 64); err == nil && ms > 0 {
			t.Time = time.UnixMilli(ms).UTC()
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	t.Time = ParseTime(s)
	return nil
}

// ParseTime reads s with the layouts Time accepts. It returns the zero
// time when none match.
func ParseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v
		}
	}
	return time.Time{}
}
