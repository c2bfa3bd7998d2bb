package validator

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// EpochMillisThreshold separates epoch seconds from epoch milliseconds.
// 1e11 seconds is in the year 5138; 1e11 milliseconds is March 1973.
const EpochMillisThreshold = 1e11

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

var (
	minTimestamp = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	maxTimestamp = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
)

// ParseTimestamp converts a decoded JSON value into a UTC time.
// Strings must be ISO-8601 (zone-less values are read as UTC); numbers are
// epoch seconds, or milliseconds when their magnitude reaches
// EpochMillisThreshold. Results must fall between 1970-01-01 and the end of
// year 9999, so pre-epoch dates and negative epochs are rejected along with
// booleans and other non-time values.
func ParseTimestamp(value any) (time.Time, bool) {
	switch v := value.(type) {
	case string:
		return parseTimestampString(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return epochToTime(f)
	case float64:
		return epochToTime(v)
	case int64:
		return epochToTime(float64(v))
	case int:
		return epochToTime(float64(v))
	}
	return time.Time{}, false
}

func parseTimestampString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return inRange(t.UTC())
		}
	}
	return time.Time{}, false
}

func epochToTime(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	if math.Abs(f) >= EpochMillisThreshold {
		ms := math.Trunc(f)
		if math.Abs(ms) > float64(maxTimestamp.UnixMilli()) {
			return time.Time{}, false
		}
		return inRange(time.UnixMilli(int64(ms)).UTC())
	}
	sec, frac := math.Modf(f)
	return inRange(time.Unix(int64(sec), int64(frac*1e9)).UTC())
}

func inRange(t time.Time) (time.Time, bool) {
	if t.Before(minTimestamp) || t.After(maxTimestamp) {
		return time.Time{}, false
	}
	return t, true
}
