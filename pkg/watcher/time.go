package watcher

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/martinferreira/elasticsearch-net/internal/utils"
)

// Time is a server duration literal such as "10s", "5m" or "-1".
// The zero value is unset and is omitted from requests.
type Time string

// NewTime formats d with the largest unit that represents it exactly.
func NewTime(d time.Duration) Time {
	switch {
	case d == 0:
		return "0s"
	case d < 0:
		return "-1"
	case d%(24*time.Hour) == 0:
		return Time(fmt.Sprintf("%dd", d/(24*time.Hour)))
	case d%time.Hour == 0:
		return Time(fmt.Sprintf("%dh", d/time.Hour))
	case d%time.Minute == 0:
		return Time(fmt.Sprintf("%dm", d/time.Minute))
	case d%time.Second == 0:
		return Time(fmt.Sprintf("%ds", d/time.Second))
	case d%time.Millisecond == 0:
		return Time(fmt.Sprintf("%dms", d/time.Millisecond))
	case d%time.Microsecond == 0:
		return Time(fmt.Sprintf("%dmicros", d/time.Microsecond))
	default:
		return Time(fmt.Sprintf("%dnanos", int64(d)))
	}
}

var timeUnits = []struct {
	suffix string
	unit   time.Duration
}{
	// longest suffixes first so "ms" is not read as "s"
	{"micros", time.Microsecond},
	{"nanos", time.Nanosecond},
	{"ms", time.Millisecond},
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
}

// Duration parses the literal. "-1" yields -1.
func (t Time) Duration() (time.Duration, error) {
	s := strings.TrimSpace(string(t))
	if s == "-1" {
		return -1, nil
	}
	for _, u := range timeUnits {
		if !strings.HasSuffix(s, u.suffix) {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSuffix(s, u.suffix), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time value %q: %w", s, err)
		}
		return time.Duration(n) * u.unit, nil
	}
	return 0, fmt.Errorf("invalid time value %q: missing unit", s)
}

// IsZero reports whether the literal is unset.
func (t Time) IsZero() bool { return t == "" }

// UnmarshalJSON accepts the string form and bare milliseconds.
func (t *Time) UnmarshalJSON(data []byte) error {
	if utils.IsNull(data) {
		return nil
	}
	var s string
	if err := utils.Unmarshal(data, &s); err == nil {
		*t = Time(s)
		return nil
	}
	var ms int64
	if err := utils.Unmarshal(data, &ms); err != nil {
		return NewInvalidJSONError("time", "expected a string or integer milliseconds", err)
	}
	if ms < 0 {
		*t = "-1"
		return nil
	}
	*t = Time(fmt.Sprintf("%dms", ms))
	return nil
}
