package entities

import (
	"strings"
	"time"
)

// Entity dates are stored as strings in one of two legacy shapes: a full ISO
// instant ("2024-05-31T14:02:11.000Z") or a bare calendar date ("2024-05-31").
// Bare dates are anchored at local noon so that UTC-vs-local skew can never
// shift them onto the previous day.

const dateOnlyLayout = "2006-01-02"

// IsDateOnly reports whether the string is a bare YYYY-MM-DD calendar date.
func IsDateOnly(s string) bool {
	return len(s) == 10 && s[4] == '-' && s[7] == '-' && !strings.Contains(s, "T")
}

// ParseRecordDate parses a stored entity date. Bare calendar dates resolve to
// local noon; instants keep their own time. ok is false when the string is in
// neither shape.
func ParseRecordDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if IsDateOnly(s) {
		d, err := time.ParseInLocation(dateOnlyLayout, s, time.Local)
		if err != nil {
			return time.Time{}, false
		}
		return d.Add(12 * time.Hour), true
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeToNoon maps an instant to local noon of its local calendar day.
// The drill-down filter applies this to every record before comparing.
func NormalizeToNoon(t time.Time) time.Time {
	lt := t.Local()
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 12, 0, 0, 0, time.Local)
}

// FormatDisplayDate renders a stored date in the shop's day/month/year
// display format. Unparsable dates render as "-".
func FormatDisplayDate(s string) string {
	t, ok := ParseRecordDate(s)
	if !ok {
		return "-"
	}
	return t.Local().Format("02/01/2006")
}
