// Package biztime centralizes time handling. All storage and transport use
// UTC; implicit local timezone is prohibited.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DaysAgo returns the UTC instant the given number of days before now.
func DaysAgo(days int) time.Time {
	return NowUTC().Add(-time.Duration(days) * 24 * time.Hour)
}

// FormatRFC3339 formats a time in UTC RFC3339 for API responses. A zero
// time formats as the empty string.
func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// FormatRFC3339Ptr formats an optional time; nil formats as the empty string.
func FormatRFC3339Ptr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatRFC3339(*t)
}
