package store

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

func parseDBTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format %q", v)
}

// dbTimeLayout is fixed width so stored timestamps compare correctly as text.
const dbTimeLayout = "2006-01-02T15:04:05.000000000Z"

func timeToDBString(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// truncate cuts v to at most max bytes without splitting a rune.
func truncate(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	for max > 0 && !utf8.RuneStart(v[max]) {
		max--
	}
	return v[:max]
}

func timestampBeforeDays(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -days)
}
