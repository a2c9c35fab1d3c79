package parse

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Date parses the date formats the scheduling service is known to emit.
func Date(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %q", raw)
}

// DayLabel renders a date as "Thu 02 Jan". Input that is not a date is
// returned unchanged.
func DayLabel(raw string) string {
	t, err := Date(raw)
	if err != nil {
		return raw
	}
	return t.Format("Mon 02 Jan")
}

// Weekend reports whether raw falls on a Saturday or Sunday.
func Weekend(raw string) bool {
	t, err := Date(raw)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
