package utils

import "time"

// Layouts accepted for task dates. Clients send either full RFC3339 or a
// local datetime without zone.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseFlexibleTime parses a task date string. The second return is false
// when the value is empty or matches no accepted layout; callers treat
// that as an absent date rather than an error.
func ParseFlexibleTime(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
