package validate

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
}

// Date reports whether s is a calendar date in YYYY-MM-DD form.
func Date(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Timestamp parses the date-time forms browsers and API clients send.
// Values without a zone are taken as UTC.
func Timestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// Blank reports whether s is empty after trimming.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// AnyBlank reports whether any of values is blank.
func AnyBlank(values ...string) bool {
	for _, v := range values {
		if Blank(v) {
			return true
		}
	}
	return false
}

// BlankPtr reports whether p is set to a blank string. A nil pointer means
// "not supplied" and is not blank.
func BlankPtr(p *string) bool {
	return p != nil && Blank(*p)
}

// OneOf reports whether s is one of allowed.
func OneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
