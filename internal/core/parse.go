package core

import (
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"syndication-kit/internal/types"
)

// timeLayouts is the accepted RFC 3339 profile, most precise first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime parses an RFC 3339 timestamp. Values without a zone are read as
// UTC. The boolean is false when nothing parsed; callers skip the field.
func ParseTime(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatTime renders t in UTC. The zero time renders as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseScore parses an invariant decimal score. Malformed or out of range
// values report false instead of failing.
func ParseScore(value string) (types.Score, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return types.Score{}, false
	}
	parsed, err := decimal.NewFromString(trimmed)
	if err != nil {
		return types.Score{}, false
	}
	score, err := types.NewScore(parsed)
	if err != nil {
		return types.Score{}, false
	}
	return score, true
}

// Text returns the trimmed character data of el, or "" for nil.
func Text(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
