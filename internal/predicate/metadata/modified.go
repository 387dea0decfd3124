package metadata

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oxhq/rql/internal/fsctx"
	"github.com/oxhq/rql/internal/predicate"
)

// Modified implements "modified:v".
type Modified struct {
	// Now is overridable for tests; nil uses time.Now.
	Now func() time.Time
}

func (m Modified) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m Modified) Evaluate(ctx *fsctx.Context, _ predicate.Key, value string) (predicate.MatchResult, error) {
	info, err := ctx.Stat()
	if err != nil {
		return predicate.MatchResult{}, fmt.Errorf("stat %s: %w", ctx.Path, err)
	}
	ok, err := compareModified(info.ModTime(), value, m.now())
	if err != nil {
		return predicate.MatchResult{}, err
	}
	return predicate.Bool(ok), nil
}

func compareModified(modified time.Time, query string, now time.Time) (bool, error) {
	op, timeStr := splitOperator(query)
	if timeStr == "" {
		return false, fmt.Errorf("modified predicate is missing a value")
	}

	var threshold time.Time
	if d, err := parseRelativeDuration(timeStr); err == nil {
		threshold = now.Add(-d)
	} else if t, err := parseAbsoluteTime(timeStr); err == nil {
		threshold = t
	} else {
		return false, fmt.Errorf("invalid date format: %q", timeStr)
	}

	switch op {
	case ">":
		return modified.After(threshold), nil
	case "<":
		return modified.Before(threshold), nil
	case "=":
		if len(timeStr) == 10 { // date-only value: whole-day equality, local time
			my, mm, md := modified.Local().Date()
			ty, tm, td := threshold.Local().Date()
			return my == ty && mm == tm && md == td, nil
		}
		return modified.Equal(threshold), nil
	default:
		return false, fmt.Errorf("invalid time operator: %q", op)
	}
}

func parseRelativeDuration(s string) (time.Duration, error) {
	split := len(s)
	for i, r := range s {
		if r < '0' || r > '9' {
			split = i
			break
		}
	}
	numStr, unit := s[:split], strings.TrimSpace(s[split:])
	if numStr == "" {
		return 0, fmt.Errorf("invalid relative time %q", s)
	}
	num, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil {
		return 0, err
	}
	var seconds uint64
	switch unit {
	case "s":
		seconds = 1
	case "m":
		seconds = 60
	case "h":
		seconds = 3600
	case "d":
		seconds = 86400
	case "w":
		seconds = 86400 * 7
	case "y":
		seconds = 86400 * 365
	default:
		return 0, fmt.Errorf("invalid time unit: %q", unit)
	}
	return time.Duration(num*seconds) * time.Second, nil
}

func parseAbsoluteTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid absolute date format: %q", s)
}
