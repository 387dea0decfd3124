package metadata

import (
	"fmt"
	"strconv"
	"strings"
)

// splitOperator splits a leading comparison operator (>, <, =) off a
// query string, defaulting to "=" when none is present.
func splitOperator(query string) (op, rest string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "=", ""
	}
	switch query[0] {
	case '>', '<', '=':
		return string(query[0]), strings.TrimSpace(query[1:])
	default:
		return "=", query
	}
}

// parseSize parses "[op]number[unit]" and compares it against
// fileSize, per SPEC_FULL.md §4.3.
func parseSize(fileSize int64, query string) (bool, error) {
	op, rest := splitOperator(query)
	if rest == "" {
		return false, fmt.Errorf("size predicate is missing a value")
	}
	rest = strings.ToLower(rest)

	split := len(rest)
	for i, r := range rest {
		if !(r >= '0' && r <= '9') && r != '.' {
			split = i
			break
		}
	}
	numStr, unit := rest[:split], strings.TrimSpace(rest[split:])

	num, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return false, fmt.Errorf("invalid size value %q: %w", rest, err)
	}

	var multiplier float64
	switch unit {
	case "b", "":
		multiplier = 1
	case "kb", "k":
		multiplier = 1024
	case "mb", "m":
		multiplier = 1024 * 1024
	case "gb", "g":
		multiplier = 1024 * 1024 * 1024
	default:
		return false, fmt.Errorf("invalid size unit: %q", unit)
	}

	target := int64(num * multiplier)
	switch op {
	case ">":
		return fileSize > target, nil
	case "<":
		return fileSize < target, nil
	case "=":
		return fileSize == target, nil
	default:
		return false, fmt.Errorf("invalid size operator: %q", op)
	}
}
