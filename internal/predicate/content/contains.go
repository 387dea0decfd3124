// Package content implements the raw-text predicates "contains:v" and
// "matches:v", both of which scan file content line by line and emit
// one hunk per matching line.
package content

import (
	"strings"

	"github.com/oxhq/rql/internal/fsctx"
	"github.com/oxhq/rql/internal/predicate"
)

// Contains implements "contains:v": a case-insensitive substring search
// over the file's raw content.
type Contains struct{}

func (Contains) Evaluate(ctx *fsctx.Context, _ predicate.Key, value string) (predicate.MatchResult, error) {
	text, err := ctx.GetContent()
	if err != nil {
		return predicate.MatchResult{}, err
	}
	if ctx.Skipped() {
		return predicate.Bool(false), nil
	}

	needle := strings.ToLower(value)
	var hunks []predicate.Hunk
	byteOffset := uint32(0)
	for row, line := range strings.Split(text, "\n") {
		if strings.Contains(strings.ToLower(line), needle) {
			hunks = append(hunks, predicate.Hunk{
				StartByte: byteOffset,
				EndByte:   byteOffset + uint32(len(line)),
				StartRow:  uint32(row),
				StartCol:  0,
				EndRow:    uint32(row),
				EndCol:    uint32(len(line)),
			})
		}
		byteOffset += uint32(len(line)) + 1
	}
	return predicate.Hunks(hunks), nil
}
