package content

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oxhq/rql/internal/fsctx"
	"github.com/oxhq/rql/internal/limits"
	"github.com/oxhq/rql/internal/model"
	"github.com/oxhq/rql/internal/predicate"
)

// Matches implements "matches:v": a regular-expression search over the
// file's raw content, evaluated line by line. Go's regexp package is
// RE2-based and has no exponential-backtracking worst case and no
// introspectable compiled-program size, so the original "10 MiB of NFA
// state" budget is approximated here by capping the pattern's source
// length instead; see DESIGN.md.
type Matches struct{}

func (Matches) Evaluate(ctx *fsctx.Context, _ predicate.Key, value string) (predicate.MatchResult, error) {
	if len(value) > limits.MaxRegexSourceLength {
		return predicate.MatchResult{}, fmt.Errorf("%w: pattern exceeds %d bytes", model.ErrInvalidRegex, limits.MaxRegexSourceLength)
	}
	re, err := regexp.Compile(value)
	if err != nil {
		return predicate.MatchResult{}, fmt.Errorf("%w: %q: %v", model.ErrInvalidRegex, value, err)
	}

	text, err := ctx.GetContent()
	if err != nil {
		return predicate.MatchResult{}, err
	}
	if ctx.Skipped() {
		return predicate.Bool(false), nil
	}

	var hunks []predicate.Hunk
	byteOffset := uint32(0)
	start := time.Now()
	for row, line := range strings.Split(text, "\n") {
		if row%limits.RegexCheckEveryLines == 0 && time.Since(start) > limits.MaxRegexEvalDuration {
			return predicate.MatchResult{}, fmt.Errorf("%w: %q", model.ErrRegexTimeout, value)
		}
		if re.MatchString(line) {
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
