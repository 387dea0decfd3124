package metadata

import (
	"fmt"

	"github.com/oxhq/rql/internal/fsctx"
	"github.com/oxhq/rql/internal/predicate"
)

// Size implements "size:v".
type Size struct{}

func (Size) Evaluate(ctx *fsctx.Context, _ predicate.Key, value string) (predicate.MatchResult, error) {
	info, err := ctx.Stat()
	if err != nil {
		return predicate.MatchResult{}, fmt.Errorf("stat %s: %w", ctx.Path, err)
	}
	ok, err := parseSize(info.Size(), value)
	if err != nil {
		return predicate.MatchResult{}, err
	}
	return predicate.Bool(ok), nil
}
