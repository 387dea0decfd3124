package metadata

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/rql/internal/fsctx"
	"github.com/oxhq/rql/internal/predicate"
)

// Name implements "name:v": a case-insensitive glob match of v
// against the file's basename. An empty v is a user error, not a
// non-match — an empty glob pattern carries no useful intent.
type Name struct{}

func (Name) Evaluate(ctx *fsctx.Context, _ predicate.Key, value string) (predicate.MatchResult, error) {
	if value == "" {
		return predicate.MatchResult{}, fmt.Errorf("invalid glob pattern: cannot be empty")
	}
	base := filepath.Base(ctx.Path)
	ok, err := doublestar.Match(strings.ToLower(value), strings.ToLower(base))
	if err != nil {
		return predicate.MatchResult{}, fmt.Errorf("invalid glob pattern %q: %w", value, err)
	}
	return predicate.Bool(ok), nil
}
