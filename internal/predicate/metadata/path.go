package metadata

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/rql/internal/fsctx"
	"github.com/oxhq/rql/internal/predicate"
)

// globMetachars are the characters whose presence in a path/in value
// switches evaluation from substring matching to glob matching.
const globMetachars = "*?[{"

func isGlobPattern(v string) bool {
	return strings.ContainsAny(v, globMetachars)
}

// Path implements both "path:v" and "path_exact:v".
type Path struct{}

func (Path) Evaluate(ctx *fsctx.Context, key predicate.Key, value string) (predicate.MatchResult, error) {
	if key == predicate.PathExact {
		return evaluatePathExact(ctx, value), nil
	}
	return evaluatePath(ctx, value), nil
}

func evaluatePathExact(ctx *fsctx.Context, value string) predicate.MatchResult {
	expected := value
	if !filepath.IsAbs(expected) {
		expected = filepath.Join(ctx.Root, expected)
	}
	if resolved, err := filepath.EvalSymlinks(expected); err == nil {
		expected = resolved
	}
	return predicate.Bool(filepath.Clean(expected) == filepath.Clean(ctx.Path))
}

func evaluatePath(ctx *fsctx.Context, value string) predicate.MatchResult {
	relative := ctx.Path
	if rel, err := filepath.Rel(ctx.Root, ctx.Path); err == nil {
		relative = rel
	}
	relative = filepath.ToSlash(relative)
	absolute := filepath.ToSlash(ctx.Path)

	useAbsolute := filepath.IsAbs(value)
	target := relative
	if useAbsolute {
		target = absolute
	}

	if isGlobPattern(value) {
		ok, err := doublestar.Match(filepath.ToSlash(value), target)
		if err != nil {
			return predicate.Bool(false)
		}
		return predicate.Bool(ok)
	}
	return predicate.Bool(strings.Contains(target, value))
}
