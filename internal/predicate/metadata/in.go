package metadata

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oxhq/rql/internal/fsctx"
	"github.com/oxhq/rql/internal/predicate"
)

// In implements "in:v", matching against the file's containing
// directory only (never recursively against ancestors), per
// SPEC_FULL.md §4.3. This follows the spec text rather than
// original_source's in_path.rs, which falls back to a full-path glob
// match before checking the parent directory; see DESIGN.md.
type In struct{}

func (In) Evaluate(ctx *fsctx.Context, _ predicate.Key, value string) (predicate.MatchResult, error) {
	parent := filepath.Dir(ctx.Path)

	if isGlobPattern(value) {
		relativeParent := parent
		if rel, err := filepath.Rel(ctx.Root, parent); err == nil {
			relativeParent = rel
		}
		ok, err := doublestar.Match(filepath.ToSlash(value), filepath.ToSlash(relativeParent))
		if err != nil {
			return predicate.Bool(false), nil
		}
		return predicate.Bool(ok), nil
	}

	target := value
	if !filepath.IsAbs(target) {
		target = filepath.Join(ctx.Root, target)
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return predicate.Bool(false), nil
	}
	canonicalTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		return predicate.Bool(false), nil
	}
	canonicalParent, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return predicate.Bool(false), nil
	}
	return predicate.Bool(filepath.Clean(canonicalParent) == filepath.Clean(canonicalTarget)), nil
}
