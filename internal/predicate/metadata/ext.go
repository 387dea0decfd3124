// Package metadata implements the filesystem-metadata-only predicate
// evaluators (ext, name, path, path_exact, in, size, modified). None
// of them read file content; all return predicate.Bool.
package metadata

import (
	"path/filepath"
	"strings"

	"github.com/oxhq/rql/internal/fsctx"
	"github.com/oxhq/rql/internal/predicate"
)

// Ext implements "ext:v": case-sensitive equality against the file's
// final extension, without the leading dot.
type Ext struct{}

func (Ext) Evaluate(ctx *fsctx.Context, _ predicate.Key, value string) (predicate.MatchResult, error) {
	ext := strings.TrimPrefix(filepath.Ext(ctx.Path), ".")
	return predicate.Bool(ext == value), nil
}
