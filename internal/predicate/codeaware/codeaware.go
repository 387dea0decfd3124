// Package codeaware implements the single polymorphic evaluator that
// serves every semantic and framework predicate key. It is grounded
// on the same tree-sitter query/capture idiom the teacher repo uses
// (compile a Query, walk a QueryCursor, filter captures by name) but
// keyed by a per-language, per-key query map rather than a single
// hard-coded pattern.
package codeaware

import (
	"log/slog"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/rql/internal/fsctx"
	"github.com/oxhq/rql/internal/lang"
	"github.com/oxhq/rql/internal/predicate"
)

// captureName is the tree-query capture that carries the node a
// predicate is judged against. Every profile query in internal/lang
// tags its match node with this capture.
const captureName = "match"

// Evaluator implements predicate.Evaluator for every semantic and
// framework key. It is stateless and safe to share across goroutines;
// all per-file state lives in the fsctx.Context it is given.
type Evaluator struct {
	Logger *slog.Logger
}

// New builds a code-aware Evaluator. A nil logger falls back to
// slog.Default().
func New(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{Logger: logger}
}

// Evaluate implements predicate.Evaluator.
func (e *Evaluator) Evaluate(ctx *fsctx.Context, key predicate.Key, value string) (predicate.MatchResult, error) {
	ext := extensionOf(ctx.Path)
	profile, ok := lang.LookupByExtension(ext)
	if !ok {
		return predicate.Bool(false), nil
	}

	query, ok := profile.Queries[key]
	if !ok || query == "" {
		return predicate.Bool(false), nil
	}

	content, err := ctx.GetContent()
	if err != nil {
		return predicate.MatchResult{}, err
	}
	if ctx.Skipped() {
		return predicate.Bool(false), nil
	}

	tree, err := ctx.GetTree(profile.Language)
	if err != nil {
		e.Logger.Warn("failed to parse file, skipping code-aware predicate",
			"path", ctx.Path, "key", string(key), "error", err)
		return predicate.Bool(false), nil
	}

	q, err := sitter.NewQuery([]byte(query), profile.Language)
	if err != nil {
		return predicate.MatchResult{}, err
	}
	defer q.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q, tree.RootNode())

	src := []byte(content)
	var hunks []predicate.Hunk

	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		m = cursor.FilterPredicates(m, src)
		for _, capture := range m.Captures {
			if q.CaptureNameForId(capture.Index) != captureName {
				continue
			}
			node := capture.Node
			text := node.Content(src)
			if !matches(key, value, text) {
				continue
			}
			r := node.Range()
			hunks = append(hunks, predicate.Hunk{
				StartByte: r.StartByte, EndByte: r.EndByte,
				StartRow: r.StartPoint.Row, StartCol: r.StartPoint.Column,
				EndRow: r.EndPoint.Row, EndCol: r.EndPoint.Column,
			})
		}
	}

	return predicate.Hunks(hunks), nil
}

// matches applies the match-kind policy of SPEC_FULL.md §4.5.
func matches(key predicate.Key, value, capturedText string) bool {
	switch {
	case predicate.IsReferenceStyle(key):
		return strings.Contains(capturedText, value)
	case predicate.IsHook(key):
		return value == predicate.Wildcard || capturedText == value
	default:
		return value == predicate.Wildcard || capturedText == value
	}
}

func extensionOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 || i == len(path)-1 {
		return ""
	}
	// Strip any directory separator that might precede a dot-only
	// basename like ".gitignore" — treated as having no extension.
	slash := strings.LastIndexAny(path, `/\`)
	if slash > i {
		return ""
	}
	base := path
	if slash >= 0 {
		base = path[slash+1:]
	}
	if strings.HasPrefix(base, ".") && !strings.Contains(base[1:], ".") {
		return ""
	}
	return path[i+1:]
}
