// Package fsctx implements the per-file evaluation context: a lazy
// cache of raw content and parsed syntax tree, owned exclusively by
// the goroutine evaluating one file. No synchronization is used or
// needed — each Context is created, used, and discarded within a
// single worker task (see internal/search's pipeline driver).
package fsctx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/rql/internal/limits"
	"github.com/oxhq/rql/internal/model"
)

// Context holds the lazily-computed state needed to evaluate
// predicates against a single file.
type Context struct {
	Path string // canonical absolute path
	Root string // canonical absolute root

	contentLoaded bool
	content       string
	skipped       bool
	skipReason    model.DiagnosticKind

	tree         *sitter.Tree
	treeLanguage *sitter.Language

	// Diagnostics accumulated while evaluating this file (possible
	// binary/secret/oversize skips). Drained by the pipeline driver
	// after evaluation.
	Diagnostics []model.Diagnostic
}

// New creates a Context for path relative to root. Both are
// canonicalized; canonicalization failures are deferred to the first
// operation that needs the filesystem (New itself never errors, to
// match the single-owner, fail-at-point-of-use style of the rest of
// the pipeline).
func New(path, root string) *Context {
	canonPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		canonPath = path
	}
	canonRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		canonRoot = root
	}
	return &Context{Path: canonPath, Root: canonRoot}
}

// Stat returns os.Stat for the context's path.
func (c *Context) Stat() (os.FileInfo, error) {
	return os.Stat(c.Path)
}

// GetContent lazily reads and decodes the file, applying the
// size/binary/secret skip policy. A skipped file returns an empty
// string and a recorded diagnostic, never an error: skip policy is a
// safety default, not a failure.
func (c *Context) GetContent() (string, error) {
	if c.contentLoaded {
		return c.content, nil
	}
	c.contentLoaded = true

	info, err := c.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", model.ErrReadFailed, c.Path, err)
	}

	if info.Size() > limits.MaxFileSize {
		c.skip(model.DiagOversizeFile, fmt.Sprintf("exceeds max file size of %d bytes", limits.MaxFileSize))
		return c.content, nil
	}

	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", model.ErrReadFailed, c.Path, err)
	}

	if limits.IsProbablyBinary(raw) {
		c.skip(model.DiagPossibleBinary, "probably a binary file")
		return c.content, nil
	}

	text := string(raw)
	if limits.MaybeContainsSecret(text) {
		c.skip(model.DiagPossibleSecret, "possibly contains a secret")
		return c.content, nil
	}

	c.content = text
	return c.content, nil
}

func (c *Context) skip(kind model.DiagnosticKind, message string) {
	c.skipped = true
	c.skipReason = kind
	c.content = ""
	c.Diagnostics = append(c.Diagnostics, model.Diagnostic{Kind: kind, Path: c.Path, Message: message})
}

// Skipped reports whether content/semantic predicates should treat
// this file as unreadable (oversize, binary, or a possible secret).
// Metadata predicates are unaffected and must not consult this.
func (c *Context) Skipped() bool {
	return c.skipped
}

// GetTree lazily parses the file with the given tree-sitter language
// and caches the result. A cache hit for a different language re-
// parses (this happens only if a file's extension maps to more than
// one profile's grammar, which does not occur in this registry, but
// the guard keeps the cache honest rather than silently stale).
func (c *Context) GetTree(language *sitter.Language) (*sitter.Tree, error) {
	if c.tree != nil && c.treeLanguage == language {
		return c.tree, nil
	}
	content, err := c.GetContent()
	if err != nil {
		return nil, err
	}
	parser := sitter.NewParser()
	parser.SetLanguage(language)
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrParseTreeFailed, c.Path, err)
	}
	c.tree = tree
	c.treeLanguage = language
	return c.tree, nil
}
