// Package search implements the two-pass query pipeline: a serial,
// metadata-only pre-filter (a superset oracle) followed by a
// parallel, full evaluation pass over the surviving candidates.
// Grounded in rdump's commands/search.rs perform_search, with the
// parallel pass run on a bounded goroutine pool (channels + a
// sync.WaitGroup).
package search

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/oxhq/rql/internal/fsctx"
	"github.com/oxhq/rql/internal/lang"
	"github.com/oxhq/rql/internal/model"
	"github.com/oxhq/rql/internal/predicate"
	"github.com/oxhq/rql/internal/predicate/codeaware"
	"github.com/oxhq/rql/internal/predicate/content"
	"github.com/oxhq/rql/internal/predicate/metadata"
	"github.com/oxhq/rql/internal/rql"
	"github.com/oxhq/rql/internal/walk"
)

// Walker discovers candidate files under a root. internal/walk.Default
// satisfies this.
type Walker interface {
	Walk(root string, opts walk.Options) ([]string, []walk.Warning, error)
}

// Options configures a search. Root and the query text are the only
// required fields; everything else has a safe default.
type Options struct {
	Root       string
	Presets    []string // names resolved against a loaded config.Config
	NoIgnore   bool
	Hidden     bool
	MaxDepth   int
	SQLDialect string // see SPEC_FULL.md §6: accepted, currently a no-op (no SQL profile registered)

	SkipErrors bool   // record per-file errors as diagnostics instead of aborting
	Walker     Walker // defaults to walk.Default{}

	// PresetResolver resolves a preset name to its query fragment.
	// A nil resolver resolves no name, so any name in Options.Presets
	// fails with model.ErrPresetNotFound unless a caller (or cmd/rql,
	// which wires internal/config) supplies one.
	PresetResolver func(name string) (string, bool)
}

// SearchResult is one matching file: its display path and, if the
// query produced hunks rather than a plain boolean verdict, the
// located ranges within it.
type SearchResult struct {
	Path  string
	Hunks []predicate.Hunk
}

// ResultIter streams SearchResults produced by a running search. The
// search runs in a background goroutine; Next blocks until the next
// result, an error, or completion.
type ResultIter struct {
	results     chan SearchResult
	diagnostics chan model.Diagnostic
	err         chan error
	done        bool
	lastErr     error
}

// Next returns the next result, or ok=false once the search has
// finished (check Err for the reason, nil on ordinary completion).
func (it *ResultIter) Next() (SearchResult, bool) {
	if it.done {
		return SearchResult{}, false
	}
	r, ok := <-it.results
	if !ok {
		it.done = true
		it.lastErr = <-it.err
		return SearchResult{}, false
	}
	return r, true
}

// Err returns the error that ended the search, if any. Only valid
// after Next has returned ok=false.
func (it *ResultIter) Err() error { return it.lastErr }

// Diagnostics returns the channel of non-fatal diagnostics (skipped
// files, walk warnings) accumulated during the search. Drain it
// concurrently with Next to avoid blocking the search when
// Options.SkipErrors is set.
func (it *ResultIter) Diagnostics() <-chan model.Diagnostic { return it.diagnostics }

// ListLanguages re-exports internal/lang's profile catalog for the
// public library surface.
func ListLanguages() []lang.Info { return lang.ListLanguages() }

// DescribeLanguage re-exports internal/lang's profile lookup.
func DescribeLanguage(nameOrExt string) (lang.Info, error) { return lang.DescribeLanguage(nameOrExt) }

// ParseQuery re-exports internal/rql's parser for the public surface.
func ParseQuery(text string) (*rql.Query, error) { return rql.ParseQuery(text) }

// fullRegistry builds the complete predicate registry: every key in
// the closed catalog is bound, either to a metadata/content evaluator
// or to the single shared code-aware evaluator.
func fullRegistry(codeLogger *codeaware.Evaluator) *predicate.Registry {
	entries := metadataEntries()
	entries[predicate.Contains] = content.Contains{}
	entries[predicate.Matches] = content.Matches{}

	for _, k := range []predicate.Key{
		predicate.Def, predicate.Func, predicate.Class, predicate.Struct,
		predicate.Enum, predicate.Interface, predicate.Trait, predicate.Type,
		predicate.Impl, predicate.Macro, predicate.Module, predicate.Object,
		predicate.Protocol, predicate.Import, predicate.Call, predicate.Comment,
		predicate.Str, predicate.Component, predicate.Element, predicate.Hook,
		predicate.CustomHook, predicate.Prop,
	} {
		entries[k] = codeLogger
	}
	return predicate.NewRegistry(entries)
}

// metadataRegistry builds the pre-filter's registry: metadata
// predicates only, per rdump's create_metadata_predicate_registry.
func metadataRegistry() *predicate.Registry {
	return predicate.NewRegistry(metadataEntries())
}

func metadataEntries() map[predicate.Key]predicate.Evaluator {
	return map[predicate.Key]predicate.Evaluator{
		predicate.Ext:       metadata.Ext{},
		predicate.Name:      metadata.Name{},
		predicate.Path:      metadata.Path{},
		predicate.PathExact: metadata.Path{},
		predicate.In:        metadata.In{},
		predicate.Size:      metadata.Size{},
		predicate.Modified:  metadata.Modified{},
	}
}

// validSQLDialects are the accepted values for Options.SQLDialect.
// No SQL language profile is registered in internal/lang yet, so this
// is validated but otherwise unused: a documented no-op rather than a
// silently ignored field.
var validSQLDialects = map[string]bool{
	"":         true,
	"generic":  true,
	"postgres": true,
	"mysql":    true,
	"sqlite":   true,
}

func validateSQLDialect(dialect string) error {
	if !validSQLDialects[dialect] {
		return fmt.Errorf("unknown SQL dialect %q (want generic, postgres, mysql, or sqlite)", dialect)
	}
	return nil
}

// validatePredicates walks the tree, rejecting any key outside the
// closed catalog before any file is touched.
func validatePredicates(node rql.Node) error {
	switch n := node.(type) {
	case *rql.PredicateNode:
		if !predicate.IsKnown(n.Key) {
			return fmt.Errorf("%w: %q", model.ErrUnknownPredicate, n.Key)
		}
	case *rql.LogicalNode:
		if err := validatePredicates(n.Left); err != nil {
			return err
		}
		return validatePredicates(n.Right)
	case *rql.NotNode:
		return validatePredicates(n.Child)
	}
	return nil
}

// buildQueryText prepends resolved presets to queryText, ANDed
// together, matching rdump's "(preset1) & (preset2) & (query)"
// composition.
func buildQueryText(queryText string, presets []string, resolve func(string) (string, bool)) (string, error) {
	if len(presets) == 0 {
		return queryText, nil
	}
	if resolve == nil {
		resolve = func(string) (string, bool) { return "", false }
	}
	combined := ""
	for _, name := range presets {
		fragment, ok := resolve(name)
		if !ok {
			return "", fmt.Errorf("%w: %q", model.ErrPresetNotFound, name)
		}
		if combined == "" {
			combined = "(" + fragment + ")"
		} else {
			combined += " & (" + fragment + ")"
		}
	}
	if queryText == "" {
		return combined, nil
	}
	return combined + " & (" + queryText + ")", nil
}

// SearchIter starts a search and returns an iterator over its
// results. The search runs concurrently; cancel ctx to stop early.
func SearchIter(ctx context.Context, queryText string, opts Options) (*ResultIter, error) {
	if err := validateSQLDialect(opts.SQLDialect); err != nil {
		return nil, err
	}

	fullQuery, err := buildQueryText(queryText, opts.Presets, opts.PresetResolver)
	if err != nil {
		return nil, err
	}
	query, err := rql.ParseQuery(fullQuery)
	if err != nil {
		return nil, err
	}
	if err := validatePredicates(query.Root); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrRootNotFound, opts.Root)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	} else {
		return nil, fmt.Errorf("%w: %s", model.ErrRootNotFound, opts.Root)
	}

	walker := opts.Walker
	if walker == nil {
		walker = walk.Default{}
	}
	candidates, warnings, err := walker.Walk(root, walk.Options{
		Hidden:   opts.Hidden,
		NoIgnore: opts.NoIgnore,
		MaxDepth: opts.MaxDepth,
	})
	if err != nil {
		return nil, err
	}

	it := &ResultIter{
		results:     make(chan SearchResult, 64),
		diagnostics: make(chan model.Diagnostic, 64),
		err:         make(chan error, 1),
	}

	go runPipeline(ctx, query.Root, root, candidates, warnings, opts, it)
	return it, nil
}

func runPipeline(ctx context.Context, queryRoot rql.Node, root string, candidates []string, warnings []walk.Warning, opts Options, it *ResultIter) {
	defer close(it.results)
	defer close(it.diagnostics)

	runID := uuid.New().String()

	for _, w := range warnings {
		it.diagnostics <- model.Diagnostic{Kind: model.DiagWalkWarning, Path: w.Path, Message: w.Message}
	}

	metaEval := newEvaluator(metadataRegistry())
	var preFiltered []string
	for _, path := range candidates {
		select {
		case <-ctx.Done():
			it.err <- ctx.Err()
			return
		default:
		}
		fctx := fsctx.New(path, root)
		result, err := metaEval.eval(queryRoot, fctx)
		if err != nil {
			if !opts.SkipErrors {
				it.err <- fmt.Errorf("pre-filter %s: %w", path, err)
				return
			}
			it.diagnostics <- model.Diagnostic{Kind: model.DiagFileError, Path: path, Message: err.Error()}
			continue
		}
		if result.IsMatch() {
			preFiltered = append(preFiltered, path)
		}
	}

	fullEval := newEvaluator(fullRegistry(codeaware.New(nil)))

	type outcome struct {
		path  string
		hunks []predicate.Hunk
		err   error
	}

	workers := runtime.NumCPU() * 2
	if workers < 1 {
		workers = 1
	}
	paths := make(chan string, len(preFiltered))
	for _, p := range preFiltered {
		paths <- p
	}
	close(paths)

	outcomes := make(chan outcome, 64)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				select {
				case <-ctx.Done():
					return
				default:
				}
				fctx := fsctx.New(path, root)
				result, err := fullEval.eval(queryRoot, fctx)
				for _, d := range fctx.Diagnostics {
					select {
					case it.diagnostics <- d:
					default:
					}
				}
				if err != nil {
					outcomes <- outcome{path: path, err: err}
					continue
				}
				if !result.IsMatch() {
					continue
				}
				outcomes <- outcome{path: path, hunks: result.HunkList()}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var collected []outcome
	var fatal error
	for o := range outcomes {
		// Keep ranging until the workers (and the closer goroutine
		// above) are done even after the first fatal error, so no
		// worker ever blocks forever trying to send into this
		// buffered channel.
		if fatal != nil {
			continue
		}
		if o.err != nil {
			if !opts.SkipErrors {
				fatal = fmt.Errorf("evaluate %s: %w (run %s)", o.path, o.err, runID)
				continue
			}
			it.diagnostics <- model.Diagnostic{Kind: model.DiagFileError, Path: o.path, Message: o.err.Error()}
			continue
		}
		collected = append(collected, o)
	}
	if fatal != nil {
		it.err <- fatal
		return
	}

	sort.Slice(collected, func(i, j int) bool { return collected[i].path < collected[j].path })

	for _, o := range collected {
		// Display paths are expressed under the root as the caller
		// wrote it, not under its canonical form.
		display := o.path
		if rel, err := filepath.Rel(root, o.path); err == nil {
			display = filepath.Join(opts.Root, rel)
		}
		select {
		case <-ctx.Done():
			it.err <- ctx.Err()
			return
		case it.results <- SearchResult{Path: display, Hunks: o.hunks}:
		}
	}
	it.err <- nil
}

// Search runs a search to completion and collects every result.
func Search(ctx context.Context, queryText string, opts Options) ([]SearchResult, error) {
	it, err := SearchIter(ctx, queryText, opts)
	if err != nil {
		return nil, err
	}
	go func() {
		for range it.Diagnostics() {
		}
	}()
	var results []SearchResult
	for {
		r, ok := it.Next()
		if !ok {
			break
		}
		results = append(results, r)
	}
	return results, it.Err()
}
