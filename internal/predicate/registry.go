package predicate

import "github.com/oxhq/rql/internal/fsctx"

// Evaluator evaluates a single predicate against one file's context.
// The code-aware evaluator implements this once and serves every
// semantic and framework key, differentiated by the key argument.
type Evaluator interface {
	Evaluate(ctx *fsctx.Context, key Key, value string) (MatchResult, error)
}

// Registry maps predicate keys to their evaluator. Immutable once
// built; freely shared across concurrently evaluating goroutines.
type Registry struct {
	evaluators map[Key]Evaluator
}

// NewRegistry builds a Registry from key/evaluator pairs.
func NewRegistry(entries map[Key]Evaluator) *Registry {
	r := &Registry{evaluators: make(map[Key]Evaluator, len(entries))}
	for k, e := range entries {
		r.evaluators[k] = e
	}
	return r
}

// Lookup returns the evaluator bound to key, if any.
func (r *Registry) Lookup(key Key) (Evaluator, bool) {
	e, ok := r.evaluators[key]
	return e, ok
}

// Has reports whether key is bound in this registry.
func (r *Registry) Has(key Key) bool {
	_, ok := r.evaluators[key]
	return ok
}

// Keys returns the set of keys bound in this registry, in no
// particular order.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.evaluators))
	for k := range r.evaluators {
		keys = append(keys, k)
	}
	return keys
}
