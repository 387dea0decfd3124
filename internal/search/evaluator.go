package search

import (
	"github.com/oxhq/rql/internal/fsctx"
	"github.com/oxhq/rql/internal/predicate"
	"github.com/oxhq/rql/internal/rql"
)

// evaluator walks a parsed query tree against one file's context,
// consulting reg for each leaf. A key absent from reg (as happens
// during the metadata-only pre-filter pass, where only metadata
// evaluators are registered) is treated as an undecided "pass": the
// pre-filter is a superset oracle and must never reject a file it
// cannot fully judge. Mirrors rdump's Evaluator::evaluate_node.
type evaluator struct {
	reg *predicate.Registry
}

func newEvaluator(reg *predicate.Registry) *evaluator {
	return &evaluator{reg: reg}
}

func (e *evaluator) eval(node rql.Node, ctx *fsctx.Context) (predicate.MatchResult, error) {
	switch n := node.(type) {
	case *rql.PredicateNode:
		ev, ok := e.reg.Lookup(n.Key)
		if !ok {
			return predicate.Bool(true), nil
		}
		return ev.Evaluate(ctx, n.Key, n.Value)

	case *rql.LogicalNode:
		left, err := e.eval(n.Left, ctx)
		if err != nil {
			return predicate.MatchResult{}, err
		}
		if n.Op == rql.And && !left.IsMatch() {
			return predicate.Bool(false), nil
		}
		if n.Op == rql.Or && left.IsMatch() && !left.IsHunks() {
			return left, nil
		}
		right, err := e.eval(n.Right, ctx)
		if err != nil {
			return predicate.MatchResult{}, err
		}
		if n.Op == rql.And {
			return left.CombineAnd(right), nil
		}
		return left.CombineOr(right), nil

	case *rql.NotNode:
		if pn, ok := n.Child.(*rql.PredicateNode); ok {
			if !e.reg.Has(pn.Key) {
				// Cannot decide: assume it could match, defer to the
				// full evaluation pass.
				return predicate.Bool(true), nil
			}
		}
		result, err := e.eval(n.Child, ctx)
		if err != nil {
			return predicate.MatchResult{}, err
		}
		return result.Not(), nil

	default:
		return predicate.Bool(false), nil
	}
}
