package rql

import (
	"fmt"
	"strings"

	"github.com/oxhq/rql/internal/model"
)

// ParseQuery compiles a raw RQL query string into a Query tree.
// Predicate keys are recorded verbatim; an unrecognized key parses
// successfully here and is rejected later, when the query is bound
// against a predicate.Registry (see internal/search).
func ParseQuery(query string) (*Query, error) {
	if strings.TrimSpace(query) == "" {
		return nil, model.ErrEmptyQuery
	}

	tokens, err := lex(query)
	if err != nil {
		return nil, fmt.Errorf("invalid query syntax: %w", err)
	}

	p := &parser{tokens: tokens}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	switch p.peek().kind {
	case tokEOF:
		return &Query{Root: root}, nil
	case tokRParen:
		return nil, model.ErrUnbalancedParen
	default:
		return nil, fmt.Errorf("%w: two predicates or groups appear next to each other", model.ErrMissingOperator)
	}
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// isOperandStart reports whether t can begin a term (factor), used to
// detect an operator with nothing following it.
func isOperandStart(t token) bool {
	return t.kind == tokPredicate || t.kind == tokLParen || t.kind == tokNot
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.advance()
		if !isOperandStart(p.peek()) {
			return nil, model.ErrTrailingOperator
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalNode{Op: Or, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.advance()
		if !isOperandStart(p.peek()) {
			return nil, model.ErrTrailingOperator
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &LogicalNode{Op: And, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (Node, error) {
	if p.peek().kind == tokNot {
		p.advance()
		if !isOperandStart(p.peek()) {
			return nil, model.ErrTrailingOperator
		}
		child, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &NotNode{Child: child}, nil
	}
	return p.parseFactor()
}

func (p *parser) parseFactor() (Node, error) {
	switch p.peek().kind {
	case tokPredicate:
		t := p.advance()
		return &PredicateNode{Key: t.key, Value: t.value}, nil
	case tokLParen:
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, model.ErrUnbalancedParen
		}
		p.advance()
		return inner, nil
	case tokRParen:
		return nil, model.ErrUnbalancedParen
	case tokEOF:
		return nil, fmt.Errorf("invalid query syntax: unexpected end of query")
	default:
		return nil, fmt.Errorf("invalid query syntax: unexpected token")
	}
}
