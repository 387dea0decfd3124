package rql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/rql/internal/model"
	"github.com/oxhq/rql/internal/predicate"
)

func predNode(key predicate.Key, value string) *PredicateNode {
	return &PredicateNode{Key: key, Value: value}
}

func TestParseQuery_SinglePredicate(t *testing.T) {
	q, err := ParseQuery("ext:rs")
	require.NoError(t, err)
	assert.Equal(t, predNode("ext", "rs"), q.Root)
}

func TestParseQuery_QuotedValue(t *testing.T) {
	q, err := ParseQuery(`name:"foo bar"`)
	require.NoError(t, err)
	assert.Equal(t, predNode("name", "foo bar"), q.Root)
}

func TestParseQuery_QuotedValueWithEscape(t *testing.T) {
	q, err := ParseQuery(`name:"foo\"bar"`)
	require.NoError(t, err)
	assert.Equal(t, predNode("name", `foo"bar`), q.Root)
}

func TestParseQuery_SingleQuotedValue(t *testing.T) {
	q, err := ParseQuery(`name:'foo bar'`)
	require.NoError(t, err)
	assert.Equal(t, predNode("name", "foo bar"), q.Root)
}

func TestParseQuery_SymbolAnd(t *testing.T) {
	q, err := ParseQuery(`ext:rs & name:"foo"`)
	require.NoError(t, err)
	and, ok := q.Root.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, And, and.Op)
	assert.Equal(t, predNode("ext", "rs"), and.Left)
	assert.Equal(t, predNode("name", "foo"), and.Right)
}

func TestParseQuery_KeywordOperators(t *testing.T) {
	q, err := ParseQuery(`ext:rs and name:"foo"`)
	require.NoError(t, err)
	and, ok := q.Root.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, And, and.Op)

	q, err = ParseQuery(`ext:rs or ext:go`)
	require.NoError(t, err)
	or, ok := q.Root.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, Or, or.Op)

	q, err = ParseQuery(`not ext:rs`)
	require.NoError(t, err)
	not, ok := q.Root.(*NotNode)
	require.True(t, ok)
	assert.Equal(t, predNode("ext", "rs"), not.Child)
}

func TestParseQuery_KeywordOperatorsCaseInsensitive(t *testing.T) {
	q, err := ParseQuery(`ext:rs AND ext:go`)
	require.NoError(t, err)
	and, ok := q.Root.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, And, and.Op)
}

func TestParseQuery_Negation(t *testing.T) {
	q, err := ParseQuery("!ext:rs")
	require.NoError(t, err)
	not, ok := q.Root.(*NotNode)
	require.True(t, ok)
	assert.Equal(t, predNode("ext", "rs"), not.Child)
}

func TestParseQuery_PrecedenceNotBeforeAnd(t *testing.T) {
	// !ext:rs & ext:go  ==  (!ext:rs) & ext:go
	q, err := ParseQuery("!ext:rs & ext:go")
	require.NoError(t, err)
	and, ok := q.Root.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, And, and.Op)
	not, ok := and.Left.(*NotNode)
	require.True(t, ok)
	assert.Equal(t, predNode("ext", "rs"), not.Child)
	assert.Equal(t, predNode("ext", "go"), and.Right)
}

func TestParseQuery_PrecedenceAndBeforeOr(t *testing.T) {
	// ext:rs | ext:go & name:foo == ext:rs | (ext:go & name:foo)
	q, err := ParseQuery("ext:rs | ext:go & name:foo")
	require.NoError(t, err)
	or, ok := q.Root.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, Or, or.Op)
	assert.Equal(t, predNode("ext", "rs"), or.Left)
	and, ok := or.Right.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, And, and.Op)
}

func TestParseQuery_Parentheses(t *testing.T) {
	q, err := ParseQuery(`ext:rs & (name:"foo" | name:"bar") & !path:tests`)
	require.NoError(t, err)
	outer, ok := q.Root.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, And, outer.Op)

	inner, ok := outer.Left.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, And, inner.Op)
	assert.Equal(t, predNode("ext", "rs"), inner.Left)

	or, ok := inner.Right.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, Or, or.Op)
	assert.Equal(t, predNode("name", "foo"), or.Left)
	assert.Equal(t, predNode("name", "bar"), or.Right)

	not, ok := outer.Right.(*NotNode)
	require.True(t, ok)
	assert.Equal(t, predNode("path", "tests"), not.Child)
}

func TestParseQuery_LeftAssociative(t *testing.T) {
	q, err := ParseQuery("ext:a & ext:b & ext:c")
	require.NoError(t, err)
	top, ok := q.Root.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, predNode("ext", "c"), top.Right)
	left, ok := top.Left.(*LogicalNode)
	require.True(t, ok)
	assert.Equal(t, predNode("ext", "a"), left.Left)
	assert.Equal(t, predNode("ext", "b"), left.Right)
}

func TestParseQuery_UnknownPredicateKeyParsesFine(t *testing.T) {
	// Unknown keys are accepted by the grammar; rejected later by
	// internal/search against the closed predicate catalog.
	q, err := ParseQuery("bogus:value")
	require.NoError(t, err)
	assert.Equal(t, predNode("bogus", "value"), q.Root)
}

func TestParseQuery_Errors(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  error
	}{
		{"empty", "", model.ErrEmptyQuery},
		{"whitespace-only", "   ", model.ErrEmptyQuery},
		{"trailing-and", "ext:rs &", model.ErrTrailingOperator},
		{"trailing-or", "ext:rs |", model.ErrTrailingOperator},
		{"trailing-not", "ext:rs & !", model.ErrTrailingOperator},
		{"missing-operator", `ext:rs name:"foo"`, model.ErrMissingOperator},
		{"unclosed-paren", "(ext:rs & name:foo", model.ErrUnbalancedParen},
		{"extra-close-paren", "ext:rs)", model.ErrUnbalancedParen},
		{"missing-value", "ext:", model.ErrMissingValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseQuery(tc.query)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v, want wrapped %v", err, tc.want)
		})
	}
}

func TestParseQuery_BarewordValue(t *testing.T) {
	q, err := ParseQuery("ext:rs")
	require.NoError(t, err)
	assert.Equal(t, "rs", q.Root.(*PredicateNode).Value)
}

func TestParseQuery_BarewordValueStopsAtParen(t *testing.T) {
	q, err := ParseQuery("(ext:rs)")
	require.NoError(t, err)
	assert.Equal(t, predNode("ext", "rs"), q.Root)
}
