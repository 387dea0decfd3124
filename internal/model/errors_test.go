package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors_WrapWithErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("parsing query: %w", ErrEmptyQuery)
	assert.True(t, errors.Is(wrapped, ErrEmptyQuery))
	assert.False(t, errors.Is(wrapped, ErrUnbalancedParen))
}

func TestDiagnostic_Error(t *testing.T) {
	d := Diagnostic{Kind: DiagOversizeFile, Path: "/a/b.go", Message: "too big"}
	assert.Equal(t, "/a/b.go: too big", d.Error())
}
