package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/rql/internal/predicate"
	"github.com/oxhq/rql/internal/search"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.go")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWrite_ModePaths(t *testing.T) {
	results := []search.SearchResult{{Path: "/a/b.go"}, {Path: "/a/c.go"}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, Options{Mode: ModePaths}))
	assert.Equal(t, "/a/b.go\n/a/c.go\n", buf.String())
}

func TestWrite_ModeSummary(t *testing.T) {
	results := []search.SearchResult{{Path: "/a/b.go"}, {Path: "/a/c.go"}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, Options{Mode: ModeSummary}))
	assert.Equal(t, "2 matching file(s)\n", buf.String())
}

func TestWrite_ModeMatches(t *testing.T) {
	results := []search.SearchResult{
		{Path: "/a/b.go", Hunks: []predicate.Hunk{{StartRow: 3, StartCol: 5}}},
		{Path: "/a/c.go"},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, Options{Mode: ModeMatches}))
	assert.Equal(t, "/a/b.go:4:6\n/a/c.go\n", buf.String())
}

func TestWrite_ModeFull(t *testing.T) {
	path := writeFixture(t, "line1\nline2\n")
	results := []search.SearchResult{{Path: path}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, Options{Mode: ModeFull}))
	assert.Equal(t, "line1\nline2\n", buf.String())
}

func TestWrite_ModeSnippet_NoContextExpandsNothing(t *testing.T) {
	path := writeFixture(t, "l0\nl1\nl2\nl3\nl4\n")
	results := []search.SearchResult{{
		Path:  path,
		Hunks: []predicate.Hunk{{StartRow: 2, EndRow: 2}},
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, Options{Mode: ModeSnippet, ContextLines: 0}))
	assert.Equal(t, "l2\n", buf.String())
}

func TestWrite_ModeSnippet_ExpandsContext(t *testing.T) {
	path := writeFixture(t, "l0\nl1\nl2\nl3\nl4\n")
	results := []search.SearchResult{{
		Path:  path,
		Hunks: []predicate.Hunk{{StartRow: 2, EndRow: 2}},
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, Options{Mode: ModeSnippet, ContextLines: 1}))
	assert.Equal(t, "l1\nl2\nl3\n", buf.String())
}

func TestWrite_ModeSnippet_MergesOverlappingWindows(t *testing.T) {
	path := writeFixture(t, "l0\nl1\nl2\nl3\nl4\nl5\nl6\n")
	results := []search.SearchResult{{
		Path: path,
		Hunks: []predicate.Hunk{
			{StartRow: 1, EndRow: 1},
			{StartRow: 3, EndRow: 3},
		},
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, Options{Mode: ModeSnippet, ContextLines: 1}))
	// windows [0,2] and [2,4] touch at line 2 and merge into one [0,4],
	// so no "..." separator should appear.
	assert.Equal(t, "l0\nl1\nl2\nl3\nl4\n", buf.String())
}

func TestWrite_ModeSnippet_SeparatesDisjointWindows(t *testing.T) {
	path := writeFixture(t, "l0\nl1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\n")
	results := []search.SearchResult{{
		Path: path,
		Hunks: []predicate.Hunk{
			{StartRow: 0, EndRow: 0},
			{StartRow: 9, EndRow: 9},
		},
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, Options{Mode: ModeSnippet, ContextLines: 0}))
	assert.Equal(t, "l0\n...\nl9\n", buf.String())
}

func TestWrite_ModeSnippet_ClampsAtFileBoundaries(t *testing.T) {
	path := writeFixture(t, "l0\nl1\nl2\n")
	results := []search.SearchResult{{
		Path:  path,
		Hunks: []predicate.Hunk{{StartRow: 0, EndRow: 0}},
	}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, Options{Mode: ModeSnippet, ContextLines: 5}))
	assert.Equal(t, "l0\nl1\nl2\n", buf.String())
}

func TestWrite_LineNumbers(t *testing.T) {
	path := writeFixture(t, "l0\nl1\n")
	results := []search.SearchResult{{Path: path}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results, Options{Mode: ModeFull, LineNumbers: true}))
	assert.Equal(t, "     1  l0\n     2  l1\n", buf.String())
}

func TestContextualLineRanges_Empty(t *testing.T) {
	assert.Nil(t, contextualLineRanges(nil, 10, 2))
	assert.Nil(t, contextualLineRanges([]predicate.Hunk{{StartRow: 0}}, 0, 2))
}

func TestWrite_UnknownMode(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, nil, Options{Mode: Mode(99)})
	assert.Error(t, err)
}
