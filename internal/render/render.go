// Package render shapes search.SearchResult values into the five
// output modes a caller or the cmd/rql CLI can choose from. The
// context-window merge algorithm is ported in meaning from rdump's
// formatter.rs (get_contextual_line_ranges); the mode set itself is
// grounded in print_output's Format dispatch.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/oxhq/rql/internal/predicate"
	"github.com/oxhq/rql/internal/search"
)

// Mode selects an output shape.
type Mode int

const (
	// ModePaths prints one matching path per line.
	ModePaths Mode = iota
	// ModeMatches prints "path:row:col" for every hunk, or just the
	// path for a plain boolean match.
	ModeMatches
	// ModeSnippet prints each hunk with ContextLines of surrounding
	// source, overlapping windows merged, "..." between gaps.
	ModeSnippet
	// ModeFull prints each whole matching file.
	ModeFull
	// ModeSummary prints only the matching file count.
	ModeSummary
)

// Options configures rendering.
type Options struct {
	Mode         Mode
	ContextLines int  // ModeSnippet only
	LineNumbers  bool // prefix each printed source line with its 1-based line number
	Headers      bool // print a "File: ..." header before each file's output
}

// Write renders results to w per opts.
func Write(w io.Writer, results []search.SearchResult, opts Options) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	switch opts.Mode {
	case ModeSummary:
		fmt.Fprintf(bw, "%d matching file(s)\n", len(results))
		return nil
	case ModePaths:
		for _, r := range results {
			fmt.Fprintln(bw, r.Path)
		}
		return nil
	case ModeMatches:
		return writeMatches(bw, results)
	case ModeFull:
		return writeFull(bw, results, opts)
	case ModeSnippet:
		return writeSnippets(bw, results, opts)
	default:
		return fmt.Errorf("unknown render mode %d", opts.Mode)
	}
}

func writeMatches(w *bufio.Writer, results []search.SearchResult) error {
	for _, r := range results {
		if len(r.Hunks) == 0 {
			fmt.Fprintln(w, r.Path)
			continue
		}
		for _, h := range r.Hunks {
			fmt.Fprintf(w, "%s:%d:%d\n", r.Path, h.StartRow+1, h.StartCol+1)
		}
	}
	return nil
}

func writeFull(w *bufio.Writer, results []search.SearchResult, opts Options) error {
	for i, r := range results {
		if opts.Headers {
			if i > 0 {
				fmt.Fprint(w, "\n---\n\n")
			}
			fmt.Fprintf(w, "File: %s\n---\n", r.Path)
		}
		content, err := os.ReadFile(r.Path)
		if err != nil {
			return fmt.Errorf("render %s: %w", r.Path, err)
		}
		writeLines(w, splitLines(string(content)), 0, opts.LineNumbers)
	}
	return nil
}

func writeSnippets(w *bufio.Writer, results []search.SearchResult, opts Options) error {
	for i, r := range results {
		if opts.Headers {
			if i > 0 {
				fmt.Fprint(w, "\n---\n\n")
			}
			fmt.Fprintf(w, "File: %s\n---\n", r.Path)
		}
		content, err := os.ReadFile(r.Path)
		if err != nil {
			return fmt.Errorf("render %s: %w", r.Path, err)
		}
		lines := splitLines(string(content))

		if len(r.Hunks) == 0 {
			writeLines(w, lines, 0, opts.LineNumbers)
			continue
		}

		ranges := contextualLineRanges(r.Hunks, len(lines), opts.ContextLines)
		for j, rg := range ranges {
			if j > 0 {
				fmt.Fprintln(w, "...")
			}
			writeLines(w, lines[rg.start:rg.end], rg.start, opts.LineNumbers)
		}
	}
	return nil
}

func writeLines(w *bufio.Writer, lines []string, startLine int, numbered bool) {
	for i, line := range lines {
		if numbered {
			fmt.Fprintf(w, "%6d  %s\n", startLine+i+1, line)
		} else {
			fmt.Fprintln(w, line)
		}
	}
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

type lineRange struct{ start, end int } // end exclusive, 0-based

// contextualLineRanges expands each hunk by contextLines on both
// sides, clamps to [0,totalLines), and merges overlapping or
// touching ranges, in row order. Ported in meaning from rdump's
// get_contextual_line_ranges.
func contextualLineRanges(hunks []predicate.Hunk, totalLines, contextLines int) []lineRange {
	if len(hunks) == 0 || totalLines == 0 {
		return nil
	}

	ranges := make([]lineRange, 0, len(hunks))
	for _, h := range hunks {
		startLine := int(h.StartRow)
		endLine := int(h.EndRow)

		contextStart := startLine - contextLines
		if contextStart < 0 {
			contextStart = 0
		}
		contextEnd := endLine + contextLines
		if contextEnd > totalLines-1 {
			contextEnd = totalLines - 1
		}
		if contextEnd >= contextStart {
			ranges = append(ranges, lineRange{start: contextStart, end: contextEnd + 1})
		}
	}
	if len(ranges) == 0 {
		return nil
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })

	merged := make([]lineRange, 0, len(ranges))
	current := ranges[0]
	for _, next := range ranges[1:] {
		if next.start <= current.end {
			if next.end > current.end {
				current.end = next.end
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}
