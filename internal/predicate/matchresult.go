package predicate

import "sort"

// Hunk is a contiguous byte range within a file, with line/column
// coordinates for both endpoints, representing a located match.
type Hunk struct {
	StartByte, EndByte     uint32
	StartRow, StartCol     uint32
	EndRow, EndCol         uint32
}

// lessHunk orders hunks by start byte, the sort key used throughout the
// pipeline (§3's "sorted by start-byte" invariant).
func lessHunk(a, b Hunk) bool { return a.StartByte < b.StartByte }

// MatchResult is either a plain boolean verdict or a set of hunks.
// Exactly one of the two fields is meaningful, selected by IsHunks.
// A struct with a discriminant (rather than an interface) keeps the
// zero value well-defined and avoids allocating for the common
// Boolean(false)/Boolean(true) cases.
type MatchResult struct {
	isHunks bool
	boolean bool
	hunks   []Hunk
}

// Bool constructs a Boolean(b) result.
func Bool(b bool) MatchResult { return MatchResult{boolean: b} }

// Hunks constructs a Hunks(h) result. An empty slice is normalized to
// Boolean(false) per §3's invariant that Hunks(∅) must never be
// observed by the logic layer.
func Hunks(h []Hunk) MatchResult {
	if len(h) == 0 {
		return Bool(false)
	}
	sorted := make([]Hunk, len(h))
	copy(sorted, h)
	sort.Slice(sorted, func(i, j int) bool { return lessHunk(sorted[i], sorted[j]) })
	sorted = dedupHunks(sorted)
	return MatchResult{isHunks: true, hunks: sorted}
}

func dedupHunks(sorted []Hunk) []Hunk {
	out := sorted[:0:0]
	for i, h := range sorted {
		if i > 0 && h == sorted[i-1] {
			continue
		}
		out = append(out, h)
	}
	return out
}

// IsHunks reports whether this result carries hunks rather than a
// plain boolean verdict.
func (m MatchResult) IsHunks() bool { return m.isHunks }

// HunkList returns the hunks carried by this result, or nil if it is
// a Boolean result.
func (m MatchResult) HunkList() []Hunk {
	if !m.isHunks {
		return nil
	}
	return m.hunks
}

// IsMatch implements the single rule that unifies the two variants:
// Boolean(true), or any non-empty Hunks set.
func (m MatchResult) IsMatch() bool {
	if m.isHunks {
		return len(m.hunks) > 0
	}
	return m.boolean
}

// CombineAnd implements the AND row of §4.6's combination table.
func (m MatchResult) CombineAnd(other MatchResult) MatchResult {
	if !m.IsMatch() || !other.IsMatch() {
		return Bool(false)
	}
	switch {
	case m.isHunks && other.isHunks:
		return Hunks(append(append([]Hunk{}, m.hunks...), other.hunks...))
	case m.isHunks && !other.isHunks: // other is Boolean(true)
		return m
	case !m.isHunks && other.isHunks: // m is Boolean(true)
		return other
	default:
		return Bool(true)
	}
}

// CombineOr implements the OR row of §4.6's combination table.
func (m MatchResult) CombineOr(other MatchResult) MatchResult {
	if (!m.isHunks && m.boolean) || (!other.isHunks && other.boolean) {
		return Bool(true)
	}
	switch {
	case m.isHunks && other.isHunks:
		return Hunks(append(append([]Hunk{}, m.hunks...), other.hunks...))
	case m.isHunks && !other.isHunks: // other is Boolean(false)
		return m
	case !m.isHunks && other.isHunks: // m is Boolean(false)
		return other
	default:
		return Bool(false)
	}
}

// Not implements §4.6's Not rule: Not never produces hunks.
func (m MatchResult) Not() MatchResult {
	return Bool(!m.IsMatch())
}
