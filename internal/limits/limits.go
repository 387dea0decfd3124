// Package limits centralizes the resource caps and safety heuristics
// applied throughout the query pipeline: file size, traversal depth,
// regex time/space budgets, and the binary/secret content heuristics.
package limits

import (
	"strings"
	"time"
)

const (
	// MaxFileSize is the largest file the core will read content from.
	// Files above this size still evaluate metadata predicates but are
	// skipped for content/semantic predicates. Fixed at the low end of
	// the spec's documented 10-100 MiB range; see DESIGN.md.
	MaxFileSize int64 = 10 * 1024 * 1024

	// DefaultMaxDepth is the default directory traversal depth cap.
	DefaultMaxDepth = 100

	// MaxRegexEvalDuration bounds wall-clock time spent evaluating a
	// single regex against one file.
	MaxRegexEvalDuration = 200 * time.Millisecond

	// MaxRegexSourceLength approximates the "10 MiB of NFA state"
	// budget from the original implementation. Go's regexp (RE2) has
	// no catastrophic-backtracking risk and no introspectable program
	// size, so this caps the *source pattern* length as a stand-in;
	// see DESIGN.md for the stdlib-only justification.
	MaxRegexSourceLength = 1 << 16

	// RegexCheckEveryLines is how often, in scanned lines, the wall
	// clock is checked against MaxRegexEvalDuration.
	RegexCheckEveryLines = 100
)

// IsProbablyBinary reports whether a byte slice looks like binary
// content: any NUL byte in the prefix marks it so.
func IsProbablyBinary(b []byte) bool {
	for _, c := range b {
		if c == 0 {
			return true
		}
	}
	return false
}

// secretMarkers are substrings whose presence marks a file as
// possibly containing a secret. This is a safety default, not a
// security boundary.
var secretMarkers = []string{
	"-----begin private key-----",
	"aws_secret_access_key",
	"aws_access_key_id",
	"secret_key=",
	"secret-key=",
	"authorization: bearer",
	"eyj", // common JWT prefix (base64url '{"typ":"JWT"...}')
	"private_key",
}

// MaybeContainsSecret applies the fixed marker-list heuristic to
// decoded file content.
func MaybeContainsSecret(content string) bool {
	lower := strings.ToLower(content)
	for _, marker := range secretMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
