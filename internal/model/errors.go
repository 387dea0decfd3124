// Package model holds the error taxonomy shared across the query
// pipeline: sentinel errors for programmatic checking plus a
// machine-readable ErrorCode for diagnostic output.
package model

import "errors"

// Sentinel errors for programmatic checking via errors.Is.
var (
	ErrEmptyQuery       = errors.New("query cannot be empty")
	ErrTrailingOperator = errors.New("query cannot end with an operator")
	ErrMissingOperator  = errors.New("missing logical operator between terms")
	ErrUnbalancedParen  = errors.New("unbalanced parenthesis")
	ErrMissingValue     = errors.New("predicate is missing a value")
	ErrUnknownPredicate = errors.New("unknown predicate")
	ErrRootNotFound     = errors.New("root path does not exist or is not accessible")
	ErrPresetNotFound   = errors.New("preset not found")
	ErrCircularPreset   = errors.New("circular preset reference")
	ErrInvalidRegex     = errors.New("invalid regex")
	ErrRegexTimeout     = errors.New("regex evaluation exceeded its time budget")
	ErrReadFailed       = errors.New("failed to read file")
	ErrParseTreeFailed  = errors.New("failed to parse syntax tree")
	ErrPathEscapesRoot  = errors.New("path escapes root")
)

// ErrorCode is a machine-readable error kind, stable across releases,
// suitable for JSON diagnostic output.
type ErrorCode string

const (
	ECNone              ErrorCode = ""
	ECParseError        ErrorCode = "ERR_PARSE"
	ECUnknownPredicate  ErrorCode = "ERR_UNKNOWN_PREDICATE"
	ECRootError         ErrorCode = "ERR_ROOT"
	ECPresetError       ErrorCode = "ERR_PRESET"
	ECFileError         ErrorCode = "ERR_FILE"
	ECRegexError        ErrorCode = "ERR_REGEX"
	ECWalkWarning       ErrorCode = "WARN_WALK"
	ECPossibleBinary    ErrorCode = "WARN_POSSIBLE_BINARY"
	ECPossibleSecret    ErrorCode = "WARN_POSSIBLE_SECRET"
	ECOversizeFile      ErrorCode = "WARN_OVERSIZE_FILE"
	ECUnknown           ErrorCode = "ERR_UNKNOWN"
)

// DiagnosticKind distinguishes a fatal error from an informational
// diagnostic emitted on the out-of-band channel.
type DiagnosticKind string

const (
	DiagWalkWarning    DiagnosticKind = "walk_warning"
	DiagPossibleBinary DiagnosticKind = "possible_binary"
	DiagPossibleSecret DiagnosticKind = "possible_secret"
	DiagOversizeFile   DiagnosticKind = "oversize_file"
	DiagFileError      DiagnosticKind = "file_error"
)

// Diagnostic is a non-fatal, out-of-band event surfaced during a
// search: a skipped file, an unreadable directory entry, or (when
// Options.SkipErrors is set) a per-file error that would otherwise
// have aborted the search.
type Diagnostic struct {
	Kind    DiagnosticKind
	Path    string
	Message string
}

func (d Diagnostic) Error() string {
	return d.Path + ": " + d.Message
}
