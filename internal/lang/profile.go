// Package lang is the code-aware evaluator's extensibility point: a
// static, immutable table of per-language Profiles, each binding a
// set of file extensions to a tree-sitter grammar and a map from
// predicate key to tree-query source. Profiles are built once at
// package init and shared read-only for the life of the process — no
// locking is needed because nothing ever mutates them after init.
package lang

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/oxhq/rql/internal/predicate"
)

// Profile is the per-language binding described by SPEC_FULL.md §2/§4.5.
type Profile struct {
	Name       string
	Extensions []string
	Language   *sitter.Language
	Queries    map[predicate.Key]string
}

// Info is the introspection-friendly view of a Profile returned by
// ListLanguages/DescribeLanguage (the library surface's §6
// list_languages/describe_language operations).
type Info struct {
	Name              string
	Extensions        []string
	SupportedKeys     []predicate.Key
}

func (p Profile) info() Info {
	keys := make([]predicate.Key, 0, len(p.Queries))
	for k, q := range p.Queries {
		if q != "" {
			keys = append(keys, k)
		}
	}
	return Info{Name: p.Name, Extensions: p.Extensions, SupportedKeys: keys}
}
