package lang

import (
	"github.com/smacker/go-tree-sitter/c"

	"github.com/oxhq/rql/internal/predicate"
)

// cProfile has no original_source counterpart to port; its queries
// are authored against the standard tree-sitter-c grammar, following
// the same structure as the other hand-authored profile (java.go).
func cProfile() *Profile {
	structQuery := "(struct_specifier name: (type_identifier) @match body: (_))"
	funcQuery := "(function_definition declarator: (function_declarator declarator: (identifier) @match))"

	return &Profile{
		Name:       "C",
		Extensions: []string{"c", "h"},
		Language:   c.GetLanguage(),
		Queries: map[predicate.Key]string{
			predicate.Def:     structQuery + "\n" + funcQuery,
			predicate.Struct:  structQuery,
			predicate.Func:    funcQuery,
			predicate.Call:    `(call_expression function: (identifier) @match)`,
			predicate.Import:  `(preproc_include) @match`,
			predicate.Comment: `(comment) @match`,
			predicate.Str:     `(string_literal) @match`,
		},
	}
}
