package lang

import (
	"github.com/smacker/go-tree-sitter/java"

	"github.com/oxhq/rql/internal/predicate"
)

// javaProfile has no original_source counterpart to port; its queries
// are authored in the same shape as go.go/typescript.go against the
// standard tree-sitter-java grammar.
func javaProfile() *Profile {
	classQuery := "(class_declaration name: (identifier) @match)"
	interfaceQuery := "(interface_declaration name: (identifier) @match)"
	enumQuery := "(enum_declaration name: (identifier) @match)"
	funcQuery := "(method_declaration name: (identifier) @match)"

	return &Profile{
		Name:       "Java",
		Extensions: []string{"java"},
		Language:   java.GetLanguage(),
		Queries: map[predicate.Key]string{
			predicate.Def:       classQuery + "\n" + interfaceQuery + "\n" + enumQuery,
			predicate.Class:     classQuery,
			predicate.Interface: interfaceQuery,
			predicate.Enum:      enumQuery,
			predicate.Func:      funcQuery,
			predicate.Import:    `(import_declaration) @match`,
			predicate.Call:      `(method_invocation name: (identifier) @match)`,
			predicate.Comment:   `[(line_comment) @match (block_comment) @match]`,
			predicate.Str:       `(string_literal) @match`,
		},
	}
}
