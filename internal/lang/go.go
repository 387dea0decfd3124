package lang

import (
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/oxhq/rql/internal/predicate"
)

func goProfile() *Profile {
	language := golang.GetLanguage()

	typeQuery := "(type_declaration (type_spec name: (type_identifier) @match))"
	funcQuery := "[ (function_declaration name: (identifier) @match) (method_declaration name: (field_identifier) @match) ]"
	structQuery := "(type_declaration (type_spec name: (type_identifier) @match type: (struct_type)))"
	interfaceQuery := "(type_declaration (type_spec name: (type_identifier) @match type: (interface_type)))"

	return &Profile{
		Name:       "Go",
		Extensions: []string{"go"},
		Language:   language,
		Queries: map[predicate.Key]string{
			predicate.Def:       typeQuery + "\n" + funcQuery,
			predicate.Struct:    structQuery,
			predicate.Interface: interfaceQuery,
			predicate.Type:      typeQuery,
			predicate.Func:      funcQuery,
			predicate.Call:      "(call_expression function: [ (identifier) @match (selector_expression field: (field_identifier) @match) ])",
			predicate.Import:    "(import_declaration) @match",
			predicate.Comment:   "(comment) @match",
			predicate.Str:       "[ (interpreted_string_literal) @match (raw_string_literal) @match ]",
		},
	}
}
