package lang

import (
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/oxhq/rql/internal/predicate"
)

func rustProfile() *Profile {
	structQuery := "(struct_item name: (_) @match)"
	enumQuery := "(enum_item name: (_) @match)"
	traitQuery := "(trait_item name: (_) @match)"
	typeQuery := "(type_item name: (type_identifier) @match)"
	implQuery := "(impl_item type: (type_identifier) @match)"
	macroQuery := "(macro_definition name: (identifier) @match)"
	moduleQuery := "(mod_item name: (identifier) @match)"
	defQuery := structQuery + "\n" + enumQuery + "\n" + traitQuery + "\n" + typeQuery + "\n" + moduleQuery

	return &Profile{
		Name:       "Rust",
		Extensions: []string{"rs"},
		Language:   rust.GetLanguage(),
		Queries: map[predicate.Key]string{
			predicate.Def:     defQuery,
			predicate.Struct:  structQuery,
			predicate.Enum:    enumQuery,
			predicate.Trait:   traitQuery,
			predicate.Type:    typeQuery,
			predicate.Impl:    implQuery,
			predicate.Macro:   macroQuery,
			predicate.Module:  moduleQuery,
			predicate.Func: `
				[
					(function_item name: (identifier) @match)
					(function_signature_item name: (identifier) @match)
				]
			`,
			predicate.Import: `(use_declaration) @match`,
			predicate.Call: `
				(call_expression
					function: [
						(identifier) @match
						(field_expression field: (field_identifier) @match)
					]
				)
				(macro_invocation macro: (identifier) @match)
			`,
			predicate.Comment: `[(line_comment) @match (block_comment) @match]`,
			predicate.Str:     `[(string_literal) @match (raw_string_literal) @match]`,
		},
	}
}
