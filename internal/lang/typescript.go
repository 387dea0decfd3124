package lang

import (
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/oxhq/rql/internal/predicate"
)

func typescriptProfile() *Profile {
	classQuery := "(class_declaration name: (type_identifier) @match)"
	interfaceQuery := "(interface_declaration name: (type_identifier) @match)"
	typeQuery := "(type_alias_declaration name: (type_identifier) @match)"
	enumQuery := "(enum_declaration name: (identifier) @match)"

	return &Profile{
		Name:       "TypeScript",
		Extensions: []string{"ts"},
		Language:   typescript.GetLanguage(),
		Queries: map[predicate.Key]string{
			predicate.Def:       classQuery + "\n" + interfaceQuery + "\n" + typeQuery + "\n" + enumQuery,
			predicate.Class:     classQuery,
			predicate.Interface: interfaceQuery,
			predicate.Type:      typeQuery,
			predicate.Enum:      enumQuery,
			predicate.Func:      `[ (function_declaration name: (identifier) @match) (method_definition name: (property_identifier) @match) ]`,
			predicate.Import:    `(import_statement) @match`,
			predicate.Call:      `[ (call_expression function: [ (identifier) @match (member_expression property: (property_identifier) @match) ]) (new_expression constructor: [ (identifier) @match (type_identifier) @match ]) ]`,
			predicate.Comment:   `(comment) @match`,
			predicate.Str:       `[(string) @match (template_string) @match]`,
			predicate.Hook: `
				(call_expression
					function: (identifier) @match
					(#match? @match "^(use)")
				)
			`,
			predicate.CustomHook: `
				[
					(function_declaration
						name: (identifier) @match)
					(lexical_declaration
						(variable_declarator
							name: (identifier) @match
							value: (arrow_function)))
					(export_statement
						declaration: [
							(function_declaration
								name: (identifier) @match)
							(lexical_declaration
								(variable_declarator
									name: (identifier) @match
									value: (arrow_function)))
						])
				]
				(#match? @match "^use[A-Z]")
			`,
		},
	}
}
