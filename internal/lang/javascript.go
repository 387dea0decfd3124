package lang

import (
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/oxhq/rql/internal/predicate"
)

func javascriptProfile() *Profile {
	classQuery := "(class_declaration name: (identifier) @match)"
	funcQuery := "[ (function_declaration name: (identifier) @match) (method_definition name: (property_identifier) @match) ]"

	return &Profile{
		Name:       "JavaScript",
		Extensions: []string{"js"},
		Language:   javascript.GetLanguage(),
		Queries: map[predicate.Key]string{
			predicate.Def:    classQuery + "\n" + funcQuery,
			predicate.Class:  classQuery,
			predicate.Func:   funcQuery,
			predicate.Import: `(import_statement) @match`,
			predicate.Call:   `[ (call_expression function: [ (identifier) @match (member_expression property: (property_identifier) @match) ]) (new_expression constructor: (identifier) @match) ]`,
			// JS regex literals are treated like comments for search purposes.
			predicate.Comment: `[(comment) @match (regex) @match]`,
			predicate.Str:     `[(string) @match (template_string) @match]`,
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
