package lang

import (
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/oxhq/rql/internal/predicate"
)

// reactProfile covers JSX/TSX source using the TSX grammar, which is
// a superset of plain TypeScript syntax. Both .jsx and .tsx route
// here rather than to the plain TypeScript profile, since only the
// TSX grammar understands JSX element/attribute nodes.
func reactProfile() *Profile {
	componentQuery := `
		[
			(class_declaration name: (type_identifier) @match)
			(function_declaration name: (identifier) @match)
			(lexical_declaration
				(variable_declarator
					name: (identifier) @match
					value: (arrow_function)
				)
			)
			(lexical_declaration
				(variable_declarator
					name: (identifier) @match
					value: (call_expression
						function: (member_expression
							property: (property_identifier) @_prop
						)
						(#eq? @_prop "memo")
					)
				)
			)
		]
	`
	elementQuery := `
		[
			(jsx_opening_element name: (_) @match)
			(jsx_self_closing_element name: (_) @match)
		]
	`
	hookQuery := `
		(call_expression
			function: (identifier) @match
			(#match? @match "^(use)")
		)
	`
	customHookQuery := `
		[
			(function_declaration
				name: (identifier) @match
				(#match? @match "^use[A-Z]"))
			(lexical_declaration
				(variable_declarator
					name: (identifier) @match
					value: (arrow_function))
				(#match? @match "^use[A-Z]"))
			(export_statement
				declaration: (function_declaration
					name: (identifier) @match)
				(#match? @match "^use[A-Z]"))
			(export_statement
				declaration: (lexical_declaration
					(variable_declarator
						name: (identifier) @match
						value: (arrow_function)))
				(#match? @match "^use[A-Z]"))
		]
	`

	return &Profile{
		Name:       "React",
		Extensions: []string{"jsx", "tsx"},
		Language:   tsx.GetLanguage(),
		Queries: map[predicate.Key]string{
			predicate.Component:  componentQuery,
			predicate.Element:    elementQuery,
			predicate.Hook:       hookQuery,
			predicate.CustomHook: customHookQuery,
			predicate.Prop:       `(jsx_attribute (property_identifier) @match)`,
			predicate.Import:     `(import_statement) @match`,
			predicate.Comment:    `(comment) @match`,
			predicate.Str:        `[(string) @match (template_string) @match]`,
		},
	}
}
