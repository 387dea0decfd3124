package lang

import (
	"github.com/smacker/go-tree-sitter/python"

	"github.com/oxhq/rql/internal/predicate"
)

func pythonProfile() *Profile {
	classQuery := "(class_definition name: (identifier) @match)"
	funcQuery := "(function_definition name: (identifier) @match)"

	return &Profile{
		Name:       "Python",
		Extensions: []string{"py"},
		Language:   python.GetLanguage(),
		Queries: map[predicate.Key]string{
			predicate.Def:   classQuery + "\n" + funcQuery,
			predicate.Class: classQuery,
			predicate.Func:  funcQuery,
			predicate.Import: `
				[
					(import_statement) @match
					(import_from_statement) @match
				]
			`,
			predicate.Call: `
				(call
					function: [
						(identifier) @match
						(attribute attribute: (identifier) @match)
					]
				)
			`,
			predicate.Comment: `(comment) @match`,
			predicate.Str:     `(string) @match`,
		},
	}
}
