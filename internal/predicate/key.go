// Package predicate defines the closed catalog of RQL predicate keys,
// their semantic categories, and the registry that binds each key to
// an Evaluator.
package predicate

// Key is a predicate key drawn from the closed catalog. Unknown keys
// parse successfully (see internal/rql) but fail Registry validation.
type Key string

const (
	// Metadata category.
	Ext       Key = "ext"
	Name      Key = "name"
	Path      Key = "path"
	PathExact Key = "path_exact"
	In        Key = "in"
	Size      Key = "size"
	Modified  Key = "modified"

	// Content category.
	Contains Key = "contains"
	Matches  Key = "matches"

	// Semantic category.
	Def       Key = "def"
	Func      Key = "func"
	Class     Key = "class"
	Struct    Key = "struct"
	Enum      Key = "enum"
	Interface Key = "interface"
	Trait     Key = "trait"
	Type      Key = "type"
	Impl      Key = "impl"
	Macro     Key = "macro"
	Module    Key = "module"
	Object    Key = "object"
	Protocol  Key = "protocol"
	Import    Key = "import"
	Call      Key = "call"
	Comment   Key = "comment"
	Str       Key = "str"

	// Framework (React family) category.
	Component  Key = "component"
	Element    Key = "element"
	Hook       Key = "hook"
	CustomHook Key = "customhook"
	Prop       Key = "prop"
)

// Category classifies a Key into one of the four semantic groups
// described by the predicate key catalog.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryMetadata
	CategoryContent
	CategorySemantic
	CategoryFramework
)

var categories = map[Key]Category{
	Ext: CategoryMetadata, Name: CategoryMetadata, Path: CategoryMetadata,
	PathExact: CategoryMetadata, In: CategoryMetadata, Size: CategoryMetadata,
	Modified: CategoryMetadata,

	Contains: CategoryContent, Matches: CategoryContent,

	Def: CategorySemantic, Func: CategorySemantic, Class: CategorySemantic,
	Struct: CategorySemantic, Enum: CategorySemantic, Interface: CategorySemantic,
	Trait: CategorySemantic, Type: CategorySemantic, Impl: CategorySemantic,
	Macro: CategorySemantic, Module: CategorySemantic, Object: CategorySemantic,
	Protocol: CategorySemantic, Import: CategorySemantic, Call: CategorySemantic,
	Comment: CategorySemantic, Str: CategorySemantic,

	Component: CategoryFramework, Element: CategoryFramework, Hook: CategoryFramework,
	CustomHook: CategoryFramework, Prop: CategoryFramework,
}

// CategoryOf reports the semantic category of a key, or
// CategoryUnknown if the key is not in the closed catalog.
func CategoryOf(k Key) Category {
	if c, ok := categories[k]; ok {
		return c
	}
	return CategoryUnknown
}

// IsKnown reports whether k belongs to the closed predicate catalog.
func IsKnown(k Key) bool {
	_, ok := categories[k]
	return ok
}

// DefinitionStyle keys compare captured text for exact equality
// (unless the argument is the wildcard "."). Listed explicitly per
// the match-kind policy rather than derived, since Hook/CustomHook are
// semantically definition-like but get their own wildcard-or-equality
// treatment identical in practice but conceptually distinct.
var definitionStyle = map[Key]bool{
	Def: true, Class: true, Struct: true, Enum: true, Interface: true,
	Trait: true, Type: true, Impl: true, Macro: true, Module: true,
	Object: true, Protocol: true, Func: true, Component: true, Element: true,
	Prop: true,
}

// IsDefinitionStyle reports whether k uses the definition match-kind
// policy (equality, or wildcard "."), as opposed to substring
// containment or the hook-specific policy.
func IsDefinitionStyle(k Key) bool {
	return definitionStyle[k]
}

// ReferenceStyle keys (import, comment, str, call) match by substring
// containment, since their captured node carries surrounding syntax
// the user's argument need not reproduce in full.
var referenceStyle = map[Key]bool{
	Import: true, Comment: true, Str: true, Call: true,
}

// IsReferenceStyle reports whether k uses substring-containment
// matching.
func IsReferenceStyle(k Key) bool {
	return referenceStyle[k]
}

// IsHook reports whether k is one of the two hook keys, which match
// on wildcard "." or exact equality against the captured call's
// callee name.
func IsHook(k Key) bool {
	return k == Hook || k == CustomHook
}

// Wildcard is the sentinel value meaning "match any capture of this
// kind" for semantic/framework predicates.
const Wildcard = "."
