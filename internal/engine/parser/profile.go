package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// declContext is what a Profile's visibility rule sees for one declaration.
type declContext struct {
	node      *sitter.Node
	nameNode  *sitter.Node
	source    []byte
	kind      DeclKind
	name      string
	container *Node
	exported  bool
}

// Profile maps one language's tree-sitter node kinds onto declaration trees.
type Profile struct {
	Language string
	// Declarations maps syntax kinds to declaration kinds.
	Declarations map[string]DeclKind
	// Transparent syntax kinds are descended into while looking for declarations.
	Transparent map[string]bool
	// Wrappers extend the enclosing span of the declaration they wrap.
	Wrappers map[string]bool
	// ExportWrappers is the subset of Wrappers that also export.
	ExportWrappers map[string]bool
	// MemberScopes turn functions found below them into methods.
	MemberScopes map[string]bool
	Identifiers  map[string]Role
	// StrictMembers limits member candidates to member-role occurrences.
	StrictMembers bool
	Refine        func(node *sitter.Node, kind DeclKind) DeclKind
	Visibility    func(d declContext) Visibility
	// ExportedNames returns the names exported by local export clauses and
	// the byte offsets of the identifiers naming them in those clauses.
	ExportedNames func(root *sitter.Node, source []byte) (map[string]bool, []uint)
}

func set(values ...string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}

var typeScriptDeclarations = map[string]DeclKind{
	"internal_module":                KindModule,
	"module":                         KindModule,
	"type_alias_declaration":         KindTypeAlias,
	"interface_declaration":          KindInterface,
	"class_declaration":              KindClass,
	"abstract_class_declaration":     KindClass,
	"function_declaration":           KindFunction,
	"generator_function_declaration": KindFunction,
	"function_signature":             KindFunction,
	"method_definition":              KindMethod,
	"method_signature":               KindMethod,
	"abstract_method_signature":      KindMethod,
	"public_field_definition":        KindProperty,
	"property_signature":             KindProperty,
	"enum_declaration":               KindEnum,
}

func typeScriptProfile(language string) Profile {
	return Profile{
		Language:     language,
		Declarations: typeScriptDeclarations,
		Transparent: set("program", "export_statement", "ambient_declaration", "expression_statement",
			"statement_block", "class_body", "interface_body", "object_type"),
		Wrappers:       set("export_statement", "ambient_declaration"),
		ExportWrappers: set("export_statement"),
		Identifiers: map[string]Role{
			"identifier":                            RoleValue,
			"type_identifier":                       RoleValue,
			"shorthand_property_identifier":         RoleValue,
			"shorthand_property_identifier_pattern": RoleValue,
			"property_identifier":                   RoleMember,
			"private_property_identifier":           RoleMember,
		},
		StrictMembers: true,
		Visibility:    ecmaVisibility,
		ExportedNames: ecmaExportedNames,
	}
}

func javaScriptProfile() Profile {
	return Profile{
		Language: "javascript",
		Declarations: map[string]DeclKind{
			"class_declaration":              KindClass,
			"function_declaration":           KindFunction,
			"generator_function_declaration": KindFunction,
			"method_definition":              KindMethod,
			"field_definition":               KindProperty,
		},
		Transparent:    set("program", "export_statement", "class_body"),
		Wrappers:       set("export_statement"),
		ExportWrappers: set("export_statement"),
		Identifiers: map[string]Role{
			"identifier":                            RoleValue,
			"shorthand_property_identifier":         RoleValue,
			"shorthand_property_identifier_pattern": RoleValue,
			"property_identifier":                   RoleMember,
			"private_property_identifier":           RoleMember,
		},
		StrictMembers: true,
		Visibility:    ecmaVisibility,
		ExportedNames: ecmaExportedNames,
	}
}

func goProfile() Profile {
	return Profile{
		Language: "go",
		Declarations: map[string]DeclKind{
			"function_declaration": KindFunction,
			"method_declaration":   KindMethod,
			"type_spec":            KindTypeAlias,
			"type_alias":           KindTypeAlias,
			"field_declaration":    KindProperty,
			"method_elem":          KindMethod,
			"method_spec":          KindMethod,
		},
		Transparent: set("source_file", "type_declaration", "struct_type", "interface_type",
			"field_declaration_list"),
		Identifiers: map[string]Role{
			"identifier":       RoleValue,
			"type_identifier":  RoleValue,
			"field_identifier": RoleMember,
		},
		Refine: func(node *sitter.Node, kind DeclKind) DeclKind {
			if node.Kind() != "type_spec" {
				return kind
			}
			typ := node.ChildByFieldName("type")
			if typ == nil {
				return kind
			}
			switch typ.Kind() {
			case "struct_type":
				return KindClass
			case "interface_type":
				return KindInterface
			}
			return kind
		},
		Visibility: func(d declContext) Visibility {
			r, _ := utf8.DecodeRuneInString(d.name)
			if unicode.IsUpper(r) {
				return VisibilityPublic
			}
			return VisibilityPrivate
		},
	}
}

func javaProfile() Profile {
	return Profile{
		Language: "java",
		Declarations: map[string]DeclKind{
			"class_declaration":           KindClass,
			"record_declaration":          KindClass,
			"interface_declaration":       KindInterface,
			"annotation_type_declaration": KindInterface,
			"enum_declaration":            KindEnum,
			"method_declaration":          KindMethod,
			"field_declaration":           KindProperty,
		},
		Transparent: set("program", "class_body", "interface_body", "enum_body", "enum_body_declarations"),
		Identifiers: map[string]Role{
			"identifier":      RoleValue,
			"type_identifier": RoleValue,
		},
		Visibility: func(d declContext) Visibility {
			if d.container != nil && d.container.Kind == KindInterface {
				return VisibilityPublic
			}
			if hasModifier(d.node, d.source, "modifiers", "private", "protected") {
				return VisibilityPrivate
			}
			return VisibilityPublic
		},
	}
}

func rustProfile() Profile {
	return Profile{
		Language: "rust",
		Declarations: map[string]DeclKind{
			"mod_item":                KindModule,
			"type_item":               KindTypeAlias,
			"struct_item":             KindClass,
			"union_item":              KindClass,
			"trait_item":              KindInterface,
			"enum_item":               KindEnum,
			"function_item":           KindFunction,
			"function_signature_item": KindMethod,
			"field_declaration":       KindProperty,
		},
		Transparent:  set("source_file", "declaration_list", "impl_item", "field_declaration_list"),
		MemberScopes: set("impl_item", "trait_item"),
		Identifiers: map[string]Role{
			"identifier":       RoleValue,
			"type_identifier":  RoleValue,
			"field_identifier": RoleMember,
		},
		Visibility: func(d declContext) Visibility {
			if d.container != nil && d.container.Kind == KindInterface {
				return VisibilityPublic
			}
			for i := uint(0); i < d.node.ChildCount(); i++ {
				if child := d.node.Child(i); child != nil && child.Kind() == "visibility_modifier" {
					return VisibilityPublic
				}
			}
			return VisibilityPrivate
		},
	}
}

func pythonProfile() Profile {
	return Profile{
		Language: "python",
		Declarations: map[string]DeclKind{
			"class_definition":    KindClass,
			"function_definition": KindFunction,
		},
		Transparent:  set("module", "decorated_definition", "block"),
		Wrappers:     set("decorated_definition"),
		MemberScopes: set("class_definition"),
		Identifiers: map[string]Role{
			"identifier": RoleValue,
		},
		Visibility: func(d declContext) Visibility {
			if strings.HasPrefix(d.name, "_") {
				return VisibilityPrivate
			}
			return VisibilityPublic
		},
	}
}

// ProfileForLanguage returns the declaration profile for a registry language ID.
func ProfileForLanguage(lang string) (Profile, bool) {
	switch lang {
	case "typescript", "tsx":
		return typeScriptProfile(lang), true
	case "javascript":
		return javaScriptProfile(), true
	case "go":
		return goProfile(), true
	case "java":
		return javaProfile(), true
	case "rust":
		return rustProfile(), true
	case "python":
		return pythonProfile(), true
	default:
		return Profile{}, false
	}
}

func ecmaVisibility(d declContext) Visibility {
	if d.kind.IsMember() {
		if d.container != nil && d.container.Kind == KindInterface {
			return VisibilityPublic
		}
		if d.nameNode != nil && d.nameNode.Kind() == "private_property_identifier" {
			return VisibilityPrivate
		}
		if hasModifier(d.node, d.source, "accessibility_modifier", "private", "protected") {
			return VisibilityPrivate
		}
		return VisibilityPublic
	}
	if d.exported {
		return VisibilityPublic
	}
	return VisibilityPrivate
}

// ecmaExportedNames collects names exported through `export { a, b as c }`
// and `export default a` statements at the top level, plus the offsets of the
// clause identifiers. Those identifiers are definitions, not uses.
func ecmaExportedNames(root *sitter.Node, source []byte) (map[string]bool, []uint) {
	names := make(map[string]bool)
	var offsets []uint
	for i := uint(0); i < root.ChildCount(); i++ {
		stmt := root.Child(i)
		if stmt == nil || stmt.Kind() != "export_statement" {
			continue
		}
		if stmt.ChildByFieldName("source") != nil {
			continue
		}
		if value := stmt.ChildByFieldName("value"); value != nil && value.Kind() == "identifier" {
			names[nodeText(value, source)] = true
			offsets = append(offsets, value.StartByte())
		}
		for j := uint(0); j < stmt.ChildCount(); j++ {
			clause := stmt.Child(j)
			if clause == nil || clause.Kind() != "export_clause" {
				continue
			}
			for k := uint(0); k < clause.ChildCount(); k++ {
				spec := clause.Child(k)
				if spec == nil || spec.Kind() != "export_specifier" {
					continue
				}
				if name := spec.ChildByFieldName("name"); name != nil {
					names[nodeText(name, source)] = true
					offsets = append(offsets, name.StartByte())
				}
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					offsets = append(offsets, alias.StartByte())
				}
			}
		}
	}
	return names, offsets
}

// hasModifier looks for a child of kind modifierKind whose text contains any
// of the given keywords.
func hasModifier(node *sitter.Node, source []byte, modifierKind string, keywords ...string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != modifierKind {
			continue
		}
		for _, field := range strings.Fields(nodeText(child, source)) {
			for _, kw := range keywords {
				if field == kw {
					return true
				}
			}
		}
	}
	return false
}

// nodeText returns the source bytes spanned by a node as a trimmed string.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if start >= end || end > uint(len(source)) {
		return ""
	}
	return strings.TrimSpace(string(source[start:end]))
}
