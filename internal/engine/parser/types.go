package parser

import "fmt"

// DeclKind is the kind of a named declaration in a unit's declaration tree.
type DeclKind int

const (
	// KindNone marks structural nodes (the unit root) that are not declarations.
	KindNone DeclKind = iota
	KindModule
	KindTypeAlias
	KindInterface
	KindClass
	KindFunction
	KindMethod
	KindProperty
	KindEnum
)

var declKindNames = map[DeclKind]string{
	KindNone:      "none",
	KindModule:    "module",
	KindTypeAlias: "type",
	KindInterface: "interface",
	KindClass:     "class",
	KindFunction:  "function",
	KindMethod:    "method",
	KindProperty:  "property",
	KindEnum:      "enum",
}

func (k DeclKind) String() string {
	if name, ok := declKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsMember reports whether the kind lives on a composite type.
func (k DeclKind) IsMember() bool {
	return k == KindMethod || k == KindProperty
}

// IsContainer reports whether declarations of this kind may enclose other declarations.
func (k DeclKind) IsContainer() bool {
	return k == KindNone || k == KindModule || k == KindClass || k == KindInterface
}

type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
)

func (v Visibility) String() string {
	if v == VisibilityPrivate {
		return "private"
	}
	return "public"
}

// Position is a 1-based line/column pair plus the 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Before orders positions by line, then column.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the full textual extent of a declaration, including export and
// decorator wrappers.
type Span struct {
	Start Position
	End   Position
}

// StrictlyContains reports whether pos lies inside the span, excluding both
// boundary positions.
func (s Span) StrictlyContains(pos Position) bool {
	return s.Start.Before(pos) && pos.Before(s.End)
}

// Node is one entry of a unit's declaration tree. Nodes are compared by
// pointer identity; names are not unique.
type Node struct {
	Kind       DeclKind
	Name       string
	SyntaxKind string
	NamePos    Position
	Span       Span
	Visibility Visibility
	Parent     *Node
	Children   []*Node
}

func (n *Node) addChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Role separates member-access identifiers (obj.name) from plain value or
// type identifiers.
type Role int

const (
	RoleValue Role = iota
	RoleMember
)

// Occurrence is one identifier token in a unit.
type Occurrence struct {
	Name         string
	Pos          Position
	Role         Role
	IsDefinition bool
}

// Unit is one parsed source file: its declaration tree plus every identifier
// occurrence, used to build the reference index.
type Unit struct {
	Path        string // slash-separated, relative to the project root
	AbsPath     string
	Language    string
	Lines       int
	Root        *Node
	Occurrences []Occurrence
	// StrictMembers is true when member access is syntactically distinct in
	// the unit's language.
	StrictMembers bool
}
