// # internal/engine/resolver/resolver.go
package resolver

import (
	"context"
	"deadspan/internal/engine/parser"
)

// Reference is one occurrence of a declaration's name.
type Reference struct {
	Path         string
	Pos          parser.Position
	IsDefinition bool
}

// ReferenceGroup holds the references attributed to one definition. A query
// yields one group per overload or merged declaration.
type ReferenceGroup struct {
	Definition     *parser.Node
	DefinitionKind parser.DeclKind
	Path           string
	References     []Reference
}

type location struct {
	line   int
	column int
}

type entry struct {
	path   string
	family string
	strict bool
	occ    parser.Occurrence
}

// Index is a name-based reference index over every parsed unit. It is built
// once and is safe for concurrent queries.
type Index struct {
	byName map[string][]entry
	decls  map[string]map[location]*parser.Node
}

func NewIndex(units []*parser.Unit) *Index {
	ix := &Index{
		byName: make(map[string][]entry),
		decls:  make(map[string]map[location]*parser.Node, len(units)),
	}
	for _, unit := range units {
		family := languageFamily(unit.Language)
		for _, occ := range unit.Occurrences {
			ix.byName[occ.Name] = append(ix.byName[occ.Name], entry{
				path:   unit.Path,
				family: family,
				strict: unit.StrictMembers,
				occ:    occ,
			})
		}
		ix.indexDeclarations(unit)
	}
	return ix
}

func (ix *Index) indexDeclarations(unit *parser.Unit) {
	if unit.Root == nil {
		return
	}
	byPos := make(map[location]*parser.Node)
	stack := []*parser.Node{unit.Root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.Kind != parser.KindNone {
			byPos[location{node.NamePos.Line, node.NamePos.Column}] = node
		}
		stack = append(stack, node.Children...)
	}
	ix.decls[unit.Path] = byPos
}

// Names returns the number of distinct indexed identifiers.
func (ix *Index) Names() int {
	return len(ix.byName)
}

const cancelCheckInterval = 1024

// FindReferences returns the reference groups for the declaration whose name
// sits at pos in unit. Unknown positions yield no groups.
func (ix *Index) FindReferences(ctx context.Context, unit *parser.Unit, pos parser.Position) ([]ReferenceGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	decl := ix.decls[unit.Path][location{pos.Line, pos.Column}]
	if decl == nil {
		return nil, nil
	}

	groups := make([]ReferenceGroup, 0, 1)
	for _, def := range mergedDeclarations(decl) {
		groups = append(groups, ReferenceGroup{
			Definition:     def,
			DefinitionKind: def.Kind,
			Path:           unit.Path,
			References: []Reference{{
				Path:         unit.Path,
				Pos:          def.NamePos,
				IsDefinition: true,
			}},
		})
	}

	family := languageFamily(unit.Language)
	member := decl.Kind.IsMember()
	for i, e := range ix.byName[decl.Name] {
		if i%cancelCheckInterval == cancelCheckInterval-1 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if e.occ.IsDefinition || e.family != family {
			continue
		}
		if member && e.strict && e.occ.Role != parser.RoleMember {
			continue
		}
		groups[0].References = append(groups[0].References, Reference{Path: e.path, Pos: e.occ.Pos})
	}
	return groups, nil
}

// mergedDeclarations returns decl followed by same-named siblings of the same
// parent, in source order.
func mergedDeclarations(decl *parser.Node) []*parser.Node {
	out := []*parser.Node{decl}
	if decl.Parent == nil {
		return out
	}
	for _, sibling := range decl.Parent.Children {
		if sibling != decl && sibling.Name == decl.Name {
			out = append(out, sibling)
		}
	}
	return out
}

func languageFamily(lang string) string {
	switch lang {
	case "typescript", "tsx", "javascript":
		return "ecmascript"
	default:
		return lang
	}
}
