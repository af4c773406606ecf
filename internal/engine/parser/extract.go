// # internal/engine/parser/extract.go
package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

type declFrame struct {
	syntax      *sitter.Node
	parent      *Node
	wrapper     *sitter.Node
	exported    bool
	memberScope bool
}

// extractor turns one tree-sitter tree into a declaration tree plus identifier
// occurrences. Both passes use explicit stacks so deeply nested sources cannot
// exhaust the goroutine stack.
type extractor struct {
	profile     Profile
	source      []byte
	nameOffsets map[uint]bool
	exportNames map[string]bool
}

func newExtractor(profile Profile, source []byte) *extractor {
	return &extractor{
		profile:     profile,
		source:      source,
		nameOffsets: make(map[uint]bool),
	}
}

func (e *extractor) declarations(root *sitter.Node) *Node {
	unitRoot := &Node{
		Kind:       KindNone,
		SyntaxKind: root.Kind(),
		Span:       spanOf(root),
		Visibility: VisibilityPublic,
	}
	if e.profile.ExportedNames != nil {
		var offsets []uint
		e.exportNames, offsets = e.profile.ExportedNames(root, e.source)
		for _, off := range offsets {
			e.nameOffsets[off] = true
		}
	}

	stack := make([]declFrame, 0, 64)
	stack = pushChildren(stack, root, declFrame{parent: unitRoot})

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := frame.syntax
		kind := node.Kind()

		if declKind, ok := e.profile.Declarations[kind]; ok {
			decl := e.declare(node, declKind, frame)
			if decl == nil || !decl.Kind.IsContainer() {
				continue
			}
			stack = pushChildren(stack, node, declFrame{
				parent:      decl,
				memberScope: e.profile.MemberScopes[kind],
			})
			continue
		}

		if e.profile.Wrappers[kind] {
			wrapper := frame.wrapper
			if wrapper == nil {
				wrapper = node
			}
			stack = pushChildren(stack, node, declFrame{
				parent:      frame.parent,
				wrapper:     wrapper,
				exported:    frame.exported || e.profile.ExportWrappers[kind],
				memberScope: frame.memberScope,
			})
			continue
		}

		if e.profile.Transparent[kind] {
			stack = pushChildren(stack, node, declFrame{
				parent:      frame.parent,
				memberScope: frame.memberScope || e.profile.MemberScopes[kind],
			})
		}
	}

	return unitRoot
}

func (e *extractor) declare(node *sitter.Node, kind DeclKind, frame declFrame) *Node {
	if e.profile.Refine != nil {
		kind = e.profile.Refine(node, kind)
	}
	if kind == KindFunction && frame.memberScope {
		kind = KindMethod
	}

	nameNode := declarationName(node)
	name := nodeText(nameNode, e.source)
	if name == "" {
		return nil
	}

	spanNode := node
	if frame.wrapper != nil {
		spanNode = frame.wrapper
	}

	exported := frame.exported
	if frame.parent.Kind == KindNone && e.exportNames[name] {
		exported = true
	}

	decl := &Node{
		Kind:       kind,
		Name:       name,
		SyntaxKind: node.Kind(),
		NamePos:    startOf(nameNode),
		Span:       spanOf(spanNode),
	}
	decl.Visibility = VisibilityPublic
	if e.profile.Visibility != nil {
		decl.Visibility = e.profile.Visibility(declContext{
			node:      node,
			nameNode:  nameNode,
			source:    e.source,
			kind:      kind,
			name:      name,
			container: frame.parent,
			exported:  exported,
		})
	}
	frame.parent.addChild(decl)
	e.nameOffsets[nameNode.StartByte()] = true
	return decl
}

// occurrences walks every syntax node and records identifier tokens. Tokens
// sitting on a declaration name are definitions.
func (e *extractor) occurrences(root *sitter.Node) []Occurrence {
	var out []Occurrence
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if role, ok := e.profile.Identifiers[node.Kind()]; ok {
			if name := nodeText(node, e.source); name != "" {
				out = append(out, Occurrence{
					Name:         name,
					Pos:          startOf(node),
					Role:         role,
					IsDefinition: e.nameOffsets[node.StartByte()],
				})
			}
		}

		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			if child := node.Child(uint(i)); child != nil {
				stack = append(stack, child)
			}
		}
	}
	return out
}

// pushChildren pushes node's children in reverse so they pop in source order.
func pushChildren(stack []declFrame, node *sitter.Node, template declFrame) []declFrame {
	for i := int(node.ChildCount()) - 1; i >= 0; i-- {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		frame := template
		frame.syntax = child
		stack = append(stack, frame)
	}
	return stack
}

func declarationName(node *sitter.Node) *sitter.Node {
	if name := node.ChildByFieldName("name"); name != nil {
		return name
	}
	if declarator := node.ChildByFieldName("declarator"); declarator != nil {
		if name := declarator.ChildByFieldName("name"); name != nil {
			return name
		}
	}
	return node.ChildByFieldName("property")
}

func startOf(node *sitter.Node) Position {
	if node == nil {
		return Position{}
	}
	p := node.StartPosition()
	return Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1, Offset: int(node.StartByte())}
}

func endOf(node *sitter.Node) Position {
	p := node.EndPosition()
	return Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1, Offset: int(node.EndByte())}
}

func spanOf(node *sitter.Node) Span {
	return Span{Start: startOf(node), End: endOf(node)}
}
