// # internal/engine/parser/parser_test.go
package parser

import (
	"testing"
)

func parseSource(t *testing.T, relPath, src string, langs ...string) *Unit {
	t.Helper()
	enabled := true
	overrides := make(map[string]LanguageOverride, len(langs))
	for _, lang := range langs {
		overrides[lang] = LanguageOverride{Enabled: &enabled}
	}
	registry, err := BuildLanguageRegistry(overrides)
	if err != nil {
		t.Fatal(err)
	}
	loader, err := NewGrammarLoader(registry)
	if err != nil {
		t.Fatal(err)
	}
	unit, err := NewParser(loader).ParseFile(relPath, relPath, []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return unit
}

func childNamed(t *testing.T, node *Node, name string) *Node {
	t.Helper()
	for _, child := range node.Children {
		if child.Name == name {
			return child
		}
	}
	t.Fatalf("no child %q under %q", name, node.Name)
	return nil
}

func assertDecl(t *testing.T, node *Node, kind DeclKind, vis Visibility) {
	t.Helper()
	if node.Kind != kind {
		t.Errorf("%s: expected kind %s, got %s", node.Name, kind, node.Kind)
	}
	if node.Visibility != vis {
		t.Errorf("%s: expected %s, got %s", node.Name, vis, node.Visibility)
	}
}

func TestTypeScriptDeclarations(t *testing.T) {
	code := `export function foo() {
  return 1;
}
function hidden() {}
function local() {}
export class Widget {
  private secret = 1;
  #hash = 2;
  size = 3;
  render(): void {}
}
export interface Shape {
  area(): number;
}
export { hidden };
`
	unit := parseSource(t, "src/a.ts", code)

	if unit.Language != "typescript" {
		t.Fatalf("expected typescript, got %s", unit.Language)
	}
	if unit.Lines != 15 {
		t.Errorf("expected 15 lines, got %d", unit.Lines)
	}
	if !unit.StrictMembers {
		t.Error("expected strict member matching for typescript")
	}

	foo := childNamed(t, unit.Root, "foo")
	assertDecl(t, foo, KindFunction, VisibilityPublic)
	if foo.NamePos.Line != 1 || foo.NamePos.Column != 17 {
		t.Errorf("expected foo name at 1:17, got %s", foo.NamePos)
	}
	if foo.Span.Start.Line != 1 || foo.Span.End.Line != 3 {
		t.Errorf("expected foo span 1-3, got %d-%d", foo.Span.Start.Line, foo.Span.End.Line)
	}
	if foo.Span.Start.Column != 1 {
		t.Errorf("expected span to include the export keyword, got column %d", foo.Span.Start.Column)
	}

	assertDecl(t, childNamed(t, unit.Root, "hidden"), KindFunction, VisibilityPublic)
	assertDecl(t, childNamed(t, unit.Root, "local"), KindFunction, VisibilityPrivate)

	widget := childNamed(t, unit.Root, "Widget")
	assertDecl(t, widget, KindClass, VisibilityPublic)
	assertDecl(t, childNamed(t, widget, "secret"), KindProperty, VisibilityPrivate)
	assertDecl(t, childNamed(t, widget, "#hash"), KindProperty, VisibilityPrivate)
	assertDecl(t, childNamed(t, widget, "size"), KindProperty, VisibilityPublic)
	render := childNamed(t, widget, "render")
	assertDecl(t, render, KindMethod, VisibilityPublic)
	if render.Parent != widget {
		t.Error("expected render to be parented by Widget")
	}

	shape := childNamed(t, unit.Root, "Shape")
	assertDecl(t, shape, KindInterface, VisibilityPublic)
	assertDecl(t, childNamed(t, shape, "area"), KindMethod, VisibilityPublic)
}

func TestTypeScriptOccurrences(t *testing.T) {
	code := `export function foo() {}
foo();
const w = { foo: 1 };
w.foo;
`
	unit := parseSource(t, "a.ts", code)

	var defs, values, members int
	for _, occ := range unit.Occurrences {
		if occ.Name != "foo" {
			continue
		}
		switch {
		case occ.IsDefinition:
			defs++
		case occ.Role == RoleMember:
			members++
		default:
			values++
		}
	}
	if defs != 1 {
		t.Errorf("expected 1 definition, got %d", defs)
	}
	if values != 1 {
		t.Errorf("expected 1 value use, got %d", values)
	}
	if members != 2 {
		t.Errorf("expected 2 member uses, got %d", members)
	}
}

func TestExportClauseIsNotAUse(t *testing.T) {
	code := `function foo() {
  return 1;
}
function bar() {}
export { foo, bar as baz };
export default bar;
`
	unit := parseSource(t, "src/a.ts", code)

	assertDecl(t, childNamed(t, unit.Root, "foo"), KindFunction, VisibilityPublic)
	assertDecl(t, childNamed(t, unit.Root, "bar"), KindFunction, VisibilityPublic)
	for _, occ := range unit.Occurrences {
		if (occ.Name == "foo" || occ.Name == "bar" || occ.Name == "baz") && !occ.IsDefinition {
			t.Errorf("expected %s at %s to be a definition", occ.Name, occ.Pos)
		}
	}
}

func TestGoDeclarations(t *testing.T) {
	code := `package demo

type Server struct {
	Addr string
	port int
}

type Runner interface {
	Run() error
}

func (s *Server) Start() error { return nil }

func helper() {}
`
	unit := parseSource(t, "demo/server.go", code, "go")

	server := childNamed(t, unit.Root, "Server")
	assertDecl(t, server, KindClass, VisibilityPublic)
	assertDecl(t, childNamed(t, server, "Addr"), KindProperty, VisibilityPublic)
	assertDecl(t, childNamed(t, server, "port"), KindProperty, VisibilityPrivate)

	runner := childNamed(t, unit.Root, "Runner")
	assertDecl(t, runner, KindInterface, VisibilityPublic)
	assertDecl(t, childNamed(t, runner, "Run"), KindMethod, VisibilityPublic)

	assertDecl(t, childNamed(t, unit.Root, "Start"), KindMethod, VisibilityPublic)
	assertDecl(t, childNamed(t, unit.Root, "helper"), KindFunction, VisibilityPrivate)
}

func TestPythonDeclarations(t *testing.T) {
	code := `class Greeter:
    def hello(self):
        pass

    def _private(self):
        pass

@decorator
def top():
    pass
`
	unit := parseSource(t, "pkg/greet.py", code, "python")

	greeter := childNamed(t, unit.Root, "Greeter")
	assertDecl(t, greeter, KindClass, VisibilityPublic)
	assertDecl(t, childNamed(t, greeter, "hello"), KindMethod, VisibilityPublic)
	assertDecl(t, childNamed(t, greeter, "_private"), KindMethod, VisibilityPrivate)

	top := childNamed(t, unit.Root, "top")
	assertDecl(t, top, KindFunction, VisibilityPublic)
	if top.Span.Start.Line != 8 || top.Span.End.Line != 10 {
		t.Errorf("expected decorated span 8-10, got %d-%d", top.Span.Start.Line, top.Span.End.Line)
	}
	if top.NamePos.Line != 9 {
		t.Errorf("expected name on line 9, got %d", top.NamePos.Line)
	}
}

func TestRustDeclarations(t *testing.T) {
	code := `pub struct Point {
    pub x: i32,
    y: i32,
}

impl Point {
    pub fn new() -> Self { Point { x: 0, y: 0 } }
    fn secret(&self) {}
}

pub trait Shape {
    fn area(&self) -> f64;
}
`
	unit := parseSource(t, "src/lib.rs", code, "rust")

	point := childNamed(t, unit.Root, "Point")
	assertDecl(t, point, KindClass, VisibilityPublic)
	assertDecl(t, childNamed(t, point, "x"), KindProperty, VisibilityPublic)
	assertDecl(t, childNamed(t, point, "y"), KindProperty, VisibilityPrivate)

	assertDecl(t, childNamed(t, unit.Root, "new"), KindMethod, VisibilityPublic)
	assertDecl(t, childNamed(t, unit.Root, "secret"), KindMethod, VisibilityPrivate)

	shape := childNamed(t, unit.Root, "Shape")
	assertDecl(t, shape, KindInterface, VisibilityPublic)
	assertDecl(t, childNamed(t, shape, "area"), KindMethod, VisibilityPublic)
}

func TestJavaDeclarations(t *testing.T) {
	code := `public class Account {
    private int balance;
    public void deposit(int amount) {}
    void audit() {}
}
`
	unit := parseSource(t, "src/Account.java", code, "java")

	account := childNamed(t, unit.Root, "Account")
	assertDecl(t, account, KindClass, VisibilityPublic)
	assertDecl(t, childNamed(t, account, "balance"), KindProperty, VisibilityPrivate)
	assertDecl(t, childNamed(t, account, "deposit"), KindMethod, VisibilityPublic)
	assertDecl(t, childNamed(t, account, "audit"), KindMethod, VisibilityPublic)
}

func TestFunctionBodiesAreOpaque(t *testing.T) {
	code := `export function outer() {
  function inner() {}
  class Local {}
}
`
	unit := parseSource(t, "a.ts", code)
	outer := childNamed(t, unit.Root, "outer")
	if len(outer.Children) != 0 {
		t.Errorf("expected no declarations inside a function body, got %d", len(outer.Children))
	}
	if len(unit.Root.Children) != 1 {
		t.Errorf("expected one top-level declaration, got %d", len(unit.Root.Children))
	}
}

func TestParseFileUnsupported(t *testing.T) {
	loader, err := NewGrammarLoader(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewParser(loader).ParseFile("README.md", "README.md", []byte("# hi")); err == nil {
		t.Fatal("expected error for unsupported file")
	}
}

func TestIsGeneratedFile(t *testing.T) {
	if !IsGeneratedFile([]byte("// Code generated by protoc-gen-go. DO NOT EDIT.\npackage x\n")) {
		t.Error("expected go generator banner to be detected")
	}
	if !IsGeneratedFile([]byte("/* @generated */\nexport const a = 1;\n")) {
		t.Error("expected @generated banner to be detected")
	}
	if IsGeneratedFile([]byte("export function foo() {}\n")) {
		t.Error("expected hand-written file not to be detected")
	}
}

func TestParserPoolReturnsLeases(t *testing.T) {
	loader, err := NewGrammarLoader(nil)
	if err != nil {
		t.Fatal(err)
	}
	p := NewParser(loader)
	for i := 0; i < 3; i++ {
		if _, err := p.ParseFile("a.ts", "a.ts", []byte("export const x = 1;\n")); err != nil {
			t.Fatal(err)
		}
	}
	pool, ok := loader.Pool("typescript")
	if !ok {
		t.Fatal("expected typescript pool")
	}
	if pool.Active() != 0 {
		t.Errorf("expected no leased parsers after parsing, got %d", pool.Active())
	}
}
