package parser

import (
	"testing"
)

func fuzzUnit(f *testing.F, relPath string, langs []string, seeds ...string) {
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}
	enabled := true
	overrides := make(map[string]LanguageOverride, len(langs))
	for _, lang := range langs {
		overrides[lang] = LanguageOverride{Enabled: &enabled}
	}
	registry, err := BuildLanguageRegistry(overrides)
	if err != nil {
		f.Fatal(err)
	}
	loader, err := NewGrammarLoader(registry)
	if err != nil {
		f.Fatal(err)
	}
	p := NewParser(loader)

	f.Fuzz(func(t *testing.T, data []byte) {
		unit, err := p.ParseFile(relPath, relPath, data)
		if err != nil {
			return
		}
		stack := []*Node{unit.Root}
		for len(stack) > 0 {
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if node.Kind != KindNone && node.Span.End.Line < node.Span.Start.Line {
				t.Fatalf("%s: span ends before it starts", node.Name)
			}
			stack = append(stack, node.Children...)
		}
	})
}

func FuzzTypeScriptParser(f *testing.F) {
	fuzzUnit(f, "fuzz.ts", nil,
		"export class A {\n  private x = 1;\n  m(): void {}\n}\n",
		"export { a as b };\nexport default c;\n",
	)
}

func FuzzPythonParser(f *testing.F) {
	fuzzUnit(f, "fuzz.py", []string{"python"},
		"def main():\n    print(\"hello\")\nif __name__ == \"__main__\":\n    main()",
	)
}
