// # internal/engine/parser/parser.go
package parser

import (
	"bytes"
	"deadspan/internal/core/errors"
	"fmt"
)

type Parser struct {
	loader *GrammarLoader
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{loader: loader}
}

// Supports reports whether the file's extension belongs to an enabled language.
func (p *Parser) Supports(relPath string) bool {
	_, ok := p.loader.LanguageFor(relPath)
	return ok
}

// ParseFile parses content into a Unit. relPath is the slash-separated path
// relative to the project root and becomes the unit's identity.
func (p *Parser) ParseFile(absPath, relPath string, content []byte) (*Unit, error) {
	lang, ok := p.loader.LanguageFor(relPath)
	if !ok {
		return nil, errors.AddContext(errors.New(errors.CodeNotSupported, "unsupported language"), errors.CtxPath, relPath)
	}
	pool, ok := p.loader.Pool(lang)
	if !ok {
		return nil, errors.New(errors.CodeInternal, fmt.Sprintf("grammar not loaded: %s", lang))
	}
	profile, _ := p.loader.Profile(lang)

	sp := pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeInternal, "parse failed"), errors.CtxPath, relPath)
	}
	defer tree.Close()

	root := tree.RootNode()
	ex := newExtractor(profile, content)
	decls := ex.declarations(root)

	return &Unit{
		Path:          relPath,
		AbsPath:       absPath,
		Language:      lang,
		Lines:         countLines(content),
		Root:          decls,
		Occurrences:   ex.occurrences(root),
		StrictMembers: profile.StrictMembers,
	}, nil
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
