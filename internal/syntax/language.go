// Package syntax wraps tree-sitter for the languages the server understands.
//
// Trees are parsed with pooled parsers and exposed through Node, a read-only
// view whose Kind is a closed enum. Callers never see tree-sitter kind strings.
package syntax

import (
	"fmt"
	"strings"
	"sync"

	"github.com/PallasUI/panda-vscode-pallas/internal/uriutil"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Language identifies a tree-sitter grammar
type Language int

const (
	// JavaScript covers .js, .mjs, .cjs and .jsx; the grammar parses JSX natively
	JavaScript Language = iota
	// TypeScript covers .ts, .mts and .cts
	TypeScript
	// TSX is TypeScript with JSX
	TSX
	// CSS is plain CSS, used for token() calls in stylesheets
	CSS
	// HTML is the markup of single-file components
	HTML
	// Component is a Vue or Svelte single-file component; see ParseComponent
	Component
)

var languageNames = [...]string{"javascript", "typescript", "tsx", "css", "html", "component"}

func (l Language) String() string {
	if int(l) < len(languageNames) {
		return languageNames[l]
	}
	return fmt.Sprintf("language(%d)", int(l))
}

// IsScript reports whether the grammar is one of the JavaScript family.
// Components count: their trees hold the script blocks.
func (l Language) IsScript() bool {
	return l == JavaScript || l == TypeScript || l == TSX || l == Component
}

var grammars = [...]*sitter.Language{
	JavaScript: sitter.NewLanguage(tree_sitter_javascript.Language()),
	TypeScript: sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
	TSX:        sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
	CSS:        sitter.NewLanguage(tree_sitter_css.Language()),
	HTML:       sitter.NewLanguage(tree_sitter_html.Language()),
}

// LanguageFor picks a grammar from an LSP language identifier, falling back
// to the document's file extension. The second result is false for
// documents the server does not handle.
func LanguageFor(languageID, uri string) (Language, bool) {
	switch strings.ToLower(languageID) {
	case "javascript", "javascriptreact", "jsx":
		return JavaScript, true
	case "typescript":
		return TypeScript, true
	case "typescriptreact", "tsx":
		return TSX, true
	case "css":
		return CSS, true
	case "vue", "svelte":
		return Component, true
	}

	switch uriutil.Ext(uri) {
	case ".js", ".mjs", ".cjs", ".jsx":
		return JavaScript, true
	case ".ts", ".mts", ".cts":
		return TypeScript, true
	case ".tsx":
		return TSX, true
	case ".css":
		return CSS, true
	case ".vue", ".svelte":
		return Component, true
	}
	return 0, false
}

// Parser is a tree-sitter parser bound to one grammar
type Parser struct {
	parser *sitter.Parser
	lang   Language
}

var pools [len(grammars)]sync.Pool

func init() {
	for i := range pools {
		lang := Language(i)
		pools[i].New = func() any {
			p := sitter.NewParser()
			if err := p.SetLanguage(grammars[lang]); err != nil {
				panic(fmt.Sprintf("failed to set %s language: %v", lang, err))
			}
			return &Parser{parser: p, lang: lang}
		}
	}
}

// AcquireParser gets a parser for lang from the pool
func AcquireParser(lang Language) *Parser {
	p := pools[lang].Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to its pool
func ReleaseParser(p *Parser) {
	if p != nil {
		pools[p.lang].Put(p)
	}
}

// Close releases the parser's C resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ClosePool closes pooled parsers for every language
func ClosePool() {
	for i := range pools {
		for range 16 {
			if p, ok := pools[i].Get().(*Parser); ok && p != nil {
				p.Close()
			}
		}
	}
}

// Parse parses source into a Tree. The caller must Close the tree.
func (p *Parser) Parse(source string) (*Tree, error) {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source", p.lang)
	}
	return newTree(tree, src, source, p.lang), nil
}

// Parse is a convenience wrapper that borrows a pooled parser for lang.
func Parse(lang Language, source string) (*Tree, error) {
	if lang == Component {
		return ParseComponent(source)
	}
	p := AcquireParser(lang)
	defer ReleaseParser(p)
	return p.Parse(source)
}
