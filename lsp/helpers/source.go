package helpers

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/documents"
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/recipes"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/PallasUI/panda-vscode-pallas/internal/uriutil"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source is an open document parsed for one request. Close it when done.
type Source struct {
	Doc   *documents.Document
	Tree  *syntax.Tree
	Panda *panda.Context
}

// Close releases the syntax tree
func (s *Source) Close() {
	if s != nil {
		s.Tree.Close()
	}
}

// OpenSource parses the document at uri when a project is loaded and the
// document is one the server answers for: a stylesheet, a file covered by the
// project's include globs, or a script importing a recipe factory.
func OpenSource(server types.ServerContext, uri string) (*Source, bool) {
	ctx := server.PandaContext()
	if ctx == nil {
		return nil, false
	}
	doc := server.Document(uri)
	if doc == nil {
		return nil, false
	}
	lang, ok := syntax.LanguageFor(doc.LanguageID(), uri)
	if !ok {
		return nil, false
	}

	tree, err := syntax.Parse(lang, doc.Content())
	if err != nil {
		log.Warn("Failed to parse %s: %v", uri, err)
		return nil, false
	}
	if lang.IsScript() && !ctx.Matches(uriutil.URIToPath(uri)) && !recipes.HasRecipeImports(tree) {
		log.Debug("Skipping %s: not part of the project", uri)
		tree.Close()
		return nil, false
	}
	return &Source{Doc: doc, Tree: tree, Panda: ctx}, true
}

// Offset converts a protocol position into a byte offset of the document
func (s *Source) Offset(p protocol.Position) int {
	return s.Tree.Offset(SyntaxPosition(p))
}
