package helpers

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/finder"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/recipes"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
)

// TokenRef is a value in a document that names a token: a recipe property
// value, or the path of a stylesheet token() call.
type TokenRef struct {
	Token *panda.Token
	// Text is the source text at Range
	Text  string
	Range syntax.Range
}

// TokenRefs lists the token-bearing values of the source in document order.
// Values that resolve to no token are left out.
func (s *Source) TokenRefs(cache *recipes.Cache) []TokenRef {
	var refs []TokenRef
	add := func(t *panda.Token, text string, r syntax.Range) {
		if t != nil {
			refs = append(refs, TokenRef{Token: t, Text: text, Range: r})
		}
	}

	if s.Tree.Language() == syntax.CSS {
		for _, call := range syntax.TokenCalls(s.Tree) {
			add(finder.TokenFromPropValue(s.Panda, "", "token("+call.Path+")"), call.Path, call.PathRange)
		}
		return refs
	}
	for _, def := range cache.Parse(s.Doc) {
		for _, p := range def.Properties() {
			add(finder.TokenFromPropValue(s.Panda, p.StyleName(), p.Value), p.Value, p.TextRange())
		}
	}
	return refs
}
