package inlayhint

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/finder"
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/PallasUI/panda-vscode-pallas/lsp/helpers"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
)

// InlayHint handles the textDocument/inlayHint request (LSP 3.17). Recipe
// property values and stylesheet token() calls get their token's value
// printed after them; colors are left to documentColor.
func InlayHint(req *types.RequestContext, params *types.InlayHintParams) ([]types.InlayHint, error) {
	settings := req.Settings()
	if !settings.InlayHintsEnabled {
		return nil, nil
	}

	uri := params.TextDocument.URI
	log.Debug("InlayHint requested: %s", uri)

	src, ok := helpers.OpenSource(req.Server, uri)
	if !ok {
		return nil, nil
	}
	defer src.Close()

	hints := []types.InlayHint{}
	add := func(t *panda.Token, end syntax.Position) {
		if !hinted(t) {
			return
		}
		pos := helpers.Position(end)
		if !helpers.RangeContains(params.Range, pos) {
			return
		}
		hints = append(hints, types.InlayHint{
			Position:    pos,
			Label:       finder.PrintTokenValue(t, settings.RemToPxEnabled),
			Kind:        types.InlayHintKindType,
			PaddingLeft: true,
		})
	}

	if src.Tree.Language() == syntax.CSS {
		for _, call := range syntax.TokenCalls(src.Tree) {
			add(finder.TokenFromPropValue(src.Panda, "", "token("+call.Path+")"), call.Range.End)
		}
		return hints, nil
	}

	for _, def := range req.Server.Recipes().Parse(src.Doc) {
		for _, p := range def.Properties() {
			add(finder.TokenFromPropValue(src.Panda, p.StyleName(), p.Value), p.Range.End)
		}
	}
	log.Debug("InlayHint: %d hints for %s", len(hints), uri)
	return hints, nil
}

func hinted(t *panda.Token) bool {
	if t == nil {
		return false
	}
	switch t.Extensions.Kind {
	case panda.KindColor, panda.KindSemanticColor, panda.KindNativeColor, panda.KindInvalidTokenPath:
		return false
	}
	return true
}
