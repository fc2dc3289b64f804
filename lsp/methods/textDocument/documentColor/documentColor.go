package documentcolor

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/color"
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/PallasUI/panda-vscode-pallas/lsp/helpers"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	"github.com/mazznoer/csscolorparser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DocumentColor handles the textDocument/documentColor request. Recipe values
// and stylesheet token() calls naming color tokens get a swatch.
func DocumentColor(req *types.RequestContext, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	settings := req.Settings()
	if !settings.ColorHintsEnabled {
		return nil, nil
	}

	uri := params.TextDocument.URI
	log.Debug("DocumentColor requested: %s", uri)

	src, ok := helpers.OpenSource(req.Server, uri)
	if !ok {
		return nil, nil
	}
	defer src.Close()

	colors := []protocol.ColorInformation{}
	for _, ref := range src.TokenRefs(req.Server.Recipes()) {
		if c, ok := tokenColor(src.Panda, ref.Token, settings.ColorHintsSemanticTokens); ok {
			colors = append(colors, protocol.ColorInformation{Range: helpers.Range(ref.Range), Color: toProtocol(c)})
		}
	}

	log.Debug("Found %d colors", len(colors))
	return colors, nil
}

// tokenColor is the color a token shows. Conditional tokens show their
// `base` condition when semantic is set.
func tokenColor(ctx *panda.Context, t *panda.Token, semantic bool) (csscolorparser.Color, bool) {
	if t == nil {
		return csscolorparser.Color{}, false
	}
	if t.IsConditional() {
		if !semantic {
			return csscolorparser.Color{}, false
		}
		base, ok := t.BaseCondition()
		if !ok {
			return csscolorparser.Color{}, false
		}
		resolved, ok := ctx.Tokens.DeepResolve(base)
		if !ok {
			return csscolorparser.Color{}, false
		}
		return color.Parse(resolved)
	}
	if !t.IsColor() {
		return csscolorparser.Color{}, false
	}
	return color.Parse(t.Value)
}

// ColorPresentation handles the textDocument/colorPresentation request: the
// picked color written as hex, rgb() and hsl(), then the color tokens with
// exactly that color.
func ColorPresentation(req *types.RequestContext, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	picked := fromProtocol(params.Color)

	var presentations []protocol.ColorPresentation
	for _, label := range color.Presentations(picked) {
		presentations = append(presentations, protocol.ColorPresentation{Label: label})
	}

	ctx := req.Server.PandaContext()
	if ctx == nil {
		return presentations, nil
	}
	// token() paths need the category; recipe values are in-category paths
	stylesheet := false
	if doc := req.Server.Document(params.TextDocument.URI); doc != nil {
		lang, ok := syntax.LanguageFor(doc.LanguageID(), doc.URI())
		stylesheet = ok && lang == syntax.CSS
	}
	for _, t := range ctx.Tokens.Category("colors") {
		c, ok := tokenColor(ctx, t, true)
		if !ok || !color.Equal(c, picked) {
			continue
		}
		label := t.Extensions.Prop
		if stylesheet {
			label = t.Name
		}
		presentations = append(presentations, protocol.ColorPresentation{Label: label})
	}

	log.Debug("ColorPresentation: %d presentations", len(presentations))
	return presentations, nil
}

func toProtocol(c csscolorparser.Color) protocol.Color {
	return protocol.Color{
		Red:   protocol.Decimal(c.R),
		Green: protocol.Decimal(c.G),
		Blue:  protocol.Decimal(c.B),
		Alpha: protocol.Decimal(c.A),
	}
}

func fromProtocol(c protocol.Color) csscolorparser.Color {
	return csscolorparser.Color{
		R: float64(c.Red),
		G: float64(c.Green),
		B: float64(c.Blue),
		A: float64(c.Alpha),
	}
}
