package hover

import (
	"strings"

	"github.com/PallasUI/panda-vscode-pallas/internal/finder"
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/PallasUI/panda-vscode-pallas/lsp/helpers"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Hover handles the textDocument/hover request
func Hover(req *types.RequestContext, params *protocol.HoverParams) (*protocol.Hover, error) {
	settings := req.Settings()
	if !settings.HoversEnabled {
		return nil, nil
	}

	uri := params.TextDocument.URI
	log.Debug("Hover requested: %s at line %d, char %d", uri, params.Position.Line, params.Position.Character)

	src, ok := helpers.OpenSource(req.Server, uri)
	if !ok {
		return nil, nil
	}
	defer src.Close()

	if src.Tree.Language() == syntax.CSS {
		if settings.HoversTokensEnabled {
			return stylesheetHover(req, src, params.Position), nil
		}
		return nil, nil
	}

	if settings.HoversRecipesEnabled {
		if h := recipeHover(req, src, params.Position); h != nil {
			return h, nil
		}
	}
	if !settings.HoversTokensEnabled {
		return nil, nil
	}

	offset := src.Offset(params.Position)
	node, stack := syntax.Locate(src.Tree, offset)
	if cond, ok := finder.FindCondition(src.Panda, node, stack, offset); ok {
		if !settings.HoversConditionsEnabled {
			return nil, nil
		}
		return conditionHover(src.Panda, cond), nil
	}

	prop, ok := finder.FindProperty(src.Panda, node, stack)
	if !ok {
		return nil, nil
	}
	t := finder.TokenFromPropValue(src.Panda, prop.Name, prop.Value)
	if t == nil {
		return nil, nil
	}
	return tokenHover(req, src.Panda, t, prop, helpers.Range(prop.Node.Range())), nil
}

// tokenHover lists the token, the CSS it produces, its color per condition,
// and the keyframes of animation tokens.
func tokenHover(req *types.RequestContext, ctx *panda.Context, t *panda.Token, prop finder.Property, r protocol.Range) *protocol.Hover {
	settings := req.Settings()

	content, err := finder.TokenHover(t, settings.RemToPxEnabled)
	if err != nil {
		req.AddWarning(err)
		return nil
	}
	parts := []string{content}

	if settings.HoversTokensCSSPreview && prop.Name != "" {
		css := ctx.AtomicCSS(panda.Style{
			Property:   prop.Name,
			Value:      finder.StyleValue(ctx, prop.Name, t),
			Conditions: prop.Conditions,
		})
		parts = append(parts, finder.MarkdownCSS(css))
	}

	switch t.Extensions.Category {
	case "colors":
		if settings.HoversSemanticColorsEnabled {
			if preview := finder.TokenColorPreview(ctx, t, prop.Name, prop.Shorthand); preview != "" {
				parts = append(parts, preview)
			}
		}
	case "animations":
		if css, ok := ctx.Keyframes(t.Extensions.Prop); ok {
			parts = append(parts, finder.MarkdownCSS(css))
		}
	}

	return markdown(strings.Join(parts, "\n\n"), r)
}

// conditionHover shows what a condition key stands for and, when it holds a
// value, the CSS it produces.
func conditionHover(ctx *panda.Context, cond finder.Condition) *protocol.Hover {
	parts := []string{"🐼 `" + cond.Raw + "`"}
	if p := cond.Property; p != nil {
		css := ctx.AtomicCSS(panda.Style{Property: p.Name, Value: p.Value, Conditions: p.Conditions})
		parts = append(parts, finder.MarkdownCSS(css))
	}
	return markdown(strings.Join(parts, "\n\n"), helpers.Range(cond.Node.Range()))
}

// stylesheetHover describes the token named by a token() call
func stylesheetHover(req *types.RequestContext, src *helpers.Source, pos protocol.Position) *protocol.Hover {
	p := helpers.SyntaxPosition(pos)
	for _, call := range syntax.TokenCalls(src.Tree) {
		if !call.Range.Contains(p) {
			continue
		}
		t := finder.TokenFromPropValue(src.Panda, "", "token("+call.Path+")")
		if t == nil {
			return nil
		}
		return tokenHover(req, src.Panda, t, finder.Property{}, helpers.Range(call.Range))
	}
	return nil
}

func markdown(value string, r protocol.Range) *protocol.Hover {
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
		Range: &r,
	}
}
