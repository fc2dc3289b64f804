package completion

import (
	"encoding/json"

	"github.com/PallasUI/panda-vscode-pallas/internal/finder"
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/PallasUI/panda-vscode-pallas/lsp/helpers"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Completion handles the textDocument/completion request
func Completion(req *types.RequestContext, params *protocol.CompletionParams) (any, error) {
	settings := req.Settings()
	if !settings.CompletionsEnabled {
		return nil, nil
	}

	uri := params.TextDocument.URI
	log.Debug("Completion requested: %s at line %d, char %d", uri, params.Position.Line, params.Position.Character)

	src, ok := helpers.OpenSource(req.Server, uri)
	if !ok {
		return nil, nil
	}
	defer src.Close()

	prop, ok := propertyAt(src, params.Position)
	if !ok {
		return nil, nil
	}

	items := finder.Completions(src.Panda, prop, finder.Options{
		TokenFn: settings.CompletionsTokenFnEnabled,
		RemToPx: settings.RemToPxEnabled,
	})
	if len(items) == 0 {
		return nil, nil
	}

	result := make([]types.CompletionItem, 0, len(items))
	for _, item := range items {
		result = append(result, toProtocol(item))
	}
	log.Debug("Completion: %d items for %s", len(result), prop.Name)
	return result, nil
}

// propertyAt finds the property value under the cursor. In stylesheets only
// token() paths complete.
func propertyAt(src *helpers.Source, pos protocol.Position) (finder.Property, bool) {
	if src.Tree.Language() == syntax.CSS {
		p := helpers.SyntaxPosition(pos)
		for _, call := range syntax.TokenCalls(src.Tree) {
			if call.Range.Contains(p) {
				return finder.Property{Value: "token(" + call.Path}, true
			}
		}
		return finder.Property{}, false
	}

	node, stack := syntax.Locate(src.Tree, src.Offset(pos))
	return finder.FindProperty(src.Panda, node, stack)
}

func toProtocol(item finder.Item) types.CompletionItem {
	kind := protocol.CompletionItemKindEnumMember
	if item.Kind == finder.ItemColor {
		kind = protocol.CompletionItemKindColor
	}

	out := types.CompletionItem{
		CompletionItem: protocol.CompletionItem{
			Label:    item.Label,
			Kind:     &kind,
			SortText: &item.SortText,
		},
	}
	if item.Preselect {
		out.Preselect = &item.Preselect
	}
	if item.InsertText != "" && item.InsertText != item.Label {
		out.InsertText = &item.InsertText
	}
	if item.Detail != "" {
		out.Detail = &item.Detail
	}
	if item.Description != "" || item.VarRef != "" {
		details := &types.CompletionItemLabelDetails{}
		if item.Description != "" {
			details.Description = &item.Description
		}
		if item.VarRef != "" {
			detail := "   " + item.VarRef
			details.Detail = &detail
		}
		out.LabelDetails = details
	}
	if item.Data != nil {
		out.Data = item.Data
	}
	return out
}

// CompletionResolve handles the completionItem/resolve request, adding the
// generated CSS and the token's conditions as documentation.
func CompletionResolve(req *types.RequestContext, item *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	ctx := req.Server.PandaContext()
	if ctx == nil || item.Data == nil {
		return item, nil
	}

	data, err := decodeData(item.Data)
	if err != nil {
		req.AddWarning(err)
		return item, nil
	}

	markdown, ok := finder.ResolveCompletion(ctx, data)
	if !ok {
		return item, nil
	}
	item.Documentation = protocol.MarkupContent{
		Kind:  protocol.MarkupKindMarkdown,
		Value: markdown,
	}
	return item, nil
}

// decodeData reads item data back: the client echoes it as decoded JSON
func decodeData(raw any) (finder.ItemData, error) {
	var data finder.ItemData
	if d, ok := raw.(*finder.ItemData); ok {
		return *d, nil
	}
	bytes, err := json.Marshal(raw)
	if err != nil {
		return data, err
	}
	err = json.Unmarshal(bytes, &data)
	return data, err
}
