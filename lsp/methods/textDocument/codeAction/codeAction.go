package codeaction

import (
	"fmt"
	"strings"

	"github.com/PallasUI/panda-vscode-pallas/internal/finder"
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/lsp/helpers"
	"github.com/PallasUI/panda-vscode-pallas/lsp/methods/textDocument/diagnostic"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// MaxSuggestions caps the replacements offered for one unknown token
const MaxSuggestions = 3

// CodeAction handles the textDocument/codeAction request. Unknown token
// references in the requested range get quick fixes replacing the path with
// the closest known tokens.
func CodeAction(req *types.RequestContext, params *protocol.CodeActionParams) (any, error) {
	if !req.Settings().DiagnosticsEnabled {
		return nil, nil
	}

	uri := params.TextDocument.URI
	log.Debug("CodeAction requested: %s", uri)

	src, ok := helpers.OpenSource(req.Server, uri)
	if !ok {
		return nil, nil
	}
	defer src.Close()

	actions := []protocol.CodeAction{}
	for _, ref := range src.TokenRefs(req.Server.Recipes()) {
		if ref.Token.Extensions.Kind != panda.KindInvalidTokenPath {
			continue
		}
		r := helpers.Range(ref.Range)
		if !RangesIntersect(params.Range, r) && params.Range.Start != r.Start {
			continue
		}
		diag := matchingDiagnostic(params.Context.Diagnostics, r)
		for i, name := range finder.Suggest(src.Panda, ref.Token.Name, MaxSuggestions) {
			actions = append(actions, replaceAction(uri, r, strings.Replace(ref.Text, ref.Token.Name, name, 1), name, i == 0, diag))
		}
	}

	log.Debug("Returning %d code actions", len(actions))
	return actions, nil
}

func replaceAction(uri string, r protocol.Range, newText, name string, preferred bool, diag *protocol.Diagnostic) protocol.CodeAction {
	kind := protocol.CodeActionKindQuickFix
	action := protocol.CodeAction{
		Title: fmt.Sprintf("Replace with %s", name),
		Kind:  &kind,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				uri: {{Range: r, NewText: newText}},
			},
		},
	}
	if preferred {
		action.IsPreferred = &preferred
	}
	if diag != nil {
		action.Diagnostics = []protocol.Diagnostic{*diag}
	}
	return action
}

// matchingDiagnostic finds the client's copy of our diagnostic for r
func matchingDiagnostic(diagnostics []protocol.Diagnostic, r protocol.Range) *protocol.Diagnostic {
	for i := range diagnostics {
		d := &diagnostics[i]
		if d.Range == r && d.Source != nil && *d.Source == diagnostic.Source {
			return d
		}
	}
	return nil
}

// RangesIntersect checks if two ranges intersect. Ranges are half-open; the
// end position is exclusive.
func RangesIntersect(a, b protocol.Range) bool {
	if a.End.Line < b.Start.Line {
		return false
	}
	if a.End.Line == b.Start.Line && a.End.Character <= b.Start.Character {
		return false
	}
	if b.End.Line < a.Start.Line {
		return false
	}
	if b.End.Line == a.Start.Line && b.End.Character <= a.Start.Character {
		return false
	}
	return true
}
