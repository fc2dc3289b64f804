package diagnostic

import (
	"fmt"

	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/PallasUI/panda-vscode-pallas/lsp/helpers"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source is the diagnostic source shown by editors
const Source = "panda"

// DocumentDiagnostic handles the textDocument/diagnostic request (pull
// diagnostics). It is routed through CustomHandler since glsp only speaks
// LSP 3.16.
func DocumentDiagnostic(req *types.RequestContext, params *DocumentDiagnosticParams) (any, error) {
	uri := params.TextDocument.URI
	log.Debug("Pull diagnostics requested for: %s", uri)

	diagnostics, err := GetDiagnostics(req.Server, uri)
	if err != nil {
		return nil, err
	}

	return RelatedFullDocumentDiagnosticReport{
		Kind:  string(DiagnosticFull),
		Items: diagnostics,
	}, nil
}

// GetDiagnostics reports token references in a document that name no known
// token, or a deprecated one. The result is never nil.
func GetDiagnostics(server types.ServerContext, uri string) ([]protocol.Diagnostic, error) {
	diagnostics := []protocol.Diagnostic{}
	if !server.Settings().DiagnosticsEnabled {
		return diagnostics, nil
	}

	src, ok := helpers.OpenSource(server, uri)
	if !ok {
		return diagnostics, nil
	}
	defer src.Close()

	for _, ref := range src.TokenRefs(server.Recipes()) {
		if d, ok := tokenDiagnostic(ref.Token, ref.Range); ok {
			diagnostics = append(diagnostics, d)
		}
	}
	return diagnostics, nil
}

func tokenDiagnostic(t *panda.Token, r syntax.Range) (protocol.Diagnostic, bool) {
	if t == nil {
		return protocol.Diagnostic{}, false
	}
	source := Source

	switch {
	case t.Extensions.Kind == panda.KindInvalidTokenPath:
		severity := protocol.DiagnosticSeverityWarning
		return protocol.Diagnostic{
			Range:    helpers.Range(r),
			Severity: &severity,
			Source:   &source,
			Message:  fmt.Sprintf("Unknown token: %s", t.Name),
		}, true

	case t.Deprecated:
		severity := protocol.DiagnosticSeverityInformation
		return protocol.Diagnostic{
			Range:    helpers.Range(r),
			Severity: &severity,
			Source:   &source,
			Message:  fmt.Sprintf("%s is deprecated", t.Name),
			Tags:     []protocol.DiagnosticTag{protocol.DiagnosticTagDeprecated},
		}, true
	}
	return protocol.Diagnostic{}, false
}
