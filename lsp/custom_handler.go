package lsp

import (
	"encoding/json"

	"github.com/PallasUI/panda-vscode-pallas/lsp/methods/textDocument/diagnostic"
	inlayhint "github.com/PallasUI/panda-vscode-pallas/lsp/methods/textDocument/inlayHint"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CustomHandler wraps protocol.Handler to add LSP 3.17 methods.
//
// glsp v0.2.2 only implements LSP 3.16, so protocol.Handler has no field for
// textDocument/inlayHint or textDocument/diagnostic. Requests for them are
// intercepted here; everything else falls through.
type CustomHandler struct {
	*protocol.Handler // Pointer to avoid copying embedded mutex
	server            *Server
}

// Handle implements glsp.Handler interface
func (h *CustomHandler) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	switch context.Method {
	case "initialize":
		// The parsed InitializeParams lose the 3.17 diagnostic capability
		h.server.SetClientDiagnosticCapability(DetectPullDiagnosticsSupport(context.Params))

	case MethodDiagnostic:
		var params diagnostic.DocumentDiagnosticParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}
		result, err := method(h.server, MethodDiagnostic, diagnostic.DocumentDiagnostic)(context, &params)
		if err != nil {
			return nil, true, true, err
		}
		return result, true, true, nil

	case MethodInlayHint:
		var params types.InlayHintParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}
		result, err := feature(h.server, MethodInlayHint, inlayhint.InlayHint)(context, &params)
		if err != nil {
			return nil, true, true, err
		}
		return result, true, true, nil
	}

	return h.Handler.Handle(context)
}

// LSP 3.17 requests
const (
	MethodInlayHint  = "textDocument/inlayHint"
	MethodDiagnostic = "textDocument/diagnostic"
)
