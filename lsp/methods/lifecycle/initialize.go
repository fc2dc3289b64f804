package lifecycle

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/uriutil"
	"github.com/PallasUI/panda-vscode-pallas/internal/version"
	"github.com/PallasUI/panda-vscode-pallas/lsp/methods/textDocument/diagnostic"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported to clients in serverInfo
const ServerName = "panda-language-server"

// completionTriggers open completions inside string values and references
var completionTriggers = []string{`"`, "'", "`", ".", "(", "{", " "}

// InitializeResult is protocol.InitializeResult with untyped capabilities,
// so LSP 3.17 providers glsp v0.2.2 doesn't model can be advertised.
type InitializeResult struct {
	Capabilities map[string]any                       `json:"capabilities"`
	ServerInfo   *protocol.InitializeResultServerInfo `json:"serverInfo,omitempty"`
}

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)

	// Store the workspace root; prefer the first workspace folder
	switch {
	case len(params.WorkspaceFolders) > 0:
		req.Server.SetRootURI(params.WorkspaceFolders[0].URI)
		req.Server.SetRootPath(uriutil.URIToPath(params.WorkspaceFolders[0].URI))
	case params.RootURI != nil:
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
	case params.RootPath != nil:
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
	}
	// CustomHandler has already looked for the 3.17 capability in the raw params
	pull := false
	if detected := req.Server.ClientDiagnosticCapability(); detected != nil {
		pull = *detected
	}
	req.Server.SetUsePullDiagnostics(pull)
	if pull {
		log.Info("Using pull diagnostics")
	} else {
		log.Info("Using push diagnostics")
	}

	if root := req.Server.RootPath(); root != "" {
		log.Info("Workspace root: %s", root)
	}

	if params.InitializationOptions != nil {
		settings, err := types.ParseSettings(params.InitializationOptions)
		if err != nil {
			req.AddWarning(err)
		}
		req.Server.SetSettings(settings)
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := map[string]any{
		"textDocumentSync": protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
		"hoverProvider": true,
		"completionProvider": protocol.CompletionOptions{
			ResolveProvider:   boolPtr(true),
			TriggerCharacters: completionTriggers,
		},
		"colorProvider":     true,
		"inlayHintProvider": true,
		"codeActionProvider": protocol.CodeActionOptions{
			CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix},
		},
	}
	if pull {
		capabilities["diagnosticProvider"] = diagnostic.DiagnosticOptions{}
	}

	return InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
