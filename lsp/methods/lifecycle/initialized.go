package lifecycle

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/lsp/methods/workspace"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	// Store context for notifications sent outside a request
	req.Server.SetGLSPContext(req.GLSP)

	// A broken project must not fail initialization; features stay off until it loads
	if err := req.Server.LoadProject(); err != nil {
		workspace.LogWarning(req.GLSP, "Failed to load project: %v", err)
	}
	if ctx := req.Server.PandaContext(); ctx != nil {
		workspace.LogInfo(req.GLSP, "Loaded %d tokens", ctx.Tokens.Len())
	}

	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		workspace.LogWarning(req.GLSP, "Failed to register file watchers: %v", err)
	}
	return nil
}
