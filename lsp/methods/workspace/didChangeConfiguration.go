package workspace

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration notification
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	settings, err := types.ParseSettings(params.Settings)
	if err != nil {
		// Don't fail, keep whatever decoded over the defaults
		LogWarning(req.GLSP, "Failed to parse settings: %v", err)
	}

	req.Server.SetSettings(settings)
	log.Debug("New settings: %+v", settings)

	if err := req.Server.LoadProject(); err != nil {
		LogWarning(req.GLSP, "Failed to reload project: %v", err)
	}
	req.Server.Recipes().InvalidateAll()
	republishDiagnostics(req)
	return nil
}
