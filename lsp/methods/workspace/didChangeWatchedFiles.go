package workspace

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/uriutil"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles handles the workspace/didChangeWatchedFiles
// notification. Any change to a config or token file reloads the project.
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	log.Info("Watched files changed: %d files", len(params.Changes))

	needsReload := false
	for _, change := range params.Changes {
		path := uriutil.URIToPath(change.URI)
		log.Debug("File change: %s (type: %d)", path, change.Type)
		if req.Server.IsProjectFile(path) {
			needsReload = true
		}
	}
	if !needsReload {
		return nil
	}

	log.Info("Reloading project due to changes")
	if err := req.Server.LoadProject(); err != nil {
		LogWarning(req.GLSP, "Failed to reload project: %v", err)
	}
	req.Server.Recipes().InvalidateAll()
	republishDiagnostics(req)

	// The token file list may have changed with the config
	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		LogWarning(req.GLSP, "Failed to register file watchers: %v", err)
	}
	return nil
}
