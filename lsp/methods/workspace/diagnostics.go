package workspace

import (
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
)

// republishDiagnostics pushes fresh diagnostics for every open document after
// the project changed. Pull clients ask again on their own.
func republishDiagnostics(req *types.RequestContext) {
	if req.Server.UsePullDiagnostics() {
		return
	}
	glspCtx := req.Server.GLSPContext()
	if glspCtx == nil {
		return
	}
	for _, doc := range req.Server.AllDocuments() {
		if err := req.Server.PublishDiagnostics(glspCtx, doc.URI()); err != nil {
			LogWarning(req.GLSP, "Failed to publish diagnostics for %s: %v", doc.URI(), err)
		}
	}
}
