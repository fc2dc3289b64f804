package lifecycle

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
)

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")

	req.Server.Recipes().InvalidateAll()
	syntax.ClosePool()
	return nil
}
