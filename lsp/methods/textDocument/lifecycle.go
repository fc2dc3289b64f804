package textDocument

import (
	"fmt"

	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	log.Debug("Document opened: %s (language: %s, version: %d)",
		params.TextDocument.URI, params.TextDocument.LanguageID, int(params.TextDocument.Version))

	err := req.Server.DocumentManager().DidOpen(params.TextDocument.URI, params.TextDocument.LanguageID,
		int(params.TextDocument.Version), params.TextDocument.Text)
	if err != nil {
		return err
	}
	publishDiagnostics(req, params.TextDocument.URI)
	return nil
}

// DidChange handles the textDocument/didChange notification
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)

	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, version, len(params.ContentChanges))

	// glsp decodes each change as one of two event types; drop anything else
	changes := make([]protocol.TextDocumentContentChangeEvent, 0, len(params.ContentChanges))
	for _, change := range params.ContentChanges {
		switch event := change.(type) {
		case protocol.TextDocumentContentChangeEvent:
			changes = append(changes, event)
		case protocol.TextDocumentContentChangeEventWhole:
			changes = append(changes, protocol.TextDocumentContentChangeEvent{Text: event.Text})
		}
	}

	// The cache keys on version, so the stale entry is simply never hit again
	if err := req.Server.DocumentManager().DidChange(uri, version, changes); err != nil {
		return err
	}
	publishDiagnostics(req, uri)
	return nil
}

// DidClose handles the textDocument/didClose notification
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debug("Document closed: %s", uri)

	req.Server.Recipes().Invalidate(uri)
	return req.Server.DocumentManager().DidClose(uri)
}

// publishDiagnostics pushes diagnostics for uri unless the client pulls them
func publishDiagnostics(req *types.RequestContext, uri string) {
	if req.Server.UsePullDiagnostics() {
		return
	}
	glspCtx := req.Server.GLSPContext()
	if glspCtx == nil {
		return
	}
	if err := req.Server.PublishDiagnostics(glspCtx, uri); err != nil {
		req.AddWarning(fmt.Errorf("failed to publish diagnostics for %s: %w", uri, err))
	}
}
