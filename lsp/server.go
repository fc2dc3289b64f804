package lsp

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/PallasUI/panda-vscode-pallas/internal/documents"
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/recipes"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/PallasUI/panda-vscode-pallas/lsp/methods/lifecycle"
	"github.com/PallasUI/panda-vscode-pallas/lsp/methods/textDocument"
	codeaction "github.com/PallasUI/panda-vscode-pallas/lsp/methods/textDocument/codeAction"
	"github.com/PallasUI/panda-vscode-pallas/lsp/methods/textDocument/completion"
	"github.com/PallasUI/panda-vscode-pallas/lsp/methods/textDocument/diagnostic"
	documentcolor "github.com/PallasUI/panda-vscode-pallas/lsp/methods/textDocument/documentColor"
	"github.com/PallasUI/panda-vscode-pallas/lsp/methods/textDocument/hover"
	"github.com/PallasUI/panda-vscode-pallas/lsp/methods/workspace"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// ErrNoWorkspace is returned by LoadProject before a workspace root is known
var ErrNoWorkspace = errors.New("no workspace root")

// Server represents the Panda CSS Language Server
type Server struct {
	documents  *documents.Manager
	recipes    *recipes.Cache
	fs         afero.Fs
	handler    *CustomHandler
	glspServer *server.Server
	context    *glsp.Context
	panda      *panda.Context
	rootURI    string         // Workspace root URI
	rootPath   string         // Workspace root path (file system)
	settings   types.Settings // Editor settings
	configMu   sync.RWMutex   // Protects everything above and the diagnostics model

	clientDiagnosticCapability *bool // nil until initialize has been seen
	usePullDiagnostics         bool
}

// NewServer creates a new Panda CSS LSP server reading projects from disk
func NewServer() (*Server, error) {
	return newServer(afero.NewOsFs()), nil
}

func newServer(fsys afero.Fs) *Server {
	s := &Server{
		documents: documents.NewManager(),
		recipes:   recipes.NewCache(nil),
		fs:        fsys,
		settings:  types.DefaultSettings(),
	}

	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:  notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentHover:               feature(s, "textDocument/hover", hover.Hover),
		TextDocumentCompletion:          feature(s, "textDocument/completion", completion.Completion),
		CompletionItemResolve:           feature(s, "completionItem/resolve", completion.CompletionResolve),
		TextDocumentColor:               feature(s, "textDocument/documentColor", documentcolor.DocumentColor),
		TextDocumentColorPresentation:   feature(s, "textDocument/colorPresentation", documentcolor.ColorPresentation),
		TextDocumentCodeAction:          feature(s, "textDocument/codeAction", codeaction.CodeAction),
	}

	// WORKAROUND: glsp only speaks LSP 3.16; inlay hints are routed by CustomHandler
	s.handler = &CustomHandler{
		Handler: &protocolHandler,
		server:  s,
	}

	s.glspServer = server.NewServer(s.handler, lifecycle.ServerName, false)
	return s
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases the parser pool. It is safe to call Close multiple times.
func (s *Server) Close() error {
	syntax.ClosePool()
	return nil
}

// ServerContext interface implementation

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// PandaContext returns the loaded project, or nil before the first load
func (s *Server) PandaContext() *panda.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.panda
}

// Recipes returns the per-document recipe cache
func (s *Server) Recipes() *recipes.Cache {
	return s.recipes
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// Settings returns the current editor settings
func (s *Server) Settings() types.Settings {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.settings
}

// SetSettings replaces the editor settings
func (s *Server) SetSettings(settings types.Settings) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.settings = settings
}

// GLSPContext returns the GLSP context.
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}

// ClientDiagnosticCapability returns whether the client declared pull
// diagnostics support, or nil before initialize.
func (s *Server) ClientDiagnosticCapability() *bool {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.clientDiagnosticCapability
}

// SetClientDiagnosticCapability records the capability CustomHandler finds in
// the raw initialize params.
func (s *Server) SetClientDiagnosticCapability(hasCapability bool) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.clientDiagnosticCapability = &hasCapability
}

// UsePullDiagnostics reports whether the client requests diagnostics itself.
// When true, nothing is pushed with textDocument/publishDiagnostics.
func (s *Server) UsePullDiagnostics() bool {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.usePullDiagnostics
}

// SetUsePullDiagnostics selects the diagnostics model
func (s *Server) SetUsePullDiagnostics(use bool) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.usePullDiagnostics = use
}

// PublishDiagnostics pushes the diagnostics of one document. It does nothing
// for clients that pull.
func (s *Server) PublishDiagnostics(context *glsp.Context, uri string) error {
	if s.UsePullDiagnostics() {
		return nil
	}
	if context == nil {
		context = s.GLSPContext()
	}
	if context == nil || context.Notify == nil {
		return fmt.Errorf("cannot publish diagnostics: no client context available")
	}

	diagnostics, err := diagnostic.GetDiagnostics(s, uri)
	if err != nil {
		return err
	}
	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
	return nil
}

// LoadProject (re)loads the Panda project at the workspace root. A project
// whose token files partly failed to import is still installed, and the
// failures are returned.
func (s *Server) LoadProject() error {
	root := s.RootPath()
	if root == "" {
		return ErrNoWorkspace
	}

	opts := panda.LoadOptions{DesignTokensConfig: s.Settings().DesignTokensConfigEnabled}
	ctx, err := panda.Load(s.fs, root, opts)
	if ctx == nil {
		return err
	}

	s.configMu.Lock()
	s.panda = ctx
	s.configMu.Unlock()

	log.Info("Loaded project %s: %d tokens", root, ctx.Tokens.Len())
	return err
}

// IsProjectFile reports whether a change to path can change the project: a
// Panda config file anywhere, or one of the loaded project's token files.
func (s *Server) IsProjectFile(path string) bool {
	name := filepath.Base(path)
	if slices.Contains(panda.ConfigFileNames, name) || slices.Contains(panda.ScriptConfigFileNames, name) {
		return true
	}

	ctx := s.PandaContext()
	if ctx == nil {
		return false
	}
	path = filepath.ToSlash(filepath.Clean(path))
	for _, f := range ctx.Config.TokensFiles {
		pattern := f
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(ctx.Config.Root, pattern)
		}
		if ok, err := doublestar.Match(filepath.ToSlash(pattern), path); err == nil && ok {
			return true
		}
	}
	return false
}

// RegisterFileWatchers asks the client to watch the project's config and
// token files.
func (s *Server) RegisterFileWatchers(context *glsp.Context) error {
	// An empty context (created with &glsp.Context{}) won't have Call initialized
	if context == nil || context.Call == nil {
		log.Info("Skipping file watcher registration (no client context)")
		return nil
	}

	var patterns []string
	if ctx := s.PandaContext(); ctx != nil {
		patterns = ctx.Config.WatchPatterns()
	} else {
		patterns = (&panda.Config{}).WatchPatterns()
	}

	watchers := make([]protocol.FileSystemWatcher, 0, len(patterns))
	for _, pattern := range patterns {
		watchers = append(watchers, protocol.FileSystemWatcher{GlobPattern: pattern})
	}

	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     "panda-file-watcher",
				Method: "workspace/didChangeWatchedFiles",
				RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
					Watchers: watchers,
				},
			},
		},
	}

	// client/registerCapability is a request. Calling it synchronously would
	// block the message loop that has to read the client's response.
	go func(ctx *glsp.Context) {
		var result any
		ctx.Call("client/registerCapability", params, &result)
		log.Info("File watcher registration completed")
	}(context)

	log.Info("Sent file watcher registration request (%d watchers)", len(watchers))
	return nil
}
