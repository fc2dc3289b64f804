package types

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/documents"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/recipes"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers.
// Handlers depend on this interface so tests can swap in a mock.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Project operations. PandaContext is nil until a project has loaded.
	PandaContext() *panda.Context
	Recipes() *recipes.Cache

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)

	// Settings
	Settings() Settings
	SetSettings(settings Settings)
	IsProjectFile(path string) bool

	// Workspace initialization (called by Initialized and on file changes)
	LoadProject() error
	RegisterFileWatchers(ctx *glsp.Context) error

	// LSP context (for notifications outside a request)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)

	// Diagnostics. ClientDiagnosticCapability is nil until initialize has
	// been seen.
	ClientDiagnosticCapability() *bool
	UsePullDiagnostics() bool
	SetUsePullDiagnostics(use bool)
	PublishDiagnostics(ctx *glsp.Context, uri string) error
}
