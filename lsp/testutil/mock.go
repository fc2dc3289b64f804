package testutil

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/documents"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/recipes"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	"github.com/tliron/glsp"
)

var _ types.ServerContext = (*MockServerContext)(nil)

// MockServerContext implements types.ServerContext for testing.
// It provides a minimal implementation with configurable behavior via callback functions.
type MockServerContext struct {
	docs        *documents.Manager
	cache       *recipes.Cache
	panda       *panda.Context
	rootURI     string
	rootPath    string
	settings    types.Settings
	glspContext *glsp.Context
	pull        bool

	// Optional callbacks for custom behavior in tests
	LoadProjectFunc      func() (*panda.Context, error)
	RegisterWatchersFunc func(*glsp.Context) error
	IsProjectFileFunc    func(string) bool
	PublishFunc          func(*glsp.Context, string) error

	// DiagnosticCapability is what ClientDiagnosticCapability reports
	DiagnosticCapability *bool

	// Tracking flags for tests that need to verify methods were called
	LoadProjectCalled      int
	RegisterWatchersCalled bool
	Published              []string
}

// NewMockServerContext creates a new mock server context with default behavior
func NewMockServerContext() *MockServerContext {
	return &MockServerContext{
		docs:     documents.NewManager(),
		cache:    recipes.NewCache(nil),
		settings: types.DefaultSettings(),
	}
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// PandaContext returns the project set with SetPandaContext or LoadProjectFunc
func (m *MockServerContext) PandaContext() *panda.Context {
	return m.panda
}

// SetPandaContext replaces the loaded project
func (m *MockServerContext) SetPandaContext(ctx *panda.Context) {
	m.panda = ctx
}

// Recipes returns the recipe cache
func (m *MockServerContext) Recipes() *recipes.Cache {
	return m.cache
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

// Settings returns the editor settings
func (m *MockServerContext) Settings() types.Settings {
	return m.settings
}

// SetSettings replaces the editor settings
func (m *MockServerContext) SetSettings(settings types.Settings) {
	m.settings = settings
}

// IsProjectFile reports whether path is a config or token file. Without a
// callback only the loaded config file counts.
func (m *MockServerContext) IsProjectFile(path string) bool {
	if m.IsProjectFileFunc != nil {
		return m.IsProjectFileFunc(path)
	}
	return m.panda != nil && m.panda.Config.Path == path
}

// LoadProject runs LoadProjectFunc, keeping the project it returns
func (m *MockServerContext) LoadProject() error {
	m.LoadProjectCalled++
	if m.LoadProjectFunc == nil {
		return nil
	}
	ctx, err := m.LoadProjectFunc()
	if ctx != nil {
		m.panda = ctx
	}
	return err
}

// RegisterFileWatchers registers file watchers with the client
func (m *MockServerContext) RegisterFileWatchers(ctx *glsp.Context) error {
	m.RegisterWatchersCalled = true
	if m.RegisterWatchersFunc != nil {
		return m.RegisterWatchersFunc(ctx)
	}
	return nil
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}

// ClientDiagnosticCapability returns DiagnosticCapability
func (m *MockServerContext) ClientDiagnosticCapability() *bool {
	return m.DiagnosticCapability
}

// UsePullDiagnostics reports whether the client pulls diagnostics
func (m *MockServerContext) UsePullDiagnostics() bool {
	return m.pull
}

// SetUsePullDiagnostics sets the diagnostics model
func (m *MockServerContext) SetUsePullDiagnostics(use bool) {
	m.pull = use
}

// PublishDiagnostics records the uri and runs PublishFunc
func (m *MockServerContext) PublishDiagnostics(ctx *glsp.Context, uri string) error {
	m.Published = append(m.Published, uri)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, uri)
	}
	return nil
}
