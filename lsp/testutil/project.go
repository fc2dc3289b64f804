package testutil

import (
	"strings"
	"testing"

	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/position"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ProjectRoot is where LoadProject writes the fixture config
const ProjectRoot = "/project"

// ProjectConfig adds a conditional semantic color and an animation to the
// base preset.
const ProjectConfig = `{
  // comments are allowed
  "include": ["./src/**/*.{ts,tsx}"],
  "theme": {
    "extend": {
      "semanticTokens": {
        "colors": {
          "danger": {
            "value": { "base": "{colors.red.200}", "_dark": "{colors.orange.300}" },
            "description": "Destructive actions"
          }
        }
      }
    }
  }
}`

// LoadProject builds a project from config on an in-memory filesystem
func LoadProject(t *testing.T, config string) *panda.Context {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, ProjectRoot+"/panda.config.jsonc", []byte(config), 0o644))
	ctx, err := panda.Load(fsys, ProjectRoot, panda.LoadOptions{})
	require.NoError(t, err)
	return ctx
}

// NewProjectContext returns a mock server with ProjectConfig loaded
func NewProjectContext(t *testing.T) *MockServerContext {
	t.Helper()
	m := NewMockServerContext()
	m.SetRootPath(ProjectRoot)
	m.SetRootURI("file://" + ProjectRoot)
	m.SetPandaContext(LoadProject(t, ProjectConfig))
	return m
}

// Open adds a document to the mock. In src, "|" marks a cursor; its position
// is returned, or the zero position when there is no marker.
func (m *MockServerContext) Open(t *testing.T, uri, languageID, src string) protocol.Position {
	t.Helper()
	var pos protocol.Position
	if i := strings.Index(src, "|"); i >= 0 {
		before := src[:i]
		pos.Line = protocol.UInteger(strings.Count(before, "\n"))
		pos.Character = protocol.UInteger(position.StringLengthUTF16(before[strings.LastIndex(before, "\n")+1:]))
		src = before + src[i+1:]
	}
	require.NoError(t, m.docs.DidOpen(uri, languageID, 1, src))
	return pos
}
