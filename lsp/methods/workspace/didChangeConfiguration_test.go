package workspace

import (
	"errors"
	"testing"

	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/lsp/testutil"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const recipeSource = `import { defineRecipe } from '@pandacss/dev'
export const badge = defineRecipe({ base: { color: 'red.200' } })
`

func TestDidChangeConfigurationUpdatesSettings(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	req := types.NewRequestContext(ctx, nil)

	err := DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{
			"panda": map[string]any{
				"hovers.enabled":    false,
				"rem-to-px.enabled": true,
			},
		},
	})
	require.NoError(t, err)

	settings := ctx.Settings()
	assert.False(t, settings.HoversEnabled)
	assert.True(t, settings.RemToPxEnabled)
	assert.Equal(t, 1, ctx.LoadProjectCalled)
}

func TestDidChangeConfigurationInvalidSettings(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	custom := types.DefaultSettings()
	custom.InlayHintsEnabled = false
	ctx.SetSettings(custom)

	err := DidChangeConfiguration(types.NewRequestContext(ctx, nil), &protocol.DidChangeConfigurationParams{
		Settings: "invalid",
	})
	require.NoError(t, err, "bad settings warn and fall back to defaults")
	assert.Equal(t, types.DefaultSettings(), ctx.Settings())
}

func TestDidChangeConfigurationReloadFailureIsNotFatal(t *testing.T) {
	ctx := testutil.NewMockServerContext()
	ctx.LoadProjectFunc = func() (*panda.Context, error) {
		return nil, errors.New("broken config")
	}

	err := DidChangeConfiguration(types.NewRequestContext(ctx, nil), &protocol.DidChangeConfigurationParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, ctx.LoadProjectCalled)
}

func TestDidChangeConfigurationInvalidatesRecipes(t *testing.T) {
	ctx := testutil.NewProjectContext(t)
	ctx.Open(t, "file:///project/src/badge.ts", "typescript", recipeSource)
	ctx.Recipes().Parse(ctx.Document("file:///project/src/badge.ts"))
	require.Equal(t, 1, ctx.Recipes().Len())

	err := DidChangeConfiguration(types.NewRequestContext(ctx, nil), &protocol.DidChangeConfigurationParams{})
	require.NoError(t, err)
	assert.Zero(t, ctx.Recipes().Len())
}
