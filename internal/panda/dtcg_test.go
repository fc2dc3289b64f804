package panda_test

import (
	"testing"

	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensFilesImportDTCG(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/project/panda.config.json", []byte(`{
		"tokensFiles": ["./tokens/*.json", "tokens/motion.yaml"]
	}`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/project/tokens/brand.json", []byte(`{
		"color": {
			"brand": {
				"primary": { "$type": "color", "$value": "#ff6b35", "$description": "Brand orange" },
				"accent": { "$type": "color", "$value": "{color.brand.primary}" }
			}
		},
		"space": {
			"gutter": { "$type": "dimension", "$value": "24px" }
		}
	}`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/project/tokens/motion.yaml", []byte(`
quick:
  $type: duration
  $value: 120ms
`), 0o644))

	ctx, err := panda.Load(fsys, "/project", panda.LoadOptions{})
	require.NoError(t, err)

	primary := ctx.Tokens.ByName("colors.brand.primary")
	require.NotNil(t, primary)
	assert.Equal(t, "#ff6b35", primary.Value)
	assert.Equal(t, "Brand orange", primary.Description)
	assert.Equal(t, panda.KindColor, primary.Extensions.Kind)
	assert.Equal(t, "/project/tokens/brand.json", primary.Extensions.Source)

	accent := ctx.Tokens.ByName("colors.brand.accent")
	require.NotNil(t, accent)
	assert.Equal(t, "{colors.brand.primary}", accent.OriginalValue, "references follow the renamed path")
	assert.Equal(t, "#ff6b35", accent.Value)

	gutter := ctx.Tokens.ByName("spacing.gutter")
	require.NotNil(t, gutter)
	assert.Equal(t, "24px", gutter.Value)

	quick := ctx.Tokens.ByName("durations.quick")
	require.NotNil(t, quick, "bare paths are placed by $type")
	assert.Equal(t, "120ms", quick.Value)

	assert.NotNil(t, ctx.Tokens.ByName("colors.red.300"), "imports add to the preset")
}

func TestTokensFilesErrorsKeepTheRest(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/project/panda.config.json", []byte(`{"tokensFiles": ["tokens/*.json"]}`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/project/tokens/a.json", []byte(`{"color": {"ok": {"$type": "color", "$value": "#000"}}}`), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "/project/tokens/b.json", []byte(`{"color": `), 0o644))

	ctx, err := panda.Load(fsys, "/project", panda.LoadOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "b.json")
	require.NotNil(t, ctx)
	assert.NotNil(t, ctx.Tokens.ByName("colors.ok"))
}
