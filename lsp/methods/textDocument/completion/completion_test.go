package completion

import (
	"testing"

	"github.com/PallasUI/panda-vscode-pallas/internal/finder"
	"github.com/PallasUI/panda-vscode-pallas/lsp/testutil"
	"github.com/PallasUI/panda-vscode-pallas/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	tsxURI = "file:///project/src/button.tsx"
	cssURI = "file:///project/src/global.css"
)

func complete(t *testing.T, ctx *testutil.MockServerContext, uri, languageID, src string) []types.CompletionItem {
	t.Helper()
	pos := ctx.Open(t, uri, languageID, src)
	result, err := Completion(types.NewRequestContext(ctx, nil), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     pos,
		},
	})
	require.NoError(t, err)
	if result == nil {
		return nil
	}
	return result.([]types.CompletionItem)
}

func find(items []types.CompletionItem, label string) (types.CompletionItem, bool) {
	for _, item := range items {
		if item.Label == label {
			return item, true
		}
	}
	return types.CompletionItem{}, false
}

func TestCompletionTokenPath(t *testing.T) {
	ctx := testutil.NewProjectContext(t)
	items := complete(t, ctx, tsxURI, "typescriptreact", `import { css } from '../styled-system/css'
css({ color: 'red.|' })`)

	require.NotEmpty(t, items)
	item, ok := find(items, "red.200")
	require.True(t, ok)

	require.NotNil(t, item.InsertText)
	assert.Equal(t, "200", *item.InsertText, "text after the typed dot")
	assert.Equal(t, protocol.CompletionItemKindColor, *item.Kind)
	assert.Equal(t, "#fecaca", *item.Detail)
	require.NotNil(t, item.LabelDetails)
	assert.Equal(t, "#fecaca", *item.LabelDetails.Description)
	assert.Equal(t, "   var(--colors-red-200)", *item.LabelDetails.Detail)
	assert.Equal(t, &finder.ItemData{PropName: "color", Shorthand: "color", Token: "colors.red.200"}, item.Data)

	_, ok = find(items, "blue.200")
	assert.False(t, ok, "filtered by what was typed")
}

func TestCompletionShorthand(t *testing.T) {
	ctx := testutil.NewProjectContext(t)
	items := complete(t, ctx, tsxURI, "typescriptreact", `import { css } from '../styled-system/css'
css({ p: '|' })`)

	item, ok := find(items, "4")
	require.True(t, ok)
	assert.Equal(t, protocol.CompletionItemKindEnumMember, *item.Kind)
	assert.Nil(t, item.InsertText)
	assert.Equal(t, &finder.ItemData{PropName: "padding", Shorthand: "p", Token: "spacing.4"}, item.Data)
}

func TestCompletionTokenFunction(t *testing.T) {
	ctx := testutil.NewProjectContext(t)
	items := complete(t, ctx, tsxURI, "typescriptreact", `import { css } from '../styled-system/css'
css({ border: '1px solid token(|)' })`)

	colors, ok := find(items, "colors")
	require.True(t, ok)
	assert.True(t, *colors.Preselect)
	assert.Nil(t, colors.Data)

	settings := types.DefaultSettings()
	settings.CompletionsTokenFnEnabled = false
	ctx.SetSettings(settings)
	items = complete(t, ctx, tsxURI, "typescriptreact", `import { css } from '../styled-system/css'
css({ border: '1px solid token(|)' })`)
	_, ok = find(items, "colors")
	assert.False(t, ok)
}

func TestCompletionStylesheetTokenFunction(t *testing.T) {
	ctx := testutil.NewProjectContext(t)
	items := complete(t, ctx, cssURI, "css", `.btn { color: token(colors.danger|); }`)

	item, ok := find(items, "danger")
	require.True(t, ok)
	assert.Equal(t, &finder.ItemData{Token: "colors.danger"}, item.Data)
}

func TestCompletionSkips(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		ctx := testutil.NewProjectContext(t)
		settings := types.DefaultSettings()
		settings.CompletionsEnabled = false
		ctx.SetSettings(settings)
		assert.Nil(t, complete(t, ctx, tsxURI, "typescriptreact", `css({ color: 'red.|' })`))
	})

	t.Run("no project", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		assert.Nil(t, complete(t, ctx, tsxURI, "typescriptreact", `css({ color: 'red.|' })`))
	})

	t.Run("outside the project without recipe imports", func(t *testing.T) {
		ctx := testutil.NewProjectContext(t)
		assert.Nil(t, complete(t, ctx, "file:///project/scripts/gen.ts", "typescript", `css({ color: 'red.|' })`))
	})

	t.Run("not a property value", func(t *testing.T) {
		ctx := testutil.NewProjectContext(t)
		assert.Nil(t, complete(t, ctx, tsxURI, "typescriptreact", `const label = 're|d'`))
	})
}

func TestCompletionOutsideIncludeWithRecipeImport(t *testing.T) {
	ctx := testutil.NewProjectContext(t)
	items := complete(t, ctx, "file:///project/theme/button.ts", "typescript", `import { defineRecipe } from '@pandacss/dev'
export const button = defineRecipe({ base: { bg: 'red.|' } })`)
	_, ok := find(items, "red.200")
	assert.True(t, ok)
}

func TestCompletionRecipeVariantNamedLikeBreakpoint(t *testing.T) {
	ctx := testutil.NewProjectContext(t)
	items := complete(t, ctx, "file:///project/theme/button.ts", "typescript", `import { defineRecipe } from '@pandacss/dev'
export const button = defineRecipe({ variants: { size: { sm: { padding: '|' } } } })`)
	item, ok := find(items, "4")
	require.True(t, ok)
	assert.Equal(t, &finder.ItemData{PropName: "padding", Shorthand: "padding", Token: "spacing.4"}, item.Data)
}

func TestCompletionResolve(t *testing.T) {
	ctx := testutil.NewProjectContext(t)
	req := types.NewRequestContext(ctx, nil)

	item := &protocol.CompletionItem{
		Label: "danger",
		Data:  map[string]any{"propName": "color", "shorthand": "color", "token": "colors.danger"},
	}
	resolved, err := CompletionResolve(req, item)
	require.NoError(t, err)

	doc, ok := resolved.Documentation.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, protocol.MarkupKindMarkdown, doc.Kind)
	assert.Contains(t, doc.Value, "```css")
	assert.Contains(t, doc.Value, "color: var(--colors-danger)")
	assert.Contains(t, doc.Value, "**_dark**")
	assert.NotContains(t, doc.Value, "is shorthand for")

	item = &protocol.CompletionItem{
		Label: "4",
		Data:  map[string]any{"propName": "padding", "shorthand": "p", "token": "spacing.4"},
	}
	resolved, err = CompletionResolve(req, item)
	require.NoError(t, err)
	assert.Contains(t, resolved.Documentation.(protocol.MarkupContent).Value, "`p` is shorthand for `padding`")
}

func TestCompletionResolveWithoutToken(t *testing.T) {
	req := types.NewRequestContext(testutil.NewProjectContext(t), nil)

	item := &protocol.CompletionItem{Label: "wide", Data: map[string]any{"propName": "aspectRatio"}}
	resolved, err := CompletionResolve(req, item)
	require.NoError(t, err)
	assert.Nil(t, resolved.Documentation)

	item = &protocol.CompletionItem{Label: "x", Data: "garbage"}
	resolved, err = CompletionResolve(req, item)
	require.NoError(t, err)
	assert.Nil(t, resolved.Documentation)
	assert.True(t, req.HasWarnings())
}
