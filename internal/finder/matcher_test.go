package finder_test

import (
	"strings"
	"testing"

	"github.com/PallasUI/panda-vscode-pallas/internal/finder"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectConfig = `{
  "theme": {
    "extend": {
      "semanticTokens": {
        "colors": {
          "danger": { "value": { "base": "{colors.red.200}", "_dark": "{colors.orange.300}" }, "description": "Destructive actions" },
          "fg": {
            "value": {
              "base": "{colors.gray.900}",
              "_dark": { "base": "{colors.gray.50}", "md": "{colors.gray.100}" },
              "_unknown": "{colors.red.300}"
            }
          }
        }
      }
    }
  }
}`

func loadProject(t *testing.T) *panda.Context {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/project/panda.config.json", []byte(projectConfig), 0o644))
	ctx, err := panda.Load(fsys, "/project", panda.LoadOptions{})
	require.NoError(t, err)
	return ctx
}

// locate parses src, where "|" marks the cursor
func locate(t *testing.T, src string) (syntax.Node, []syntax.Node, int) {
	t.Helper()
	offset := strings.Index(src, "|")
	require.GreaterOrEqual(t, offset, 0, "missing cursor marker")
	src = src[:offset] + src[offset+1:]

	tree, err := syntax.Parse(syntax.TSX, src)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	node, stack := syntax.Locate(tree, offset)
	require.False(t, node.IsNull())
	return node, stack, offset
}

func TestFindProperty(t *testing.T) {
	ctx := loadProject(t)
	tests := []struct {
		name       string
		src        string
		prop       string
		shorthand  string
		value      string
		conditions []string
	}{
		{"plain", `css({ color: "red.|300" })`, "color", "color", "red.300", []string{}},
		{"shorthand", `css({ p: "4|" })`, "padding", "p", "4", []string{}},
		{"number", `css({ opacity: 0|.5 })`, "opacity", "opacity", "0.5", []string{}},
		{"nested conditions", `css({ _hover: { md: { bg: "red.|300" } } })`, "background", "bg", "red.300", []string{"_hover", "md"}},
		{"value conditions", `css({ color: { base: "red.|300", _dark: "red.200" } })`, "color", "color", "red.300", []string{"base"}},
		{"recipe variant", `defineRecipe({ variants: { size: { small: { px: "|2" } } } })`, "paddingInline", "px", "2", []string{}},
		{"recipe variant named like a breakpoint", `defineRecipe({ variants: { size: { sm: { padding: "|2" } } } })`, "padding", "padding", "2", []string{}},
		{"recipe base", `defineRecipe({ base: { _hover: { color: "red.|300" } } })`, "color", "color", "red.300", []string{"_hover"}},
		{"slot recipe variant", `defineSlotRecipe({ slots: ["root"], variants: { size: { md: { root: { p: "|2" } } } } })`, "padding", "p", "2", []string{}},
		{"imported factory", "import { defineRecipe as recipe } from '@pandacss/dev'\nrecipe({ base: { md: { color: \"red.|300\" } } })", "color", "color", "red.300", []string{"md"}},
		{"cursor on key", `css({ co|lor: "red.300" })`, "color", "color", "red.300", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, stack, _ := locate(t, tt.src)
			prop, ok := finder.FindProperty(ctx, node, stack)
			require.True(t, ok)
			assert.Equal(t, tt.prop, prop.Name)
			assert.Equal(t, tt.shorthand, prop.Shorthand)
			assert.Equal(t, tt.value, prop.Value)
			assert.Equal(t, tt.conditions, append([]string{}, prop.Conditions...))
		})
	}
}

func TestFindPropertyMisses(t *testing.T) {
	ctx := loadProject(t)
	for _, src := range []string{
		`foo("red.|300")`,
		`css({ transition: ["op|acity"] })`,
		`css({ _hover: { _dark: "red.|300" } })`,
		`const x = "red.|300"`,
		`css({ color: tok|en })`,
		`defineRecipe({ className: "but|ton" })`,
		`defineRecipe({ base: "red.|300" })`,
		`defineRecipe({ variants: { size: { sm: "red.|300" } } })`,
	} {
		t.Run(src, func(t *testing.T) {
			node, stack, _ := locate(t, src)
			_, ok := finder.FindProperty(ctx, node, stack)
			assert.False(t, ok)
		})
	}
	_, ok := finder.FindProperty(nil, syntax.Node{}, nil)
	assert.False(t, ok)
}

func TestFindCondition(t *testing.T) {
	ctx := loadProject(t)

	t.Run("condition holding a value", func(t *testing.T) {
		node, stack, offset := locate(t, `css({ color: { _ho|ver: "red.300" } })`)
		cond, ok := finder.FindCondition(ctx, node, stack, offset)
		require.True(t, ok)
		assert.Equal(t, "_hover", cond.Name)
		assert.Equal(t, "&:is(:hover, [data-hover])", cond.Raw)
		require.NotNil(t, cond.Property)
		assert.Equal(t, "color", cond.Property.Name)
		assert.Equal(t, "red.300", cond.Property.Value)
	})

	t.Run("condition holding styles", func(t *testing.T) {
		node, stack, offset := locate(t, `css({ m|d: { color: "red.300" } })`)
		cond, ok := finder.FindCondition(ctx, node, stack, offset)
		require.True(t, ok)
		assert.Equal(t, "md", cond.Name)
		assert.Equal(t, "@media screen and (min-width: 768px)", cond.Raw)
		assert.Nil(t, cond.Property)
	})

	t.Run("cursor on the value", func(t *testing.T) {
		node, stack, offset := locate(t, `css({ color: { _hover: "red.|300" } })`)
		_, ok := finder.FindCondition(ctx, node, stack, offset)
		assert.False(t, ok)
	})

	t.Run("property key", func(t *testing.T) {
		node, stack, offset := locate(t, `css({ co|lor: "red.300" })`)
		_, ok := finder.FindCondition(ctx, node, stack, offset)
		assert.False(t, ok)
	})

	t.Run("recipe variant value", func(t *testing.T) {
		for _, src := range []string{
			`defineRecipe({ variants: { size: { s|m: { padding: "2" } } } })`,
			`defineRecipe({ b|ase: { color: "red.300" } })`,
			`defineSlotRecipe({ base: { m|d: { color: "red.300" } } })`,
		} {
			node, stack, offset := locate(t, src)
			_, ok := finder.FindCondition(ctx, node, stack, offset)
			assert.False(t, ok, src)
		}
	})

	t.Run("condition inside a recipe", func(t *testing.T) {
		node, stack, offset := locate(t, `defineRecipe({ variants: { size: { sm: { m|d: { padding: "2" } } } } })`)
		cond, ok := finder.FindCondition(ctx, node, stack, offset)
		require.True(t, ok)
		assert.Equal(t, "md", cond.Name)
	})
}

func TestReference(t *testing.T) {
	tests := []struct {
		value string
		path  string
		ok    bool
	}{
		{"token(", "", true},
		{"token(colors.re", "colors.re", true},
		{"token('spacing.4')", "spacing.4", true},
		{"{colors.", "colors.", true},
		{"{", "", true},
		{"1px solid {colors.red.300}", "colors.red.300", true},
		{"{spacing.1} {spacing.2", "spacing.2", true},
		{"red.300", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			path, ok := finder.Reference(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.ok, finder.HasReference(tt.value))
		})
	}
}

func TestTokenFromPropValue(t *testing.T) {
	ctx := loadProject(t)
	tests := []struct {
		prop  string
		value string
		name  string
		kind  panda.Kind
	}{
		{"color", "red.300", "colors.red.300", panda.KindColor},
		{"bg", "danger", "colors.danger", panda.KindSemanticColor},
		{"p", "4", "spacing.4", panda.KindDefault},
		{"m", "4", "spacing.4", panda.KindDefault},
		{"border", "1px solid token(colors.red.300)", "colors.red.300", panda.KindColor},
		{"color", "{colors.nope}", "colors.nope", panda.KindInvalidTokenPath},
		{"unknownProp", "colors.red.300", "colors.red.300", panda.KindColor},
		{"color", "#ff0000", "#ff0000", panda.KindNativeColor},
	}
	for _, tt := range tests {
		t.Run(tt.prop+"="+tt.value, func(t *testing.T) {
			tok := finder.TokenFromPropValue(ctx, tt.prop, tt.value)
			require.NotNil(t, tok)
			assert.Equal(t, tt.name, tok.Name)
			assert.Equal(t, tt.kind, tok.Extensions.Kind)
		})
	}

	for _, miss := range [][2]string{{"display", "flex"}, {"width", "1/2"}, {"color", ""}, {"padding", "nope"}} {
		assert.Nil(t, finder.TokenFromPropValue(ctx, miss[0], miss[1]), miss)
	}
	assert.Nil(t, finder.TokenFromPropValue(nil, "color", "red.300"))
}
