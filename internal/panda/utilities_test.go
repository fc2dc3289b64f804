package panda_test

import (
	"testing"

	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryNames(entries []panda.Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func TestResolveShorthand(t *testing.T) {
	ctx := loadSandbox(t)
	u := ctx.Utilities

	assert.Equal(t, "background", u.ResolveShorthand("bg"))
	assert.Equal(t, "backgroundColor", u.ResolveShorthand("bgColor"))
	assert.Equal(t, "paddingInline", u.ResolveShorthand("px"))
	assert.Equal(t, "color", u.ResolveShorthand("color"))
	assert.Equal(t, "unknownThing", u.ResolveShorthand("unknownThing"))

	assert.True(t, u.IsShorthand("bg"))
	assert.False(t, u.IsShorthand("background"))
	assert.True(t, u.Has("bg"))
	assert.False(t, u.Has("unknownThing"))
}

func TestPropertyValuesCategory(t *testing.T) {
	ctx := loadSandbox(t)

	category, entries := ctx.PropertyValues("bg")
	assert.Equal(t, "colors", category)
	assert.Nil(t, entries)

	category, _ = ctx.PropertyValues("fontSize")
	assert.Equal(t, "fontSizes", category)
}

func TestPropertyValuesFunctionIsFlattened(t *testing.T) {
	ctx := loadSandbox(t)

	category, entries := ctx.PropertyValues("top")
	assert.Empty(t, category)

	names := entryNames(entries)
	assert.Contains(t, names, "4", "spacing tokens")
	assert.Contains(t, names, "auto")
	assert.Contains(t, names, "1/2", "the fractions group is flattened")
	assert.NotContains(t, names, "fractions")

	for _, e := range entries {
		if e.Name == "4" {
			assert.Equal(t, "var(--spacing-4)", e.Value)
		}
		assert.Empty(t, e.Children)
	}
}

func TestPropertyValuesStaticEntries(t *testing.T) {
	ctx := loadSandbox(t)
	_, entries := ctx.PropertyValues("aspectRatio")
	assert.Equal(t, []string{"square", "landscape", "portrait", "wide", "ultrawide", "golden"}, entryNames(entries))
}

func TestPropertyValuesKeyframes(t *testing.T) {
	ctx := loadSandbox(t)
	_, entries := ctx.PropertyValues("animationName")
	assert.Equal(t, []string{"spin", "ping", "pulse", "bounce"}, entryNames(entries))
}

func TestPropertyValuesUnknown(t *testing.T) {
	ctx := loadSandbox(t)
	category, entries := ctx.PropertyValues("display")
	assert.Empty(t, category)
	assert.Empty(t, entries)

	category, entries = ctx.PropertyValues("nope")
	assert.Empty(t, category)
	assert.Nil(t, entries)
}

func TestConfigUtilities(t *testing.T) {
	cfg, err := panda.ParseConfig([]byte(`
utilities:
  extend:
    borderColor:
      shorthand: bc
    gapish:
      className: gpx
      values: [spacing, sizes]
    tone:
      values:
        soft: "0.5"
        strong: "1"
        extra:
          max: "2"
`), ".yml")
	require.NoError(t, err)
	ctx, err := panda.NewContext(nil, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, "borderColor", ctx.Utilities.ResolveShorthand("bc"))
	category, _ := ctx.PropertyValues("bc")
	assert.Equal(t, "colors", category, "overrides keep unspecified fields")

	_, entries := ctx.PropertyValues("gapish")
	names := entryNames(entries)
	assert.Contains(t, names, "0.5")
	assert.Contains(t, names, "prose")
	assert.Equal(t, "gpx", ctx.Utilities.ClassName("gapish"))

	_, entries = ctx.PropertyValues("tone")
	assert.Equal(t, []string{"soft", "strong", "max"}, entryNames(entries))
}

func TestClassName(t *testing.T) {
	ctx := loadSandbox(t)
	assert.Equal(t, "bg", ctx.Utilities.ClassName("bg"))
	assert.Equal(t, "c", ctx.Utilities.ClassName("color"))
	assert.Equal(t, "grid-template-columns", ctx.Utilities.ClassName("gridTemplateColumns"))
}

func TestConditions(t *testing.T) {
	ctx := loadSandbox(t)
	c := ctx.Conditions

	raw, ok := c.Get("_hover")
	require.True(t, ok)
	assert.Equal(t, "&:is(:hover, [data-hover])", raw)

	raw, ok = c.Get("md")
	require.True(t, ok)
	assert.Equal(t, "@media screen and (min-width: 768px)", raw)
	assert.True(t, c.IsBreakpoint("md"))
	assert.False(t, c.IsBreakpoint("_dark"))

	assert.True(t, c.Has("base"))
	assert.True(t, c.Has("_dark"))
	assert.False(t, c.Has("hover"), "conditions are written with a leading underscore")
	assert.NotContains(t, c.Names(), "base")
}
