package syntax_test

import (
	"strings"
	"testing"

	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vueButton = `<template>
  <button :class="styles">Café</button>
</template>

<script lang="ts">
import { defineRecipe } from '@pandacss/dev'
export const button = defineRecipe({ base: { color: 'red.200' } })
</script>

<script setup>
const label = 'ok'
</script>
`

func TestScriptBlocks(t *testing.T) {
	blocks, err := syntax.ScriptBlocks(vueButton)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, syntax.TypeScript, blocks[0].Lang)
	assert.Contains(t, vueButton[blocks[0].Start:blocks[0].End], "defineRecipe({")
	assert.Equal(t, syntax.JavaScript, blocks[1].Lang)
	assert.Contains(t, vueButton[blocks[1].Start:blocks[1].End], "const label")
}

func TestScriptBlocksWithoutScripts(t *testing.T) {
	blocks, err := syntax.ScriptBlocks("<template><div /></template>\n<style>.a { color: red }</style>\n")
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestParseComponent(t *testing.T) {
	tree, err := syntax.Parse(syntax.Component, vueButton)
	require.NoError(t, err)
	defer tree.Close()

	assert.Equal(t, syntax.TypeScript, tree.Language(), "the richest block grammar")
	assert.Len(t, tree.Source(), len(vueButton), "offsets are those of the file")
	assert.NotContains(t, tree.Source(), "<template>")

	offset := strings.Index(vueButton, "red.200")
	node, _ := syntax.Locate(tree, offset)
	require.Equal(t, syntax.KindString, node.Kind())
	assert.Equal(t, "'red.200'", node.Text())
	assert.Equal(t, syntax.Position{Line: 6, Character: 52}, node.Range().Start)

	var imports int
	for _, stmt := range tree.Root().NamedChildren() {
		if stmt.Kind() == syntax.KindImport {
			imports++
		}
	}
	assert.Equal(t, 1, imports)
}

func TestParseComponentPositionsAfterWideCharacters(t *testing.T) {
	src := "<script>const a = '😀'; const b = 'x'</script>\n"
	tree, err := syntax.Parse(syntax.Component, src)
	require.NoError(t, err)
	defer tree.Close()

	node, _ := syntax.Locate(tree, strings.Index(src, "'x'"))
	require.Equal(t, syntax.KindString, node.Kind())
	// the emoji is two UTF-16 units and four bytes
	assert.Equal(t, syntax.Position{Line: 0, Character: 34}, node.Range().Start)
}

func TestLanguageForComponents(t *testing.T) {
	for _, tt := range []struct{ id, uri string }{
		{"vue", "file:///a/Button.vue"},
		{"svelte", "file:///a/Button.svelte"},
		{"", "file:///a/Button.vue"},
		{"", "file:///a/Button.svelte"},
	} {
		lang, ok := syntax.LanguageFor(tt.id, tt.uri)
		require.True(t, ok, tt.uri)
		assert.Equal(t, syntax.Component, lang)
		assert.True(t, lang.IsScript())
	}
}
