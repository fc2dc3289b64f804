package syntax_test

import (
	"testing"

	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstOfKind(t *testing.T, tree *syntax.Tree, kind syntax.Kind) syntax.Node {
	t.Helper()
	var found syntax.Node
	syntax.Walk(tree.Root(), func(n syntax.Node) bool {
		if found.IsNull() && n.Kind() == kind {
			found = n
		}
		return found.IsNull()
	})
	require.False(t, found.IsNull(), "no node of kind %d", kind)
	return found
}

func TestLanguageFor(t *testing.T) {
	tests := []struct {
		languageID string
		uri        string
		want       syntax.Language
		ok         bool
	}{
		{"typescript", "file:///a.ts", syntax.TypeScript, true},
		{"typescriptreact", "file:///a.tsx", syntax.TSX, true},
		{"javascriptreact", "file:///a.jsx", syntax.JavaScript, true},
		{"css", "file:///a.css", syntax.CSS, true},
		{"", "file:///a.mts", syntax.TypeScript, true},
		{"", "file:///a.tsx", syntax.TSX, true},
		{"", "file:///a.cjs", syntax.JavaScript, true},
		{"json", "file:///a.json", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, ok := syntax.LanguageFor(tt.languageID, tt.uri)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStringValue(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		ok   bool
	}{
		{"double quoted", `x = "red.300"`, "red.300", true},
		{"single quoted", `x = 'red.300'`, "red.300", true},
		{"escaped quote", `x = 'it\'s'`, "it's", true},
		{"newline escape", `x = "a\nb"`, "a\nb", true},
		{"unicode escape", `x = "A\u{1F43C}"`, "A🐼", true},
		{"empty", `x = ""`, "", true},
		{"plain template", "x = `red.300`", "red.300", true},
		{"template with substitution", "x = `red.${n}`", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := syntax.Parse(syntax.JavaScript, tt.src)
			require.NoError(t, err)
			defer tree.Close()

			var lit syntax.Node
			syntax.Walk(tree.Root(), func(n syntax.Node) bool {
				if lit.IsNull() && (n.Kind() == syntax.KindString || n.Kind() == syntax.KindTemplate) {
					lit = n
				}
				return true
			})
			require.False(t, lit.IsNull())

			got, ok := syntax.StringValue(lit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLiteralNumberKeepsSourceText(t *testing.T) {
	tree, err := syntax.Parse(syntax.TypeScript, `x = { padding: 2.50 }`)
	require.NoError(t, err)
	defer tree.Close()

	num := firstOfKind(t, tree, syntax.KindNumber)
	got, ok := syntax.Literal(num)
	require.True(t, ok)
	assert.Equal(t, "2.50", got)
}

func TestKeyNameAndProperty(t *testing.T) {
	src := `x = { color: 1, "font-size": 2, 3: 3, ['bg']: 4, [dyn]: 5, ...rest, short }`
	tree, err := syntax.Parse(syntax.TypeScript, src)
	require.NoError(t, err)
	defer tree.Close()

	object := firstOfKind(t, tree, syntax.KindObject)
	pairs := syntax.Pairs(object)
	require.Len(t, pairs, 5, "spreads and shorthand properties are not pairs")

	var names []string
	for _, p := range pairs {
		if name, ok := syntax.KeyName(p); ok {
			names = append(names, name)
		}
	}
	assert.Equal(t, []string{"color", "font-size", "3", "bg"}, names)

	pair, ok := syntax.Property(object, "font-size")
	require.True(t, ok)
	assert.Equal(t, "2", syntax.Value(pair).Text())

	_, ok = syntax.Property(object, "missing")
	assert.False(t, ok)
}

func TestUnwrapAndArguments(t *testing.T) {
	src := `defineRecipe(({ base: {} } as const) satisfies RecipeConfig, /* note */ 2)`
	tree, err := syntax.Parse(syntax.TypeScript, src)
	require.NoError(t, err)
	defer tree.Close()

	call := firstOfKind(t, tree, syntax.KindCall)
	assert.Equal(t, "defineRecipe", syntax.Callee(call).Text())

	args := syntax.Arguments(call)
	require.Len(t, args, 2, "comments are skipped")
	assert.Equal(t, syntax.KindWrapper, args[0].Kind())
	assert.Equal(t, syntax.KindObject, syntax.Unwrap(args[0]).Kind())
}

func TestRangesAreUTF16(t *testing.T) {
	src := "// 🐼\nx = 'red'"
	tree, err := syntax.Parse(syntax.JavaScript, src)
	require.NoError(t, err)
	defer tree.Close()

	str := firstOfKind(t, tree, syntax.KindString)
	r := str.Range()
	assert.Equal(t, syntax.Position{Line: 1, Character: 4}, r.Start)
	assert.Equal(t, syntax.Position{Line: 1, Character: 9}, r.End)
	assert.True(t, r.Contains(syntax.Position{Line: 1, Character: 9}))
	assert.False(t, r.Contains(syntax.Position{Line: 0, Character: 4}))

	assert.Equal(t, str.Start(), tree.Offset(r.Start))
}

func TestParserPoolReuse(t *testing.T) {
	for range 3 {
		p := syntax.AcquireParser(syntax.TSX)
		tree, err := p.Parse(`const el = <div className={css({ color: "red" })} />`)
		syntax.ReleaseParser(p)
		require.NoError(t, err)
		assert.Equal(t, syntax.TSX, tree.Language())
		tree.Close()
	}
}
