// Package finder connects a cursor position in a style object to the
// property it sits in and the design token its value names.
package finder

import (
	"regexp"

	"github.com/PallasUI/panda-vscode-pallas/internal/color"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
	"github.com/PallasUI/panda-vscode-pallas/internal/recipes"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
)

// Property is the style property a literal value is assigned to
type Property struct {
	// Name is the canonical property, e.g. "padding"
	Name string
	// Shorthand is the property as written, e.g. "p"
	Shorthand string
	Value     string
	// Node is the literal holding Value
	Node syntax.Node
	// Conditions enclosing the value, outermost first, e.g. ["_hover", "md"]
	Conditions []string
}

// Condition is a condition key under the cursor
type Condition struct {
	Name string
	// Raw is the selector or at-rule the condition stands for
	Raw  string
	Node syntax.Node
	// Property is set when the condition holds a literal value
	Property *Property
}

// FindProperty identifies the property whose value is node. Condition keys
// between the value and the property are skipped and recorded.
func FindProperty(ctx *panda.Context, node syntax.Node, stack []syntax.Node) (Property, bool) {
	if ctx == nil {
		return Property{}, false
	}
	value, ok := syntax.Literal(node)
	if !ok {
		return Property{}, false
	}
	pairs := enclosingPairs(node, stack)
	if len(pairs) == 0 || !syntax.Unwrap(syntax.Value(pairs[0])).Equal(node) {
		return Property{}, false
	}
	prop, ok := propertyOf(ctx, pairs)
	if !ok {
		return Property{}, false
	}
	prop.Value = value
	prop.Node = node
	return prop, true
}

// FindCondition reports the condition key at offset. The cursor must sit on
// the key of the innermost pair around node.
func FindCondition(ctx *panda.Context, node syntax.Node, stack []syntax.Node, offset int) (Condition, bool) {
	if ctx == nil {
		return Condition{}, false
	}
	pairs := enclosingPairs(node, stack)
	if len(pairs) == 0 {
		return Condition{}, false
	}
	key := pairs[0].Field("key")
	if offset < key.Start() || offset > key.End() {
		return Condition{}, false
	}
	name, ok := syntax.KeyName(pairs[0])
	if !ok {
		return Condition{}, false
	}
	raw, ok := ctx.Conditions.Get(name)
	if !ok {
		return Condition{}, false
	}
	cond := Condition{Name: name, Raw: raw, Node: key}

	valueNode := syntax.Unwrap(syntax.Value(pairs[0]))
	if value, ok := syntax.Literal(valueNode); ok {
		if prop, ok := propertyOf(ctx, pairs); ok {
			prop.Value = value
			prop.Node = valueNode
			cond.Property = &prop
		}
	}
	return cond, true
}

// enclosingPairs returns the pair ancestors of node, innermost first. Inside
// a recipe only the pairs of style objects are kept.
func enclosingPairs(node syntax.Node, stack []syntax.Node) []syntax.Node {
	var pairs []syntax.Node
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Kind() == syntax.KindPair && !stack[i].Equal(node) {
			pairs = append(pairs, stack[i])
		}
	}
	return stylePairs(pairs)
}

// recipeDepth is how many pair levels a recipe key spans before its style
// objects start: base, or variants > group > value.
var recipeDepth = map[string]int{
	"base":     1,
	"variants": 3,
}

// stylePairs drops the recipe structure from pairs (innermost first): the
// base and variants keys, variant groups and values, and slot names are never
// properties or conditions. Other recipe keys hold no styles.
func stylePairs(pairs []syntax.Node) []syntax.Node {
	for i, pair := range pairs {
		kind, ok := recipes.ConfigKind(pair.Parent())
		if !ok {
			continue
		}
		key, _ := syntax.KeyName(pair)
		depth, ok := recipeDepth[key]
		if !ok {
			return nil
		}
		if kind == recipes.KindSlotRecipe {
			depth++
		}
		if i+1 <= depth {
			return nil
		}
		return pairs[:i+1-depth]
	}
	return pairs
}

func propertyOf(ctx *panda.Context, pairs []syntax.Node) (Property, bool) {
	var (
		prop  Property
		found bool
		conds []string
	)
	for _, pair := range pairs {
		key, ok := syntax.KeyName(pair)
		if !ok {
			break
		}
		isCondition := ctx.Conditions.Has(key)
		if !found {
			if isCondition {
				conds = append(conds, key)
				continue
			}
			prop.Shorthand = key
			prop.Name = ctx.Utilities.ResolveShorthand(key)
			found = true
			continue
		}
		if !isCondition {
			break
		}
		conds = append(conds, key)
	}
	if !found {
		return Property{}, false
	}
	for i, j := 0, len(conds)-1; i < j; i, j = i+1, j-1 {
		conds[i], conds[j] = conds[j], conds[i]
	}
	prop.Conditions = conds
	return prop, true
}

// partialReference matches token() and {} references, including ones the
// user is still typing at the end of the value.
var partialReference = regexp.MustCompile(`(?:token\(\s*['"]?|\{)([^'"{}(),\s]*)`)

// HasReference reports whether value uses token() or {} reference syntax
func HasReference(value string) bool {
	return partialReference.MatchString(value)
}

// Reference returns the path of the last reference in value, complete or not.
// "token(colors.re" gives "colors.re"; "{" gives "".
func Reference(value string) (string, bool) {
	matches := partialReference.FindAllStringSubmatch(value, -1)
	if len(matches) == 0 {
		return "", false
	}
	return matches[len(matches)-1][1], true
}

// TokenFromPropValue finds the token a property value stands for. References
// to missing tokens and literal CSS colors produce pseudo tokens with the
// invalid-token-path and native-color kinds.
func TokenFromPropValue(ctx *panda.Context, prop, value string) *panda.Token {
	if ctx == nil || value == "" {
		return nil
	}
	prop = ctx.Utilities.ResolveShorthand(prop)

	if paths := panda.ReferencePaths(value); len(paths) > 0 {
		if t := ctx.Tokens.ByName(paths[0]); t != nil {
			return t
		}
		return &panda.Token{
			Name:          paths[0],
			Value:         value,
			OriginalValue: value,
			Extensions:    panda.Extensions{Kind: panda.KindInvalidTokenPath},
		}
	}

	category, entries := ctx.PropertyValues(prop)
	if category != "" {
		if t := ctx.Tokens.Lookup(category, value); t != nil {
			return t
		}
	}
	for _, e := range entries {
		if e.Name != value {
			continue
		}
		if t := tokenForVar(ctx, e.Value); t != nil {
			return t
		}
	}
	if t := ctx.Tokens.ByName(value); t != nil {
		return t
	}

	if color.IsColor(value) {
		return &panda.Token{
			Name:          value,
			Value:         value,
			OriginalValue: value,
			Extensions: panda.Extensions{
				Category: "colors",
				Kind:     panda.KindNativeColor,
			},
		}
	}
	return nil
}
