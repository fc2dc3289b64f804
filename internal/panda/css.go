package panda

import (
	"fmt"
	"slices"
	"strings"
)

// Style is one property assignment, optionally under conditions such as
// `_hover` or `md`
type Style struct {
	Property   string
	Value      string
	Conditions []string
}

// AtomicCSS renders the utility rule a style produces. Conditions become
// selector suffixes or wrapping at-rules; `base` adds nothing.
func (c *Context) AtomicCSS(s Style) string {
	prop := c.Utilities.ResolveShorthand(s.Property)
	value := c.cssValue(prop, s.Value)

	var prefixes, wrappers []string
	conditions := slices.DeleteFunc(slices.Clone(s.Conditions), func(name string) bool { return name == "base" })
	for _, cond := range conditions {
		prefixes = append(prefixes, strings.TrimPrefix(cond, "_"))
	}
	class := c.Utilities.ClassName(prop) + "_" + s.Value
	if len(prefixes) > 0 {
		class = strings.Join(prefixes, ":") + ":" + class
	}
	selector := "." + escapeClass(class)

	for _, cond := range conditions {
		raw, ok := c.Conditions.Get(cond)
		switch {
		case !ok:
			continue
		case IsAtRule(raw):
			wrappers = append(wrappers, raw)
		case strings.Contains(raw, "&"):
			selector = strings.ReplaceAll(raw, "&", selector)
		default:
			selector += raw
		}
	}

	var b strings.Builder
	b.WriteString("@layer utilities {\n")
	depth := 1
	for _, w := range wrappers {
		fmt.Fprintf(&b, "%s%s {\n", indent(depth), w)
		depth++
	}
	fmt.Fprintf(&b, "%s%s {\n", indent(depth), selector)
	fmt.Fprintf(&b, "%s%s: %s;\n", indent(depth+1), hyphenate(prop), value)
	fmt.Fprintf(&b, "%s}\n", indent(depth))
	for depth > 1 {
		depth--
		fmt.Fprintf(&b, "%s}\n", indent(depth))
	}
	b.WriteString("}")
	return b.String()
}

// cssValue maps a style value to what lands in the stylesheet: token paths
// and references become variables, named utility values their definition.
func (c *Context) cssValue(prop, value string) string {
	category, entries := c.Utilities.Values(prop, c.Theme)
	if category != "" {
		if t := c.Tokens.Lookup(category, value); t != nil {
			return t.Extensions.VarRef
		}
	}
	for _, e := range entries {
		if e.Name == value {
			return e.Value
		}
	}
	if hasReference(value) {
		return c.referencesToVars(value)
	}
	return value
}

func (c *Context) referencesToVars(value string) string {
	replace := func(m string, path string) string {
		if t := c.Tokens.ByName(path); t != nil {
			return t.Extensions.VarRef
		}
		return m
	}
	value = tokenReference.ReplaceAllStringFunc(value, func(m string) string {
		return replace(m, tokenReference.FindStringSubmatch(m)[1])
	})
	return curlyReference.ReplaceAllStringFunc(value, func(m string) string {
		return replace(m, m[1:len(m)-1])
	})
}

// Keyframes renders the @keyframes rule for a name in theme.keyframes
func (c *Context) Keyframes(name string) (string, bool) {
	frames := lookup(lookup(c.Config.theme, "keyframes"), name)
	if !isMapping(frames) {
		return "", false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "@keyframes %s {\n", name)
	for _, step := range members(frames) {
		fmt.Fprintf(&b, "%s%s {\n", indent(1), step.Key)
		for _, decl := range members(step.Value) {
			if v, ok := scalar(decl.Value); ok {
				fmt.Fprintf(&b, "%s%s: %s;\n", indent(2), hyphenate(decl.Key), v)
			}
		}
		fmt.Fprintf(&b, "%s}\n", indent(1))
	}
	b.WriteString("}")
	return b.String(), true
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// escapeClass escapes a class name for use in a selector
func escapeClass(class string) string {
	var b strings.Builder
	for _, r := range class {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r > 0x7f:
			b.WriteRune(r)
		case r == ' ':
			b.WriteString(`\ `)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}
