package panda

import (
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Entry is one named value a utility accepts. Groups nest entries one level.
type Entry struct {
	Name     string
	Value    string
	Children []Entry
}

// ThemeFunc returns a category's tokens as entries whose values are variable references
type ThemeFunc func(category string) []Entry

// ValuesFunc computes a utility's values from the current theme
type ValuesFunc func(theme ThemeFunc) []Entry

// Values describes what a utility accepts: a whole token category, a fixed
// set of entries, or a function of the theme.
type Values struct {
	Category string
	Entries  []Entry
	Func     ValuesFunc
}

// Utility is a style property and the values it accepts
type Utility struct {
	Property   string
	ClassName  string
	Shorthands []string
	Values     Values
}

// Utilities is the registry of style properties
type Utilities struct {
	order      []string
	byProperty map[string]*Utility
	shorthands map[string]string
}

func category(name string) Values { return Values{Category: name} }

func themeWith(name string, extra ...Entry) Values {
	return Values{Func: func(theme ThemeFunc) []Entry {
		return append(theme(name), extra...)
	}}
}

func entries(pairs ...string) Values {
	v := Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Entries = append(v.Entries, Entry{Name: pairs[i], Value: pairs[i+1]})
	}
	return v
}

var fractions = Entry{Name: "fractions", Children: []Entry{
	{Name: "1/2", Value: "50%"},
	{Name: "1/3", Value: "33.333333%"},
	{Name: "2/3", Value: "66.666667%"},
	{Name: "1/4", Value: "25%"},
	{Name: "3/4", Value: "75%"},
	{Name: "full", Value: "100%"},
}}

var builtinUtilities = []Utility{
	{Property: "color", ClassName: "c", Values: category("colors")},
	{Property: "background", ClassName: "bg", Shorthands: []string{"bg"}, Values: category("colors")},
	{Property: "backgroundColor", ClassName: "bg-c", Shorthands: []string{"bgColor"}, Values: category("colors")},
	{Property: "borderColor", ClassName: "bd-c", Values: category("colors")},
	{Property: "outlineColor", ClassName: "ring-c", Values: category("colors")},
	{Property: "fill", ClassName: "fill", Values: category("colors")},
	{Property: "stroke", ClassName: "stk", Values: category("colors")},
	{Property: "caretColor", ClassName: "caret", Values: category("colors")},
	{Property: "accentColor", ClassName: "accent", Values: category("colors")},
	{Property: "textDecorationColor", ClassName: "td-c", Values: category("colors")},

	{Property: "padding", ClassName: "p", Shorthands: []string{"p"}, Values: category("spacing")},
	{Property: "paddingInline", ClassName: "px", Shorthands: []string{"px", "paddingX"}, Values: category("spacing")},
	{Property: "paddingBlock", ClassName: "py", Shorthands: []string{"py", "paddingY"}, Values: category("spacing")},
	{Property: "paddingTop", ClassName: "pt", Shorthands: []string{"pt"}, Values: category("spacing")},
	{Property: "paddingRight", ClassName: "pr", Shorthands: []string{"pr"}, Values: category("spacing")},
	{Property: "paddingBottom", ClassName: "pb", Shorthands: []string{"pb"}, Values: category("spacing")},
	{Property: "paddingLeft", ClassName: "pl", Shorthands: []string{"pl"}, Values: category("spacing")},
	{Property: "margin", ClassName: "m", Shorthands: []string{"m"}, Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"})},
	{Property: "marginInline", ClassName: "mx", Shorthands: []string{"mx", "marginX"}, Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"})},
	{Property: "marginBlock", ClassName: "my", Shorthands: []string{"my", "marginY"}, Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"})},
	{Property: "marginTop", ClassName: "mt", Shorthands: []string{"mt"}, Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"})},
	{Property: "marginRight", ClassName: "mr", Shorthands: []string{"mr"}, Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"})},
	{Property: "marginBottom", ClassName: "mb", Shorthands: []string{"mb"}, Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"})},
	{Property: "marginLeft", ClassName: "ml", Shorthands: []string{"ml"}, Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"})},
	{Property: "gap", ClassName: "gap", Values: category("spacing")},
	{Property: "rowGap", ClassName: "gap-y", Values: category("spacing")},
	{Property: "columnGap", ClassName: "gap-x", Values: category("spacing")},
	{Property: "inset", ClassName: "inset", Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"}, fractions)},
	{Property: "top", ClassName: "top", Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"}, fractions)},
	{Property: "right", ClassName: "right", Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"}, fractions)},
	{Property: "bottom", ClassName: "bottom", Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"}, fractions)},
	{Property: "left", ClassName: "left", Values: themeWith("spacing", Entry{Name: "auto", Value: "auto"}, fractions)},

	{Property: "width", ClassName: "w", Shorthands: []string{"w"}, Values: themeWith("sizes", Entry{Name: "screen", Value: "100vw"}, fractions)},
	{Property: "height", ClassName: "h", Shorthands: []string{"h"}, Values: themeWith("sizes", Entry{Name: "screen", Value: "100vh"}, fractions)},
	{Property: "minWidth", ClassName: "min-w", Shorthands: []string{"minW"}, Values: themeWith("sizes", Entry{Name: "screen", Value: "100vw"})},
	{Property: "maxWidth", ClassName: "max-w", Shorthands: []string{"maxW"}, Values: themeWith("sizes", Entry{Name: "screen", Value: "100vw"})},
	{Property: "minHeight", ClassName: "min-h", Shorthands: []string{"minH"}, Values: themeWith("sizes", Entry{Name: "screen", Value: "100vh"})},
	{Property: "maxHeight", ClassName: "max-h", Shorthands: []string{"maxH"}, Values: themeWith("sizes", Entry{Name: "screen", Value: "100vh"})},

	{Property: "borderRadius", ClassName: "bdr", Shorthands: []string{"rounded"}, Values: category("radii")},
	{Property: "borderTopLeftRadius", ClassName: "bdr-tl", Shorthands: []string{"roundedTopLeft"}, Values: category("radii")},
	{Property: "borderTopRightRadius", ClassName: "bdr-tr", Shorthands: []string{"roundedTopRight"}, Values: category("radii")},
	{Property: "borderBottomLeftRadius", ClassName: "bdr-bl", Shorthands: []string{"roundedBottomLeft"}, Values: category("radii")},
	{Property: "borderBottomRightRadius", ClassName: "bdr-br", Shorthands: []string{"roundedBottomRight"}, Values: category("radii")},

	{Property: "fontFamily", ClassName: "ff", Values: category("fonts")},
	{Property: "fontSize", ClassName: "fs", Values: category("fontSizes")},
	{Property: "fontWeight", ClassName: "fw", Values: category("fontWeights")},
	{Property: "lineHeight", ClassName: "lh", Values: category("lineHeights")},
	{Property: "letterSpacing", ClassName: "ls", Values: category("letterSpacings")},

	{Property: "boxShadow", ClassName: "shadow", Shorthands: []string{"shadow"}, Values: category("shadows")},
	{Property: "zIndex", ClassName: "z", Values: category("zIndex")},
	{Property: "animation", ClassName: "anim", Values: category("animations")},
	{Property: "animationName", ClassName: "anim-n", Values: Values{Func: keyframeNames}},
	{Property: "transitionDuration", ClassName: "trs-dur", Values: category("durations")},
	{Property: "transitionTimingFunction", ClassName: "trs-tmf", Values: category("easings")},
	{Property: "animationDuration", ClassName: "anim-dur", Values: category("durations")},
	{Property: "filter", ClassName: "filter"},
	{Property: "backdropBlur", ClassName: "backdrop-blur", Values: category("blurs")},
	{Property: "blur", ClassName: "blur", Values: category("blurs")},

	{Property: "opacity", ClassName: "op", Values: entries("0", "0", "25", "0.25", "50", "0.5", "75", "0.75", "100", "1")},
	{Property: "aspectRatio", ClassName: "asp", Values: entries(
		"square", "1 / 1", "landscape", "4 / 3", "portrait", "3 / 4",
		"wide", "16 / 9", "ultrawide", "18 / 5", "golden", "1.618 / 1",
	)},
	{Property: "display", ClassName: "d"},
	{Property: "position", ClassName: "pos", Shorthands: []string{"pos"}},
	{Property: "flexDirection", ClassName: "flex-d", Shorthands: []string{"flexDir"}},
	{Property: "alignItems", ClassName: "ai"},
	{Property: "justifyContent", ClassName: "jc"},
	{Property: "textAlign", ClassName: "ta"},
	{Property: "cursor", ClassName: "cursor"},
	{Property: "overflow", ClassName: "ov"},
}

// keyframeNames is filled per project from theme.keyframes
func keyframeNames(theme ThemeFunc) []Entry {
	return theme("keyframes")
}

func newUtilities(cfg *Config) *Utilities {
	u := &Utilities{byProperty: map[string]*Utility{}, shorthands: map[string]string{}}
	for _, util := range builtinUtilities {
		u.add(util)
	}
	for _, m := range members(cfg.utilities) {
		util := Utility{Property: m.Key}
		if existing, ok := u.byProperty[m.Key]; ok {
			util = *existing
		}
		if cn, ok := scalar(lookup(m.Value, "className")); ok {
			util.ClassName = cn
		}
		if sh := stringList(lookup(m.Value, "shorthand")); len(sh) > 0 {
			util.Shorthands = sh
		}
		if values := lookup(m.Value, "values"); values != nil {
			util.Values = valuesFromNode(values)
		}
		u.add(util)
	}
	return u
}

// valuesFromNode reads `values:` from config: a category name, a list of
// categories merged together, or an object of fixed entries.
func valuesFromNode(n *yaml.Node) Values {
	if name, ok := scalar(n); ok {
		return category(name)
	}
	if cats := stringList(n); len(cats) > 0 {
		return Values{Func: func(theme ThemeFunc) []Entry {
			var out []Entry
			for _, c := range cats {
				out = append(out, theme(c)...)
			}
			return out
		}}
	}
	return Values{Entries: entriesFromNode(n)}
}

func entriesFromNode(n *yaml.Node) []Entry {
	var out []Entry
	for _, m := range members(n) {
		if v, ok := scalar(m.Value); ok {
			out = append(out, Entry{Name: m.Key, Value: v})
			continue
		}
		out = append(out, Entry{Name: m.Key, Children: entriesFromNode(m.Value)})
	}
	return out
}

func (u *Utilities) add(util Utility) {
	if util.ClassName == "" {
		util.ClassName = hyphenate(util.Property)
	}
	if _, ok := u.byProperty[util.Property]; !ok {
		u.order = append(u.order, util.Property)
	}
	u.byProperty[util.Property] = &util
	for _, sh := range util.Shorthands {
		u.shorthands[sh] = util.Property
	}
}

// ResolveShorthand maps a shorthand to its property. Anything else is
// returned unchanged.
func (u *Utilities) ResolveShorthand(name string) string {
	if u == nil {
		return name
	}
	if prop, ok := u.shorthands[name]; ok {
		return prop
	}
	return name
}

// IsShorthand reports whether name is a registered shorthand
func (u *Utilities) IsShorthand(name string) bool {
	if u == nil {
		return false
	}
	_, ok := u.shorthands[name]
	return ok
}

// Get returns the utility for a property or shorthand
func (u *Utilities) Get(name string) (*Utility, bool) {
	if u == nil {
		return nil, false
	}
	util, ok := u.byProperty[u.ResolveShorthand(name)]
	return util, ok
}

// Has reports whether name is a known property or shorthand
func (u *Utilities) Has(name string) bool {
	_, ok := u.Get(name)
	return ok
}

// Properties returns every property in registration order
func (u *Utilities) Properties() []string {
	if u == nil {
		return nil
	}
	return u.order
}

// ClassName returns the atomic class prefix for a property
func (u *Utilities) ClassName(name string) string {
	if util, ok := u.Get(name); ok {
		return util.ClassName
	}
	return hyphenate(name)
}

// Values returns what a property accepts. When the values are a token
// category only the category is returned; otherwise the entries, with groups
// flattened one level.
func (u *Utilities) Values(name string, theme ThemeFunc) (string, []Entry) {
	util, ok := u.Get(name)
	if !ok {
		return "", nil
	}
	v := util.Values
	switch {
	case v.Category != "":
		return v.Category, nil
	case v.Func != nil:
		return "", flatten(v.Func(theme))
	case len(v.Entries) > 0:
		return "", flatten(v.Entries)
	}
	return "", nil
}

func flatten(in []Entry) []Entry {
	out := make([]Entry, 0, len(in))
	for _, e := range in {
		if len(e.Children) == 0 {
			out = append(out, e)
			continue
		}
		for _, c := range e.Children {
			out = append(out, Entry{Name: c.Name, Value: c.Value})
		}
	}
	return out
}

// hyphenate turns a camelCase property into its CSS spelling
func hyphenate(prop string) string {
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	var b strings.Builder
	for i, r := range prop {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
