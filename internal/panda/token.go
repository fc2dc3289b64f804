package panda

import (
	"strings"
)

// Kind classifies how a token value is presented
type Kind string

const (
	KindDefault       Kind = ""
	KindColor         Kind = "color"
	KindSemanticColor Kind = "semantic-color"
	// KindNativeColor marks a CSS color written directly, not through a token
	KindNativeColor Kind = "native-color"
	// KindInvalidTokenPath marks a reference to a token that does not exist
	KindInvalidTokenPath Kind = "invalid-token-path"
)

// Condition is one entry of a conditional token value. A leaf holds a raw
// value; a group holds nested conditions, e.g. `_dark: { base: ..., md: ... }`.
type Condition struct {
	Name     string
	Value    string
	Children []Condition
}

// IsGroup reports whether the condition nests further conditions
func (c Condition) IsGroup() bool {
	return len(c.Children) > 0
}

// Extensions carries derived token metadata
type Extensions struct {
	Category string
	// Prop is the token path inside its category, e.g. "red.300"
	Prop string
	// Var is the CSS custom property, e.g. "--colors-red-300"
	Var string
	// VarRef is Var wrapped in var()
	VarRef     string
	Kind       Kind
	Semantic   bool
	Conditions []Condition
	// Source is the file a token was imported from, when not from the config
	Source string
}

// Token is a resolved design token
type Token struct {
	// Name is the dotted path including the category, e.g. "colors.red.300"
	Name string
	Path []string
	// Value is the fully resolved value; for conditional tokens, the base value
	Value string
	// OriginalValue is the value as written, references intact
	OriginalValue string
	Description   string
	Deprecated    bool
	Extensions    Extensions
}

// IsReference reports whether the written value refers to other tokens
func (t *Token) IsReference() bool {
	return t != nil && hasReference(t.OriginalValue)
}

// IsConditional reports whether the token varies by condition
func (t *Token) IsConditional() bool {
	return t != nil && len(t.Extensions.Conditions) > 0
}

// IsColor reports whether the token renders as a color
func (t *Token) IsColor() bool {
	if t == nil {
		return false
	}
	switch t.Extensions.Kind {
	case KindColor, KindSemanticColor, KindNativeColor:
		return true
	}
	return false
}

// BaseCondition returns the raw value of the top-level `base` condition
func (t *Token) BaseCondition() (string, bool) {
	if t == nil {
		return "", false
	}
	for _, c := range t.Extensions.Conditions {
		if c.Name == "base" && !c.IsGroup() {
			return c.Value, true
		}
	}
	return "", false
}

// cssVarName builds the custom property name for a token path. Dots and
// slashes inside a segment are escaped so `spacing.0.5` stays one segment.
func cssVarName(prefix string, path []string) string {
	var b strings.Builder
	b.WriteString("--")
	if prefix != "" {
		b.WriteString(prefix)
		b.WriteByte('-')
	}
	for i, seg := range path {
		if i > 0 {
			b.WriteByte('-')
		}
		seg = strings.ReplaceAll(seg, ".", `\.`)
		seg = strings.ReplaceAll(seg, "/", `\/`)
		seg = strings.ReplaceAll(seg, " ", "-")
		b.WriteString(seg)
	}
	return b.String()
}

func newToken(prefix string, path []string, raw string, semantic bool) *Token {
	name := strings.Join(path, ".")
	category := path[0]
	v := cssVarName(prefix, path)
	t := &Token{
		Name:          name,
		Path:          path,
		OriginalValue: raw,
		Extensions: Extensions{
			Category: category,
			Prop:     strings.Join(path[1:], "."),
			Var:      v,
			VarRef:   "var(" + v + ")",
			Semantic: semantic,
		},
	}
	if category == "colors" {
		t.Extensions.Kind = KindColor
		if semantic {
			t.Extensions.Kind = KindSemanticColor
		}
	}
	return t
}
