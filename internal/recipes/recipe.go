// Package recipes finds statically-declared Panda recipes in JavaScript and
// TypeScript sources.
package recipes

import (
	"strings"

	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
)

// Kind distinguishes plain recipes from slot recipes
type Kind string

const (
	KindRecipe     Kind = "recipe"
	KindSlotRecipe Kind = "slotRecipe"
)

// Factory function names, keyed to the kind of recipe they declare
const (
	DefineRecipe     = "defineRecipe"
	DefineSlotRecipe = "defineSlotRecipe"
)

// UnnamedRecipe is used when no name can be found for a definition
const UnnamedRecipe = "unnamedRecipe"

var factories = map[string]Kind{
	DefineRecipe:     KindRecipe,
	DefineSlotRecipe: KindSlotRecipe,
}

// Property is one literal style declaration inside a recipe
type Property struct {
	// Name is the property, with nested objects joined by dots
	// (e.g. "_hover.color")
	Name  string `json:"propName" yaml:"propName"`
	Value string `json:"propValue" yaml:"propValue"`
	// Range spans the value literal, quotes included
	Range syntax.Range `json:"range" yaml:"range"`
	Slot  string       `json:"slot,omitempty" yaml:"slot,omitempty"`

	quoted bool
}

// TextRange spans the characters of the value inside its quotes. For numbers
// it is Range.
func (p Property) TextRange() syntax.Range {
	if !p.quoted {
		return p.Range
	}
	r := p.Range
	r.Start.Character++
	r.End.Character--
	return r
}

// StyleName is the style property without its condition path:
// "_hover._dark.color" is "color".
func (p Property) StyleName() string {
	if i := strings.LastIndexByte(p.Name, '.'); i >= 0 {
		return p.Name[i+1:]
	}
	return p.Name
}

// Variant is a single value of a variant group, such as "sm" in size
type Variant struct {
	Name       string     `json:"name" yaml:"name"`
	Properties []Property `json:"properties" yaml:"properties"`
}

// VariantGroup is a named set of variants, in source order
type VariantGroup struct {
	Name   string    `json:"name" yaml:"name"`
	Values []Variant `json:"values" yaml:"values"`
}

// Definition is a recipe reconstructed from a factory call
type Definition struct {
	Kind     Kind           `json:"type" yaml:"type"`
	Name     string         `json:"name" yaml:"name"`
	Slots    []string       `json:"slots,omitempty" yaml:"slots,omitempty"`
	Base     []Property     `json:"base" yaml:"base"`
	Variants []VariantGroup `json:"variants" yaml:"variants"`
	// Range spans the whole factory call
	Range syntax.Range `json:"range" yaml:"range"`
	// CalleeRange spans the factory name
	CalleeRange syntax.Range `json:"-" yaml:"-"`
}

// Variant looks up a variant group by name
func (d *Definition) Variant(name string) (VariantGroup, bool) {
	for _, g := range d.Variants {
		if g.Name == name {
			return g, true
		}
	}
	return VariantGroup{}, false
}

// Value looks up a variant value within the group
func (g VariantGroup) Value(name string) (Variant, bool) {
	for _, v := range g.Values {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Properties returns every captured property, base first, then variants in
// source order.
func (d *Definition) Properties() []Property {
	props := append([]Property(nil), d.Base...)
	for _, g := range d.Variants {
		for _, v := range g.Values {
			props = append(props, v.Properties...)
		}
	}
	return props
}

// PropertyCount counts the base and variant properties of the definition
func (d *Definition) PropertyCount() int {
	n := len(d.Base)
	for _, g := range d.Variants {
		for _, v := range g.Values {
			n += len(v.Properties)
		}
	}
	return n
}
