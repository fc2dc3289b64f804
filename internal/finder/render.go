package finder

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/PallasUI/panda-vscode-pallas/internal/color"
	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
)

const tab = "&nbsp;&nbsp;&nbsp;&nbsp;"

const squirclePath = `M 0,12 C 0,0 0,0 12,0 24,0 24,0 24,12 24,24 24,24 12,24 0,24 0,24 0,12`

const checkerboard = `<defs><pattern id="pattern-checker" x="0" y="0" width="8" height="8" patternUnits="userSpaceOnUse">` +
	`<rect x="0" y="0" width="4" height="4" fill="#fff" /><rect x="4" y="0" width="4" height="4" fill="#000" />` +
	`<rect x="0" y="4" width="4" height="4" fill="#000" /><rect x="4" y="4" width="4" height="4" fill="#fff" />` +
	`</pattern></defs><path d="` + squirclePath + `" fill="url(#pattern-checker)" />`

// ColorTile renders value as a small squircle image embedded in markdown.
// Values that are not colors give an empty string.
func ColorTile(value string, size int) string {
	c, ok := color.Parse(value)
	if !ok {
		return ""
	}
	var svg strings.Builder
	fmt.Fprintf(&svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="%d" height="%d">`, size, size)
	if !color.IsOpaque(c) {
		svg.WriteString(checkerboard)
	}
	fmt.Fprintf(&svg, `<path d="%s" fill="%s" /></svg>`, squirclePath, color.ToHex(c))
	return "![Image](data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg.String())) + ")"
}

// Table renders rows as a markdown table; the first row is the header
func Table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	var b strings.Builder
	line := func(cells []string) {
		b.WriteString("|")
		for _, c := range cells {
			b.WriteString(" " + c + " |")
		}
		b.WriteString("\n")
	}
	line(rows[0])
	sep := make([]string, len(rows[0]))
	for i := range sep {
		sep[i] = "---"
	}
	line(sep)
	for _, r := range rows[1:] {
		line(r)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ConditionsTable renders a conditional token's values, one row per known
// condition. Nested groups get a labelled separator row and indented children.
func ConditionsTable(ctx *panda.Context, t *panda.Token) string {
	return conditionsTable(ctx, t.Extensions.Conditions, true)
}

func conditionsTable(ctx *panda.Context, conditions []panda.Condition, skipBase bool) string {
	rows := [][]string{{" ", "Condition", "Value"}}
	var walk func(conds []panda.Condition, depth int)
	walk = func(conds []panda.Condition, depth int) {
		for _, c := range conds {
			if !ctx.Conditions.Has(c.Name) {
				continue
			}
			if depth == 0 && skipBase && c.Name == "base" {
				continue
			}
			indent := ""
			if depth > 0 {
				indent = strings.Repeat(tab, depth) + "├ "
			}
			if c.IsGroup() {
				rows = append(rows, []string{"", indent + "**" + c.Name + "**", "─────"})
				walk(c.Children, depth+1)
				continue
			}
			shown := c.Value
			if refs := ctx.Tokens.References(c.Value); len(refs) > 0 {
				shown = refs[0].Value
			}
			swatch, _ := ctx.Tokens.DeepResolve(c.Value)
			if swatch == "" {
				swatch = shown
			}
			if shown == "" {
				continue
			}
			rows = append(rows, []string{ColorTile(swatch, 10), indent + "**" + c.Name + "**", "`" + shown + "`"})
		}
	}
	walk(conditions, 0)
	if len(rows) == 1 {
		return ""
	}
	return Table(rows)
}

// PrintTokenValue formats a token value for labels and inlay hints, adding
// the pixel size of rem values when remToPx is set.
func PrintTokenValue(t *panda.Token, remToPx bool) string {
	if remToPx {
		if px, ok := remToPixels(t.Value); ok {
			return t.Value + " (" + px + ")"
		}
	}
	return t.Value
}

func remToPixels(value string) (string, bool) {
	n, ok := strings.CutSuffix(strings.TrimSpace(value), "rem")
	if !ok {
		return "", false
	}
	f, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return "", false
	}
	return strconv.FormatFloat(f*16, 'f', -1, 64) + "px", true
}

var tokenHoverTemplate = template.Must(template.New("tokenHover").Parse(`🐼 **{{.Name}}**{{if .Deprecated}} *(deprecated)*{{end}}

` + "`{{.Value}}`" + `{{if .Reference}} ← ` + "`{{.Reference}}`" + `{{end}}
{{if .Description}}
{{.Description}}
{{end}}{{if .VarRef}}
` + "`{{.VarRef}}`" + `
{{end}}{{if .Source}}
*Defined in: {{.Source}}*
{{end}}`))

var unknownTokenTemplate = template.Must(template.New("unknownToken").Parse(`❌ **Unknown token**: ` + "`{{.}}`" + `

This path is not defined in the project's tokens.`))

var nativeColorTemplate = template.Must(template.New("nativeColor").Parse(`{{.Tile}} ` + "`{{.Value}}`"))

// TokenHover renders the hover text for a token
func TokenHover(t *panda.Token, remToPx bool) (string, error) {
	var buf bytes.Buffer
	var err error
	switch t.Extensions.Kind {
	case panda.KindInvalidTokenPath:
		err = unknownTokenTemplate.Execute(&buf, t.Name)
	case panda.KindNativeColor:
		err = nativeColorTemplate.Execute(&buf, struct{ Tile, Value string }{ColorTile(t.Value, 12), t.Value})
	default:
		data := struct {
			Name, Value, Reference, Description, VarRef, Source string
			Deprecated                                          bool
		}{
			Name:        t.Name,
			Value:       PrintTokenValue(t, remToPx),
			Description: t.Description,
			VarRef:      t.Extensions.VarRef,
			Source:      t.Extensions.Source,
			Deprecated:  t.Deprecated,
		}
		if t.IsReference() {
			data.Reference = t.OriginalValue
		}
		err = tokenHoverTemplate.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render hover for %s: %w", t.Name, err)
	}
	return buf.String(), nil
}

// baseColor resolves the value a color token shows by default. For
// conditional tokens that is the `base` condition, shown with its reference.
func baseColor(ctx *panda.Context, t *panda.Token) (value, label string, conditional bool) {
	if base, ok := t.BaseCondition(); ok {
		if resolved, _ := ctx.Tokens.DeepResolve(base); resolved != "" {
			return resolved, resolved + " ↔ " + base, true
		}
	}
	return t.Value, t.Value, false
}

// TokenColorPreview renders swatches for a color token: its base value, then
// a table of its conditions.
func TokenColorPreview(ctx *panda.Context, t *panda.Token, propName, shorthand string) string {
	var lines []string
	if shorthand != "" && shorthand != propName {
		lines = append(lines, fmt.Sprintf("`%s` is shorthand for `%s`", shorthand, propName))
	}
	if t.Description != "" {
		lines = append(lines, "*"+t.Description+"*")
	}
	if value, label, conditional := baseColor(ctx, t); color.IsColor(value) {
		tile := ColorTile(value, 10)
		if conditional {
			lines = append(lines, fmt.Sprintf("%s → **base**: `%s`", tile, label))
		} else {
			lines = append(lines, fmt.Sprintf("%s → `%s`", tile, label))
		}
	}
	if table := ConditionsTable(ctx, t); table != "" {
		lines = append(lines, table)
	}
	return strings.Join(lines, "\n\n")
}

// StyleValue is the value to preview for a token under prop: its path
// when prop draws from the token's category, otherwise its resolved value.
func StyleValue(ctx *panda.Context, prop string, t *panda.Token) string {
	if category, _ := ctx.PropertyValues(prop); category != "" && category == t.Extensions.Category {
		return t.Extensions.Prop
	}
	return t.Value
}

// MarkdownCSS wraps css in a fenced block
func MarkdownCSS(css string) string {
	return "```css\n" + css + "\n```"
}
