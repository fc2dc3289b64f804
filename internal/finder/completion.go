package finder

import (
	"strings"

	"github.com/PallasUI/panda-vscode-pallas/internal/panda"
)

// ItemKind is the icon a completion item shows
type ItemKind int

const (
	ItemEnumMember ItemKind = iota
	ItemColor
)

// Options are the user settings that shape completions and their details
type Options struct {
	// TokenFn completes paths inside token() and {} references
	TokenFn bool
	// RemToPx appends pixel sizes to rem values
	RemToPx bool
}

// ItemData travels with a completion item to completionItem/resolve
type ItemData struct {
	PropName  string `json:"propName"`
	Shorthand string `json:"shorthand"`
	Token     string `json:"token,omitempty"`
}

// Item is a completion candidate
type Item struct {
	Label      string
	InsertText string
	Kind       ItemKind
	SortText   string
	Preselect  bool
	// Detail is set for colors to their value
	Detail string
	// Description and VarRef fill the label details
	Description string
	VarRef      string
	Data        *ItemData
}

// SortText orders labels so that, within a family, names sort in reverse:
// letters and digits are mirrored ("a" <-> "z", "0" <-> "9"), so "900"
// comes before "100" and "xl" before "sm".
func SortText(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = 'z' - (c - 'a')
		case c >= 'A' && c <= 'Z':
			b[i] = 'Z' - (c - 'A')
		case c >= '0' && c <= '9':
			b[i] = '9' - (c - '0')
		}
	}
	return "-" + string(b)
}

// Completions lists the values prop accepts, filtered by what has been typed.
// Inside a token() or {} reference the token path is completed instead.
func Completions(ctx *panda.Context, prop Property, opts Options) []Item {
	if ctx == nil {
		return nil
	}
	typed := prop.Value
	category := ""

	if opts.TokenFn && HasReference(typed) {
		path, _ := Reference(typed)
		segments := strings.Split(path, ".")
		if path == "" || segments[0] == "" {
			return categoryItems(ctx)
		}
		category = segments[0]
		typed = strings.Join(segments[1:], ".")
		if ctx.Tokens.Category(category) == nil && len(segments) == 1 {
			// still typing the category
			return filterCategories(categoryItems(ctx), category)
		}
	}

	if category == "" {
		var entries []panda.Entry
		category, entries = ctx.PropertyValues(prop.Name)
		if category == "" {
			return entryItems(ctx, prop, typed, entries)
		}
	}
	return tokenItems(ctx, prop, category, typed, opts)
}

func categoryItems(ctx *panda.Context) []Item {
	categories := ctx.Tokens.Categories()
	items := make([]Item, 0, len(categories))
	for _, c := range categories {
		items = append(items, Item{
			Label:     c,
			Kind:      ItemEnumMember,
			SortText:  "-" + c,
			Preselect: true,
		})
	}
	return items
}

func filterCategories(items []Item, typed string) []Item {
	out := items[:0]
	for _, it := range items {
		if strings.Contains(it.Label, typed) {
			out = append(out, it)
		}
	}
	return out
}

func entryItems(ctx *panda.Context, prop Property, typed string, entries []panda.Entry) []Item {
	var items []Item
	for _, e := range entries {
		if typed != "" && !strings.Contains(e.Name, typed) {
			continue
		}
		data := &ItemData{PropName: prop.Name, Shorthand: prop.Shorthand}
		item := Item{
			Label:       e.Name,
			Kind:        ItemEnumMember,
			SortText:    SortText(e.Name),
			Description: e.Value,
			Data:        data,
		}
		if t := tokenForVar(ctx, e.Value); t != nil {
			data.Token = t.Name
			item.Description = t.Value
			item.VarRef = t.Extensions.VarRef
			if t.IsColor() {
				item.Kind = ItemColor
				item.Detail = t.Value
			}
		}
		items = append(items, item)
	}
	return items
}

func tokenForVar(ctx *panda.Context, value string) *panda.Token {
	if !strings.HasPrefix(value, "var(") {
		return nil
	}
	return ctx.Tokens.ByVar(value)
}

func tokenItems(ctx *panda.Context, prop Property, category, typed string, opts Options) []Item {
	tokens := ctx.Tokens.Category(category)
	items := make([]Item, 0, len(tokens))
	for _, t := range tokens {
		name := t.Extensions.Prop
		if typed != "" && !strings.Contains(name, typed) {
			continue
		}
		insert := name
		if strings.HasSuffix(typed, ".") && strings.HasPrefix(name, typed) {
			insert = name[len(typed):]
		}
		item := Item{
			Label:       name,
			InsertText:  insert,
			Kind:        ItemEnumMember,
			SortText:    SortText(name),
			Description: PrintTokenValue(t, opts.RemToPx),
			VarRef:      t.Extensions.VarRef,
			Data:        &ItemData{PropName: prop.Name, Shorthand: prop.Shorthand, Token: t.Name},
		}
		if t.Extensions.Category == "colors" {
			item.Kind = ItemColor
			item.Detail = t.Value
		}
		items = append(items, item)
	}
	return items
}

// ResolveCompletion renders the documentation of a completion item: the CSS
// it produces, a shorthand note and the token's conditions.
func ResolveCompletion(ctx *panda.Context, data ItemData) (string, bool) {
	if ctx == nil || data.Token == "" {
		return "", false
	}
	t := ctx.Tokens.ByName(data.Token)
	if t == nil {
		return "", false
	}
	prop := data.PropName
	if prop == "" {
		prop = data.Shorthand
	}

	var parts []string
	if prop != "" {
		parts = append(parts, MarkdownCSS(ctx.AtomicCSS(panda.Style{Property: prop, Value: StyleValue(ctx, prop, t)})))
	}
	if data.Shorthand != "" && data.Shorthand != data.PropName {
		parts = append(parts, "`"+data.Shorthand+"` is shorthand for `"+data.PropName+"`")
	}

	conditions := t.Extensions.Conditions
	if len(conditions) == 0 {
		conditions = []panda.Condition{{Name: "base", Value: t.Value}}
	}
	if table := conditionsTable(ctx, conditions, false); table != "" {
		parts = append(parts, table, "\n"+tab)
	}
	return strings.Join(parts, "\n"), true
}
