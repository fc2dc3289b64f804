package recipes

import (
	"strings"

	"github.com/PallasUI/panda-vscode-pallas/internal/collections"
	"github.com/PallasUI/panda-vscode-pallas/internal/log"
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
)

// Document is the slice of an open document the extractor needs
type Document interface {
	URI() string
	LanguageID() string
	Version() int
	Content() string
}

// bindings maps the local names under which the factories are reachable
type bindings struct {
	names      map[string]Kind
	namespaces map[string]bool
}

func (b bindings) empty() bool {
	return len(b.names) == 0 && len(b.namespaces) == 0
}

// isPandaModule reports whether an import specifier names a Panda package
func isPandaModule(specifier string) bool {
	return strings.Contains(specifier, "@pandacss") || strings.Contains(specifier, "panda")
}

// importBindings scans only the top-level import declarations of t
func importBindings(t *syntax.Tree) bindings {
	b := bindings{names: map[string]Kind{}, namespaces: map[string]bool{}}
	for _, stmt := range t.Root().NamedChildren() {
		if stmt.Kind() != syntax.KindImport {
			continue
		}
		source, ok := syntax.StringValue(stmt.Field("source"))
		if !ok || !isPandaModule(source) {
			continue
		}
		for _, clause := range stmt.NamedChildren() {
			if clause.Type() != "import_clause" {
				continue
			}
			for _, c := range clause.NamedChildren() {
				switch {
				case c.Type() == "named_imports":
					for _, spec := range c.NamedChildren() {
						if spec.Kind() != syntax.KindImportSpecifier {
							continue
						}
						kind, ok := factories[spec.Field("name").Text()]
						if !ok {
							continue
						}
						local := spec.Field("name").Text()
						if alias := spec.Field("alias"); !alias.IsNull() {
							local = alias.Text()
						}
						b.names[local] = kind
					}
				case c.Kind() == syntax.KindNamespaceImport:
					for _, id := range c.NamedChildren() {
						if id.Kind() == syntax.KindIdentifier {
							b.namespaces[id.Text()] = true
						}
					}
				}
			}
		}
	}
	return b
}

// HasRecipeImports reports whether the file imports a recipe factory from a
// Panda package. Only import declarations are examined.
func HasRecipeImports(t *syntax.Tree) bool {
	if t == nil || !t.Language().IsScript() {
		return false
	}
	return !importBindings(t).empty()
}

// Extract returns the recipes declared in t, in source order. Calls whose
// first argument is not an object literal are skipped, as are values that
// are not string or number literals.
func Extract(t *syntax.Tree) []*Definition {
	if t == nil || !t.Language().IsScript() {
		return nil
	}
	b := importBindings(t)
	if b.empty() {
		return nil
	}
	for name, kind := range factories {
		if _, ok := b.names[name]; !ok {
			b.names[name] = kind
		}
	}

	var defs []*Definition
	syntax.Walk(t.Root(), func(n syntax.Node) bool {
		if n.Kind() != syntax.KindCall {
			return true
		}
		kind, ok := b.factory(syntax.Callee(n))
		if !ok {
			return true
		}
		if def := parseCall(n, kind); def != nil {
			defs = append(defs, def)
		}
		return true
	})
	return defs
}

// ExtractDocument parses doc and extracts its recipes. Documents in
// languages the server cannot parse have none.
func ExtractDocument(doc Document) []*Definition {
	lang, ok := syntax.LanguageFor(doc.LanguageID(), doc.URI())
	if !ok || !lang.IsScript() {
		return nil
	}
	t, err := syntax.Parse(lang, doc.Content())
	if err != nil {
		log.Debug("Skipping recipes in %s: %v", doc.URI(), err)
		return nil
	}
	defer t.Close()
	return Extract(t)
}

func (b bindings) factory(callee syntax.Node) (Kind, bool) {
	switch callee.Kind() {
	case syntax.KindIdentifier:
		kind, ok := b.names[callee.Text()]
		return kind, ok
	case syntax.KindMember:
		object := callee.Field("object")
		if object.Kind() != syntax.KindIdentifier || !b.namespaces[object.Text()] {
			return "", false
		}
		kind, ok := factories[callee.Field("property").Text()]
		return kind, ok
	}
	return "", false
}

func parseCall(call syntax.Node, kind Kind) *Definition {
	args := syntax.Arguments(call)
	if len(args) == 0 {
		return nil
	}
	arg := syntax.Unwrap(args[0])
	if arg.Kind() != syntax.KindObject {
		return nil
	}

	def := &Definition{
		Kind:        kind,
		Name:        recipeName(call, arg),
		Base:        []Property{},
		Variants:    []VariantGroup{},
		Range:       call.Range(),
		CalleeRange: syntax.Callee(call).Range(),
	}

	var slots *collections.OrderedSet[string]
	if kind == KindSlotRecipe {
		slots = declaredSlots(arg)
		def.Slots = slots.Members()
	}

	if pair, ok := syntax.Property(arg, "base"); ok {
		def.Base = parseStyles(syntax.Unwrap(syntax.Value(pair)), kind, slots)
	}
	if pair, ok := syntax.Property(arg, "variants"); ok {
		def.Variants = parseVariants(syntax.Unwrap(syntax.Value(pair)), kind, slots)
	}
	return def
}

// recipeName prefers the variable or property the call is assigned to, then
// a className literal.
func recipeName(call, arg syntax.Node) string {
	n := call
	parent := n.Parent()
	for isPassThrough(parent) {
		n, parent = parent, parent.Parent()
	}
	switch parent.Kind() {
	case syntax.KindVariableDeclarator:
		if name := parent.Field("name"); name.Kind() == syntax.KindIdentifier && parent.Field("value").Equal(n) {
			return name.Text()
		}
	case syntax.KindPair:
		if syntax.Value(parent).Equal(n) {
			if name, ok := syntax.KeyName(parent); ok {
				return name
			}
		}
	}

	if pair, ok := syntax.Property(arg, "className"); ok {
		if name, ok := syntax.StringValue(syntax.Unwrap(syntax.Value(pair))); ok && name != "" {
			return name
		}
	}
	return UnnamedRecipe
}

// isPassThrough reports whether the name of an enclosing declaration or pair
// still applies through n, as in `const all = wrap(defineRecipe({...}))`
func isPassThrough(n syntax.Node) bool {
	switch n.Kind() {
	case syntax.KindWrapper, syntax.KindArguments, syntax.KindCall:
		return true
	}
	return false
}

func declaredSlots(arg syntax.Node) *collections.OrderedSet[string] {
	slots := collections.NewOrderedSet[string]()
	pair, ok := syntax.Property(arg, "slots")
	if !ok {
		return slots
	}
	list := syntax.Unwrap(syntax.Value(pair))
	if list.Kind() != syntax.KindArray {
		return slots
	}
	for _, el := range list.NamedChildren() {
		if el.Kind() != syntax.KindString {
			continue
		}
		if name, ok := syntax.StringValue(el); ok {
			slots.Add(name)
		}
	}
	return slots
}

func parseVariants(obj syntax.Node, kind Kind, slots *collections.OrderedSet[string]) []VariantGroup {
	groups := []VariantGroup{}
	for _, groupPair := range syntax.Pairs(obj) {
		groupName, ok := syntax.KeyName(groupPair)
		if !ok {
			continue
		}
		group := VariantGroup{Name: groupName}
		for _, valuePair := range syntax.Pairs(syntax.Unwrap(syntax.Value(groupPair))) {
			valueName, ok := syntax.KeyName(valuePair)
			if !ok {
				continue
			}
			value := syntax.Unwrap(syntax.Value(valuePair))
			if value.Kind() != syntax.KindObject {
				continue
			}
			if props := parseStyles(value, kind, slots); len(props) > 0 {
				group.Values = append(group.Values, Variant{Name: valueName, Properties: props})
			}
		}
		if len(group.Values) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// parseStyles reads a style object. For slot recipes each object-valued key
// is a slot, restricted to the declared slots when there are any.
func parseStyles(obj syntax.Node, kind Kind, slots *collections.OrderedSet[string]) []Property {
	props := []Property{}
	if obj.Kind() != syntax.KindObject {
		return props
	}
	if kind != KindSlotRecipe {
		return flatten(obj, "", "", props)
	}
	for _, pair := range syntax.Pairs(obj) {
		slot, ok := syntax.KeyName(pair)
		if !ok {
			continue
		}
		value := syntax.Unwrap(syntax.Value(pair))
		if value.Kind() != syntax.KindObject {
			continue
		}
		if slots.Len() > 0 && !slots.Has(slot) {
			continue
		}
		props = flatten(value, "", slot, props)
	}
	return props
}

func flatten(obj syntax.Node, prefix, slot string, props []Property) []Property {
	for _, pair := range syntax.Pairs(obj) {
		key, ok := syntax.KeyName(pair)
		if !ok {
			continue
		}
		name := prefix + key
		value := syntax.Unwrap(syntax.Value(pair))
		switch value.Kind() {
		case syntax.KindObject:
			props = flatten(value, name+".", slot, props)
		case syntax.KindString, syntax.KindNumber:
			literal, ok := syntax.Literal(value)
			if !ok {
				continue
			}
			props = append(props, Property{
				Name:   name,
				Value:  literal,
				Range:  value.Range(),
				Slot:   slot,
				quoted: value.Kind() == syntax.KindString,
			})
		}
	}
	return props
}

// ConfigKind reports whether obj is the config object passed to a recipe
// factory, and which kind of recipe that factory declares. Bare factory names
// count even without a Panda import.
func ConfigKind(obj syntax.Node) (Kind, bool) {
	if obj.Kind() != syntax.KindObject {
		return "", false
	}
	n, parent := obj, obj.Parent()
	for parent.Kind() == syntax.KindWrapper {
		n, parent = parent, parent.Parent()
	}
	if parent.Kind() != syntax.KindArguments {
		return "", false
	}
	call := parent.Parent()
	if call.Kind() != syntax.KindCall {
		return "", false
	}
	if args := syntax.Arguments(call); len(args) == 0 || !args[0].Equal(n) {
		return "", false
	}
	callee := syntax.Callee(call)
	if kind, ok := importBindings(obj.Tree()).factory(callee); ok {
		return kind, true
	}
	if callee.Kind() == syntax.KindIdentifier {
		kind, ok := factories[callee.Text()]
		return kind, ok
	}
	return "", false
}
