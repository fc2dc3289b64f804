package panda

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxResolveDepth bounds reference chains, including cyclic ones
const maxResolveDepth = 10

var (
	curlyReference = regexp.MustCompile(`\{([^{}\s]+)\}`)
	tokenReference = regexp.MustCompile(`token\(\s*['"]?([^'",()\s]+)['"]?\s*(?:,\s*([^)]*))?\)`)
)

func hasReference(value string) bool {
	return curlyReference.MatchString(value) || tokenReference.MatchString(value)
}

// ReferencePaths lists the token paths a value refers to, in order of appearance
func ReferencePaths(value string) []string {
	type found struct {
		at   int
		path string
	}
	var refs []found
	for _, m := range curlyReference.FindAllStringSubmatchIndex(value, -1) {
		refs = append(refs, found{m[0], value[m[2]:m[3]]})
	}
	for _, m := range tokenReference.FindAllStringSubmatchIndex(value, -1) {
		refs = append(refs, found{m[0], value[m[2]:m[3]]})
	}
	slices.SortFunc(refs, func(a, b found) int { return a.at - b.at })

	paths := make([]string, len(refs))
	for i, r := range refs {
		paths[i] = r.path
	}
	return paths
}

// Dictionary is the set of tokens a project defines, in definition order
type Dictionary struct {
	prefix     string
	tokens     []*Token
	byName     map[string]*Token
	byVar      map[string]*Token
	categories []string
	byCategory map[string][]*Token
}

// NewDictionary returns an empty dictionary whose variables use prefix
func NewDictionary(prefix string) *Dictionary {
	return &Dictionary{
		prefix:     prefix,
		byName:     map[string]*Token{},
		byVar:      map[string]*Token{},
		byCategory: map[string][]*Token{},
	}
}

// Len returns the number of tokens
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.tokens)
}

// All returns every token in definition order
func (d *Dictionary) All() []*Token {
	if d == nil {
		return nil
	}
	return d.tokens
}

// ByName looks up a token by its dotted name, e.g. "colors.red.300"
func (d *Dictionary) ByName(name string) *Token {
	if d == nil {
		return nil
	}
	return d.byName[name]
}

// ByVar looks up a token by custom property, with or without var() around it
func (d *Dictionary) ByVar(ref string) *Token {
	if d == nil {
		return nil
	}
	ref = strings.TrimSpace(ref)
	if inner, ok := strings.CutPrefix(ref, "var("); ok {
		ref = strings.TrimSuffix(inner, ")")
		ref, _, _ = strings.Cut(ref, ",")
		ref = strings.TrimSpace(ref)
	}
	if !strings.HasPrefix(ref, "--") {
		ref = "--" + ref
	}
	return d.byVar[ref]
}

// Categories returns the categories in order of first definition
func (d *Dictionary) Categories() []string {
	if d == nil {
		return nil
	}
	return d.categories
}

// Category returns the tokens of one category in definition order
func (d *Dictionary) Category(category string) []*Token {
	if d == nil {
		return nil
	}
	return d.byCategory[category]
}

// Lookup finds a token by category and in-category path, e.g. ("colors", "red.300")
func (d *Dictionary) Lookup(category, prop string) *Token {
	return d.ByName(category + "." + prop)
}

// Add inserts a token, replacing any token with the same name in place.
func (d *Dictionary) Add(t *Token) {
	if old, ok := d.byName[t.Name]; ok {
		i := slices.Index(d.tokens, old)
		d.tokens[i] = t
		cat := d.byCategory[old.Extensions.Category]
		cat[slices.Index(cat, old)] = t
		delete(d.byVar, old.Extensions.Var)
	} else {
		d.tokens = append(d.tokens, t)
		c := t.Extensions.Category
		if _, seen := d.byCategory[c]; !seen {
			d.categories = append(d.categories, c)
		}
		d.byCategory[c] = append(d.byCategory[c], t)
	}
	d.byName[t.Name] = t
	d.byVar[t.Extensions.Var] = t
}

// References returns the known tokens a value refers to
func (d *Dictionary) References(value string) []*Token {
	var out []*Token
	for _, path := range ReferencePaths(value) {
		if t := d.ByName(path); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// DeepResolve replaces every reference in value with the referenced token's
// value, following chains. ok is false when a reference is unknown or the
// chain is deeper than maxResolveDepth; unresolved references are left as written.
func (d *Dictionary) DeepResolve(value string) (string, bool) {
	return d.resolve(value, 0)
}

func (d *Dictionary) resolve(value string, depth int) (string, bool) {
	if depth > maxResolveDepth {
		return value, false
	}
	ok := true
	value = tokenReference.ReplaceAllStringFunc(value, func(m string) string {
		sub := tokenReference.FindStringSubmatch(m)
		t := d.ByName(sub[1])
		if t == nil {
			if fallback := strings.TrimSpace(sub[2]); fallback != "" {
				return fallback
			}
			ok = false
			return m
		}
		v, good := d.resolve(t.OriginalValue, depth+1)
		ok = ok && good
		if !good {
			return m
		}
		return v
	})
	value = curlyReference.ReplaceAllStringFunc(value, func(m string) string {
		t := d.ByName(m[1 : len(m)-1])
		if t == nil {
			ok = false
			return m
		}
		v, good := d.resolve(t.OriginalValue, depth+1)
		ok = ok && good
		if !good {
			return m
		}
		return v
	})
	return value, ok
}

// finalize computes resolved values once every token is known
func (d *Dictionary) finalize() {
	for _, t := range d.tokens {
		if t.OriginalValue == "" {
			t.Value = t.Extensions.VarRef
			continue
		}
		t.Value, _ = d.DeepResolve(t.OriginalValue)
	}
}

// tokenMeta keys sit beside `value` and are never nested tokens
var tokenMeta = []string{"value", "description", "type", "deprecated", "extensions"}

// addTheme walks theme.tokens or theme.semanticTokens into the dictionary
func (d *Dictionary) addTheme(node *yaml.Node, semantic bool) error {
	var errs []error
	for _, category := range members(node) {
		d.walk(category.Value, []string{category.Key}, semantic, &errs)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid tokens: %w", errors.Join(errs...))
	}
	return nil
}

func (d *Dictionary) walk(n *yaml.Node, path []string, semantic bool, errs *[]error) {
	if !isMapping(n) {
		*errs = append(*errs, fmt.Errorf("%s: expected an object with a value", strings.Join(path, ".")))
		return
	}
	if value := lookup(n, "value"); value != nil {
		if len(path) < 2 {
			*errs = append(*errs, fmt.Errorf("%s: a category cannot hold a value", path[0]))
		} else if t, err := d.tokenFromNode(path, n, value, semantic); err != nil {
			*errs = append(*errs, err)
		} else {
			d.Add(t)
		}
	}
	for _, m := range members(n) {
		if slices.Contains(tokenMeta, m.Key) {
			continue
		}
		// DEFAULT names the group itself: colors.bg.DEFAULT is colors.bg
		child := slices.Clone(path)
		if m.Key != "DEFAULT" {
			child = append(child, m.Key)
		}
		d.walk(m.Value, child, semantic, errs)
	}
}

func (d *Dictionary) tokenFromNode(path []string, n, value *yaml.Node, semantic bool) (*Token, error) {
	name := strings.Join(path, ".")
	var t *Token
	switch {
	case isScalar(value):
		raw, _ := scalar(value)
		t = newToken(d.prefix, path, raw, semantic)
	case isMapping(value):
		conditions, err := parseConditions(value, name)
		if err != nil {
			return nil, err
		}
		t = newToken(d.prefix, path, "", true)
		t.Extensions.Conditions = conditions
		if base, ok := t.BaseCondition(); ok {
			t.OriginalValue = base
		}
	default:
		return nil, fmt.Errorf("%s: value must be a string or a condition object", name)
	}
	if desc, ok := scalar(lookup(n, "description")); ok {
		t.Description = desc
	}
	if dep, ok := scalar(lookup(n, "deprecated")); ok {
		t.Deprecated = dep != "false"
	}
	return t, nil
}

func parseConditions(n *yaml.Node, name string) ([]Condition, error) {
	var out []Condition
	for _, m := range members(n) {
		switch {
		case isScalar(m.Value):
			v, _ := scalar(m.Value)
			out = append(out, Condition{Name: m.Key, Value: v})
		case isMapping(m.Value):
			children, err := parseConditions(m.Value, name+"."+m.Key)
			if err != nil {
				return nil, err
			}
			out = append(out, Condition{Name: m.Key, Children: children})
		default:
			return nil, fmt.Errorf("%s: condition %q must be a string or an object", name, m.Key)
		}
	}
	return out, nil
}
