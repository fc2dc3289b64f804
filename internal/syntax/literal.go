package syntax

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// StringValue returns the decoded contents of a string literal, or of a
// template literal without substitutions.
func StringValue(n Node) (string, bool) {
	switch n.Kind() {
	case KindString, KindTemplate:
	default:
		return "", false
	}

	var b strings.Builder
	for i := uint(0); i < n.n.ChildCount(); i++ {
		c := n.n.Child(i)
		if c == nil {
			continue
		}
		text := n.t.text[c.StartByte():c.EndByte()]
		switch c.Kind() {
		case "string_fragment", "html_character_reference":
			b.WriteString(text)
		case "escape_sequence":
			b.WriteString(decodeEscape(text))
		case "template_substitution":
			return "", false
		}
	}
	return b.String(), true
}

// Literal returns the value of a string, substitution-free template or
// number literal. Numbers keep their source text.
func Literal(n Node) (string, bool) {
	if n.Kind() == KindNumber {
		return n.Text(), true
	}
	return StringValue(n)
}

// KeyName returns the static name of an object pair key: an identifier, a
// string or number literal, or a computed key holding a string literal.
func KeyName(pair Node) (string, bool) {
	key := pair.Field("key")
	switch key.Kind() {
	case KindPropertyKey, KindIdentifier:
		return key.Text(), true
	case KindString, KindNumber:
		return Literal(key)
	case KindComputedKey:
		if inner := key.NamedChildren(); len(inner) == 1 {
			return StringValue(inner[0])
		}
	}
	return "", false
}

// Value returns the value expression of a pair
func Value(pair Node) Node {
	return pair.Field("value")
}

// Pairs returns the key/value pairs of an object literal, skipping spreads,
// shorthand properties and methods.
func Pairs(object Node) []Node {
	if object.Kind() != KindObject {
		return nil
	}
	var pairs []Node
	for _, c := range object.NamedChildren() {
		if c.Kind() == KindPair {
			pairs = append(pairs, c)
		}
	}
	return pairs
}

// Property finds the pair named key in an object literal
func Property(object Node, key string) (Node, bool) {
	for _, pair := range Pairs(object) {
		if name, ok := KeyName(pair); ok && name == key {
			return pair, true
		}
	}
	return Node{}, false
}

func decodeEscape(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}
	switch seq[1] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		if len(seq) == 2 {
			return "\x00"
		}
	case '\n', '\r':
		// line continuation
		return ""
	case 'x':
		if v, err := strconv.ParseUint(seq[2:], 16, 8); err == nil {
			return string(rune(v))
		}
	case 'u':
		hex := strings.TrimSuffix(strings.TrimPrefix(seq[2:], "{"), "}")
		if v, err := strconv.ParseUint(hex, 16, 32); err == nil && utf8.ValidRune(rune(v)) {
			return string(rune(v))
		}
	}
	return seq[1:]
}
