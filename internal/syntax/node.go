package syntax

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Kind is the closed set of node shapes the server distinguishes
type Kind int

const (
	KindOther Kind = iota
	KindProgram
	KindString
	KindTemplate
	KindNumber
	KindObject
	KindArray
	KindPair
	KindPropertyKey
	KindIdentifier
	KindCall
	KindMember
	KindArguments
	KindVariableDeclarator
	KindImport
	KindImportSpecifier
	KindNamespaceImport
	KindSpread
	KindShorthandProperty
	KindComputedKey
	// KindWrapper is a parenthesized, as, satisfies or non-null expression
	KindWrapper
	KindError
)

var kindNames = map[string]Kind{
	"program":                       KindProgram,
	"string":                        KindString,
	"template_string":               KindTemplate,
	"number":                        KindNumber,
	"object":                        KindObject,
	"array":                         KindArray,
	"pair":                          KindPair,
	"property_identifier":           KindPropertyKey,
	"identifier":                    KindIdentifier,
	"call_expression":               KindCall,
	"member_expression":             KindMember,
	"arguments":                     KindArguments,
	"variable_declarator":           KindVariableDeclarator,
	"import_statement":              KindImport,
	"import_specifier":              KindImportSpecifier,
	"namespace_import":              KindNamespaceImport,
	"spread_element":                KindSpread,
	"shorthand_property_identifier": KindShorthandProperty,
	"computed_property_name":        KindComputedKey,
	"parenthesized_expression":      KindWrapper,
	"as_expression":                 KindWrapper,
	"satisfies_expression":          KindWrapper,
	"non_null_expression":           KindWrapper,
	"ERROR":                         KindError,
}

// IsLiteral reports whether the kind is a string, template or number literal
func (k Kind) IsLiteral() bool {
	return k == KindString || k == KindTemplate || k == KindNumber
}

// Node is a borrowed view of a tree-sitter node. The zero Node is null.
type Node struct {
	n *sitter.Node
	t *Tree
}

func wrap(n *sitter.Node, t *Tree) Node {
	if n == nil {
		return Node{}
	}
	return Node{n: n, t: t}
}

// IsNull reports whether the node is absent
func (n Node) IsNull() bool {
	return n.n == nil
}

// Kind returns the node's shape. JavaScript-family kinds are only reported
// for script trees; every CSS node is KindOther or KindError.
func (n Node) Kind() Kind {
	if n.n == nil {
		return KindOther
	}
	raw := n.n.Kind()
	if raw == "ERROR" {
		return KindError
	}
	if !n.t.lang.IsScript() {
		return KindOther
	}
	return kindNames[raw]
}

// Type returns the raw grammar kind, for logging
func (n Node) Type() string {
	if n.n == nil {
		return ""
	}
	return n.n.Kind()
}

// Start returns the byte offset of the node's first byte
func (n Node) Start() int {
	if n.n == nil {
		return 0
	}
	return int(n.n.StartByte())
}

// End returns the byte offset just past the node
func (n Node) End() int {
	if n.n == nil {
		return 0
	}
	return int(n.n.EndByte())
}

// Len returns the node's span length in bytes
func (n Node) Len() int {
	return n.End() - n.Start()
}

// Text returns the node's source text
func (n Node) Text() string {
	if n.n == nil {
		return ""
	}
	return n.t.text[n.Start():n.End()]
}

// Range returns the node's span as an LSP range
func (n Node) Range() Range {
	return n.t.RangeOf(n.Start(), n.End())
}

// Tree returns the tree the node belongs to
func (n Node) Tree() *Tree {
	return n.t
}

// Equal reports whether two views refer to the same node
func (n Node) Equal(o Node) bool {
	if n.n == nil || o.n == nil {
		return n.n == nil && o.n == nil
	}
	return n.t == o.t && n.n.Id() == o.n.Id()
}

// Parent returns the parent node, or a null node at the root
func (n Node) Parent() Node {
	if n.n == nil {
		return Node{}
	}
	return wrap(n.n.Parent(), n.t)
}

// Field returns the child stored under a grammar field name
func (n Node) Field(name string) Node {
	if n.n == nil {
		return Node{}
	}
	return wrap(n.n.ChildByFieldName(name), n.t)
}

// NamedChildren returns the node's named children in source order, without comments
func (n Node) NamedChildren() []Node {
	if n.n == nil {
		return nil
	}
	count := n.n.NamedChildCount()
	children := make([]Node, 0, count)
	for i := uint(0); i < count; i++ {
		if c := n.n.NamedChild(i); c != nil && c.Kind() != "comment" {
			children = append(children, Node{n: c, t: n.t})
		}
	}
	return children
}

// Walk visits n and its named descendants depth-first in source order.
// Returning false from visit skips the node's children.
func Walk(n Node, visit func(Node) bool) {
	if n.IsNull() || !visit(n) {
		return
	}
	for _, c := range n.NamedChildren() {
		Walk(c, visit)
	}
}

// Unwrap looks through parentheses and type assertions
// (`(x)`, `x as T`, `x satisfies T`, `x!`).
func Unwrap(n Node) Node {
	for n.Kind() == KindWrapper {
		children := n.NamedChildren()
		if len(children) == 0 {
			return n
		}
		n = children[0]
	}
	return n
}

// Callee returns the function expression of a call
func Callee(call Node) Node {
	return call.Field("function")
}

// Arguments returns the named argument expressions of a call
func Arguments(call Node) []Node {
	args := call.Field("arguments")
	if args.Kind() != KindArguments {
		return nil
	}
	return args.NamedChildren()
}
