package syntax

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// TokenCall is a `token(path)` or `token(path, fallback)` call in a stylesheet
type TokenCall struct {
	Path     string
	Fallback string
	Range    Range
	// PathRange covers only the path argument, without quotes
	PathRange Range
}

// TokenCalls finds token() calls in a CSS tree.
func TokenCalls(t *Tree) []TokenCall {
	if t == nil || t.lang != CSS {
		return nil
	}
	var calls []TokenCall
	walkCSS(t.tree.RootNode(), func(n *sitter.Node) {
		if n.Kind() != "call_expression" {
			return
		}
		if call, ok := cssTokenCall(t, n); ok {
			calls = append(calls, call)
		}
	})
	return calls
}

func walkCSS(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := uint(0); i < n.ChildCount(); i++ {
		walkCSS(n.Child(i), visit)
	}
}

func cssTokenCall(t *Tree, n *sitter.Node) (TokenCall, bool) {
	var name, args *sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Kind() {
		case "function_name":
			name = c
		case "arguments":
			args = c
		}
	}
	if name == nil || args == nil || t.text[name.StartByte():name.EndByte()] != "token" {
		return TokenCall{}, false
	}

	// arguments span includes the parentheses
	start, end := int(args.StartByte())+1, int(args.EndByte())-1
	if end <= start {
		return TokenCall{}, false
	}
	inner := t.text[start:end]

	pathText, fallback, _ := strings.Cut(inner, ",")
	lead := len(pathText) - len(strings.TrimLeft(pathText, " \t\n'\""))
	path := strings.Trim(pathText, " \t\n'\"")
	if path == "" {
		return TokenCall{}, false
	}

	pathStart := start + lead
	return TokenCall{
		Path:      path,
		Fallback:  strings.TrimSpace(fallback),
		Range:     t.RangeOf(int(n.StartByte()), int(n.EndByte())),
		PathRange: t.RangeOf(pathStart, pathStart+len(path)),
	}, true
}
