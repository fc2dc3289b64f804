package panda

import (
	"gopkg.in/yaml.v3"
)

// member is one key of a YAML mapping, kept in document order
type member struct {
	Key   string
	Value *yaml.Node
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && (n.Kind == yaml.DocumentNode || n.Kind == yaml.AliasNode) {
		if n.Kind == yaml.AliasNode {
			n = n.Alias
			continue
		}
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	return n
}

func isMapping(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.MappingNode
}

func isScalar(n *yaml.Node) bool {
	n = deref(n)
	return n != nil && n.Kind == yaml.ScalarNode
}

// members lists the keys of a mapping node in order
func members(n *yaml.Node) []member {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	out := make([]member, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, member{Key: n.Content[i].Value, Value: deref(n.Content[i+1])})
	}
	return out
}

// lookup returns the value stored under key, or nil
func lookup(n *yaml.Node, key string) *yaml.Node {
	for _, m := range members(n) {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// scalar returns the text of a scalar node
func scalar(n *yaml.Node) (string, bool) {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", false
	}
	return n.Value, true
}

// strings returns a sequence of scalars, or a lone scalar as a one-element list
func stringList(n *yaml.Node) []string {
	n = deref(n)
	if n == nil {
		return nil
	}
	if s, ok := scalar(n); ok {
		return []string{s}
	}
	if n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if s, ok := scalar(c); ok {
			out = append(out, s)
		}
	}
	return out
}

// merge deep-merges src into dst. Mappings merge key by key; anything else
// in src replaces what dst holds. Both must be mappings.
func merge(dst, src *yaml.Node) {
	dst, src = deref(dst), deref(src)
	if dst == nil || src == nil || dst.Kind != yaml.MappingNode || src.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(src.Content); i += 2 {
		key, value := src.Content[i], deref(src.Content[i+1])
		existing := -1
		for j := 0; j+1 < len(dst.Content); j += 2 {
			if dst.Content[j].Value == key.Value {
				existing = j
				break
			}
		}
		switch {
		case existing < 0:
			dst.Content = append(dst.Content, key, clone(value))
		case isMapping(dst.Content[existing+1]) && value != nil && value.Kind == yaml.MappingNode:
			merge(dst.Content[existing+1], value)
		default:
			dst.Content[existing+1] = clone(value)
		}
	}
}

func clone(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Content = make([]*yaml.Node, len(n.Content))
	for i, child := range n.Content {
		c.Content[i] = clone(child)
	}
	return &c
}

func emptyMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}
