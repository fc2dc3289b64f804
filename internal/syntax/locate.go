package syntax

// Locate finds the most specific node covering a byte offset and returns it
// with the path of nodes walked from the root (root first, node last).
//
// At each level the named child whose half-open span [start, end) holds the
// offset is taken, so an offset on the boundary between two siblings selects
// the later one. Literals are never descended into. When no child matches,
// the children are scanned again with inclusive ends and the smallest match
// wins, which lets a cursor sitting just after a token still resolve to it.
//
// Finally, if the nearest enclosing pair has a literal value and the cursor
// is elsewhere in that pair (on its key, say), the value is returned instead.
func Locate(t *Tree, offset int) (Node, []Node) {
	root := t.Root()
	if root.IsNull() || offset < root.Start() || offset > root.End() {
		return Node{}, nil
	}

	cur := root
	stack := []Node{root}
	for !cur.Kind().IsLiteral() {
		next := childAt(cur, offset)
		if next.IsNull() {
			next = smallestAround(cur, offset)
		}
		if next.IsNull() {
			break
		}
		cur = next
		stack = append(stack, cur)
	}

	return preferPairValue(cur, stack)
}

func childAt(n Node, offset int) Node {
	for _, c := range n.NamedChildren() {
		if c.Start() <= offset && offset < c.End() {
			return c
		}
	}
	return Node{}
}

func smallestAround(n Node, offset int) Node {
	var best Node
	for _, c := range n.NamedChildren() {
		if c.Start() > offset || offset > c.End() {
			continue
		}
		// ties go to the later sibling
		if best.IsNull() || c.Len() <= best.Len() {
			best = c
		}
	}
	return best
}

func preferPairValue(cur Node, stack []Node) (Node, []Node) {
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i].Kind() {
		case KindPair:
			value := Value(stack[i])
			if !value.Kind().IsLiteral() || value.Equal(cur) {
				return cur, stack
			}
			path := append(stack[:i+1:i+1], value)
			return value, path
		case KindObject, KindArray, KindCall, KindArguments:
			// a literal value only belongs to the pair directly above it
			if i != len(stack)-1 {
				return cur, stack
			}
		}
	}
	return cur, stack
}
