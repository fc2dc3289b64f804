package syntax

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/position"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Position is a 0-based line and UTF-16 character, as LSP expects
type Position struct {
	Line      uint32 `json:"line" yaml:"line"`
	Character uint32 `json:"character" yaml:"character"`
}

// Range is a half-open span between two positions
type Range struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end" yaml:"end"`
}

// Contains reports whether p lies within r, end inclusive
func (r Range) Contains(p Position) bool {
	if p.Line < r.Start.Line || p.Line > r.End.Line {
		return false
	}
	if p.Line == r.Start.Line && p.Character < r.Start.Character {
		return false
	}
	if p.Line == r.End.Line && p.Character > r.End.Character {
		return false
	}
	return true
}

// Tree is a parsed source file. Nodes obtained from it are only valid until Close.
type Tree struct {
	tree   *sitter.Tree
	source []byte
	text   string
	lang   Language
	index  *position.Index
}

func newTree(tree *sitter.Tree, source []byte, text string, lang Language) *Tree {
	return &Tree{
		tree:   tree,
		source: source,
		text:   text,
		lang:   lang,
		index:  position.NewIndex(text),
	}
}

// Close releases the underlying tree-sitter tree
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// Language returns the grammar the tree was parsed with
func (t *Tree) Language() Language {
	return t.lang
}

// Source returns the parsed text
func (t *Tree) Source() string {
	return t.text
}

// Root returns the root node
func (t *Tree) Root() Node {
	return wrap(t.tree.RootNode(), t)
}

// Offset converts an LSP position into a byte offset of the source
func (t *Tree) Offset(p Position) int {
	return t.index.Offset(int(p.Line), int(p.Character))
}

// PositionAt converts a byte offset into an LSP position
func (t *Tree) PositionAt(offset int) Position {
	line, char := t.index.Position(offset)
	return Position{Line: uint32(line), Character: uint32(char)}
}

// RangeOf converts a byte span into an LSP range
func (t *Tree) RangeOf(start, end int) Range {
	return Range{Start: t.PositionAt(start), End: t.PositionAt(end)}
}
