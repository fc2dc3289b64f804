package helpers

import (
	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Position converts a syntax position to its protocol form
func Position(p syntax.Position) protocol.Position {
	return protocol.Position{Line: p.Line, Character: p.Character}
}

// Range converts a syntax range to its protocol form
func Range(r syntax.Range) protocol.Range {
	return protocol.Range{Start: Position(r.Start), End: Position(r.End)}
}

// SyntaxPosition converts a protocol position to its syntax form
func SyntaxPosition(p protocol.Position) syntax.Position {
	return syntax.Position{Line: p.Line, Character: p.Character}
}

// RangeContains reports whether p lies within r, both ends inclusive.
//
// Examples:
//   - [0:0, 0:5] contains 0:5 -> true
//   - [0:2, 1:0] contains 0:1 -> false
func RangeContains(r protocol.Range, p protocol.Position) bool {
	return !before(p, r.Start) && !before(r.End, p)
}

func before(a, b protocol.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}
