package helpers_test

import (
	"testing"

	"github.com/PallasUI/panda-vscode-pallas/internal/syntax"
	"github.com/PallasUI/panda-vscode-pallas/lsp/helpers"
	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func pos(line, char uint32) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}

func TestRangeContains(t *testing.T) {
	r := protocol.Range{Start: pos(0, 2), End: pos(1, 4)}
	tests := []struct {
		name     string
		p        protocol.Position
		expected bool
	}{
		{"start", pos(0, 2), true},
		{"end is inclusive", pos(1, 4), true},
		{"middle line past start column", pos(0, 40), true},
		{"last line before end", pos(1, 0), true},
		{"before start on first line", pos(0, 1), false},
		{"after end on last line", pos(1, 5), false},
		{"line after", pos(2, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, helpers.RangeContains(r, tt.p))
		})
	}
}

func TestConversions(t *testing.T) {
	r := syntax.Range{
		Start: syntax.Position{Line: 1, Character: 2},
		End:   syntax.Position{Line: 3, Character: 4},
	}
	assert.Equal(t, protocol.Range{Start: pos(1, 2), End: pos(3, 4)}, helpers.Range(r))
	assert.Equal(t, r.End, helpers.SyntaxPosition(helpers.Position(r.End)))
}
