package position

import (
	"sort"
	"strings"
)

// Index maps between byte offsets and (line, UTF-16 character) pairs for one text.
// It is immutable; build a new one when the text changes.
type Index struct {
	text       string
	lineStarts []int
}

// NewIndex records the start offset of every line in text.
func NewIndex(text string) *Index {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{text: text, lineStarts: starts}
}

// LineCount returns the number of lines, counting a trailing empty line.
func (x *Index) LineCount() int {
	return len(x.lineStarts)
}

// Line returns the text of a line without its terminator.
func (x *Index) Line(line int) string {
	if line < 0 || line >= len(x.lineStarts) {
		return ""
	}
	start := x.lineStarts[line]
	end := len(x.text)
	if line+1 < len(x.lineStarts) {
		end = x.lineStarts[line+1] - 1
	}
	return strings.TrimSuffix(x.text[start:end], "\r")
}

// Offset converts an LSP position to a byte offset, clamping out-of-range
// lines and characters to the nearest valid offset.
func (x *Index) Offset(line, character int) int {
	if line < 0 {
		return 0
	}
	if line >= len(x.lineStarts) {
		return len(x.text)
	}
	return x.lineStarts[line] + UTF16ToByteOffset(x.Line(line), character)
}

// Position converts a byte offset to a 0-based line and UTF-16 character.
func (x *Index) Position(offset int) (line, character int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(x.text) {
		offset = len(x.text)
	}
	line = sort.Search(len(x.lineStarts), func(i int) bool {
		return x.lineStarts[i] > offset
	}) - 1
	start := x.lineStarts[line]
	return line, ByteOffsetToUTF16(x.text[start:offset], offset-start)
}
