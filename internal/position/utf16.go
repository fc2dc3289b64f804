// Package position converts between LSP positions, which count UTF-16
// code units, and byte offsets into Go strings.
package position

import (
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16ToByteOffset converts a UTF-16 column within a single line to a byte offset.
// Columns past the end of s clamp to len(s); a column that falls inside a
// surrogate pair clamps to the start of that rune.
func UTF16ToByteOffset(s string, utf16Col int) int {
	if utf16Col <= 0 {
		return 0
	}

	units := 0
	offset := 0
	for offset < len(s) && units < utf16Col {
		r, size := utf8.DecodeRuneInString(s[offset:])
		n := 1
		if r != utf8.RuneError || size != 1 {
			n = utf16.RuneLen(r)
		}
		if n == 2 && units+1 == utf16Col {
			break
		}
		units += n
		offset += size
	}
	return offset
}

// ByteOffsetToUTF16 converts a byte offset within s to a UTF-16 column.
// Offsets inside a multi-byte rune count only the runes before it.
func ByteOffsetToUTF16(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}

	units := 0
	for offset := 0; offset < byteOffset; {
		r, size := utf8.DecodeRuneInString(s[offset:])
		if offset+size > byteOffset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		offset += size
	}
	return units
}

// StringLengthUTF16 returns the length of s in UTF-16 code units.
func StringLengthUTF16(s string) int {
	return ByteOffsetToUTF16(s, len(s))
}
