package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUTF16ToByteOffset(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		utf16Col   int
		expectByte int
	}{
		{"empty string", "", 0, 0},
		{"ASCII", "color: 'red.300'", 8, 8},
		{"beyond end clamps", "hello", 100, 5},
		{"negative", "hello", -1, 0},
		{"emoji surrogate pair", "👍 red", 2, 4},
		{"inside surrogate pair clamps to rune start", "👍 red", 1, 0},
		{"CJK in BMP", "颜色", 2, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectByte, UTF16ToByteOffset(tt.s, tt.utf16Col))
		})
	}
}

func TestByteOffsetToUTF16(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		byteOffset int
		expect     int
	}{
		{"zero", "abc", 0, 0},
		{"ASCII", "abc", 2, 2},
		{"after emoji", "👍 red", 4, 2},
		{"inside emoji", "👍 red", 2, 0},
		{"past end", "abc", 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ByteOffsetToUTF16(tt.s, tt.byteOffset))
		})
	}
}

func TestStringLengthUTF16(t *testing.T) {
	assert.Equal(t, 0, StringLengthUTF16(""))
	assert.Equal(t, 5, StringLengthUTF16("hello"))
	assert.Equal(t, 6, StringLengthUTF16("👍 red"))
	assert.Equal(t, 2, StringLengthUTF16("颜色"))
}

func TestRoundTrip(t *testing.T) {
	s := "bg: '🎨 red.300' // 颜色"
	for col := 0; col <= StringLengthUTF16(s); col++ {
		if col == 6 {
			// second half of the surrogate pair
			continue
		}
		assert.Equal(t, col, ByteOffsetToUTF16(s, UTF16ToByteOffset(s, col)), "column %d", col)
	}
}
