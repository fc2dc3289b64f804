package color

import (
	"fmt"
	"math"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Parse parses a CSS color value: hex, rgb(), hsl(), hwb(), named colors and
// the modern space-separated syntaxes. Values that reference variables or
// tokens are not colors.
func Parse(value string) (csscolorparser.Color, bool) {
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
	if value == "" || strings.ContainsAny(value, "{}") || strings.Contains(value, "var(") || strings.Contains(value, "token(") {
		return csscolorparser.Color{}, false
	}
	switch strings.ToLower(value) {
	case "currentcolor", "inherit", "initial", "unset", "revert":
		return csscolorparser.Color{}, false
	}
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return csscolorparser.Color{}, false
	}
	return c, true
}

// IsColor reports whether value is a literal CSS color
func IsColor(value string) bool {
	_, ok := Parse(value)
	return ok
}

// IsOpaque reports whether a color has no transparency
func IsOpaque(c csscolorparser.Color) bool {
	return c.A >= 0.999
}

// Equal compares two colors at 8-bit precision
func Equal(a, b csscolorparser.Color) bool {
	return a.HexString() == b.HexString()
}

// ToHex formats a color as #rrggbb, or #rrggbbaa when translucent
func ToHex(c csscolorparser.Color) string {
	return c.HexString()
}

// ToRGB formats a color as rgb() in the space-separated syntax
func ToRGB(c csscolorparser.Color) string {
	r, g, b := channel(c.R), channel(c.G), channel(c.B)
	if IsOpaque(c) {
		return fmt.Sprintf("rgb(%d %d %d)", r, g, b)
	}
	return fmt.Sprintf("rgb(%d %d %d / %s)", r, g, b, alpha(c.A))
}

// ToHSL formats a color as hsl() in the space-separated syntax
func ToHSL(c csscolorparser.Color) string {
	h, s, l := hsl(c.R, c.G, c.B)
	if IsOpaque(c) {
		return fmt.Sprintf("hsl(%s %s%% %s%%)", trim(h), trim(s*100), trim(l*100))
	}
	return fmt.Sprintf("hsl(%s %s%% %s%% / %s)", trim(h), trim(s*100), trim(l*100), alpha(c.A))
}

// Presentations lists the ways a color can be written back into a document
func Presentations(c csscolorparser.Color) []string {
	return []string{ToHex(c), ToRGB(c), ToHSL(c)}
}

func channel(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func alpha(a float64) string {
	return trim(math.Max(0, math.Min(1, a)))
}

// trim formats with at most two decimals and no trailing zeros
func trim(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func hsl(r, g, b float64) (h, s, l float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2
	if maxC == minC {
		return 0, 0, l
	}
	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s, l
}
