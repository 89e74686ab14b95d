package render

import (
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/chronoplot/pkg/errors"
)

const hexDigits = "0123456789abcdefABCDEF"

// ParseHexColor parses "#rrggbb" (or "rrggbb") into a color. Style files and
// CLI flags carry colors in this form.
func ParseHexColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return nil, errors.New(errors.ErrCodeInvalidColor, "invalid color %q: want #rrggbb", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune(hexDigits, r) {
			return nil, errors.New(errors.ErrCodeInvalidColor, "invalid color %q: want #rrggbb", s)
		}
	}

	c := drawing.ColorFromHex(hex)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}
