package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/scrub/internal/interact/rule"
)

var (
	colorPattern = regexp.MustCompile(`(?:rgb\(\s*\d+\s*,\s*\d+\s*,\s*\d+\s*\)|#[0-9a-fA-F]{3}(?:[0-9a-fA-F]{3})?)`)
	rgbParts     = regexp.MustCompile(`rgb\(\s*(?P<r>\d+)\s*,\s*(?P<g>\d+)\s*,\s*(?P<b>\d+)\s*\)`)
)

// Notation is the textual form a color was written in.
type Notation uint8

const (
	NotationHex Notation = iota
	NotationRGB
)

// ParseColor parses "#rgb", "#rrggbb" or "rgb(r, g, b)".
func ParseColor(text string) (colorful.Color, Notation, bool) {
	switch {
	case strings.HasPrefix(text, "rgb("):
		m := rgbParts.FindStringSubmatch(text)
		if m == nil {
			return colorful.Color{}, NotationRGB, false
		}
		var ch [3]uint8
		for i, name := range []string{"r", "g", "b"} {
			v, err := strconv.Atoi(m[rgbParts.SubexpIndex(name)])
			if err != nil {
				return colorful.Color{}, NotationRGB, false
			}
			ch[i] = clampByte(v)
		}
		return colorful.Color{R: float64(ch[0]) / 255, G: float64(ch[1]) / 255, B: float64(ch[2]) / 255}, NotationRGB, true
	case strings.HasPrefix(text, "#"):
		c, err := colorful.Hex(text)
		if err != nil {
			return colorful.Color{}, NotationHex, false
		}
		return c, NotationHex, true
	}
	return colorful.Color{}, NotationHex, false
}

// FormatColor writes c in the given notation.
func FormatColor(c colorful.Color, n Notation) string {
	c = c.Clamped()
	if n == NotationRGB {
		r, g, b := c.RGB255()
		return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
	}
	return c.Hex()
}

func clampByte(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

// Color returns the color rule. Clicking a color opens picker anchored
// just after the text; picked colors are written back in the notation
// the color was found in. The target stays writable while the picker is
// open, even after the pointer moves away.
func Color(picker Picker) rule.Rule {
	r := rule.Rule{
		Name:    NameColor,
		Pattern: colorPattern,
		Cursor:  "pointer",
	}
	if picker == nil {
		return r
	}
	r.Hooks.OnClick = func(ed rule.Editor, c *rule.Call) {
		col, notation, ok := ParseColor(c.Text)
		if !ok {
			return
		}
		h := c.Target
		release := ed.Pin(h)
		picker.Open(PickerRequest{
			Anchor:  c.Start.Offset(len(c.Text)),
			Initial: col.Clamped().Hex(),
			OnChange: func(hex string) {
				picked, err := colorful.Hex(hex)
				if err != nil {
					return
				}
				ed.SetText(h, FormatColor(picked, notation))
			},
			OnClose: release,
		})
	}
	return r
}
