package constellation

import (
	"strconv"

	"github.com/gogpu/gg"
)

// fallbackNodeColor is used when a group colour cannot be parsed.
var fallbackNodeColor = gg.RGBA{R: 59.0 / 255, G: 130.0 / 255, B: 246.0 / 255, A: 1}

// inactiveGray is the tone faded nodes drift toward.
const (
	inactiveGray   = 120.0 / 255
	inactiveAmount = 0.55
)

// ParseHexColor parses a "#rrggbb" colour. Unlike gg.Hex it reports
// malformed input instead of silently returning black.
func ParseHexColor(s string) (gg.RGBA, bool) {
	if len(s) < 7 || s[0] != '#' {
		return gg.RGBA{}, false
	}
	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return gg.RGBA{}, false
		}
		ch[i] = float64(v) / 255
	}
	return gg.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 1}, true
}

// nodeColor resolves a group colour, falling back to the default blue.
func nodeColor(s string) gg.RGBA {
	if c, ok := ParseHexColor(s); ok {
		return c
	}
	return fallbackNodeColor
}

// withAlpha returns c with its alpha replaced.
func withAlpha(c gg.RGBA, a float64) gg.RGBA {
	c.A = clamp(a, 0, 1)
	return c
}

// desaturate pulls c toward neutral gray, marking a node as inactive.
// Channels are rounded to whole 8-bit steps.
func desaturate(c gg.RGBA) gg.RGBA {
	mix := func(v float64) float64 {
		return roundByte(lerp(v*255, inactiveGray*255, inactiveAmount)) / 255
	}
	return gg.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}

func roundByte(v float64) float64 {
	return float64(int(v + 0.5))
}
