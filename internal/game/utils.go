package game

import (
	"image/color"
	"math"

	"github.com/iburimskiy/bizpanel/internal/app"
)

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// budgetColor fades from green at 0% used to red at 100% and beyond.
func budgetColor(percent float64) color.RGBA {
	hue := 120 * (1 - clamp01(percent/100))
	r, g, b := hsvToRgb(hue, 0.75, 0.85)
	return color.RGBA{R: r, G: g, B: b, A: 220}
}

func toneColor(t app.Tone) color.RGBA {
	switch t {
	case app.ToneGood:
		return color.RGBA{R: 40, G: 90, B: 60, A: 255}
	case app.ToneWarn:
		return color.RGBA{R: 110, G: 40, B: 40, A: 255}
	}
	return color.RGBA{R: 30, G: 36, B: 50, A: 255}
}
