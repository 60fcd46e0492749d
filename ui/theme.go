// Package ui draws the debug heads-up display.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds colors and metrics for UI rendering.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	BarFillLow    rl.Color
	BarFillMedium rl.Color
	BarFillHigh   rl.Color
	Padding       int32
	LineHeight    int32
	LabelWidth    int32
	BarHeight     int32
	FontSize      int32
	HeaderSize    int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 10, B: 18, A: 220},
		PanelBorder:   rl.Color{R: 90, G: 50, B: 70, A: 255},
		SectionHeader: rl.Color{R: 255, G: 182, B: 193, A: 255},
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		BarBg:         rl.Color{R: 40, G: 30, B: 36, A: 255},
		BarFill:       rl.Color{R: 255, G: 105, B: 180, A: 255},
		BarFillLow:    rl.Color{R: 120, G: 180, B: 120, A: 255},
		BarFillMedium: rl.Color{R: 220, G: 190, B: 100, A: 255},
		BarFillHigh:   rl.Color{R: 230, G: 90, B: 90, A: 255},
		Padding:       10,
		LineHeight:    16,
		LabelWidth:    70,
		BarHeight:     12,
		FontSize:      12,
		HeaderSize:    14,
	}
}
