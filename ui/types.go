// Package ui draws the 2D layer over the scene: header, mode toggle, card overlay
// and the debug panels. Panels are described by metadata so fields can change
// alongside the systems they display.
package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	Label       string
	Widget      WidgetType
	Format      string             // Printf format for Getter values (e.g., "%.2f")
	Visible     func(any) bool     // nil = always visible
	Getter      func(any) float32  // Numeric value
	TextGetter  func(any) string   // Text value
	ColorGetter func(any) rl.Color // Swatch color
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	Title    string
	Sections []SectionDescriptor
	Width    int32
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	BarFillHigh   rl.Color

	Title    rl.Color
	Subtitle rl.Color
	Status   rl.Color
	CardBg   rl.Color
	CardInk  rl.Color
	Dim      rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the midnight and gold theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 2, G: 6, B: 23, A: 220},
		PanelBorder:   rl.Color{R: 120, G: 100, B: 40, A: 255},
		SectionHeader: rl.Color{R: 255, G: 215, B: 0, A: 255},
		LabelColor:    rl.Color{R: 203, G: 213, B: 225, A: 255},
		ValueColor:    rl.Color{R: 241, G: 245, B: 249, A: 255},
		BarBg:         rl.Color{R: 30, G: 41, B: 59, A: 255},
		BarFill:       rl.Color{R: 34, G: 197, B: 94, A: 255},
		BarFillHigh:   rl.Color{R: 239, G: 68, B: 68, A: 255},

		Title:    rl.Color{R: 255, G: 215, B: 0, A: 255},
		Subtitle: rl.Color{R: 241, G: 245, B: 249, A: 200},
		Status:   rl.Color{R: 253, G: 230, B: 138, A: 255},
		CardBg:   rl.Color{R: 255, G: 251, B: 235, A: 250},
		CardInk:  rl.Color{R: 127, G: 29, B: 29, A: 255},
		Dim:      rl.Color{R: 0, G: 0, B: 0, A: 140},

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     70,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// ApplyGuiStyle pushes the theme into raygui's default control style.
// Call once after the window is created.
func ApplyGuiStyle(t Theme) {
	gui.LoadStyleDefault()
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 18)
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(t.PanelBg))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(t.PanelBorder))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(t.Title))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.Color{R: 120, G: 53, B: 15, A: 255}))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(t.Title))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(t.ValueColor))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(t.Title))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(t.PanelBg))
}
