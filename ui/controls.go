package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// KeyBinding is a fixed key shown in the help panel.
type KeyBinding struct {
	Key    string
	Action string
}

// DefaultBindings are the scene keys that are not overlays.
var DefaultBindings = []KeyBinding{
	{"Space", "Assemble / Disperse"},
	{"R", "Regenerate scene"},
	{"Drag", "Orbit camera"},
	{"Wheel", "Zoom"},
	{"Click", "Open gift"},
}

// ControlsPanel renders the key help panel with overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	categories := overlays.Categories()
	totalItems := len(DefaultBindings) + 1
	for _, cat := range categories {
		totalItems += len(overlays.ByCategory(cat)) + 1
	}
	panelHeight := int32(totalItems)*lineHeight + padding*3 + lineHeight + int32(len(categories))*4

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Controls", c.x+padding, y, 16, r.Theme.ValueColor)
	y += lineHeight + 4

	rl.DrawText("Scene", c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += lineHeight
	for _, b := range DefaultBindings {
		c.drawBinding(c.x+padding, y, b.Action, b.Key, false, false, c.width-padding*2)
		y += lineHeight
	}

	for _, category := range categories {
		y += 4
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawBinding(c.x+padding, y, desc.Name, desc.KeyLabel, true, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
	}

	return y
}

// drawBinding draws one line: optional status square, name and right-aligned key.
func (c *ControlsPanel) drawBinding(x, y int32, name, key string, toggle, enabled bool, width int32) {
	r := c.renderer

	nameX := x
	nameColor := r.Theme.LabelColor
	if toggle {
		statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
		if enabled {
			statusColor = r.Theme.BarFill
			nameColor = rl.White
		}
		rl.DrawRectangle(x, y+2, 8, 8, statusColor)
		nameX += 14
	}
	rl.DrawText(name, nameX, y, r.Theme.FontSize, nameColor)

	if key != "" {
		keyText := fmt.Sprintf("[%s]", key)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "view":
		return "View"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
