package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/telemetry"
)

// Header text.
const (
	TitleText    = "Noel"
	SubtitleText = "MERRY CHRISTMAS"

	StatusScattered = "Awaiting Assembly"
	StatusFormation = "Assemble Sequence Complete"
)

const (
	titleSize    = 48
	subtitleSize = 16
	statusSize   = 14
	buttonWidth  = 180
	buttonHeight = 40
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Mode         components.Mode
	FPS          int32
	Seed         int64
	Gifts        int
	Opened       int
	ScreenWidth  int32
	ScreenHeight int32
}

// StatusText returns the status line for a mode.
func StatusText(m components.Mode) string {
	if m == components.ModeFormation {
		return StatusFormation
	}
	return StatusScattered
}

// ToggleLabel returns the toggle button caption for a mode.
func ToggleLabel(m components.Mode) string {
	if m == components.ModeFormation {
		return "Disperse"
	}
	return "Assemble"
}

// HUD renders the header, status line and mode toggle.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// ButtonBounds returns the toggle button rectangle for a screen size.
func (h *HUD) ButtonBounds(screenW, screenH int32) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(screenW-buttonWidth) / 2,
		Y:      float32(screenH - buttonHeight - 40),
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

// Draw renders the HUD and reports whether the toggle button was pressed.
func (h *HUD) Draw(data HUDData) bool {
	t := h.renderer.Theme
	cx := data.ScreenWidth / 2

	y := int32(30)
	drawTitle(cx, y, t.Title)
	y += titleSize + 4

	sw := rl.MeasureText(SubtitleText, subtitleSize)
	rl.DrawText(SubtitleText, cx-sw/2, y, subtitleSize, t.Subtitle)
	y += subtitleSize + 10

	status := StatusText(data.Mode)
	stw := rl.MeasureText(status, statusSize)
	rl.DrawText(status, cx-stw/2, y, statusSize, t.Status)

	rl.DrawText(
		fmt.Sprintf("FPS: %d | Seed: %d | Gifts opened: %d/%d", data.FPS, data.Seed, data.Opened, data.Gifts),
		10, data.ScreenHeight-20, 12, t.LabelColor,
	)

	return gui.Button(h.ButtonBounds(data.ScreenWidth, data.ScreenHeight), ToggleLabel(data.Mode))
}

// drawTitle draws the title centered on cx with a diaeresis over the "e".
// The built-in font is ASCII only.
func drawTitle(cx, y int32, c rl.Color) {
	w := rl.MeasureText(TitleText, titleSize)
	x := cx - w/2
	rl.DrawText(TitleText, x, y, titleSize, c)

	// Title is "No" + "e" + "l"
	ex := x + rl.MeasureText("No", titleSize) + titleSize/10
	ew := rl.MeasureText("e", titleSize)
	dotY := y - titleSize/12
	r := float32(titleSize) / 16
	rl.DrawCircle(ex+ew/3, dotY, r, c)
	rl.DrawCircle(ex+ew*2/3+int32(r), dotY, r, c)
}

// PerfPanel renders the per-phase frame timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel and returns the Y below it.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, elements, flakes int) int32 {
	r := p.renderer
	padding := r.Theme.Padding
	phases := telemetry.Phases()
	height := padding*2 + r.Theme.LineHeight*4 + 4 + int32(len(phases))*(r.Theme.LineHeight+2)

	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding
	inner := p.width - padding*2

	rl.DrawText("Frame Timing", x, y, 16, r.Theme.ValueColor)
	y += r.Theme.LineHeight + 4
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%s (%s-%s)",
		stats.AvgFrame.Round(time.Microsecond), stats.MinFrame.Round(time.Microsecond), stats.MaxFrame.Round(time.Microsecond)))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%.0f (work %.0f)", stats.FPS, stats.FramesPerSecond))
	y = r.DrawLabelValue(x, y, "Load", fmt.Sprintf("%d elements, %d flakes", elements, flakes))

	for _, phase := range phases {
		y = r.DrawBar(x, y, phase, float32(stats.PhasePct[phase]/100), 0.5, inner)
	}
	return y
}
