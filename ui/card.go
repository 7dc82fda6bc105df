package ui

import (
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	cardWidth    = 420
	cardFontSize = 24
	cardHeading  = "A message for you"
)

// CardOverlay shows the message of an opened gift until it is closed.
type CardOverlay struct {
	renderer *Renderer
	message  string
	visible  bool

	// OnClose runs when the Close button is pressed.
	OnClose func()
}

// NewCardOverlay creates a hidden card overlay.
func NewCardOverlay() *CardOverlay {
	return &CardOverlay{renderer: NewRenderer()}
}

// Open shows the card with message. A later Open replaces the message.
func (c *CardOverlay) Open(message string) {
	c.message = message
	c.visible = true
}

// Close hides the card.
func (c *CardOverlay) Close() {
	c.visible = false
	c.message = ""
}

// Visible reports whether the card is shown.
func (c *CardOverlay) Visible() bool {
	return c.visible
}

// Message returns the shown message.
func (c *CardOverlay) Message() string {
	return c.message
}

// Draw renders the card centered on screen. The Close button hides the card
// and calls OnClose.
func (c *CardOverlay) Draw(screenW, screenH int32) {
	if !c.visible {
		return
	}
	t := c.renderer.Theme

	rl.DrawRectangle(0, 0, screenW, screenH, t.Dim)

	lines := wrapText(c.message, cardFontSize, cardWidth-2*t.Padding*3)
	lineH := int32(cardFontSize + 6)
	height := t.Padding*6 + 24 + int32(len(lines))*lineH + 50

	x := (screenW - cardWidth) / 2
	y := (screenH - height) / 2
	rl.DrawRectangleRounded(rl.Rectangle{X: float32(x), Y: float32(y), Width: cardWidth, Height: float32(height)}, 0.05, 8, t.CardBg)
	rl.DrawRectangleRoundedLines(rl.Rectangle{X: float32(x), Y: float32(y), Width: cardWidth, Height: float32(height)}, 0.05, 8, t.Title)

	cy := y + t.Padding*3
	hw := rl.MeasureText(cardHeading, 16)
	rl.DrawText(cardHeading, x+(cardWidth-hw)/2, cy, 16, t.PanelBorder)
	cy += 24 + t.Padding

	for _, line := range lines {
		lw := rl.MeasureText(line, cardFontSize)
		rl.DrawText(line, x+(cardWidth-lw)/2, cy, cardFontSize, t.CardInk)
		cy += lineH
	}

	btn := rl.Rectangle{X: float32(x + (cardWidth-120)/2), Y: float32(cy + t.Padding), Width: 120, Height: 34}
	if gui.Button(btn, "Close") {
		c.Close()
		if c.OnClose != nil {
			c.OnClose()
		}
	}
}

// wrapText splits text into lines no wider than maxWidth pixels.
func wrapText(text string, fontSize, maxWidth int32) []string {
	return wrapLines(text, maxWidth, func(s string) int32 { return rl.MeasureText(s, fontSize) })
}

// wrapLines keeps the explicit line breaks of text and word-wraps each line to
// maxWidth. Blank lines are kept as empty strings.
func wrapLines(text string, maxWidth int32, measure func(string) int32) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measure(candidate) > maxWidth {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
