package systems

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Scene palette.
var (
	ColorGoldMetallic   = hex("#FFD700")
	ColorRedMetallic    = hex("#EF4444")
	ColorEmeraldDeep    = hex("#15803D")
	ColorEmeraldBright  = hex("#22C55E")
	ColorEmeraldDarkest = hex("#14532D")
	ColorPlatinum       = hex("#F1F5F9")
	ColorWhiteSilk      = hex("#FFFFFF")
	ColorWarmGlow       = hex("#FFE5B4")
	ColorCardPaper      = hex("#FFF8DC")
)

// Gift wrapping palette.
var (
	GiftRed   = hex("#DC2626")
	GiftGreen = hex("#16A34A")
	GiftGold  = hex("#F59E0B")
	GiftBlue  = hex("#2563EB")
)

func hex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("palette: %v", err))
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
