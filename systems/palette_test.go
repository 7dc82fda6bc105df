package systems

import (
	"image/color"
	"testing"
)

func TestPalette(t *testing.T) {
	tests := []struct {
		name string
		got  color.RGBA
		want color.RGBA
	}{
		{"gift red", GiftRed, color.RGBA{R: 0xDC, G: 0x26, B: 0x26, A: 255}},
		{"gift blue", GiftBlue, color.RGBA{R: 0x25, G: 0x63, B: 0xEB, A: 255}},
		{"gold", ColorGoldMetallic, color.RGBA{R: 0xFF, G: 0xD7, B: 0x00, A: 255}},
		{"white", ColorWhiteSilk, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestHexPanicsOnBadInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for malformed hex")
		}
	}()
	hex("#GG0000")
}
