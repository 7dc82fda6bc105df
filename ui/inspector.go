package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/noel/components"
	"github.com/pthm-cable/noel/systems"
)

// GiftPanel describes the inspector layout for a systems.GiftView.
func GiftPanel() PanelDescriptor {
	return PanelDescriptor{
		Title: "Gift",
		Width: 240,
		Sections: []SectionDescriptor{
			{
				Fields: []FieldDescriptor{
					{Label: "ID", Widget: WidgetText, TextGetter: func(d any) string {
						return fmt.Sprintf("#%d", gift(d).ID)
					}},
					{Label: "Shape", Widget: WidgetText, TextGetter: func(d any) string {
						return gift(d).Shape.String()
					}},
					{Label: "Size", Widget: WidgetText, TextGetter: func(d any) string {
						return dimensions(gift(d))
					}},
					{Label: "Paper", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color {
						return gift(d).Color
					}},
					{Label: "Pattern", Widget: WidgetText, TextGetter: func(d any) string {
						return gift(d).Pattern.String()
					}},
					{Label: "Radius", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 {
						return float32(gift(d).CollisionRadius)
					}},
				},
			},
			{
				Title: "Trim",
				Fields: []FieldDescriptor{
					{Label: "Ribbon", Widget: WidgetColorSwatch, ColorGetter: func(d any) rl.Color {
						return gift(d).Decoration.RibbonColor
					}},
					{Label: "Bow", Widget: WidgetText, TextGetter: func(d any) string {
						return bowName(gift(d).Decoration)
					}},
					{Label: "Tag", Widget: WidgetText, TextGetter: func(d any) string {
						return gift(d).Decoration.TagText
					}, Visible: func(d any) bool {
						return gift(d).Decoration.HasTag
					}},
				},
			},
			{
				Title: "State",
				Fields: []FieldDescriptor{
					{Label: "Open", Widget: WidgetText, TextGetter: func(d any) string {
						if view(d).Open {
							return "yes"
						}
						return "no"
					}},
					{Label: "Lid", Widget: WidgetBar, Getter: func(d any) float32 {
						return LidOpenness(view(d).Lid)
					}},
					{Label: "Height", Widget: WidgetText, Format: "%.1f", Getter: func(d any) float32 {
						return float32(view(d).Motion.Position.Y)
					}},
				},
			},
		},
	}
}

// LidOpenness maps the lid hinge angle to [0, 1].
func LidOpenness(lid components.GiftLid) float32 {
	return float32(math.Min(1, math.Abs(lid.Rotation)/(math.Pi/1.8)))
}

func view(d any) systems.GiftView {
	return d.(systems.GiftView)
}

func gift(d any) *components.Gift {
	return d.(systems.GiftView).Gift
}

func dimensions(g *components.Gift) string {
	switch g.Shape {
	case components.ShapeCylinder:
		return fmt.Sprintf("r %.2f  h %.2f", g.Dimensions[0], g.Dimensions[1])
	case components.ShapeStar:
		return fmt.Sprintf("%.2f x %.2f", g.Dimensions[0], g.Dimensions[2])
	default:
		return fmt.Sprintf("%.1f x %.1f x %.1f", g.Dimensions[0], g.Dimensions[1], g.Dimensions[2])
	}
}

func bowName(d components.Decoration) string {
	if !d.HasBow {
		return "none"
	}
	switch d.Bow {
	case components.BowDouble:
		return "double"
	case components.BowComplex:
		return "complex"
	default:
		return "single"
	}
}

// Inspector renders the hovered gift's panel.
type Inspector struct {
	renderer *Renderer
	panel    PanelDescriptor
	x, y     int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		panel:    GiftPanel(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Width returns the panel width.
func (ins *Inspector) Width() int32 {
	return ins.panel.Width
}

// Draw renders the panel for v and returns the Y below it.
func (ins *Inspector) Draw(v systems.GiftView) int32 {
	return ins.renderer.DrawPanelDescriptor(ins.x, ins.y, ins.panel, v)
}
