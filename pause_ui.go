package main

import (
	"image/color"

	"github.com/milk9111/viewpoint/common"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	pausePanelColor  = color.NRGBA{A: 200}
	pauseButtonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	pauseTextColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type pauseEntry struct {
	label   string
	onClick func()
}

// pauseEntries lists the menu in display order. Leaving the viewpoint and
// quitting both hand the rig back before anything else happens.
func pauseEntries(g *Game) []pauseEntry {
	return []pauseEntry{
		{"Resume", func() { g.paused = false }},
		{"Return to body", func() {
			g.possession.EndPossession(g.world)
			g.paused = false
		}},
		{"Quit", g.Quit},
	}
}

func NewPauseUI(g *Game) *ebitenui.UI {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(pausePanelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Paused", &face, pauseTextColor),
		widget.TextOpts.WidgetOpts(centered),
	))

	btnImg := imageui.NewNineSliceColor(pauseButtonColor)
	for _, entry := range pauseEntries(g) {
		onClick := entry.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(entry.label, &face, &widget.ButtonTextColor{Idle: pauseTextColor}),
			widget.ButtonOpts.WidgetOpts(centered),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
		))
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
