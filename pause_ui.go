package main

import (
	"image/color"

	"github.com/milk9111/blockjumper/common"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	pauseTextColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	pausePanelColor  = color.NRGBA{A: 200}
	pauseButtonColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	pauseHoverColor  = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
)

// NewPauseUI builds the centered pause menu: Resume unpauses and Quit
// saves the high score and exits on the next Update.
func NewPauseUI(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(pausePanelColor)
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(pauseButtonColor),
		Hover:   imageui.NewNineSliceColor(pauseHoverColor),
		Pressed: imageui.NewNineSliceColor(pauseHoverColor),
	}

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: pauseTextColor}
	centered := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, pauseTextColor),
		widget.TextOpts.WidgetOpts(centered),
	)

	resumeBtn := widget.NewButton(
		widget.ButtonOpts.Image(btnImg),
		widget.ButtonOpts.Text("Resume", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(centered),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.setPaused(false)
		}),
	)

	quitBtn := widget.NewButton(
		widget.ButtonOpts.Image(btnImg),
		widget.ButtonOpts.Text("Quit", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(centered),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.quit = true
		}),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(resumeBtn)
	panel.AddChild(quitBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
