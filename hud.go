package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// HUD is the viewer's overlay: frame stats, the recent script emits and
// buttons for the debug bounds and pause.
type HUD struct {
	ui *ebitenui.UI

	stats     *widget.Text
	scriptLog *widget.Text
	boundsBtn *widget.Button
	pauseBtn  *widget.Button
}

func NewHUD(g *Game) *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressedImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	h := &HUD{}
	h.stats = widget.NewText(widget.TextOpts.Text("", &face, white))
	h.scriptLog = widget.NewText(widget.TextOpts.Text("", &face, color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}))

	newButton := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressedImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Left: 6, Right: 6, Top: 2, Bottom: 2}),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}
	h.boundsBtn = newButton(boundsLabel(g.debugDraw.ShowBounds), g.toggleBounds)
	h.pauseBtn = newButton(pauseLabel(g.paused), g.togglePause)

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
	buttons.AddChild(h.boundsBtn)
	buttons.AddChild(h.pauseBtn)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/4, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(h.stats)
	panel.AddChild(buttons)
	panel.AddChild(h.scriptLog)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.NewInsetsSimple(10)),
		)),
	)
	root.AddChild(panel)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func (h *HUD) Update(g *Game) {
	h.stats.Label = fmt.Sprintf("Frames: %d    FPS: %.2f    Colliders: %d", g.frames, ebiten.ActualFPS(), g.physics.Len())
	h.scriptLog.Label = strings.Join(g.scriptLog, "\n")
	h.boundsBtn.SetText(boundsLabel(g.debugDraw.ShowBounds))
	h.pauseBtn.SetText(pauseLabel(g.paused))
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

func boundsLabel(on bool) string {
	if on {
		return "Bounds: on (F1)"
	}
	return "Bounds: off (F1)"
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume (P)"
	}
	return "Pause (P)"
}
