// Package ui builds the toolbox column and HUD with ebitenui.
package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/event"
	"github.com/milk9111/rollball/input"
	"github.com/milk9111/rollball/obstacle"
	"github.com/milk9111/rollball/play"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	panelBackground = color.NRGBA{R: 0x2b, G: 0x2f, B: 0x36, A: 0xff}
	buttonIdle      = color.NRGBA{R: 0xf1, G: 0xd9, B: 0xb8, A: 0xff}
	buttonHover     = color.NRGBA{R: 0xf6, G: 0xe6, B: 0xcf, A: 0xff}
	buttonPressed   = color.NRGBA{R: 0xd9, G: 0xbf, B: 0x9c, A: 0xff}
	buttonDisabled  = color.NRGBA{R: 0x6b, G: 0x6f, B: 0x76, A: 0xff}
	buttonText      = color.NRGBA{R: 0x3b, G: 0x26, B: 0x18, A: 0xff}
	hudText         = color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	bannerText      = color.NRGBA{R: 0xf3, G: 0x85, B: 0x2e, A: 0xff}
)

// Toolbox is the column to the right of the canvas: one start button per
// obstacle kind with its remaining count, play/reset, and the HUD.
type Toolbox struct {
	UI *ebitenui.UI

	ctrl    *play.Controller
	buttons map[obstacle.Kind]*widget.Button
	play    *widget.Button
	reset   *widget.Button
	phase   *widget.Text
	tries   *widget.Text
	timer   *widget.Text
	banner  *widget.Text
}

// NewToolbox builds the panel. pressed reports the pointer that went down this
// frame so a drag from a button binds the ghost to that mouse or finger.
// onCopy, if set, backs the copy layout button.
func NewToolbox(ctrl *play.Controller, pressed func() input.PointerID, onCopy func()) *Toolbox {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var face text.Face = &text.GoTextFace{Source: s, Size: 16}
	var small text.Face = &text.GoTextFace{Source: s, Size: 13}

	t := &Toolbox{
		ctrl:    ctrl,
		buttons: make(map[obstacle.Kind]*widget.Button, len(obstacle.Kinds)),
	}

	btnImg := &widget.ButtonImage{
		Idle:     imageui.NewNineSliceColor(buttonIdle),
		Hover:    imageui.NewNineSliceColor(buttonHover),
		Pressed:  imageui.NewNineSliceColor(buttonPressed),
		Disabled: imageui.NewNineSliceColor(buttonDisabled),
	}
	btnTextColor := &widget.ButtonTextColor{Idle: buttonText, Disabled: hudText}
	rowData := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})
	padding := widget.ButtonOpts.TextPadding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelBackground)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.PanelWidth, common.BaseHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchVertical:    true,
			}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Toolbox", &face, hudText),
		widget.TextOpts.WidgetOpts(rowData),
	))

	for _, kind := range obstacle.Kinds {
		kind := kind
		btn := widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(ctrl.Gate.Label(kind), &face, btnTextColor),
			padding,
			widget.ButtonOpts.WidgetOpts(rowData),
			// press starts a drag onto the canvas
			widget.ButtonOpts.PressedHandler(func(args *widget.ButtonPressedEventArgs) {
				id := input.NoPointer
				if pressed != nil {
					id = pressed()
				}
				ctrl.StartPlacing(kind, id)
			}),
			// a plain click leaves the ghost waiting for a click on the canvas
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				ctrl.StartPlacing(kind, input.NoPointer)
			}),
		)
		t.buttons[kind] = btn
		panel.AddChild(btn)
	}

	t.play = widget.NewButton(
		widget.ButtonOpts.Image(btnImg),
		widget.ButtonOpts.Text("Play (Space)", &face, btnTextColor),
		padding,
		widget.ButtonOpts.WidgetOpts(rowData),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			ctrl.HandleAction(input.ActionPlay)
		}),
	)
	t.reset = widget.NewButton(
		widget.ButtonOpts.Image(btnImg),
		widget.ButtonOpts.Text("Reset (R)", &face, btnTextColor),
		padding,
		widget.ButtonOpts.WidgetOpts(rowData),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			ctrl.HandleAction(input.ActionReset)
		}),
	)
	panel.AddChild(t.play)
	panel.AddChild(t.reset)

	if onCopy != nil {
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text("Copy layout (C)", &small, btnTextColor),
			padding,
			widget.ButtonOpts.WidgetOpts(rowData),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onCopy()
			}),
		))
	}

	t.phase = widget.NewText(widget.TextOpts.Text("", &small, hudText), widget.TextOpts.WidgetOpts(rowData))
	t.tries = widget.NewText(widget.TextOpts.Text("", &small, hudText), widget.TextOpts.WidgetOpts(rowData))
	t.timer = widget.NewText(widget.TextOpts.Text("", &small, hudText), widget.TextOpts.WidgetOpts(rowData))
	t.banner = widget.NewText(widget.TextOpts.Text("", &face, bannerText), widget.TextOpts.WidgetOpts(rowData))
	panel.AddChild(t.phase)
	panel.AddChild(t.tries)
	panel.AddChild(t.timer)
	panel.AddChild(t.banner)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Q/E rotate  Del remove\n1/2 pick  F3 debug", &small, hudText),
		widget.TextOpts.WidgetOpts(rowData),
	))

	ctrl.Gate.OnChange(func(kind obstacle.Kind, available int) {
		if btn, ok := t.buttons[kind]; ok {
			btn.SetText(ctrl.Gate.Label(kind))
		}
	})
	event.Subscribe(ctrl.Bus, func(m event.Won) {
		t.banner.Label = WinText(m)
	})

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	t.UI = &ebitenui.UI{Container: root}
	t.Refresh()
	return t
}

// Refresh syncs enabled state and HUD text with the controller. Call once per
// frame before Update.
func (t *Toolbox) Refresh() {
	s := t.ctrl.Session
	editing := s.Editing()
	placing := t.ctrl.Placement.Placing()

	for kind, btn := range t.buttons {
		stocked := false
		for _, k := range t.ctrl.Gate.Kinds() {
			if k == kind {
				stocked = true
				break
			}
		}
		if !stocked {
			btn.GetWidget().Visibility = widget.Visibility_Hide
			continue
		}
		btn.GetWidget().Visibility = widget.Visibility_Show
		// keep the pressed button live so its click can follow a cancelled drag
		btn.GetWidget().Disabled = !editing || (t.ctrl.Gate.Available(kind) == 0 && !(placing && t.ctrl.Placement.Kind() == kind))
	}
	t.play.GetWidget().Disabled = !editing
	t.reset.GetWidget().Disabled = s.Tries == 0 && editing

	t.phase.Label = "Mode: " + s.Phase().String()
	t.tries.Label = fmt.Sprintf("Tries: %d", s.Tries)
	t.timer.Label = fmt.Sprintf("Time: %.1fs", s.Elapsed().Seconds())
	if !s.Won() {
		t.banner.Label = ""
	}
}

func (t *Toolbox) Update() {
	t.Refresh()
	t.UI.Update()
}

func (t *Toolbox) Draw(screen *ebiten.Image) {
	t.UI.Draw(screen)
}

// WinText is the banner for a won attempt. Stars are shown when rated.
func WinText(m event.Won) string {
	msg := fmt.Sprintf("Level complete!\n%d tries, %.1fs", m.Tries, m.Elapsed.Seconds())
	if m.Stars >= 0 {
		msg += "\n" + strings.Repeat("*", m.Stars) + strings.Repeat("-", max(0, 3-m.Stars))
	}
	return msg
}
