package render

import (
	"image/color"

	"golang.org/x/image/colornames"
)

var (
	backgroundColor = color.RGBA{R: 0xfb, G: 0xf8, B: 0xf1, A: 0xff}
	gridColor       = color.NRGBA{R: 0xa9, G: 0xcf, B: 0xcf, A: 46}
	floorColor      = color.RGBA{R: 0xd8, G: 0xc3, B: 0xa0, A: 0xff}
	strokeColor     = color.RGBA{R: 0x8a, G: 0x5a, B: 0x3b, A: 0xff}
	rampColor       = color.RGBA{R: 0xf1, G: 0xd9, B: 0xb8, A: 0xff}
	seesawColor     = color.RGBA{R: 0xa8, G: 0xd1, B: 0xf1, A: 0xff}
	ballColor       = color.RGBA{R: 0xf3, G: 0x85, B: 0x2e, A: 0xff}
	ballStroke      = color.RGBA{R: 0xd2, G: 0x6e, B: 0x1f, A: 0xff}
	selectionColor  = color.RGBA{R: 0xf3, G: 0x85, B: 0x2e, A: 0xff}
	ghostColor      = colornames.Lightseagreen
	goalIdle        = color.NRGBA{R: 0x20, G: 0xb2, B: 0xaa, A: 40}
	goalTouching    = color.NRGBA{R: 0x3c, G: 0xb3, B: 0x71, A: 110}
	panelColor      = colornames.Whitesmoke
)

const (
	gridStep     = 40
	pivotRadius  = 5
	outlineWidth = 2
	dashLength   = 6
	dashGap      = 4
	ghostAlpha   = 0.5
)
