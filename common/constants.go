package common

import "time"

const (
	// CanvasWidth and CanvasHeight are the play field in pixels.
	CanvasWidth  = 960
	CanvasHeight = 640

	// PanelWidth is the toolbox column to the right of the canvas.
	PanelWidth = 240

	BaseWidth  = CanvasWidth + PanelWidth
	BaseHeight = CanvasHeight

	PixelsPerMeter = 40.0
	StepDT         = 1.0 / 60.0
	TPS            = 60

	// StepDuration is one fixed step of wall time.
	StepDuration = time.Second / TPS
)
