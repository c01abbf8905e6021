package common

type Rect struct {
	X, Y          float64
	Width, Height float64
}

// CanvasRect is the play field in screen pixels.
var CanvasRect = Rect{X: 0, Y: 0, Width: CanvasWidth, Height: CanvasHeight}

// Contains reports whether the point lies within r, edges included.
func (r *Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

func (r *Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}
