// Package render draws a session with ebiten's vector package.
package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/obstacle"
	"github.com/milk9111/rollball/session"
)

// View is everything the renderer reads for one frame. It never mutates it.
type View struct {
	Session  *session.Session
	Ghost    *obstacle.Obstacle
	Selected *obstacle.Obstacle
	Debug    bool
}

type Renderer struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Draw(screen *ebiten.Image, v View) {
	s := v.Session
	if screen == nil || s == nil {
		return
	}
	scale := s.World.PixelsPerMeter()

	screen.Fill(panelColor)
	vector.FillRect(screen, 0, 0, common.CanvasWidth, common.CanvasHeight, backgroundColor, false)
	drawGrid(screen)

	for _, verts := range polygons(s.Floor, scale) {
		r.fillPolygon(screen, verts, floorColor)
		strokePolygon(screen, verts, outlineWidth, strokeColor)
	}
	r.drawBucket(screen, s, scale)

	for _, o := range s.Obstacles() {
		r.drawObstacle(screen, o, scale, false)
	}
	if v.Ghost != nil {
		r.drawObstacle(screen, v.Ghost, scale, true)
	}
	if v.Selected != nil && s.Editing() {
		for _, verts := range polygons(v.Selected.Main(), scale) {
			dashPolygon(screen, inflate(verts, 4), outlineWidth, selectionColor)
		}
	}

	drawBall(screen, s.Ball, s.Level.Ball.Radius, scale)

	if v.Debug {
		DrawPhysicsDebug(screen, s)
	}
}

func drawGrid(screen *ebiten.Image) {
	for x := gridStep; x < common.CanvasWidth; x += gridStep {
		vector.StrokeLine(screen, float32(x), 0, float32(x), common.CanvasHeight, 1, gridColor, false)
	}
	for y := gridStep; y < common.CanvasHeight; y += gridStep {
		vector.StrokeLine(screen, 0, float32(y), common.CanvasWidth, float32(y), 1, gridColor, false)
	}
}

func (r *Renderer) drawBucket(screen *ebiten.Image, s *session.Session, scale float64) {
	touching, _ := s.Touching()
	goal := goalIdle
	if touching {
		goal = goalTouching
	}
	for _, verts := range polygons(s.Bucket.Goal, scale) {
		r.fillPolygon(screen, verts, goal)
	}
	for _, wall := range s.Bucket.Walls {
		for _, verts := range polygons(wall, scale) {
			r.fillPolygon(screen, verts, strokeColor)
		}
	}
}

func (r *Renderer) drawObstacle(screen *ebiten.Image, o *obstacle.Obstacle, scale float64, ghost bool) {
	fill := rampColor
	if o.Kind == obstacle.Seesaw {
		fill = seesawColor
	}
	for _, verts := range polygons(o.Main(), scale) {
		if ghost {
			r.fillPolygon(screen, verts, withAlpha(fill, ghostAlpha))
			dashPolygon(screen, verts, outlineWidth, ghostColor)
			continue
		}
		r.fillPolygon(screen, verts, fill)
		strokePolygon(screen, verts, outlineWidth, strokeColor)
	}
	if o.Kind == obstacle.Seesaw && o.Pivot != nil {
		p := o.Pivot.Position().Mult(scale)
		vector.FillCircle(screen, float32(p.X), float32(p.Y), pivotRadius, strokeColor, true)
	}
}

func drawBall(screen *ebiten.Image, ball *cp.Body, radius, scale float64) {
	if ball == nil {
		return
	}
	p := ball.Position().Mult(scale)
	x, y, rad := float32(p.X), float32(p.Y), float32(radius)
	vector.FillCircle(screen, x, y, rad, ballColor, true)
	vector.StrokeCircle(screen, x, y, rad, outlineWidth, ballStroke, true)

	// spoke so rolling is visible
	a := ball.Angle()
	ex, ey := p.X+math.Cos(a)*radius*0.7, p.Y+math.Sin(a)*radius*0.7
	vector.StrokeLine(screen, x, y, float32(ex), float32(ey), outlineWidth, ballStroke, true)
}
