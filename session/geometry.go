package session

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/physics"
)

func material(m levels.MaterialSpec) physics.Material {
	return physics.Material{Density: m.Density, Friction: m.Friction, Restitution: m.Restitution}
}

func (s *Session) buildFloor() {
	f := s.Level.Floor
	w := s.World
	s.Floor = w.NewStaticBox(w.VecToMeters(f.X, f.Y), w.ToMeters(f.Width), w.ToMeters(f.Height), 0, material(f.Material))
}

func (s *Session) buildBall() {
	b := s.Level.Ball
	w := s.World
	s.ballStart = w.VecToMeters(b.X, b.Y)
	s.Ball = w.NewDynamicCircle(s.ballStart, w.ToMeters(b.Radius), material(b.Material))
	w.SetCollisionType(s.Ball, physics.CollisionBall)
	w.SetLinearDamping(s.Ball, b.Material.LinearDamping)
}

// buildBucket lays out the walls around (X, Y), the center of the base.
func (s *Session) buildBucket() {
	b := s.Level.Bucket
	w := s.World
	wallMat := physics.Material{Friction: 0.2}

	left := w.NewStaticBox(
		w.VecToMeters(b.X-b.InnerWidth/2, b.Y-b.WallHeight/2),
		w.ToMeters(b.WallThickness), w.ToMeters(b.WallHeight), 0, wallMat)
	right := w.NewStaticBox(
		w.VecToMeters(b.X+b.InnerWidth/2, b.Y-b.WallHeight/2),
		w.ToMeters(b.WallThickness), w.ToMeters(b.WallHeight), 0, wallMat)
	base := w.NewStaticBox(
		w.VecToMeters(b.X, b.Y),
		w.ToMeters(b.InnerWidth), w.ToMeters(b.WallThickness), 0, wallMat)

	goal := cp.NewStaticBody()
	goal.SetPosition(w.VecToMeters(b.X, b.Y+b.SensorOffset))
	w.Space().AddBody(goal)
	sensor := w.NewSensorBox(goal, cp.Vector{},
		w.ToMeters(b.InnerWidth-b.SensorInset), w.ToMeters(b.SensorHeight), physics.CollisionGoal)

	s.Bucket = Bucket{
		Walls:  []*cp.Body{left, right, base},
		Goal:   goal,
		Sensor: sensor,
	}
}
