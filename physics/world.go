package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rollball/common"
)

const (
	CollisionSolid cp.CollisionType = iota + 1
	CollisionBall
	CollisionGoal
)

type Config struct {
	PixelsPerMeter float64
	// Gravity in m/s², positive is down the screen.
	Gravity    float64
	Iterations int
	// StepDT is the fixed timestep in seconds.
	StepDT float64
}

type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
}

// ContactListener receives ball/goal sensor transitions. Calls happen inside
// Step on the caller's goroutine.
type ContactListener interface {
	BeginGoalContact()
	EndGoalContact()
}

// World owns the Chipmunk space for one level attempt. Positions passed in and
// out are meters unless a method says otherwise.
type World struct {
	space         *cp.Space
	scale         float64
	dt            float64
	handlersReady bool
	listener      ContactListener
}

func NewWorld(cfg Config) *World {
	if cfg.PixelsPerMeter <= 0 {
		cfg.PixelsPerMeter = common.PixelsPerMeter
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 20
	}
	if cfg.StepDT <= 0 {
		cfg.StepDT = common.StepDT
	}

	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})

	w := &World{
		space: space,
		scale: cfg.PixelsPerMeter,
		dt:    cfg.StepDT,
	}
	w.setupHandlers()
	return w
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

func (w *World) PixelsPerMeter() float64 {
	if w == nil {
		return 0
	}
	return w.scale
}

func (w *World) StepDT() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

func (w *World) ToMeters(px float64) float64 { return px / w.scale }

func (w *World) ToPixels(m float64) float64 { return m * w.scale }

func (w *World) VecToMeters(x, y float64) cp.Vector {
	return cp.Vector{X: x / w.scale, Y: y / w.scale}
}

func (w *World) VecToPixels(v cp.Vector) (float64, float64) {
	return v.X * w.scale, v.Y * w.scale
}

// Step advances the simulation by one fixed timestep.
func (w *World) Step() {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(w.dt)
}

// NewStaticBox creates a static body at center with one box shape.
func (w *World) NewStaticBox(center cp.Vector, width, height, angle float64, mat Material) *cp.Body {
	body := cp.NewStaticBody()
	body.SetPosition(center)
	body.SetAngle(angle)
	w.space.AddBody(body)
	w.addBoxShape(body, width, height, mat)
	return body
}

// NewDynamicBox creates a dynamic body whose mass is density × area.
func (w *World) NewDynamicBox(center cp.Vector, width, height, angle float64, mat Material) *cp.Body {
	mass := massFor(mat.Density, width*height)
	body := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	body.SetPosition(center)
	body.SetAngle(angle)
	w.space.AddBody(body)
	w.addBoxShape(body, width, height, mat)
	return body
}

func (w *World) NewDynamicCircle(center cp.Vector, radius float64, mat Material) *cp.Body {
	mass := massFor(mat.Density, math.Pi*radius*radius)
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(center)
	w.space.AddBody(body)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	applyMaterial(shape, mat)
	w.space.AddShape(shape)
	return body
}

// NewSensorBox adds a sensor box to an existing body, offset from its origin.
func (w *World) NewSensorBox(body *cp.Body, offset cp.Vector, width, height float64, ct cp.CollisionType) *cp.Shape {
	hw, hh := width/2, height/2
	bb := cp.BB{L: offset.X - hw, B: offset.Y - hh, R: offset.X + hw, T: offset.Y + hh}
	shape := cp.NewBox2(body, bb, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(ct)
	w.space.AddShape(shape)
	return shape
}

// NewPivotJoint pins a and b together at a world anchor, leaving rotation free.
func (w *World) NewPivotJoint(a, b *cp.Body, anchor cp.Vector) *cp.Constraint {
	return w.space.AddConstraint(cp.NewPivotJoint(a, b, anchor))
}

// DestroyBody removes a body and every shape attached to it.
func (w *World) DestroyBody(body *cp.Body) {
	if w == nil || body == nil || !w.space.ContainsBody(body) {
		return
	}
	var shapes []*cp.Shape
	body.EachShape(func(s *cp.Shape) { shapes = append(shapes, s) })
	for _, s := range shapes {
		w.space.RemoveShape(s)
	}
	w.space.RemoveBody(body)
}

func (w *World) DestroyJoint(joint *cp.Constraint) {
	if w == nil || joint == nil || !w.space.ContainsConstraint(joint) {
		return
	}
	w.space.RemoveConstraint(joint)
}

// Reindex refreshes cached geometry after a body was moved by hand. Static
// shapes are only reinserted into the spatial index when added, so every shape
// is removed and added back.
func (w *World) Reindex(body *cp.Body) {
	if w == nil || body == nil || !w.space.ContainsBody(body) {
		return
	}
	var shapes []*cp.Shape
	body.EachShape(func(s *cp.Shape) { shapes = append(shapes, s) })
	for _, s := range shapes {
		w.space.RemoveShape(s)
		w.space.AddShape(s)
	}
}

// SetSensor toggles every shape on body between solid and sensor-only.
func (w *World) SetSensor(body *cp.Body, sensor bool) {
	if body == nil {
		return
	}
	body.EachShape(func(s *cp.Shape) { s.SetSensor(sensor) })
}

func (w *World) SetCollisionType(body *cp.Body, ct cp.CollisionType) {
	if body == nil {
		return
	}
	body.EachShape(func(s *cp.Shape) { s.SetCollisionType(ct) })
}

// SetLinearDamping applies per-body damping on top of the space's own,
// v *= 1 / (1 + dt*damping) every step.
func (w *World) SetLinearDamping(body *cp.Body, damping float64) {
	if body == nil || damping <= 0 {
		return
	}
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, spaceDamping float64, dt float64) {
		cp.BodyUpdateVelocity(b, gravity, spaceDamping/(1+dt*damping), dt)
	})
}

func (w *World) addBoxShape(body *cp.Body, width, height float64, mat Material) *cp.Shape {
	shape := cp.NewBox(body, width, height, 0)
	applyMaterial(shape, mat)
	shape.SetCollisionType(CollisionSolid)
	w.space.AddShape(shape)
	return shape
}

func applyMaterial(shape *cp.Shape, mat Material) {
	shape.SetFriction(mat.Friction)
	shape.SetElasticity(mat.Restitution)
}

func massFor(density, area float64) float64 {
	if density <= 0 {
		density = 1
	}
	return density * area
}
