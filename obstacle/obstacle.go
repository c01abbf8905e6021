package obstacle

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/physics"
)

// Spec is the geometry and material for one obstacle kind. Width and Height
// are pixels, Angle radians.
type Spec struct {
	Width    float64
	Height   float64
	Angle    float64
	Material physics.Material
}

// SpecFromLevel converts a level's obstacle block.
func SpecFromLevel(s levels.ObstacleSpec) Spec {
	return Spec{
		Width:  s.Width,
		Height: s.Height,
		Angle:  common.DegToRad(s.Angle),
		Material: physics.Material{
			Density:     s.Material.Density,
			Friction:    s.Material.Friction,
			Restitution: s.Material.Restitution,
		},
	}
}

type pose struct {
	pos   cp.Vector
	angle float64
}

// Obstacle is a ramp or seesaw, placed or still a ghost. A ramp owns Body; a
// seesaw owns Pivot, Plank and the Joint between them.
type Obstacle struct {
	Kind Kind

	Body  *cp.Body
	Pivot *cp.Body
	Plank *cp.Body
	Joint *cp.Constraint

	// Width and Height in pixels.
	Width  float64
	Height float64

	// Seq orders placed obstacles across kinds; zero while a ghost.
	Seq uint64

	world   *physics.World
	ghost   bool
	rest    pose
	hasRest bool
}

// New builds kind centered at pos (meters) using spec's starting angle.
func New(world *physics.World, kind Kind, spec Spec, pos cp.Vector) *Obstacle {
	switch kind {
	case Ramp:
		return NewRamp(world, spec, pos)
	case Seesaw:
		return NewSeesaw(world, spec, pos)
	}
	return nil
}

// NewRamp creates a static box.
func NewRamp(world *physics.World, spec Spec, pos cp.Vector) *Obstacle {
	w, h := world.ToMeters(spec.Width), world.ToMeters(spec.Height)
	return &Obstacle{
		Kind:   Ramp,
		Body:   world.NewStaticBox(pos, w, h, spec.Angle, spec.Material),
		Width:  spec.Width,
		Height: spec.Height,
		world:  world,
	}
}

// NewSeesaw creates a shapeless static pivot and a dynamic plank pinned to it
// at pos.
func NewSeesaw(world *physics.World, spec Spec, pos cp.Vector) *Obstacle {
	w, h := world.ToMeters(spec.Width), world.ToMeters(spec.Height)

	pivot := cp.NewStaticBody()
	pivot.SetPosition(pos)
	world.Space().AddBody(pivot)

	plank := world.NewDynamicBox(pos, w, h, spec.Angle, spec.Material)
	joint := world.NewPivotJoint(pivot, plank, pos)

	return &Obstacle{
		Kind:   Seesaw,
		Pivot:  pivot,
		Plank:  plank,
		Joint:  joint,
		Width:  spec.Width,
		Height: spec.Height,
		world:  world,
	}
}

// Main is the body carrying the obstacle's box shape.
func (o *Obstacle) Main() *cp.Body {
	if o == nil {
		return nil
	}
	if o.Kind == Seesaw {
		return o.Plank
	}
	return o.Body
}

// Position is the ramp's center or the seesaw's pivot, in meters.
func (o *Obstacle) Position() cp.Vector {
	if o == nil {
		return cp.Vector{}
	}
	if o.Kind == Seesaw {
		if o.Pivot == nil {
			return cp.Vector{}
		}
		return o.Pivot.Position()
	}
	if o.Body == nil {
		return cp.Vector{}
	}
	return o.Body.Position()
}

func (o *Obstacle) Angle() float64 {
	main := o.Main()
	if main == nil {
		return 0
	}
	return main.Angle()
}

// MoveTo repositions the obstacle keeping its angle. A seesaw's pivot and
// plank move together so the joint anchor stays shared.
func (o *Obstacle) MoveTo(pos cp.Vector) {
	if o == nil || o.destroyed() {
		return
	}
	switch o.Kind {
	case Ramp:
		o.Body.SetPosition(pos)
		o.world.Reindex(o.Body)
	case Seesaw:
		o.Pivot.SetPosition(pos)
		o.Plank.SetPosition(pos)
		o.world.Reindex(o.Pivot)
		o.world.Reindex(o.Plank)
	}
}

// Rotate turns the main body about its own center.
func (o *Obstacle) Rotate(delta float64) {
	if o == nil || o.destroyed() {
		return
	}
	o.SetAngle(o.Angle() + delta)
}

func (o *Obstacle) SetAngle(angle float64) {
	main := o.Main()
	if main == nil {
		return
	}
	main.SetAngle(angle)
	o.world.Reindex(main)
}

// Contains reports whether the world point p (meters) lies inside any of the
// obstacle's shapes.
func (o *Obstacle) Contains(p cp.Vector) bool {
	if o == nil || o.destroyed() {
		return false
	}
	for _, s := range o.Shapes() {
		if s.PointQuery(p).Distance <= 0 {
			return true
		}
	}
	return false
}

func (o *Obstacle) Shapes() []*cp.Shape {
	var shapes []*cp.Shape
	for _, b := range o.Bodies() {
		b.EachShape(func(s *cp.Shape) { shapes = append(shapes, s) })
	}
	return shapes
}

func (o *Obstacle) Bodies() []*cp.Body {
	if o == nil {
		return nil
	}
	var bodies []*cp.Body
	for _, b := range []*cp.Body{o.Body, o.Pivot, o.Plank} {
		if b != nil {
			bodies = append(bodies, b)
		}
	}
	return bodies
}

// SetGhost makes every shape sensor-only while true so a ghost never pushes
// the ball or placed obstacles.
func (o *Obstacle) SetGhost(ghost bool) {
	if o == nil {
		return
	}
	o.ghost = ghost
	for _, b := range o.Bodies() {
		o.world.SetSensor(b, ghost)
	}
}

func (o *Obstacle) Ghost() bool {
	return o != nil && o.ghost
}

// SaveRest records the current pose of the main body.
func (o *Obstacle) SaveRest() {
	main := o.Main()
	if main == nil {
		return
	}
	o.rest = pose{pos: main.Position(), angle: main.Angle()}
	o.hasRest = true
}

// RestoreRest puts a seesaw plank back where SaveRest found it and stops it.
// Ramps are static and never leave their rest pose.
func (o *Obstacle) RestoreRest() {
	if o == nil || o.Kind != Seesaw || o.Plank == nil || !o.hasRest {
		return
	}
	o.Plank.SetPosition(o.rest.pos)
	o.Plank.SetAngle(o.rest.angle)
	o.Plank.SetVelocity(0, 0)
	o.Plank.SetAngularVelocity(0)
	o.world.Reindex(o.Plank)
}

// Destroy removes every physics object. The obstacle is unusable afterwards.
func (o *Obstacle) Destroy() {
	if o == nil || o.world == nil {
		return
	}
	o.world.DestroyJoint(o.Joint)
	o.world.DestroyBody(o.Plank)
	o.world.DestroyBody(o.Pivot)
	o.world.DestroyBody(o.Body)
	o.Joint, o.Plank, o.Pivot, o.Body = nil, nil, nil, nil
}

// Placement describes the obstacle in layout file units.
func (o *Obstacle) Placement() levels.PlacementSpec {
	x, y := o.world.VecToPixels(o.Position())
	return levels.PlacementSpec{
		Kind:  o.Kind.String(),
		X:     x,
		Y:     y,
		Angle: common.RadToDeg(o.Angle()),
	}
}

func (o *Obstacle) destroyed() bool {
	return o.Body == nil && o.Plank == nil
}
