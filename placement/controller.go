// Package placement turns toolbox start requests into ghost obstacles that
// follow a pointer until they are dropped on the canvas or cancelled.
package placement

import (
	"log"

	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/event"
	"github.com/milk9111/rollball/input"
	"github.com/milk9111/rollball/inventory"
	"github.com/milk9111/rollball/obstacle"
	"github.com/milk9111/rollball/session"
)

type State int

const (
	Idle State = iota
	Placing
)

func (s State) String() string {
	if s == Placing {
		return "placing"
	}
	return "idle"
}

// Controller owns at most one ghost at a time.
type Controller struct {
	bus     *event.Bus
	gate    *inventory.Gate
	session *session.Session
	canvas  common.Rect

	state   State
	kind    obstacle.Kind
	ghost   *obstacle.Obstacle
	pointer input.PointerID

	onConfirm []func(*obstacle.Obstacle)
}

// New subscribes the controller to Start messages on bus.
func New(bus *event.Bus, gate *inventory.Gate) *Controller {
	c := &Controller{
		bus:     bus,
		gate:    gate,
		canvas:  common.CanvasRect,
		pointer: input.NoPointer,
	}
	event.Subscribe(bus, func(m event.Start) { c.Start(m.Obstacle, m.Pointer) })
	return c
}

// Bind switches to a new session, cancelling any ghost built in the old one.
func (c *Controller) Bind(s *session.Session) {
	if c == nil {
		return
	}
	c.Abort()
	c.session = s
}

// OnConfirm registers fn to run with every obstacle dropped on the canvas.
func (c *Controller) OnConfirm(fn func(*obstacle.Obstacle)) {
	if c == nil || fn == nil {
		return
	}
	c.onConfirm = append(c.onConfirm, fn)
}

func (c *Controller) State() State {
	if c == nil {
		return Idle
	}
	return c.state
}

func (c *Controller) Placing() bool { return c.State() == Placing }

func (c *Controller) Kind() obstacle.Kind {
	if c == nil {
		return obstacle.KindNone
	}
	return c.kind
}

func (c *Controller) Ghost() *obstacle.Obstacle {
	if c == nil {
		return nil
	}
	return c.ghost
}

// Pointer is the pointer the ghost follows, or input.NoPointer while it waits
// for a press.
func (c *Controller) Pointer() input.PointerID {
	if c == nil {
		return input.NoPointer
	}
	return c.pointer
}

// Start creates a ghost of kind at the canvas center. It does nothing while a
// ghost exists, outside editing, or when the inventory has none left.
func (c *Controller) Start(kind obstacle.Kind, pointer input.PointerID) bool {
	if c == nil || c.state != Idle || c.session == nil || !c.session.Editing() {
		return false
	}
	spec, ok := c.session.Level.Obstacle(kind.String())
	if !ok {
		return false
	}
	if !c.gate.Hold(kind) {
		return false
	}

	world := c.session.World
	cx, cy := c.canvas.Center()
	ghost := obstacle.New(world, kind, obstacle.SpecFromLevel(spec), world.VecToMeters(cx, cy))
	ghost.SetGhost(true)

	c.state = Placing
	c.kind = kind
	c.ghost = ghost
	c.pointer = pointer
	log.Printf("Placement: start %s, pointer %d", kind, pointer)
	return true
}

// HandlePointer consumes events for the ghost. It reports false for events
// it ignores so another controller may use them.
func (c *Controller) HandlePointer(ev input.PointerEvent) bool {
	if c == nil || c.state != Placing || c.session == nil || !c.session.Editing() {
		return false
	}

	if c.pointer == input.NoPointer {
		switch {
		case ev.Phase == input.PhaseDown && c.canvas.Contains(ev.X, ev.Y):
			c.pointer = ev.ID
			c.follow(ev)
			return true
		case ev.Phase == input.PhaseMove && ev.ID == input.Mouse && c.canvas.Contains(ev.X, ev.Y):
			c.follow(ev)
			return true
		}
		return false
	}

	if ev.ID != c.pointer {
		return false
	}
	switch ev.Phase {
	case input.PhaseMove:
		c.follow(ev)
	case input.PhaseUp:
		if c.canvas.Contains(ev.X, ev.Y) {
			c.follow(ev)
			c.confirm()
		} else {
			c.cancel()
		}
	}
	return true
}

// Rotate turns a rotatable ghost by delta radians.
func (c *Controller) Rotate(delta float64) bool {
	if c == nil || c.state != Placing || !c.kind.Rotatable() {
		return false
	}
	c.ghost.Rotate(delta)
	return true
}

// Abort cancels the ghost, if any, and refunds it.
func (c *Controller) Abort() bool {
	if c == nil || c.state != Placing {
		return false
	}
	c.cancel()
	return true
}

func (c *Controller) follow(ev input.PointerEvent) {
	c.ghost.MoveTo(c.session.World.VecToMeters(ev.X, ev.Y))
}

func (c *Controller) confirm() {
	o, kind := c.ghost, c.kind
	c.clear()

	o.SetGhost(false)
	c.session.AddObstacle(o)
	log.Printf("Placement: confirmed %s #%d", kind, o.Seq)
	c.bus.Publish(event.Consume{Obstacle: kind})
	for _, fn := range c.onConfirm {
		fn(o)
	}
}

func (c *Controller) cancel() {
	o, kind := c.ghost, c.kind
	c.clear()

	o.Destroy()
	log.Printf("Placement: cancelled %s", kind)
	c.bus.Publish(event.Refund{Obstacle: kind})
}

func (c *Controller) clear() {
	c.state = Idle
	c.kind = obstacle.KindNone
	c.ghost = nil
	c.pointer = input.NoPointer
}
