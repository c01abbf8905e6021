// Package selection lets the player pick up, drag, rotate and delete placed
// obstacles while editing.
package selection

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/event"
	"github.com/milk9111/rollball/input"
	"github.com/milk9111/rollball/obstacle"
	"github.com/milk9111/rollball/session"
)

type Controller struct {
	bus     *event.Bus
	session *session.Session
	canvas  common.Rect

	selected *obstacle.Obstacle
	dragging bool
	pointer  input.PointerID
	// offset is pointer minus obstacle position, in meters, taken on grab.
	offset cp.Vector
}

func New(bus *event.Bus) *Controller {
	return &Controller{
		bus:     bus,
		canvas:  common.CanvasRect,
		pointer: input.NoPointer,
	}
}

// Bind switches to a new session and forgets the selection.
func (c *Controller) Bind(s *session.Session) {
	if c == nil {
		return
	}
	c.Clear()
	c.session = s
}

func (c *Controller) Selected() *obstacle.Obstacle {
	if c == nil {
		return nil
	}
	return c.selected
}

func (c *Controller) Dragging() bool {
	return c != nil && c.dragging
}

// Select makes o the selection without starting a drag.
func (c *Controller) Select(o *obstacle.Obstacle) {
	if c == nil {
		return
	}
	c.EndDrag()
	c.selected = o
}

func (c *Controller) Clear() {
	if c == nil {
		return
	}
	c.EndDrag()
	c.selected = nil
}

func (c *Controller) EndDrag() {
	if c == nil {
		return
	}
	c.dragging = false
	c.pointer = input.NoPointer
	c.offset = cp.Vector{}
}

// HitTest returns the most recently placed obstacle containing the screen
// point, or nil.
func (c *Controller) HitTest(x, y float64) *obstacle.Obstacle {
	if c == nil || c.session == nil {
		return nil
	}
	p := c.session.World.VecToMeters(x, y)
	all := c.session.Obstacles()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Contains(p) {
			return all[i]
		}
	}
	return nil
}

// HandlePointer drives selection and dragging. It only acts while editing.
func (c *Controller) HandlePointer(ev input.PointerEvent) bool {
	if c == nil || c.session == nil || !c.session.Editing() {
		return false
	}

	switch ev.Phase {
	case input.PhaseDown:
		if c.dragging || !c.canvas.Contains(ev.X, ev.Y) {
			return false
		}
		hit := c.HitTest(ev.X, ev.Y)
		if hit == nil {
			c.Clear()
			return true
		}
		c.selected = hit
		c.dragging = true
		c.pointer = ev.ID
		c.offset = c.session.World.VecToMeters(ev.X, ev.Y).Sub(hit.Position())
		return true

	case input.PhaseMove:
		if !c.dragging || ev.ID != c.pointer {
			return false
		}
		p := c.session.World.VecToMeters(ev.X, ev.Y)
		c.selected.MoveTo(p.Sub(c.offset))
		return true

	case input.PhaseUp:
		if !c.dragging || ev.ID != c.pointer {
			return false
		}
		c.EndDrag()
		return true
	}
	return false
}

// Rotate turns the selection by delta radians. A seesaw turns its plank about
// the pivot.
func (c *Controller) Rotate(delta float64) bool {
	if c == nil || c.selected == nil || c.session == nil || !c.session.Editing() {
		return false
	}
	c.selected.Rotate(delta)
	return true
}

// Delete removes the selection and refunds it to the inventory.
func (c *Controller) Delete() bool {
	if c == nil || c.selected == nil || c.session == nil || !c.session.Editing() {
		return false
	}
	o := c.selected
	c.Clear()
	if !c.session.RemoveObstacle(o) {
		return false
	}
	log.Printf("Selection: deleted %s #%d", o.Kind, o.Seq)
	c.bus.Publish(event.Refund{Obstacle: o.Kind})
	return true
}
