// Package play owns one level attempt at a time and routes input to the
// placement, selection and session state machines.
package play

import (
	"log"
	"time"

	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/event"
	"github.com/milk9111/rollball/input"
	"github.com/milk9111/rollball/inventory"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/obstacle"
	"github.com/milk9111/rollball/placement"
	"github.com/milk9111/rollball/selection"
	"github.com/milk9111/rollball/session"
)

type Options struct {
	// Now defaults to time.Now. Tests and the headless runner pass a
	// simulated clock.
	Now   func() time.Time
	Rater session.Rater
}

type Controller struct {
	Bus       *event.Bus
	Gate      *inventory.Gate
	Session   *session.Session
	Placement *placement.Controller
	Selection *selection.Controller

	level *levels.Level
	now   func() time.Time
	rater session.Rater
}

func New(lvl *levels.Level, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	bus := event.NewBus()
	gate := inventory.New(lvl.Inventory, lvl.Controls.Debounce())
	gate.SetClock(opts.Now)
	gate.Attach(bus)

	c := &Controller{
		Bus:       bus,
		Gate:      gate,
		Placement: placement.New(bus, gate),
		Selection: selection.New(bus),
		level:     lvl,
		now:       opts.Now,
		rater:     opts.Rater,
	}
	c.Placement.OnConfirm(c.Selection.Select)
	c.bindSession()
	return c
}

func (c *Controller) Level() *levels.Level {
	return c.level
}

// SetRater replaces the rating script, for example after a hot reload.
func (c *Controller) SetRater(r session.Rater) {
	c.rater = r
	c.Session.SetRater(r)
}

// Restart throws away the current attempt and starts the level afresh with
// a full inventory.
func (c *Controller) Restart() {
	c.Placement.Abort()
	c.Gate.Restock(c.level.Inventory, c.level.Controls.Debounce())
	c.bindSession()
	log.Printf("Play: restarted %s", c.level.Name)
}

// Reload swaps in a new level definition and restarts.
func (c *Controller) Reload(lvl *levels.Level) {
	if lvl == nil {
		return
	}
	c.level = lvl
	c.Restart()
}

func (c *Controller) bindSession() {
	c.Session = session.New(c.level, c.Bus, c.now)
	c.Session.SetRater(c.rater)
	c.Placement.Bind(c.Session)
	c.Selection.Bind(c.Session)
}

// HandlePointer gives the ghost first refusal, then the selection.
func (c *Controller) HandlePointer(ev input.PointerEvent) bool {
	if c.Placement.HandlePointer(ev) {
		return true
	}
	return c.Selection.HandlePointer(ev)
}

// HandleAction applies a key command. Debug and layout export belong to the
// caller and report false.
func (c *Controller) HandleAction(a input.Action) bool {
	step := common.DegToRad(c.level.Controls.RotateStep)
	switch a {
	case input.ActionRotateLeft:
		return c.rotate(-step)
	case input.ActionRotateRight:
		return c.rotate(step)
	case input.ActionDelete:
		return c.Selection.Delete()
	case input.ActionPlay:
		return c.Play()
	case input.ActionReset:
		c.Reset()
		return true
	case input.ActionStartRamp:
		return c.StartPlacing(obstacle.Ramp, input.NoPointer)
	case input.ActionStartSeesaw:
		return c.StartPlacing(obstacle.Seesaw, input.NoPointer)
	}
	return false
}

// StartPlacing publishes a toolbox start request, the same path the toolbox
// buttons take.
func (c *Controller) StartPlacing(kind obstacle.Kind, pointer input.PointerID) bool {
	c.Bus.Publish(event.Start{Obstacle: kind, Pointer: pointer})
	return c.Placement.Placing()
}

func (c *Controller) rotate(delta float64) bool {
	if c.Placement.Rotate(delta) {
		return true
	}
	if c.Placement.Placing() {
		return false
	}
	return c.Selection.Rotate(delta)
}

// Play cancels any ghost and starts the simulation.
func (c *Controller) Play() bool {
	if !c.Session.Editing() {
		return false
	}
	c.Placement.Abort()
	c.Selection.EndDrag()
	return c.Session.Play()
}

func (c *Controller) Reset() {
	c.Session.Reset()
}

// Update advances the simulation by one step while running.
func (c *Controller) Update() {
	c.Session.Advance()
}

// PollWin runs the periodic win check.
func (c *Controller) PollWin() bool {
	return c.Session.CheckWin()
}

func (c *Controller) Layout() *levels.Layout {
	return c.Session.Layout()
}
