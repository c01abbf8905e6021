package placement

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/event"
	"github.com/milk9111/rollball/input"
	"github.com/milk9111/rollball/inventory"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/obstacle"
	"github.com/milk9111/rollball/session"
)

type fixture struct {
	bus     *event.Bus
	gate    *inventory.Gate
	session *session.Session
	ctrl    *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	lvl := levels.Default()
	bus := event.NewBus()
	gate := inventory.New(lvl.Inventory, 0)
	gate.Attach(bus)
	s := session.New(lvl, bus, nil)
	c := New(bus, gate)
	c.Bind(s)
	return &fixture{bus: bus, gate: gate, session: s, ctrl: c}
}

func pointer(id input.PointerID, phase input.Phase, x, y float64) input.PointerEvent {
	return input.PointerEvent{ID: id, Phase: phase, X: x, Y: y}
}

func near(a, b cp.Vector) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func allSensors(o *obstacle.Obstacle) bool {
	for _, s := range o.Shapes() {
		if !s.Sensor() {
			return false
		}
	}
	return true
}

func TestStartCreatesGhostAtCanvasCenter(t *testing.T) {
	tests := []struct {
		kind  obstacle.Kind
		angle float64
	}{
		{obstacle.Ramp, common.DegToRad(-20)},
		{obstacle.Seesaw, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			f := newFixture(t)
			if !f.ctrl.Start(tt.kind, input.Mouse) {
				t.Fatalf("start should succeed")
			}
			g := f.ctrl.Ghost()
			if g == nil || !g.Ghost() || f.ctrl.State() != Placing || f.ctrl.Kind() != tt.kind {
				t.Fatalf("expected a %s ghost", tt.kind)
			}
			if !near(g.Position(), cp.Vector{X: 12, Y: 8}) {
				t.Fatalf("ghost at %v, want canvas center (12, 8)", g.Position())
			}
			if math.Abs(g.Angle()-tt.angle) > 1e-9 {
				t.Fatalf("ghost angle %v, want %v", g.Angle(), tt.angle)
			}
			if !allSensors(g) {
				t.Fatalf("ghost shapes must be sensors")
			}
			if len(f.session.Obstacles()) != 0 {
				t.Fatalf("ghost must not be in a collection")
			}
		})
	}
}

func TestStartGuards(t *testing.T) {
	t.Run("empty inventory", func(t *testing.T) {
		f := newFixture(t)
		f.gate.Restock([]levels.InventorySpec{{Kind: levels.KindRamp, Label: "Ramp", Count: 0}}, 0)
		if f.ctrl.Start(obstacle.Ramp, input.Mouse) {
			t.Fatalf("start with no stock should be a no-op")
		}
		if f.ctrl.Placing() || f.ctrl.Ghost() != nil {
			t.Fatalf("no ghost expected")
		}
	})
	t.Run("already placing", func(t *testing.T) {
		f := newFixture(t)
		f.ctrl.Start(obstacle.Ramp, input.Mouse)
		first := f.ctrl.Ghost()
		if f.ctrl.Start(obstacle.Seesaw, input.Mouse) {
			t.Fatalf("second start should be a no-op")
		}
		if f.ctrl.Ghost() != first {
			t.Fatalf("ghost replaced")
		}
		if f.gate.Available(obstacle.Seesaw) != 2 {
			t.Fatalf("rejected start must not hold inventory")
		}
	})
	t.Run("running", func(t *testing.T) {
		f := newFixture(t)
		f.session.Play()
		if f.ctrl.Start(obstacle.Ramp, input.Mouse) {
			t.Fatalf("start while running should be a no-op")
		}
	})
}

func TestStartFromBus(t *testing.T) {
	f := newFixture(t)
	f.bus.Publish(event.Start{Obstacle: obstacle.Seesaw, Pointer: input.Mouse})
	if !f.ctrl.Placing() || f.ctrl.Kind() != obstacle.Seesaw || f.ctrl.Pointer() != input.Mouse {
		t.Fatalf("start message not handled")
	}
}

func TestConfirm(t *testing.T) {
	f := newFixture(t)
	var confirmed *obstacle.Obstacle
	f.ctrl.OnConfirm(func(o *obstacle.Obstacle) { confirmed = o })

	f.ctrl.Start(obstacle.Ramp, input.Mouse)
	ghost := f.ctrl.Ghost()
	f.ctrl.HandlePointer(pointer(input.Mouse, input.PhaseMove, 300, 200))
	if !near(ghost.Position(), cp.Vector{X: 7.5, Y: 5}) {
		t.Fatalf("ghost did not follow, at %v", ghost.Position())
	}
	if !f.ctrl.HandlePointer(pointer(input.Mouse, input.PhaseUp, 300, 200)) {
		t.Fatalf("release should be consumed")
	}

	if f.ctrl.Placing() || f.ctrl.Ghost() != nil {
		t.Fatalf("controller should be idle after confirm")
	}
	if len(f.session.Ramps) != 1 || f.session.Ramps[0] != ghost {
		t.Fatalf("ramp not added to its collection")
	}
	if ghost.Ghost() || allSensors(ghost) {
		t.Fatalf("confirmed obstacle should be solid")
	}
	if got := f.gate.Available(obstacle.Ramp); got != 3 {
		t.Fatalf("ramp stock = %d, want 3", got)
	}
	if f.gate.Label(obstacle.Ramp) != "Ramp x3" {
		t.Fatalf("label %q", f.gate.Label(obstacle.Ramp))
	}
	if confirmed != ghost {
		t.Fatalf("OnConfirm not called with the placed obstacle")
	}
}

func TestCancelOutsideCanvas(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Start(obstacle.Ramp, input.Mouse)
	ghost := f.ctrl.Ghost()
	body := ghost.Body

	f.ctrl.HandlePointer(pointer(input.Mouse, input.PhaseMove, 1100, 200))
	f.ctrl.HandlePointer(pointer(input.Mouse, input.PhaseUp, 1100, 200))

	if f.ctrl.Placing() {
		t.Fatalf("controller should be idle after cancel")
	}
	if len(f.session.Obstacles()) != 0 {
		t.Fatalf("cancelled ghost must not be placed")
	}
	if f.session.World.Space().ContainsBody(body) {
		t.Fatalf("ghost body still in the space")
	}
	if got := f.gate.Available(obstacle.Ramp); got != 4 {
		t.Fatalf("ramp stock = %d, want 4", got)
	}
}

func TestOnlyBoundPointerDrives(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Start(obstacle.Ramp, 1)
	ghost := f.ctrl.Ghost()
	before := ghost.Position()

	if f.ctrl.HandlePointer(pointer(2, input.PhaseMove, 100, 100)) {
		t.Fatalf("other pointer's move should be ignored")
	}
	if f.ctrl.HandlePointer(pointer(2, input.PhaseUp, 100, 100)) {
		t.Fatalf("other pointer's release should be ignored")
	}
	if !f.ctrl.Placing() || ghost.Position() != before {
		t.Fatalf("ghost changed by a foreign pointer")
	}

	f.ctrl.HandlePointer(pointer(1, input.PhaseMove, 200, 120))
	if !near(ghost.Position(), cp.Vector{X: 5, Y: 3}) {
		t.Fatalf("bound pointer did not move ghost, at %v", ghost.Position())
	}
}

func TestUnboundStartBindsOnPress(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Start(obstacle.Seesaw, input.NoPointer)
	ghost := f.ctrl.Ghost()

	f.ctrl.HandlePointer(pointer(input.Mouse, input.PhaseMove, 200, 200))
	if !near(ghost.Position(), cp.Vector{X: 5, Y: 5}) {
		t.Fatalf("unbound ghost should follow the hovering mouse, at %v", ghost.Position())
	}
	if f.ctrl.HandlePointer(pointer(3, input.PhaseDown, 1100, 300)) {
		t.Fatalf("press outside the canvas should not bind")
	}
	if !f.ctrl.HandlePointer(pointer(3, input.PhaseDown, 400, 300)) || f.ctrl.Pointer() != 3 {
		t.Fatalf("press inside the canvas should bind, pointer %d", f.ctrl.Pointer())
	}
	if f.ctrl.HandlePointer(pointer(input.Mouse, input.PhaseMove, 100, 100)) {
		t.Fatalf("mouse should be ignored once bound to a touch")
	}
	f.ctrl.HandlePointer(pointer(3, input.PhaseUp, 400, 300))

	if len(f.session.Seesaws) != 1 {
		t.Fatalf("seesaw not placed")
	}
	placed := f.session.Seesaws[0]
	if !near(placed.Pivot.Position(), cp.Vector{X: 10, Y: 7.5}) || !near(placed.Plank.Position(), placed.Pivot.Position()) {
		t.Fatalf("seesaw pivot %v plank %v", placed.Pivot.Position(), placed.Plank.Position())
	}
	if got := f.gate.Available(obstacle.Seesaw); got != 1 {
		t.Fatalf("seesaw stock = %d, want 1", got)
	}
}

func TestRotate(t *testing.T) {
	f := newFixture(t)
	step := common.DegToRad(5)
	if f.ctrl.Rotate(step) {
		t.Fatalf("rotate while idle should be a no-op")
	}

	f.ctrl.Start(obstacle.Ramp, input.Mouse)
	before := f.ctrl.Ghost().Angle()
	if !f.ctrl.Rotate(step) {
		t.Fatalf("ramp ghost should rotate")
	}
	if math.Abs(f.ctrl.Ghost().Angle()-before-step) > 1e-9 {
		t.Fatalf("angle %v, want %v", f.ctrl.Ghost().Angle(), before+step)
	}
	f.ctrl.Abort()

	f.ctrl.Start(obstacle.Seesaw, input.Mouse)
	if f.ctrl.Rotate(step) {
		t.Fatalf("seesaw ghost should not rotate")
	}
}

func TestAbort(t *testing.T) {
	f := newFixture(t)
	if f.ctrl.Abort() {
		t.Fatalf("abort while idle should report false")
	}
	f.ctrl.Start(obstacle.Ramp, input.Mouse)
	if !f.ctrl.Abort() {
		t.Fatalf("abort should cancel the ghost")
	}
	if f.ctrl.Placing() || f.gate.Available(obstacle.Ramp) != 4 {
		t.Fatalf("abort should leave stock unchanged")
	}
}

func TestBindAbortsGhost(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Start(obstacle.Ramp, input.Mouse)
	next := session.New(levels.Default(), f.bus, nil)
	f.ctrl.Bind(next)
	if f.ctrl.Placing() {
		t.Fatalf("rebinding should drop the ghost")
	}
	if !f.ctrl.Start(obstacle.Ramp, input.Mouse) {
		t.Fatalf("start in the new session should succeed")
	}
	if len(next.Ramps) != 0 {
		t.Fatalf("ghost should not be placed yet")
	}
}
