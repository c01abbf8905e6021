package inventory

import (
	"testing"
	"time"

	"github.com/milk9111/rollball/event"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/obstacle"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGate(window time.Duration) (*Gate, *fakeClock) {
	g := New([]levels.InventorySpec{
		{Kind: levels.KindRamp, Label: "Ramp", Count: 4},
		{Kind: levels.KindSeesaw, Label: "Seesaw", Count: 2},
	}, window)
	clock := &fakeClock{t: time.Unix(1000, 0)}
	g.SetClock(clock.now)
	return g, clock
}

func TestConsumeAndRefund(t *testing.T) {
	g, clock := newTestGate(DefaultDebounce)

	if !g.Consume(obstacle.Ramp) {
		t.Fatalf("first consume should apply")
	}
	if got := g.Available(obstacle.Ramp); got != 3 {
		t.Fatalf("ramp = %d, want 3", got)
	}
	if g.Label(obstacle.Ramp) != "Ramp x3" {
		t.Fatalf("unexpected label %q", g.Label(obstacle.Ramp))
	}

	clock.advance(time.Millisecond)
	if !g.Refund(obstacle.Ramp) {
		t.Fatalf("refund after consume should apply")
	}
	if got := g.Available(obstacle.Ramp); got != 4 {
		t.Fatalf("consume then refund should restore 4, got %d", got)
	}
}

func TestConsumeFloorsAtZero(t *testing.T) {
	g, clock := newTestGate(0)
	for i := 0; i < 5; i++ {
		g.Consume(obstacle.Seesaw)
		clock.advance(time.Second)
	}
	if got := g.Available(obstacle.Seesaw); got != 0 {
		t.Fatalf("seesaw = %d, want 0", got)
	}
}

func TestDebounce(t *testing.T) {
	tests := []struct {
		name   string
		window time.Duration
		gap    time.Duration
		want   int
	}{
		{"duplicate inside window dropped", 80 * time.Millisecond, 10 * time.Millisecond, 3},
		{"repeat after window applied", 80 * time.Millisecond, 80 * time.Millisecond, 2},
		{"debounce disabled", 0, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, clock := newTestGate(tt.window)
			g.Consume(obstacle.Ramp)
			clock.advance(tt.gap)
			g.Consume(obstacle.Ramp)
			if got := g.Available(obstacle.Ramp); got != tt.want {
				t.Fatalf("ramp = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDebounceIsPerKindAndOperation(t *testing.T) {
	g, _ := newTestGate(DefaultDebounce)
	g.Consume(obstacle.Ramp)
	if !g.Consume(obstacle.Seesaw) {
		t.Fatalf("consume of a different kind must not be debounced")
	}
	if !g.Refund(obstacle.Ramp) {
		t.Fatalf("refund must not be debounced by a consume")
	}
	if g.Available(obstacle.Ramp) != 4 || g.Available(obstacle.Seesaw) != 1 {
		t.Fatalf("unexpected snapshot %v", g.Snapshot())
	}
}

func TestHoldLifecycle(t *testing.T) {
	g, clock := newTestGate(DefaultDebounce)

	if !g.Hold(obstacle.Ramp) {
		t.Fatalf("hold should succeed with stock")
	}
	if got := g.Available(obstacle.Ramp); got != 3 {
		t.Fatalf("held unit should not be available, got %d", got)
	}

	// cancel path
	g.Refund(obstacle.Ramp)
	if got := g.Available(obstacle.Ramp); got != 4 {
		t.Fatalf("refund of a hold should restore 4, got %d", got)
	}

	// confirm path
	clock.advance(time.Second)
	g.Hold(obstacle.Ramp)
	g.Consume(obstacle.Ramp)
	if got := g.Available(obstacle.Ramp); got != 3 {
		t.Fatalf("confirmed hold should leave 3, got %d", got)
	}
}

func TestSettlingHoldsIgnoresDebounce(t *testing.T) {
	tests := []struct {
		name   string
		settle func(g *Gate)
		want   int
	}{
		{"two quick cancels", func(g *Gate) { g.Refund(obstacle.Ramp) }, 4},
		{"two quick confirms", func(g *Gate) { g.Consume(obstacle.Ramp) }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, clock := newTestGate(DefaultDebounce)
			for i := 0; i < 2; i++ {
				if !g.Hold(obstacle.Ramp) {
					t.Fatalf("hold %d failed", i)
				}
				tt.settle(g)
				clock.advance(40 * time.Millisecond)
			}
			if got := g.Available(obstacle.Ramp); got != tt.want {
				t.Fatalf("expected %d available, got %d", tt.want, got)
			}
			if g.items[obstacle.Ramp].held != 0 {
				t.Fatalf("hold left outstanding: %d", g.items[obstacle.Ramp].held)
			}
		})
	}
}

func TestDeleteThenCancelKeepsStock(t *testing.T) {
	g, clock := newTestGate(DefaultDebounce)
	g.Hold(obstacle.Ramp)
	g.Consume(obstacle.Ramp)
	clock.advance(time.Second)

	// delete the placed ramp, then start and cancel a new one right away
	g.Refund(obstacle.Ramp)
	clock.advance(20 * time.Millisecond)
	g.Hold(obstacle.Ramp)
	clock.advance(20 * time.Millisecond)
	g.Refund(obstacle.Ramp)

	if got := g.Available(obstacle.Ramp); got != 4 {
		t.Fatalf("expected 4 after delete and cancel, got %d", got)
	}
}

func TestDuplicateAfterSettleIsDropped(t *testing.T) {
	g, clock := newTestGate(DefaultDebounce)
	g.Hold(obstacle.Ramp)
	g.Refund(obstacle.Ramp)
	clock.advance(10 * time.Millisecond)
	if g.Refund(obstacle.Ramp) {
		t.Fatalf("duplicate refund inside the window should be dropped")
	}
	if got := g.Available(obstacle.Ramp); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
}

func TestHoldRequiresStock(t *testing.T) {
	g, _ := newTestGate(0)
	if !g.Hold(obstacle.Seesaw) || !g.Hold(obstacle.Seesaw) {
		t.Fatalf("two holds should fit two seesaws")
	}
	if g.Hold(obstacle.Seesaw) {
		t.Fatalf("third hold should fail")
	}
	if g.Hold(obstacle.KindNone) {
		t.Fatalf("unknown kind should never hold")
	}
}

func TestAttachSubscribesOnce(t *testing.T) {
	g, clock := newTestGate(0)
	bus := event.NewBus()
	g.Attach(bus)
	g.Attach(bus)

	if n := bus.HandlerCount(event.TopicConsume); n != 1 {
		t.Fatalf("expected one consume handler, got %d", n)
	}

	bus.Publish(event.Consume{Obstacle: obstacle.Ramp})
	clock.advance(time.Second)
	if got := g.Available(obstacle.Ramp); got != 3 {
		t.Fatalf("ramp = %d, want 3", got)
	}
	bus.Publish(event.Refund{Obstacle: obstacle.Ramp})
	if got := g.Available(obstacle.Ramp); got != 4 {
		t.Fatalf("ramp = %d, want 4", got)
	}
}

func TestOnChange(t *testing.T) {
	g, _ := newTestGate(0)
	var kinds []obstacle.Kind
	var counts []int
	g.OnChange(func(k obstacle.Kind, n int) {
		kinds = append(kinds, k)
		counts = append(counts, n)
	})
	g.Hold(obstacle.Seesaw)
	g.Consume(obstacle.Seesaw)
	if len(kinds) != 2 || kinds[1] != obstacle.Seesaw || counts[0] != 1 || counts[1] != 1 {
		t.Fatalf("unexpected notifications kinds=%v counts=%v", kinds, counts)
	}
}

func TestNewSkipsUnknownKinds(t *testing.T) {
	g := New([]levels.InventorySpec{{Kind: "spring", Count: 3}, {Kind: levels.KindRamp, Label: "Ramp", Count: -1}}, 0)
	if len(g.Kinds()) != 1 || g.Kinds()[0] != obstacle.Ramp {
		t.Fatalf("unexpected kinds %v", g.Kinds())
	}
	if g.Available(obstacle.Ramp) != 0 {
		t.Fatalf("negative count should clamp to zero")
	}
	if g.Name(obstacle.Seesaw) != "seesaw" {
		t.Fatalf("unstocked kind should fall back to its kind name")
	}
}

func TestRestock(t *testing.T) {
	g, _ := newTestGate(0)
	bus := event.NewBus()
	g.Attach(bus)
	var changes int
	g.OnChange(func(obstacle.Kind, int) { changes++ })

	g.Hold(obstacle.Ramp)
	g.Consume(obstacle.Ramp)
	g.Consume(obstacle.Seesaw)
	changes = 0

	g.Restock([]levels.InventorySpec{{Kind: levels.KindRamp, Label: "Ramp", Count: 1}}, DefaultDebounce)
	if g.Available(obstacle.Ramp) != 1 || g.Available(obstacle.Seesaw) != 0 {
		t.Fatalf("unexpected stock after restock: %v", g.Snapshot())
	}
	if changes != 1 {
		t.Fatalf("expected one change notification, got %d", changes)
	}
	bus.Publish(event.Consume{Obstacle: obstacle.Ramp})
	if g.Available(obstacle.Ramp) != 0 {
		t.Fatalf("gate should stay attached after restock")
	}
}
