package inventory

import (
	"fmt"
	"log"
	"time"

	"github.com/milk9111/rollball/event"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/obstacle"
)

// DefaultDebounce matches the toolbox's historical duplicate window.
const DefaultDebounce = 80 * time.Millisecond

type item struct {
	name  string
	count int
	// held units are promised to an in-flight ghost and not yet consumed.
	held        int
	lastConsume time.Time
	lastRefund  time.Time
}

// Gate tracks how many obstacles of each kind remain. Consume and refund are
// debounced per kind and per operation.
type Gate struct {
	items    map[obstacle.Kind]*item
	order    []obstacle.Kind
	window   time.Duration
	now      func() time.Time
	attached bool
	onChange []func(kind obstacle.Kind, available int)
}

// New builds a gate from level inventory entries. A window of zero disables
// debouncing.
func New(specs []levels.InventorySpec, window time.Duration) *Gate {
	g := &Gate{
		window: window,
		now:    time.Now,
	}
	g.stock(specs)
	return g
}

// Restock replaces every count with the level's starting inventory. The bus
// subscription and change listeners survive.
func (g *Gate) Restock(specs []levels.InventorySpec, window time.Duration) {
	if g == nil {
		return
	}
	g.window = window
	g.stock(specs)
	for _, kind := range g.order {
		g.changed(kind)
	}
}

func (g *Gate) stock(specs []levels.InventorySpec) {
	g.items = make(map[obstacle.Kind]*item, len(specs))
	g.order = nil
	for _, s := range specs {
		kind, ok := obstacle.ParseKind(s.Kind)
		if !ok {
			log.Printf("Inventory: skipping unknown kind %q", s.Kind)
			continue
		}
		if _, dup := g.items[kind]; dup {
			continue
		}
		g.items[kind] = &item{name: s.Label, count: max(0, s.Count)}
		g.order = append(g.order, kind)
	}
}

// SetClock replaces the time source used for debouncing.
func (g *Gate) SetClock(now func() time.Time) {
	if g == nil || now == nil {
		return
	}
	g.now = now
}

// Attach subscribes the gate to consume and refund messages. Repeat calls are
// ignored so each message is counted once.
func (g *Gate) Attach(bus *event.Bus) {
	if g == nil || bus == nil || g.attached {
		return
	}
	event.Subscribe(bus, func(m event.Consume) { g.Consume(m.Obstacle) })
	event.Subscribe(bus, func(m event.Refund) { g.Refund(m.Obstacle) })
	g.attached = true
}

// OnChange registers fn to run after every applied consume, refund or hold.
func (g *Gate) OnChange(fn func(kind obstacle.Kind, available int)) {
	if g == nil || fn == nil {
		return
	}
	g.onChange = append(g.onChange, fn)
}

// Kinds returns the stocked kinds in level order.
func (g *Gate) Kinds() []obstacle.Kind {
	if g == nil {
		return nil
	}
	return g.order
}

// Available is the count the player can still start placing.
func (g *Gate) Available(kind obstacle.Kind) int {
	it := g.item(kind)
	if it == nil {
		return 0
	}
	return it.count - it.held
}

// Hold promises one unit to a ghost. It fails when nothing is available.
func (g *Gate) Hold(kind obstacle.Kind) bool {
	it := g.item(kind)
	if it == nil || it.count-it.held <= 0 {
		return false
	}
	it.held++
	g.changed(kind)
	return true
}

// Consume takes one unit, settling a hold if there is one. The count never
// drops below zero. Only consumes with no hold outstanding are debounced;
// returns false when one is dropped.
func (g *Gate) Consume(kind obstacle.Kind) bool {
	it := g.item(kind)
	if it == nil {
		return false
	}
	now := g.now()
	if it.held == 0 && g.window > 0 && now.Sub(it.lastConsume) < g.window {
		return false
	}
	it.lastConsume = now

	if it.held > 0 {
		it.held--
	}
	it.count = max(0, it.count-1)
	g.changed(kind)
	return true
}

// Refund returns one unit: it releases a hold if one is pending, otherwise it
// puts a removed obstacle back in stock. Releasing a hold is never debounced.
// Returns false when a refund is dropped.
func (g *Gate) Refund(kind obstacle.Kind) bool {
	it := g.item(kind)
	if it == nil {
		return false
	}
	now := g.now()
	if it.held == 0 && g.window > 0 && now.Sub(it.lastRefund) < g.window {
		return false
	}
	it.lastRefund = now

	if it.held > 0 {
		it.held--
	} else {
		it.count++
	}
	g.changed(kind)
	return true
}

// Name is the display name for kind.
func (g *Gate) Name(kind obstacle.Kind) string {
	it := g.item(kind)
	if it == nil {
		return kind.String()
	}
	return it.name
}

// Label is the toolbox caption, e.g. "Ramp x3".
func (g *Gate) Label(kind obstacle.Kind) string {
	return fmt.Sprintf("%s x%d", g.Name(kind), g.Available(kind))
}

// Snapshot returns the available count per kind.
func (g *Gate) Snapshot() map[obstacle.Kind]int {
	if g == nil {
		return nil
	}
	out := make(map[obstacle.Kind]int, len(g.items))
	for k := range g.items {
		out[k] = g.Available(k)
	}
	return out
}

func (g *Gate) item(kind obstacle.Kind) *item {
	if g == nil {
		return nil
	}
	return g.items[kind]
}

func (g *Gate) changed(kind obstacle.Kind) {
	n := g.Available(kind)
	for _, fn := range g.onChange {
		fn(kind, n)
	}
}
