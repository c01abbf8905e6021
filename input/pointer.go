package input

// PointerID identifies one pointer: the mouse is 0 and touches take slots
// 1 through MaxPointers-1.
type PointerID int

const (
	NoPointer PointerID = -1
	Mouse     PointerID = 0

	MaxPointers = 10
)

type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent is a pointer transition in screen pixels.
type PointerEvent struct {
	ID    PointerID
	Phase Phase
	X, Y  float64
}

// Touch is one active touch as reported by the platform this frame.
type Touch struct {
	ID   int
	X, Y float64
}

type pointerState struct {
	down  bool
	lastX float64
	lastY float64
	seen  bool
}

// Tracker turns per-frame pointer samples into down/move/up events. A pointer
// is captured from its down until its up, so moves keep flowing to whoever
// handled the down even once the pointer leaves the canvas.
type Tracker struct {
	pointers  [MaxPointers]pointerState
	touchMap  [MaxPointers]int
	touchUsed [MaxPointers]bool
	events    []PointerEvent
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Captured reports whether id is between its down and up.
func (t *Tracker) Captured(id PointerID) bool {
	if t == nil || id < 0 || int(id) >= MaxPointers {
		return false
	}
	return t.pointers[id].down
}

// Update samples the mouse and all active touches and returns the events for
// this frame, mouse first. The returned slice is reused on the next call.
func (t *Tracker) Update(mouseX, mouseY float64, mousePressed bool, touches []Touch) []PointerEvent {
	if t == nil {
		return nil
	}
	t.events = t.events[:0]
	t.sample(Mouse, mouseX, mouseY, mousePressed)

	var active [MaxPointers]bool
	for _, touch := range touches {
		slot := t.touchSlot(touch.ID)
		if slot < 0 {
			continue
		}
		active[slot] = true
		t.sample(PointerID(slot), touch.X, touch.Y, true)
	}

	for i := 1; i < MaxPointers; i++ {
		if t.touchUsed[i] && !active[i] {
			ps := &t.pointers[i]
			if ps.down {
				t.sample(PointerID(i), ps.lastX, ps.lastY, false)
			}
			t.touchUsed[i] = false
			t.touchMap[i] = 0
			ps.seen = false
		}
	}
	return t.events
}

// Reset forgets every pointer without emitting events.
func (t *Tracker) Reset() {
	if t == nil {
		return
	}
	t.pointers = [MaxPointers]pointerState{}
	t.touchMap = [MaxPointers]int{}
	t.touchUsed = [MaxPointers]bool{}
	t.events = t.events[:0]
}

func (t *Tracker) sample(id PointerID, x, y float64, pressed bool) {
	ps := &t.pointers[id]
	switch {
	case pressed && !ps.down:
		ps.down = true
		t.emit(id, PhaseDown, x, y)
	case !pressed && ps.down:
		ps.down = false
		t.emit(id, PhaseUp, x, y)
	case ps.seen && (x != ps.lastX || y != ps.lastY):
		t.emit(id, PhaseMove, x, y)
	}
	ps.lastX, ps.lastY = x, y
	ps.seen = true
}

func (t *Tracker) emit(id PointerID, phase Phase, x, y float64) {
	t.events = append(t.events, PointerEvent{ID: id, Phase: phase, X: x, Y: y})
}

// touchSlot maps a platform touch id to a pointer slot, allocating one if
// needed. Returns -1 when all slots are taken.
func (t *Tracker) touchSlot(tid int) int {
	for i := 1; i < MaxPointers; i++ {
		if t.touchUsed[i] && t.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < MaxPointers; i++ {
		if !t.touchUsed[i] {
			t.touchUsed[i] = true
			t.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// LastDown returns the id of the last pointer that went down in events, or
// NoPointer if none did.
func LastDown(events []PointerEvent) PointerID {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Phase == PhaseDown {
			return events[i].ID
		}
	}
	return NoPointer
}
