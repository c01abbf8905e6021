package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rollball/input"
)

var keyActions = []struct {
	key    ebiten.Key
	action input.Action
}{
	{ebiten.KeyQ, input.ActionRotateLeft},
	{ebiten.KeyE, input.ActionRotateRight},
	{ebiten.KeyDelete, input.ActionDelete},
	{ebiten.KeyBackspace, input.ActionDelete},
	{ebiten.KeySpace, input.ActionPlay},
	{ebiten.KeyR, input.ActionReset},
	{ebiten.Key1, input.ActionStartRamp},
	{ebiten.Key2, input.ActionStartSeesaw},
	{ebiten.KeyF3, input.ActionToggleDebug},
	{ebiten.KeyC, input.ActionCopyLayout},
}

// Input samples ebiten's mouse, touch and keyboard state once per frame.
type Input struct {
	tracker  *input.Tracker
	touchIDs []ebiten.TouchID
	touches  []input.Touch
	actions  []input.Action
}

func NewInput() *Input {
	return &Input{tracker: input.NewTracker()}
}

// Pointers returns this frame's pointer transitions in screen pixels.
func (i *Input) Pointers() []input.PointerEvent {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	i.touchIDs = ebiten.AppendTouchIDs(i.touchIDs[:0])
	i.touches = i.touches[:0]
	for _, id := range i.touchIDs {
		x, y := ebiten.TouchPosition(id)
		i.touches = append(i.touches, input.Touch{ID: int(id), X: float64(x), Y: float64(y)})
	}
	return i.tracker.Update(float64(mx), float64(my), pressed, i.touches)
}

// Actions returns the commands whose keys went down this frame.
func (i *Input) Actions() []input.Action {
	i.actions = i.actions[:0]
	for _, ka := range keyActions {
		if inpututil.IsKeyJustPressed(ka.key) {
			i.actions = append(i.actions, ka.action)
		}
	}
	return i.actions
}

// Reset forgets captured pointers, used when the session they were bound to
// is replaced.
func (i *Input) Reset() {
	i.tracker.Reset()
}
