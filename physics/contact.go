package physics

import "github.com/jakecoffman/cp"

// SetContactListener routes ball/goal sensor events to l. Passing nil mutes
// them.
func (w *World) SetContactListener(l ContactListener) {
	if w == nil {
		return
	}
	w.listener = l
}

func (w *World) setupHandlers() {
	if w == nil || w.handlersReady || w.space == nil {
		return
	}

	goalHandler := w.space.NewCollisionHandler(CollisionBall, CollisionGoal)
	goalHandler.UserData = w
	goalHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok || world == nil || world.listener == nil {
			return true
		}
		world.listener.BeginGoalContact()
		return true
	}
	goalHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok || world == nil || world.listener == nil {
			return
		}
		world.listener.EndGoalContact()
	}

	w.handlersReady = true
}
