package session

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/event"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/obstacle"
	"github.com/milk9111/rollball/physics"
)

type Phase int

const (
	Editing Phase = iota
	Running
)

func (p Phase) String() string {
	if p == Running {
		return "running"
	}
	return "editing"
}

// Rater turns a finished attempt into a star rating.
type Rater interface {
	Rate(tries int, elapsed time.Duration) (int, error)
}

// Bucket is the static goal: three walls and a sensor just above the base.
type Bucket struct {
	Walls  []*cp.Body
	Goal   *cp.Body
	Sensor *cp.Shape
}

// Session is one level attempt: the physics world, the fixed level geometry,
// every placed obstacle and the edit/run state. It is rebuilt on restart and
// level reload.
type Session struct {
	Level *levels.Level
	World *physics.World

	Floor  *cp.Body
	Ball   *cp.Body
	Bucket Bucket

	Ramps   []*obstacle.Obstacle
	Seesaws []*obstacle.Obstacle

	Tries      int
	LevelStart time.Time

	phase   Phase
	won     bool
	wonAt   time.Time
	lastWin event.Won
	contact contact
	// ran is set by Play and cleared by Reset so Reset only rewinds
	// obstacles that actually simulated.
	ran bool
	seq uint64

	ballStart cp.Vector
	now       func() time.Time
	bus       *event.Bus
	rater     Rater
}

// New builds the world and fixed geometry for lvl. now may be nil for
// time.Now.
func New(lvl *levels.Level, bus *event.Bus, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	world := physics.NewWorld(physics.Config{
		PixelsPerMeter: lvl.Physics.PixelsPerMeter,
		Gravity:        lvl.Physics.Gravity,
		Iterations:     lvl.Physics.Iterations,
		StepDT:         common.StepDT,
	})

	s := &Session{
		Level:      lvl,
		World:      world,
		LevelStart: now(),
		now:        now,
		bus:        bus,
	}
	s.buildFloor()
	s.buildBall()
	s.buildBucket()
	world.SetContactListener(s)
	return s
}

func (s *Session) SetRater(r Rater) {
	if s == nil {
		return
	}
	s.rater = r
}

func (s *Session) Phase() Phase {
	if s == nil {
		return Editing
	}
	return s.phase
}

func (s *Session) Editing() bool { return s.Phase() == Editing }

func (s *Session) Running() bool { return s.Phase() == Running }

// Won reports whether the last run ended in the goal. Cleared by Play and
// Reset.
func (s *Session) Won() bool {
	return s != nil && s.won
}

// LastWin is the message published for the most recent win.
func (s *Session) LastWin() (event.Won, bool) {
	if s == nil || !s.won {
		return event.Won{}, false
	}
	return s.lastWin, true
}

// Elapsed is the level timer. It stops when the level is won.
func (s *Session) Elapsed() time.Duration {
	if s == nil {
		return 0
	}
	if s.won {
		return s.wonAt.Sub(s.LevelStart)
	}
	return s.now().Sub(s.LevelStart)
}

// BallStart is the ball's reset position in meters.
func (s *Session) BallStart() cp.Vector {
	return s.ballStart
}

func (s *Session) BallSpeed() float64 {
	if s == nil || s.Ball == nil {
		return 0
	}
	return s.Ball.Velocity().Length()
}

// AddObstacle files a confirmed obstacle in its collection.
func (s *Session) AddObstacle(o *obstacle.Obstacle) {
	if s == nil || o == nil {
		return
	}
	s.seq++
	o.Seq = s.seq
	switch o.Kind {
	case obstacle.Ramp:
		s.Ramps = append(s.Ramps, o)
	case obstacle.Seesaw:
		s.Seesaws = append(s.Seesaws, o)
	}
}

// RemoveObstacle drops o from its collection and destroys its physics.
func (s *Session) RemoveObstacle(o *obstacle.Obstacle) bool {
	if s == nil || o == nil {
		return false
	}
	var removed bool
	switch o.Kind {
	case obstacle.Ramp:
		s.Ramps, removed = without(s.Ramps, o)
	case obstacle.Seesaw:
		s.Seesaws, removed = without(s.Seesaws, o)
	}
	if removed {
		o.Destroy()
	}
	return removed
}

// Obstacles returns every placed obstacle, oldest first.
func (s *Session) Obstacles() []*obstacle.Obstacle {
	if s == nil {
		return nil
	}
	all := make([]*obstacle.Obstacle, 0, len(s.Ramps)+len(s.Seesaws))
	all = append(all, s.Ramps...)
	all = append(all, s.Seesaws...)
	sort.Slice(all, func(i, j int) bool { return all[i].Seq < all[j].Seq })
	return all
}

// Play starts the simulation. It is a no-op unless editing.
func (s *Session) Play() bool {
	if s == nil || s.phase != Editing {
		return false
	}
	for _, o := range s.Seesaws {
		o.SaveRest()
	}
	s.phase = Running
	s.Tries++
	s.won = false
	s.ran = true
	log.Printf("Session: play, try %d", s.Tries)
	return true
}

// Reset returns the ball to its start at rest, rewinds seesaws, restarts
// the level timer and goes back to editing.
func (s *Session) Reset() {
	if s == nil {
		return
	}
	s.Ball.SetPosition(s.ballStart)
	s.Ball.SetAngle(0)
	s.Ball.SetVelocity(0, 0)
	s.Ball.SetAngularVelocity(0)
	if s.ran {
		for _, o := range s.Seesaws {
			o.RestoreRest()
		}
	}
	s.ran = false
	s.contact.reset()
	s.phase = Editing
	s.won = false
	s.LevelStart = s.now()
}

// Advance steps the world once, only while running.
func (s *Session) Advance() {
	if s == nil || s.phase != Running {
		return
	}
	s.World.Step()
}

// BeginGoalContact implements physics.ContactListener.
func (s *Session) BeginGoalContact() {
	s.contact.begin(s.now())
}

// EndGoalContact implements physics.ContactListener.
func (s *Session) EndGoalContact() {
	s.contact.end()
}

// Touching reports whether the ball is in the goal sensor and since when.
func (s *Session) Touching() (bool, time.Time) {
	if s == nil {
		return false, time.Time{}
	}
	return s.contact.touching, s.contact.since
}

// Dwell is how long the ball has been in the goal sensor, zero when outside.
func (s *Session) Dwell() time.Duration {
	if s == nil || !s.contact.touching {
		return 0
	}
	return s.now().Sub(s.contact.since)
}

// CheckWin declares a win when the ball has sat in the goal, slower than the
// level's threshold, for at least the dwell time. Called on the poll
// interval, not every frame.
func (s *Session) CheckWin() bool {
	if s == nil || s.phase != Running || !s.contact.touching {
		return false
	}
	if s.BallSpeed() >= s.Level.Win.SpeedThreshold {
		return false
	}
	if s.Dwell() < s.Level.Win.Dwell() {
		return false
	}
	now := s.now()

	s.phase = Editing
	s.won = true
	s.wonAt = now
	s.lastWin = event.Won{Tries: s.Tries, Elapsed: s.Elapsed(), Stars: s.rate()}
	log.Printf("Session: won after %d tries in %s", s.Tries, s.lastWin.Elapsed.Round(time.Millisecond))
	s.bus.Publish(s.lastWin)
	return true
}

// Layout exports the placed obstacles.
func (s *Session) Layout() *levels.Layout {
	layout := &levels.Layout{Level: s.Level.Name}
	for _, o := range s.Obstacles() {
		layout.Obstacles = append(layout.Obstacles, o.Placement())
	}
	return layout
}

// ApplyLayout places every obstacle in layout directly, bypassing the
// inventory. Used by the headless simulator and layout import.
func (s *Session) ApplyLayout(layout *levels.Layout) error {
	if s == nil || layout == nil {
		return nil
	}
	for i, p := range layout.Obstacles {
		kind, ok := obstacle.ParseKind(p.Kind)
		if !ok {
			return fmt.Errorf("session: layout obstacle %d: %w", i, levels.ErrUnknownObstacle)
		}
		spec, _ := s.Level.Obstacle(p.Kind)
		o := obstacle.New(s.World, kind, obstacle.SpecFromLevel(spec), s.World.VecToMeters(p.X, p.Y))
		o.SetAngle(common.DegToRad(p.Angle))
		s.AddObstacle(o)
	}
	return nil
}

func (s *Session) rate() int {
	if s.rater == nil {
		return -1
	}
	stars, err := s.rater.Rate(s.Tries, s.Elapsed())
	if err != nil {
		log.Printf("Session: rating failed: %v", err)
		return -1
	}
	return stars
}

func without(list []*obstacle.Obstacle, o *obstacle.Obstacle) ([]*obstacle.Obstacle, bool) {
	for i, item := range list {
		if item == o {
			return append(list[:i], list[i+1:]...), true
		}
	}
	return list, false
}
