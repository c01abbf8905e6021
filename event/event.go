package event

import (
	"time"

	"github.com/milk9111/rollball/input"
	"github.com/milk9111/rollball/obstacle"
)

type Topic int

const (
	TopicStart Topic = iota
	TopicConsume
	TopicRefund
	TopicWon
)

// Message is implemented only by the types in this package.
type Message interface {
	topic() Topic
}

// Start asks the core to begin placing an obstacle. Pointer is the pointer
// that is already held down, or input.NoPointer to bind on the next press.
type Start struct {
	Obstacle obstacle.Kind
	Pointer  input.PointerID
}

// Consume reports that a placement was confirmed.
type Consume struct {
	Obstacle obstacle.Kind
}

// Refund reports that a placement was cancelled or a placed obstacle removed.
type Refund struct {
	Obstacle obstacle.Kind
}

// Won reports a settled ball in the goal.
type Won struct {
	Tries   int
	Elapsed time.Duration
	// Stars is -1 when no rating is available.
	Stars int
}

func (Start) topic() Topic   { return TopicStart }
func (Consume) topic() Topic { return TopicConsume }
func (Refund) topic() Topic  { return TopicRefund }
func (Won) topic() Topic     { return TopicWon }
