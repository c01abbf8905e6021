package event

import (
	"testing"

	"github.com/milk9111/rollball/input"
	"github.com/milk9111/rollball/obstacle"
)

func TestPublishOrderAndRouting(t *testing.T) {
	bus := NewBus()
	var got []string

	Subscribe(bus, func(m Consume) { got = append(got, "first:"+m.Obstacle.String()) })
	Subscribe(bus, func(m Consume) { got = append(got, "second:"+m.Obstacle.String()) })
	Subscribe(bus, func(m Refund) { got = append(got, "refund:"+m.Obstacle.String()) })

	bus.Publish(Consume{Obstacle: obstacle.Ramp})
	bus.Publish(Refund{Obstacle: obstacle.Seesaw})
	bus.Publish(Start{Obstacle: obstacle.Ramp, Pointer: input.Mouse})

	want := []string{"first:ramp", "second:ramp", "refund:seesaw"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNestedPublish(t *testing.T) {
	bus := NewBus()
	var refunds int
	Subscribe(bus, func(m Start) { bus.Publish(Refund{Obstacle: m.Obstacle}) })
	Subscribe(bus, func(Refund) { refunds++ })

	bus.Publish(Start{Obstacle: obstacle.Seesaw, Pointer: input.NoPointer})
	if refunds != 1 {
		t.Fatalf("expected one nested delivery, got %d", refunds)
	}
}

func TestHandlerCount(t *testing.T) {
	bus := NewBus()
	Subscribe(bus, func(Won) {})
	if bus.HandlerCount(TopicWon) != 1 || bus.HandlerCount(TopicStart) != 0 {
		t.Fatalf("unexpected handler counts")
	}
	var nilBus *Bus
	nilBus.Publish(Won{})
	Subscribe(nilBus, func(Won) {})
	if nilBus.HandlerCount(TopicWon) != 0 {
		t.Fatalf("nil bus should report no handlers")
	}
}

func TestMessageTopics(t *testing.T) {
	tests := []struct {
		msg  Message
		want Topic
	}{
		{Start{}, TopicStart},
		{Consume{}, TopicConsume},
		{Refund{}, TopicRefund},
		{Won{}, TopicWon},
	}
	for _, tt := range tests {
		if got := tt.msg.topic(); got != tt.want {
			t.Fatalf("%T topic = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
