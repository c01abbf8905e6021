package event

// Bus delivers messages synchronously to subscribers in registration order.
// It is not safe for concurrent use; everything runs on the game goroutine.
type Bus struct {
	handlers map[Topic][]func(Message)
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Topic][]func(Message))}
}

// Subscribe registers fn for every message of type T.
func Subscribe[T Message](b *Bus, fn func(T)) {
	if b == nil || fn == nil {
		return
	}
	var zero T
	topic := zero.topic()
	b.handlers[topic] = append(b.handlers[topic], func(m Message) {
		if v, ok := m.(T); ok {
			fn(v)
		}
	})
}

func (b *Bus) Publish(m Message) {
	if b == nil || m == nil {
		return
	}
	for _, h := range b.handlers[m.topic()] {
		h(m)
	}
}

// HandlerCount returns how many subscribers a topic has.
func (b *Bus) HandlerCount(t Topic) int {
	if b == nil {
		return 0
	}
	return len(b.handlers[t])
}
