package notify

import (
	"log/slog"
	"sync"
)

// Handler receives every published or dismissed state.
type Handler func(Message)

// Publisher is the publishing side of the bus, as used by the engine.
type Publisher interface {
	Publish(Message) Message
}

// Bus holds the current message and fans state changes out to subscribers.
// Deliveries are synchronous and ordered; a handler that publishes or
// dismisses has its change delivered once the current delivery returns.
type Bus struct {
	log *slog.Logger

	mu       sync.Mutex
	current  Message
	subs     []*Subscription
	nextID   uint64
	seq      uint64
	pending  []Message
	draining bool
}

// Subscription is returned by Subscribe.
type Subscription struct {
	bus     *Bus
	id      uint64
	handler Handler
}

// NewBus creates an empty bus.
func NewBus(log *slog.Logger) *Bus {
	return &Bus{log: log}
}

// Publish makes m the visible current message at full width and delivers it.
func (b *Bus) Publish(m Message) Message {
	m.Visible = true
	m.RemainingWidth = FullWidth

	b.mu.Lock()
	b.seq++
	m.seq = b.seq
	b.current = m
	b.mu.Unlock()

	b.log.Debug("notification published", "title", m.Title, "kind", m.Kind)
	b.deliver(m)
	return m
}

// Dismiss hides the current message and redelivers it.
func (b *Bus) Dismiss() {
	b.mu.Lock()
	b.current.Visible = false
	m := b.current
	b.mu.Unlock()

	b.log.Debug("notification dismissed", "title", m.Title)
	b.deliver(m)
}

// Current returns the latest published or dismissed state.
func (b *Bus) Current() Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Shrink lowers the remaining width of the current message by step and
// returns the new width. The change is not delivered to subscribers.
func (b *Bus) Shrink(step int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shrinkLocked(step)
}

// shrinkFor shrinks only if seq still identifies the current message and
// it has not been dismissed.
func (b *Bus) shrinkFor(seq uint64, step int) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current.seq != seq || !b.current.Visible {
		return 0, false
	}
	return b.shrinkLocked(step), true
}

func (b *Bus) shrinkLocked(step int) int {
	b.current.RemainingWidth -= step
	if b.current.RemainingWidth < 0 {
		b.current.RemainingWidth = 0
	}
	return b.current.RemainingWidth
}

// Subscribe registers h for every future delivery.
func (b *Bus) Subscribe(h Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	s := &Subscription{bus: b, id: b.nextID, handler: h}
	b.subs = append(b.subs, s)
	return s
}

// Unsubscribe stops deliveries to the subscription's handler.
func (s *Subscription) Unsubscribe() {
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subs {
		if sub.id == s.id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *Bus) deliver(m Message) {
	b.mu.Lock()
	b.pending = append(b.pending, m)
	if b.draining {
		b.mu.Unlock()
		return
	}
	b.draining = true

	for len(b.pending) > 0 {
		next := b.pending[0]
		b.pending = b.pending[1:]
		subs := make([]*Subscription, len(b.subs))
		copy(subs, b.subs)
		b.mu.Unlock()

		for _, s := range subs {
			s.handler(next)
		}

		b.mu.Lock()
	}
	b.draining = false
	b.mu.Unlock()
}
