package notify

import (
	"context"
	"sync"
)

// MemoryBroker is a single-process broker: each channel has at most a
// buffered Go channel of subscribers behind it. Events published to a
// channel nobody listens on are dropped, matching the Redis broker's
// best-effort semantics. It also serves as the test double.
type MemoryBroker struct {
	mu   sync.RWMutex
	subs map[string][]chan HireEvent
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		subs: make(map[string][]chan HireEvent),
	}
}

// Subscribe returns a buffered channel receiving events for the given
// pub/sub channel and a cancel func that detaches it.
func (b *MemoryBroker) Subscribe(channel string) (<-chan HireEvent, func()) {
	ch := make(chan HireEvent, 8)

	b.mu.Lock()
	b.subs[channel] = append(b.subs[channel], ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subs[channel]
		for i, sub := range subs {
			if sub == ch {
				b.subs[channel] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}

	return ch, cancel
}

func (b *MemoryBroker) Publish(ctx context.Context, channel string, event HireEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs[channel] {
		select {
		case sub <- event:
		default:
			// Slow subscriber; drop rather than block the publisher.
		}
	}

	return nil
}
