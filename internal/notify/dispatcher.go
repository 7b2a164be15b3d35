package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

// Dispatcher decouples hire notifications from the request path. Dispatch
// is a non-blocking enqueue; a background worker drains the queue and
// publishes through the broker. A full queue or a broker failure drops the
// event and never surfaces to the caller.
type Dispatcher struct {
	broker Broker
	queue  chan outbound
	wg     sync.WaitGroup
}

type outbound struct {
	channel string
	event   HireEvent
}

const publishTimeout = 5 * time.Second

func NewDispatcher(broker Broker, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}

	d := &Dispatcher{
		broker: broker,
		queue:  make(chan outbound, queueSize),
	}

	d.wg.Add(1)
	go d.worker()

	return d
}

// Dispatch enqueues an event for the given user. It never blocks: when the
// queue is full the event is dropped and logged.
func (d *Dispatcher) Dispatch(userID string, event HireEvent) {
	select {
	case d.queue <- outbound{channel: Channel(userID), event: event}:
	default:
		log.Printf("notify: queue full, dropping hire event for bid %s", event.BidID)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for out := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := d.broker.Publish(ctx, out.channel, out.event); err != nil {
			log.Printf("notify: failed to publish hire event for bid %s: %v", out.event.BidID, err)
		}
		cancel()
	}
}

// Shutdown stops accepting events and waits for the worker to drain what
// was already enqueued, up to the context deadline.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	close(d.queue)

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("notification dispatcher shut down cleanly")
	case <-ctx.Done():
		log.Println("notification dispatcher shutdown timed out")
	}
}
