package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingBroker struct {
	published atomic.Int64
	fail      bool
}

func (b *countingBroker) Publish(ctx context.Context, channel string, event HireEvent) error {
	if b.fail {
		return errors.New("broker down")
	}
	b.published.Add(1)
	return nil
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	broker := NewMemoryBroker()
	d := NewDispatcher(broker, 16)

	events, cancel := broker.Subscribe(Channel("user-1"))
	defer cancel()

	d.Dispatch("user-1", HireEvent{BidID: "bid-1", GigID: "gig-1", GigTitle: "Title"})

	select {
	case event := <-events:
		if event.BidID != "bid-1" {
			t.Errorf("expected bid-1, got %s", event.BidID)
		}
	case <-time.After(5 * time.Second):
		t.Error("event not delivered")
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	d.Shutdown(ctx)
}

func TestDispatcher_DispatchNeverBlocks(t *testing.T) {
	// A broker that nobody drains plus a tiny queue: extra events must be
	// dropped, not block the caller.
	broker := &countingBroker{fail: true}
	d := NewDispatcher(broker, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			d.Dispatch("user-1", HireEvent{BidID: "bid"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Dispatch blocked")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d.Shutdown(ctx)
}

func TestDispatcher_BrokerFailureIsSwallowed(t *testing.T) {
	broker := &countingBroker{fail: true}
	d := NewDispatcher(broker, 16)

	d.Dispatch("user-1", HireEvent{BidID: "bid-1"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	d.Shutdown(ctx)
}

func TestMemoryBroker_DropsWithoutSubscriber(t *testing.T) {
	broker := NewMemoryBroker()

	// No subscriber: publish succeeds and the event is gone.
	if err := broker.Publish(context.Background(), Channel("user-1"), HireEvent{BidID: "bid-1"}); err != nil {
		t.Errorf("publish without subscriber failed: %v", err)
	}

	events, cancel := broker.Subscribe(Channel("user-1"))
	defer cancel()

	select {
	case event := <-events:
		t.Errorf("unexpected replay of dropped event: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}
