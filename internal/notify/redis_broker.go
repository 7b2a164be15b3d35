package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/rueidis"
)

// RedisBroker publishes hire events through Redis pub/sub so subscribers in
// other processes can pick them up. Delivery is best-effort: with no
// subscriber on the channel the message is simply gone.
type RedisBroker struct {
	client rueidis.Client
}

func NewRedisBroker(client rueidis.Client) *RedisBroker {
	return &RedisBroker{client: client}
}

func (b *RedisBroker) Publish(ctx context.Context, channel string, event HireEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	cmd := b.client.B().Publish().Channel(channel).Message(string(payload)).Build()
	return b.client.Do(ctx, cmd).Error()
}
