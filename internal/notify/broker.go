package notify

import "context"

// HireEvent tells the winning bidder they were hired. It is published to a
// channel keyed by the bidder's user id.
type HireEvent struct {
	BidID    string `json:"bidId"`
	GigID    string `json:"gigId"`
	GigTitle string `json:"gigTitle"`
	Message  string `json:"message"`
}

type Broker interface {
	Publish(ctx context.Context, channel string, event HireEvent) error
}

// Channel names the per-user pub/sub channel an event is delivered on.
func Channel(userID string) string {
	return "user:" + userID
}
