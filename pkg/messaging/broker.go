package messaging

import "context"

// Broker publishes domain events to interested consumers. Consumers live in
// downstream systems and subscribe to Redis directly.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}
