package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus.
//
// Key characteristics:
//   - Type-based fan-out: handlers subscribe by Event.Type() string.
//   - Synchronous delivery: Publish calls handlers in the caller goroutine.
//   - Error aggregation: handler errors are joined and returned from Publish.
//   - Handlers should be quick or offload heavy work to avoid blocking
//     the frame loop that publishes edge events.
type EventBus interface {
	// Publish delivers the event synchronously to all active
	// subscribers of event.Type(). Handler errors are joined.
	Publish(event Event) error
	// PublishAsync publishes in a separate goroutine and returns a
	// channel that receives the joined error (or nil), then closes.
	PublishAsync(event Event) <-chan error
	// Subscribe registers a handler for an event type and returns a
	// Subscription handle for later cancellation.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. Safe with nil.
	Unsubscribe(sub Subscription) error
}

// Event is an immutable message transported by the EventBus.
// Implementations should treat Event values as read-only.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

// EventHandler consumes one event. Returning an error does not stop
// delivery to other handlers.
type EventHandler func(Event) error

// Subscription is the handle returned by Subscribe.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel() error
}
