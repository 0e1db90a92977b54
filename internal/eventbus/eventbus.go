package eventbus

// Event represents an arbitrary event passed on the bus.
type Event interface{}

// EventBus implements a simple publish/subscribe event bus.
type EventBus interface {
	Publish(Event)
	Subscribe() <-chan Event
	SubscribeBuffered(size int) <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the default EventBus implementation. It delegates to a TypedBus
// of untyped events so both carry the same fan-out semantics.
type Bus struct {
	inner TypedBus[Event]
}

// New creates a new Bus.
func New() *Bus { return &Bus{} }

// Publish sends the event to all subscribers. Delivery is non-blocking.
func (b *Bus) Publish(e Event) { b.inner.Publish(e) }

// Subscribe registers a new subscriber and returns its channel.
func (b *Bus) Subscribe() <-chan Event { return b.inner.Subscribe() }

// SubscribeBuffered registers a subscriber with an explicit buffer size.
func (b *Bus) SubscribeBuffered(size int) <-chan Event { return b.inner.SubscribeBuffered(size) }

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(sub <-chan Event) { b.inner.Unsubscribe(sub) }

// Close closes all subscriber channels and clears the list.
func (b *Bus) Close() { b.inner.Close() }
