package shared

import "context"

// EventHandler reacts to tenancy, payment and maintenance events, e.g. by
// emailing the tenant or recording metrics
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the events the handler wants; empty means all of them
	EventTypes() []string
}

// EventPublisher is what application services use to announce committed
// changes. Publishing happens after the database transaction commits.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers handlers at startup
type EventSubscriber interface {
	// Subscribe with no event types delivers every event to handler
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is started before the HTTP server accepts requests and stopped
// after it drains, so events raised by in-flight requests are still handled
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
