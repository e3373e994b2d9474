package eventbus

import (
	"context"
	"sync"
	"time"

	"synagogue-manager/internal/shared/logger"

	"github.com/google/uuid"
)

// Event represents a generic event
type Event interface {
	Type() string
	Data() interface{}
	Timestamp() time.Time
	Source() string
}

// Handler defines the event handler function type
type Handler func(ctx context.Context, event Event) error

// ChangeKind classifies a document-store mutation.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeUpdate ChangeKind = "update"
	ChangeDelete ChangeKind = "delete"
)

// CollectionChangedEvent is published after every successful mutation of a
// collection. Live queries subscribe to the collection topic and re-deliver
// the full result set; no diffing is performed.
type CollectionChangedEvent struct {
	Path       string
	DocumentID string
	Kind       ChangeKind
	At         time.Time
}

// CollectionTopic returns the event type used for mutations of one
// collection path.
func CollectionTopic(path string) string {
	return "collection.changed:" + path
}

func (e CollectionChangedEvent) Type() string         { return CollectionTopic(e.Path) }
func (e CollectionChangedEvent) Data() interface{}    { return e }
func (e CollectionChangedEvent) Timestamp() time.Time { return e.At }
func (e CollectionChangedEvent) Source() string       { return "document-store" }

// EventBus is an in-memory pub/sub bus. Handlers are keyed by event type;
// every subscription gets its own ID so a single live query can detach
// without disturbing the others.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string]map[string]Handler
	logger   logger.Logger
}

// NewEventBus creates a new event bus instance
func NewEventBus(log logger.Logger) *EventBus {
	if log == nil {
		log = &noopLogger{}
	}
	return &EventBus{
		handlers: make(map[string]map[string]Handler),
		logger:   log,
	}
}

// Subscribe adds a handler for a specific event type and returns the
// subscription ID used to unsubscribe.
func (eb *EventBus) Subscribe(eventType string, handler Handler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	id := uuid.NewString()
	if eb.handlers[eventType] == nil {
		eb.handlers[eventType] = make(map[string]Handler)
	}
	eb.handlers[eventType][id] = handler
	eb.logger.Debugf("Subscribed handler %s for event type: %s", id, eventType)
	return id
}

// Unsubscribe removes a single subscription.
func (eb *EventBus) Unsubscribe(eventType, subscriptionID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if subs, ok := eb.handlers[eventType]; ok {
		delete(subs, subscriptionID)
		if len(subs) == 0 {
			delete(eb.handlers, eventType)
		}
	}
}

// Publish sends an event to all registered handlers synchronously. The
// first handler error aborts delivery and is returned.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	eb.mu.RLock()
	handlers := make([]Handler, 0, len(eb.handlers[event.Type()]))
	for _, h := range eb.handlers[event.Type()] {
		handlers = append(handlers, h)
	}
	eb.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	eb.logger.Debugf("Publishing event type: %s to %d handlers", event.Type(), len(handlers))

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			eb.logger.Errorf("Handler failed for event %s: %v", event.Type(), err)
			return err
		}
	}
	return nil
}

// PublishAndForget publishes an event asynchronously without waiting for
// completion. Handler errors are logged and dropped.
func (eb *EventBus) PublishAndForget(ctx context.Context, event Event) {
	go func() {
		if err := eb.Publish(ctx, event); err != nil {
			eb.logger.Errorf("Failed to publish event %s: %v", event.Type(), err)
		}
	}()
}

// GetSubscriberCount returns the number of handlers for an event type
func (eb *EventBus) GetSubscriberCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventType])
}

// GetEventTypes returns all registered event types
func (eb *EventBus) GetEventTypes() []string {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	types := make([]string, 0, len(eb.handlers))
	for eventType := range eb.handlers {
		types = append(types, eventType)
	}
	return types
}

// BasicEvent implements the Event interface
type BasicEvent struct {
	eventType string
	data      interface{}
	timestamp time.Time
	source    string
}

// NewBasicEvent creates a new basic event
func NewBasicEvent(eventType string, data interface{}) Event {
	return &BasicEvent{
		eventType: eventType,
		data:      data,
		timestamp: time.Now(),
		source:    "application",
	}
}

func (e *BasicEvent) Type() string         { return e.eventType }
func (e *BasicEvent) Data() interface{}    { return e.data }
func (e *BasicEvent) Timestamp() time.Time { return e.timestamp }
func (e *BasicEvent) Source() string       { return e.source }

// noopLogger is used when no logger is supplied.
type noopLogger struct{}

func (n *noopLogger) Debug(args ...interface{})                 {}
func (n *noopLogger) Info(args ...interface{})                  {}
func (n *noopLogger) Warn(args ...interface{})                  {}
func (n *noopLogger) Error(args ...interface{})                 {}
func (n *noopLogger) Fatal(args ...interface{})                 {}
func (n *noopLogger) Debugf(format string, args ...interface{}) {}
func (n *noopLogger) Infof(format string, args ...interface{})  {}
func (n *noopLogger) Warnf(format string, args ...interface{})  {}
func (n *noopLogger) Errorf(format string, args ...interface{}) {}
func (n *noopLogger) Fatalf(format string, args ...interface{}) {}
func (n *noopLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return n
}
func (n *noopLogger) WithContext(ctx context.Context) logger.Logger { return n }
func (n *noopLogger) WithComponent(component string) logger.Logger  { return n }
