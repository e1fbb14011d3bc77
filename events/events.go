package events

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeOpponentChanged  EventType = "opponent_changed"
	EventTypeRefreshCompleted EventType = "refresh_completed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// OpponentChangedEvent is emitted when the resolved opponent differs from the previous refresh.
// An empty tag means no opponent.
type OpponentChangedEvent struct {
	RefreshID string
	Previous  string
	Current   string
}

func (e OpponentChangedEvent) Type() EventType {
	return EventTypeOpponentChanged
}

// RefreshCompletedEvent is emitted after every drawn frame
type RefreshCompletedEvent struct {
	RefreshID   string
	Duration    time.Duration
	HasSelf     bool
	HasOpponent bool
}

func (e RefreshCompletedEvent) Type() EventType {
	return EventTypeRefreshCompleted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers.
// Handlers run asynchronously; a panicking handler is logged and does not affect the others.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}
