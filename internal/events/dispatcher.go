package events

import (
	"context"
	"sync"
)

// Handler handles a published activity.
type Handler func(context.Context, Activity) error

// Dispatcher allows activity publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, activity Activity) error
	Subscribe(activityType ActivityType, handler Handler)
}

// inMemoryDispatcher is a simple synchronous dispatcher.
type inMemoryDispatcher struct {
	mu        sync.RWMutex
	listeners map[ActivityType][]Handler
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{
		listeners: make(map[ActivityType][]Handler),
	}
}

// Publish synchronously invokes handlers for the given activity. Handler
// errors do not stop the remaining handlers.
func (d *inMemoryDispatcher) Publish(ctx context.Context, activity Activity) error {
	d.mu.RLock()
	handlers := append([]Handler{}, d.listeners[activity.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		_ = handler(ctx, activity)
	}
	return nil
}

// Subscribe registers a handler for the given activity type.
func (d *inMemoryDispatcher) Subscribe(activityType ActivityType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[activityType] = append(d.listeners[activityType], handler)
}
