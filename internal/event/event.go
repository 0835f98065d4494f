// Package event provides a typed publish/subscribe bus.
package event

import "sync"

// Handler receives a published payload.
type Handler[T any] func(T)

// Subscription identifies a registered handler.
type Subscription struct {
	ID uint64
}

type entry[T any] struct {
	id      uint64
	handler Handler[T]
}

// Bus fans a payload out to every subscriber in subscription order.
// Handlers run synchronously on the publishing goroutine.
type Bus[T any] struct {
	mu       sync.RWMutex
	handlers []entry[T]
	nextID   uint64

	// Copy, when set, is applied to the payload once per handler so no
	// handler can observe another's mutations.
	Copy func(T) T
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{nextID: 1}
}

// Subscribe registers a handler and returns its subscription.
func (b *Bus[T]) Subscribe(h Handler[T]) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers = append(b.handlers, entry[T]{id: id, handler: h})
	return Subscription{ID: id}
}

// Unsubscribe removes a handler. Returns false if it was not registered.
func (b *Bus[T]) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, e := range b.handlers {
		if e.id == sub.ID {
			// Copy so an in-flight Publish keeps iterating its own snapshot.
			next := make([]entry[T], 0, len(b.handlers)-1)
			next = append(next, b.handlers[:i]...)
			next = append(next, b.handlers[i+1:]...)
			b.handlers = next
			return true
		}
	}
	return false
}

// Len returns the number of subscribers.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}

// Publish delivers payload to every subscriber.
func (b *Bus[T]) Publish(payload T) {
	b.mu.RLock()
	handlers := b.handlers
	b.mu.RUnlock()

	for _, e := range handlers {
		p := payload
		if b.Copy != nil {
			p = b.Copy(payload)
		}
		e.handler(p)
	}
}
