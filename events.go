package ovsdb

import "sync"

// LifecycleEvent identifies a connection-level event unrelated to the
// per-row update stream.
type LifecycleEvent int

const (
	EventConnected LifecycleEvent = iota
	EventDisconnected
	EventEchoed
)

// LifecycleHandler receives lifecycle events. Echoed carries the argument
// list the peer's echo request was sent with.
type LifecycleHandler func(event LifecycleEvent, args []interface{})

// eventBus is a minimal pub/sub used for connection lifecycle
// notifications, separate from the buffered update-notification channel.
// Handlers run synchronously on the goroutine that calls Publish.
//
// cenkalti/hub, pulled in transitively through cenkalti/rpc2, would be a
// natural fit here, but its public surface isn't present anywhere in the
// retrieved reference material to ground an exact call against, so this
// follows the handlers-slice-plus-mutex pattern amorenoz-libovsdb's client
// uses for notification dispatch.
type eventBus struct {
	mu       sync.Mutex
	handlers []LifecycleHandler
}

func newEventBus() *eventBus {
	return &eventBus{}
}

func (b *eventBus) Subscribe(h LifecycleHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

func (b *eventBus) Publish(event LifecycleEvent, args []interface{}) {
	b.mu.Lock()
	handlers := make([]LifecycleHandler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()
	for _, h := range handlers {
		h(event, args)
	}
}
