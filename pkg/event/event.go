// Package event is the in-process dispatcher behind the order lifecycle
// events. Listeners are registered once at boot; workflows fire and move on.
package event

import (
	"sync"
)

// Handler receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
)

// Listen registers a handler for the named event.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

// Fire runs every listener for event synchronously, in registration order.
func Fire(event string, payload interface{}) {
	for _, h := range listeners(event) {
		h(payload)
	}
}

// FireAsync runs every listener on its own goroutine and returns immediately.
// Listeners must not assume the firing transaction is still open.
func FireAsync(event string, payload interface{}) {
	for _, h := range listeners(event) {
		go h(payload)
	}
}

// Flush drops all listeners. Tests use it to isolate registrations.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}

func listeners(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(handlers[event]))
	copy(hs, handlers[event])
	return hs
}
