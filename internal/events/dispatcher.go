package events

import (
	"log"
	"sync"
)

// Handler consumes one event. Errors are logged, never propagated back to
// the emitting state machine.
type Handler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// Dispatcher is an in-process fan-out bus. Publish is fire-and-forget:
// events are queued and delivered by a single background goroutine, so
// emitters never block on notification delivery.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
	queue    chan Event
	done     chan struct{}
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		queue: make(chan Event, 256),
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

// Subscribe registers a handler for delivery
func (d *Dispatcher) Subscribe(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = append(d.handlers, h)
}

// Publish enqueues an event. Drops with a log line when the queue is
// full rather than blocking a mutation path.
func (d *Dispatcher) Publish(event Event) {
	select {
	case d.queue <- event:
	default:
		log.Printf("[Events] queue full, dropping %s for %s", event.Type, event.StreamID)
	}
}

// Close stops the delivery goroutine after draining the queue
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.queue {
		d.mu.RLock()
		handlers := d.handlers
		d.mu.RUnlock()

		for _, h := range handlers {
			if !h.CanHandle(event.Type) {
				continue
			}
			if err := h.Handle(event); err != nil {
				log.Printf("[Events] handler failed on %s for %s: %v", event.Type, event.StreamID, err)
			}
		}
	}
}
