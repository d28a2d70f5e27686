package minecraft

import (
	"sort"
	"sync"
)

// Handler processes a single event. Handlers run on the server loop.
type Handler func(Event)

// Subscription is a handle to a registered handler.
type Subscription struct {
	bus  *EventBus
	kind EventKind
	id   uint64
}

// Unsubscribe removes the handler from the bus. Safe to call more than
// once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.remove(s.kind, s.id)
	s.bus = nil
}

type registration struct {
	id       uint64
	priority Priority
	seq      uint64
	fn       Handler
}

// EventBus dispatches server events to subscribed handlers in priority
// order. Subscribe/Unsubscribe may be called from any goroutine (the
// bridge subscribes from the Discord connection's goroutine); dispatch
// runs on the server loop.
type EventBus struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[EventKind][]registration
}

// NewEventBus creates an empty event bus.
func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[EventKind][]registration)}
}

// Subscribe registers fn for events of the given kind at the given
// priority. Handlers with equal priority run in registration order.
func (b *EventBus) Subscribe(kind EventKind, priority Priority, fn Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	reg := registration{id: b.nextID, priority: priority, seq: b.nextID, fn: fn}

	list := append(b.handlers[kind], reg)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].priority != list[j].priority {
			return list[i].priority < list[j].priority
		}
		return list[i].seq < list[j].seq
	})
	b.handlers[kind] = list

	return &Subscription{bus: b, kind: kind, id: reg.id}
}

func (b *EventBus) remove(kind EventKind, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.handlers[kind]
	for i, reg := range list {
		if reg.id == id {
			b.handlers[kind] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Fire delivers ev to all handlers of its kind. Delivery stops once a
// cancellable event reports cancelled, so low-priority observers never
// see vetoed events.
func (b *EventBus) Fire(ev Event) {
	b.mu.Lock()
	list := b.handlers[ev.Kind()]
	snapshot := make([]registration, len(list))
	copy(snapshot, list)
	b.mu.Unlock()

	for _, reg := range snapshot {
		if c, ok := ev.(Cancellable); ok && c.IsCancelled() {
			return
		}
		reg.fn(ev)
	}
}
