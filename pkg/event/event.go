// pkg/event/event.go
package event

import (
	"sort"
	"sync"
	"time"

	"github.com/opd-ai/go-slinger/pkg/physics"
)

// Type represents the type of event
type Type string

// Event types published by the simulation and the gameplay systems
const (
	ConstraintFault     Type = "constraint_fault"
	BreakerStateChanged Type = "breaker_state_changed"
	StaticIndexBuilt    Type = "static_index_built"
	RopeAttached        Type = "rope_attached"
	RopeCleared         Type = "rope_cleared"
	TimerStarted        Type = "timer_started"
	TimerFinished       Type = "timer_finished"
	ColorPicked         Type = "color_picked"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a handler registered with Subscribe
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching.
// Publish is synchronous: handlers run on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: b.nextID, handler: handler})
	return b.nextID
}

// Unsubscribe removes the handler registered under id.
// It reports whether a handler was removed.
func (b *Bus) Unsubscribe(id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.handlers {
		for i, s := range subs {
			if s.id != id {
				continue
			}
			// copy so that an in-flight Publish keeps its snapshot intact
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			if len(next) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = next
			}
			return true
		}
	}
	return false
}

// Publish sends an event to all subscribed handlers in subscription order
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Count returns the number of handlers subscribed to eventType
func (b *Bus) Count(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Types returns the event types with at least one subscriber, sorted
func (b *Bus) Types() []Type {
	b.mu.RLock()
	defer b.mu.RUnlock()

	types := make([]Type, 0, len(b.handlers))
	for t := range b.handlers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Specific event implementations

// FaultEvent reports a constraint skipped because its solve would corrupt state
type FaultEvent struct {
	BaseEvent
	Tick       uint64
	Constraint string
	Err        error
}

// NewFaultEvent creates a new constraint fault event
func NewFaultEvent(source interface{}, tick uint64, constraint string, err error) *FaultEvent {
	return &FaultEvent{
		BaseEvent: BaseEvent{
			EventType: ConstraintFault,
			Source:    source,
		},
		Tick:       tick,
		Constraint: constraint,
		Err:        err,
	}
}

// BreakerEvent reports a fault guard changing state
type BreakerEvent struct {
	BaseEvent
	Name string
	From string
	To   string
}

// NewBreakerEvent creates a new breaker state event
func NewBreakerEvent(source interface{}, name, from, to string) *BreakerEvent {
	return &BreakerEvent{
		BaseEvent: BaseEvent{
			EventType: BreakerStateChanged,
			Source:    source,
		},
		Name: name,
		From: from,
		To:   to,
	}
}

// IndexEvent reports a rebuilt static index
type IndexEvent struct {
	BaseEvent
	Indexed int
	Skipped int
}

// NewIndexEvent creates a new static index event
func NewIndexEvent(source interface{}, indexed, skipped int) *IndexEvent {
	return &IndexEvent{
		BaseEvent: BaseEvent{
			EventType: StaticIndexBuilt,
			Source:    source,
		},
		Indexed: indexed,
		Skipped: skipped,
	}
}

// RopeEvent contains information about rope attach and clear
type RopeEvent struct {
	BaseEvent
	Hand     physics.Handle
	Anchor   physics.Vector2D
	Segments int
}

// NewRopeEvent creates a new rope event
func NewRopeEvent(eventType Type, source interface{}, hand physics.Handle, anchor physics.Vector2D, segments int) *RopeEvent {
	return &RopeEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Hand:     hand,
		Anchor:   anchor,
		Segments: segments,
	}
}

// TimerEvent contains information about the run timer
type TimerEvent struct {
	BaseEvent
	Trigger physics.Handle
	Elapsed time.Duration
}

// NewTimerEvent creates a new timer event
func NewTimerEvent(eventType Type, source interface{}, trigger physics.Handle, elapsed time.Duration) *TimerEvent {
	return &TimerEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Trigger: trigger,
		Elapsed: elapsed,
	}
}

// ColorEvent reports the color picked by touching a static
type ColorEvent struct {
	BaseEvent
	Static physics.Handle
	Color  string
}

// NewColorEvent creates a new color event
func NewColorEvent(source interface{}, static physics.Handle, color string) *ColorEvent {
	return &ColorEvent{
		BaseEvent: BaseEvent{
			EventType: ColorPicked,
			Source:    source,
		},
		Static: static,
		Color:  color,
	}
}
