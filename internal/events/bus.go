// Package events is a small notification bus for observing a calculation.
// Handlers are fire-and-forget: nothing they do feeds back into the run.
package events

import "sync"

// Kind identifies a calculation stage.
type Kind int

const (
	CalculationStarting Kind = iota
	BranchCaseResolved
	CommitVersionFound
	MessagesCollected
	CalculationCompleted
)

func (k Kind) String() string {
	switch k {
	case CalculationStarting:
		return "CalculationStarting"
	case BranchCaseResolved:
		return "BranchCaseResolved"
	case CommitVersionFound:
		return "CommitVersionFound"
	case MessagesCollected:
		return "MessagesCollected"
	case CalculationCompleted:
		return "CalculationCompleted"
	default:
		return "Unknown"
	}
}

// Event is delivered to handlers. Payload holds the stage result
// (settings, found version, message count or the final result).
type Event struct {
	Kind       Kind
	BranchName string
	Payload    any
}

// Handler observes an event.
type Handler func(Event)

// Bus dispatches events to registered handlers in registration order.
// The zero value is ready to use and a nil *Bus ignores all calls.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// On registers h for kind.
func (b *Bus) On(kind Kind, h Handler) {
	if b == nil || h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers == nil {
		b.handlers = make(map[Kind][]Handler)
	}
	b.handlers[kind] = append(b.handlers[kind], h)
}

// OnAll registers h for every kind.
func (b *Bus) OnAll(h Handler) {
	for k := CalculationStarting; k <= CalculationCompleted; k++ {
		b.On(k, h)
	}
}

// Emit calls the handlers registered for kind synchronously.
func (b *Bus) Emit(kind Kind, branchName string, payload any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[kind]...)
	b.mu.RUnlock()

	ev := Event{Kind: kind, BranchName: branchName, Payload: payload}
	for _, h := range handlers {
		h(ev)
	}
}
