package schema

import "fmt"

// Event is one non-fatal policy decision or diagnostic recorded while
// recomputing a ranking. Fallbacks are results plus an event, never errors.
type Event struct {
	Kind   EventKind `json:"kind"`
	Scope  string    `json:"scope"`
	Detail string    `json:"detail"`
}

// String renders the event for stderr warnings and table footers.
func (e Event) String() string {
	return fmt.Sprintf("%s [%s]: %s", e.Kind, e.Scope, e.Detail)
}

// EventLog collects events for one recomputation pass. Methods are nil-safe
// so pure helpers can be called without a log when the caller does not
// care about diagnostics.
type EventLog struct {
	events []Event
}

// Add records an event.
func (l *EventLog) Add(kind EventKind, scope, detail string) {
	if l == nil {
		return
	}
	l.events = append(l.events, Event{Kind: kind, Scope: scope, Detail: detail})
}

// Addf records an event with a formatted detail message.
func (l *EventLog) Addf(kind EventKind, scope, format string, args ...any) {
	l.Add(kind, scope, fmt.Sprintf(format, args...))
}

// Events returns a copy of all recorded events in order.
func (l *EventLog) Events() []Event {
	if l == nil || len(l.events) == 0 {
		return nil
	}
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Has reports whether any event of the given kind was recorded.
func (l *EventLog) Has(kind EventKind) bool {
	if l == nil {
		return false
	}
	for _, e := range l.events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Len returns the number of recorded events.
func (l *EventLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.events)
}
