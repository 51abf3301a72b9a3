// Package events buffers the events emitted during a single engine call.
package events

import (
	"context"
	"fmt"

	"cosmossdk.io/core/event"
	"google.golang.org/protobuf/runtime/protoiface"
)

type managerContextKey struct{}

// Event is a typed event with its key-value attributes.
type Event struct {
	Type       string
	Attributes []event.Attribute
}

// Attribute returns the value of the attribute with the given key.
func (e Event) Attribute(key string) (string, bool) {
	for _, attr := range e.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Manager collects events in emission order.
type Manager struct {
	events []Event
}

var _ event.Manager = (*Manager)(nil)

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{}
}

// Emit records a protobuf message as an event typed by its Go type.
func (m *Manager) Emit(_ context.Context, msg protoiface.MessageV1) error {
	m.events = append(m.events, Event{
		Type:       fmt.Sprintf("%T", msg),
		Attributes: []event.Attribute{{Key: "message", Value: msg.String()}},
	})
	return nil
}

// EmitKV records an event with key-value attributes.
func (m *Manager) EmitKV(_ context.Context, eventType string, attrs ...event.Attribute) error {
	m.events = append(m.events, Event{Type: eventType, Attributes: attrs})
	return nil
}

// EmitNonConsensus records a protobuf message like Emit.
func (m *Manager) EmitNonConsensus(ctx context.Context, msg protoiface.MessageV1) error {
	return m.Emit(ctx, msg)
}

// Events returns the recorded events.
func (m *Manager) Events() []Event {
	return m.events
}

// Service hands out the Manager carried by the context.
type Service struct{}

var _ event.Service = Service{}

// EventManager returns the manager in ctx, or a fresh one whose events are
// never read when ctx carries none.
func (Service) EventManager(ctx context.Context) event.Manager {
	if m, ok := ctx.Value(managerContextKey{}).(*Manager); ok {
		return m
	}
	return NewManager()
}

// ContextWithManager returns a context whose event service emits into m.
func ContextWithManager(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, managerContextKey{}, m)
}
