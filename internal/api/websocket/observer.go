package websocket

import (
	"github.com/inkwellhq/lorcana-companion/internal/events"
)

// EventObserver forwards dispatcher events to the hub so frontends see
// collection, sync, and catalog changes live.
type EventObserver struct {
	hub *Hub
}

// NewEventObserver creates an observer bound to a hub. Register it with
// the event dispatcher.
func NewEventObserver(hub *Hub) *EventObserver {
	return &EventObserver{hub: hub}
}

func (o *EventObserver) OnEvent(event events.Event) error {
	o.hub.Broadcast(Message{Type: event.Type, Data: event.Data})
	return nil
}

func (o *EventObserver) GetName() string {
	return "websocket"
}

func (o *EventObserver) ShouldHandle(string) bool {
	return true
}
