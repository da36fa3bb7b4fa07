// Package events re-exports the platform event bus for convenience.
// This allows internal modules to import events from internal/events
// while the implementation lives in platform/events.
package events

import (
	platformevents "colabatr_backend/platform/events"
	"colabatr_backend/platform/logger"
)

// Bus is a type alias to the platform event bus interface.
type Bus = platformevents.Bus

// InMemoryBus is a type alias to the platform InMemoryBus.
type InMemoryBus = platformevents.InMemoryBus

// Event aliases for domain events published by this application.
type (
	LocationSelectedEvent = platformevents.LocationSelectedEvent
	UserSignedInEvent     = platformevents.UserSignedInEvent
)

// Event name re-exports.
const (
	EventLocationSelected = platformevents.EventLocationSelected
	EventUserSignedIn     = platformevents.EventUserSignedIn
)

// NewBaseEvent re-exports the platform base event constructor.
var NewBaseEvent = platformevents.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
// This is a convenience re-export from platform/events.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}
