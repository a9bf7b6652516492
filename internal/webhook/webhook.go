// Package webhook delivers registration events to external indexers.
package webhook

import (
	domain "media-registry/internal/domain/registry"
)

// EventRegistered is the event name carried on every payload.
const EventRegistered = "media.registered"

// Payload is the structure sent to webhook URLs.
type Payload struct {
	ID            string             `json:"id"`
	Event         string             `json:"event"`
	MediaID       uint64             `json:"media_id"`
	Creator       string             `json:"creator"`
	SchemaVersion int                `json:"schema_version"`
	Origin        *domain.OriginLink `json:"origin,omitempty"`
	OccurredAt    string             `json:"occurred_at"`
}

func buildPayload(event domain.RegistrationEvent) Payload {
	return Payload{
		ID:            event.EventID,
		Event:         EventRegistered,
		MediaID:       event.MediaID,
		Creator:       event.Creator,
		SchemaVersion: event.SchemaVersion,
		Origin:        event.Origin,
		OccurredAt:    event.OccurredAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}
