package models

import "time"

// ProblematicEvent is an opaque server-issued identity, only ever handed to the matcher.
type ProblematicEvent struct {
	Payload []byte `json:"payload"`
}

type ProblematicEventBatch struct {
	Events []ProblematicEvent `json:"problematicEvents"`
	Tag    string             `json:"tag"`
}

// ExposureEvent names a checkout implicated by a problematic event.
type ExposureEvent struct {
	CheckinId string `json:"checkinId"`
}

type ExposureLevel string

const (
	ExposureHealthy ExposureLevel = "healthy"
	ExposureExposed ExposureLevel = "exposed"
)

type VenueExposureInfo struct {
	Level ExposureLevel `json:"level"`
	Since *time.Time    `json:"since,omitempty"`
}

// ContactStatus mirrors the aggregate state reported by the proximity-tracing SDK.
type ContactStatus string

const (
	ContactHealthy  ContactStatus = "healthy"
	ContactExposed  ContactStatus = "exposed"
	ContactInfected ContactStatus = "infected"
)

type ContactState struct {
	Status       ContactStatus `json:"status"`
	ExposedSince *time.Time    `json:"exposed_since,omitempty"`
}
