package services

import (
	"context"
	"sync"
	"time"
	"venued/internal/models"
)

// ProblematicEventFeed fetches problematic events newer than tag. A nil tag
// requests the full feed.
type ProblematicEventFeed interface {
	Fetch(ctx context.Context, tag *string) (*models.ProblematicEventBatch, error)
}

// Matcher checks opaque problematic events against local check-outs.
type Matcher interface {
	CheckForMatches(ctx context.Context, events []models.ProblematicEvent) ([]models.ExposureEvent, error)
}

type VenueInfoResolver interface {
	GetInfo(qrPayload string) (*models.VenueInfo, error)
	CheckOut(ctx context.Context, info models.VenueInfo, arrival, departure time.Time) (string, error)
}

// Notifier calls are fire-and-forget; implementations log their own failures.
type Notifier interface {
	NotifyReminder(ctx context.Context, record models.VenueRecord)
	NotifyAutoCheckout(ctx context.Context, record models.VenueRecord)
	NotifyExposure(ctx context.Context, records []models.VenueRecord)
}

type SettingsProvider interface {
	Settings() models.VenueSettings
}

type AppStateInterface interface {
	IsForeground() bool
}

// InfectionChecker reports whether the contact-tracing side already marks the user infected.
type InfectionChecker interface {
	IsInfected(ctx context.Context) (bool, error)
}

// ExposureObserver is told when the venue exposure state may have changed.
type ExposureObserver interface {
	ExposureChanged()
}

type AnalyticsEvent int

const (
	EventCheckIn AnalyticsEvent = iota
	EventAutoCheckout
	EventSync
	EventExposureNotification
)

// EventTracker counts usage events; tracking never fails the caller.
type EventTracker interface {
	Track(ctx context.Context, event AnalyticsEvent)
}

// VenueLock serialises every read-modify-write of the venue records between
// the background branch and user actions.
type VenueLock struct {
	sync.Mutex
}

func NewVenueLock() *VenueLock {
	return &VenueLock{}
}
