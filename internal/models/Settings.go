package models

import "time"

// RemoteSettings is the server-provided configuration. Nil fields are unset
// and fall back to local configuration.
type RemoteSettings struct {
	AutoCheckoutMinutes     *int `json:"autoCheckoutMinutes,omitempty"`
	ReminderIntervalMinutes *int `json:"reminderIntervalMinutes,omitempty"`
	QuarantineWindowMinutes *int `json:"quarantineWindowMinutes,omitempty"`
}

// VenueSettings are the effective policy values for one tick.
type VenueSettings struct {
	AutoCheckout     time.Duration
	ReminderInterval time.Duration
	QuarantineWindow time.Duration
}

type AnalyticsCounters struct {
	CheckIns              int `json:"check_ins"`
	AutoCheckouts         int `json:"auto_checkouts"`
	Syncs                 int `json:"syncs"`
	ExposureNotifications int `json:"exposure_notifications"`
}

func (c AnalyticsCounters) Add(o AnalyticsCounters) AnalyticsCounters {
	return AnalyticsCounters{
		CheckIns:              c.CheckIns + o.CheckIns,
		AutoCheckouts:         c.AutoCheckouts + o.AutoCheckouts,
		Syncs:                 c.Syncs + o.Syncs,
		ExposureNotifications: c.ExposureNotifications + o.ExposureNotifications,
	}
}

type AnalyticsReport struct {
	Counters   AnalyticsCounters `json:"counters"`
	ReportedAt time.Time         `json:"reported_at"`
}
