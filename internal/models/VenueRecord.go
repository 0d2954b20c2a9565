package models

import "time"

// VenueRecord is one check-in/check-out episode. A record without
// CheckOutTime is the current (still open) check-in.
type VenueRecord struct {
	QrPayload    string     `json:"qr_payload"`
	CheckOutId   string     `json:"check_out_id,omitempty"`
	Hidden       bool       `json:"hidden"`
	Exposed      bool       `json:"exposed"`
	Notified     bool       `json:"notified"`
	Name         string     `json:"name"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	PlusSelected bool       `json:"plus_selected"`
}

func (r *VenueRecord) IsOpen() bool {
	return r.CheckOutTime == nil
}

// OlderThan reports whether the record was checked out before cutoff.
// Open records are never older than anything.
func (r *VenueRecord) OlderThan(cutoff time.Time) bool {
	return r.CheckOutTime != nil && r.CheckOutTime.Before(cutoff)
}

// Close returns a checked-out copy of the current record.
func (r VenueRecord) Close(checkOutId string, at time.Time) VenueRecord {
	r.CheckOutId = checkOutId
	r.CheckOutTime = &at
	return r
}

// VenueInfo is what the venue-info resolver extracts from a scanned code.
type VenueInfo struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Room     string `json:"room,omitempty"`
}
