package services

import (
	"context"
	"venued/internal/models"
	"venued/internal/storage"
)

// VenueExposureAggregator derives the venue exposure level from history.
// It keeps no state; every call reads storage again.
type VenueExposureAggregator struct {
	store storage.VenueRecordStoreInterface
}

func NewVenueExposureAggregator(store storage.VenueRecordStoreInterface) *VenueExposureAggregator {
	return &VenueExposureAggregator{store: store}
}

func (a *VenueExposureAggregator) CurrentInfo(ctx context.Context) (models.VenueExposureInfo, error) {
	visited, err := a.store.GetVisited(ctx)
	if err != nil {
		return models.VenueExposureInfo{}, err
	}
	return ComputeExposureInfo(visited), nil
}

// ComputeExposureInfo returns exposed since the latest checkout among exposed
// records, or healthy when none is exposed.
func ComputeExposureInfo(records []models.VenueRecord) models.VenueExposureInfo {
	exposed := false
	var since *models.VenueRecord
	for i := range records {
		rec := &records[i]
		if !rec.Exposed {
			continue
		}
		exposed = true
		if rec.CheckOutTime == nil {
			continue
		}
		if since == nil || rec.CheckOutTime.After(*since.CheckOutTime) {
			since = rec
		}
	}

	if !exposed {
		return models.VenueExposureInfo{Level: models.ExposureHealthy}
	}
	info := models.VenueExposureInfo{Level: models.ExposureExposed}
	if since != nil {
		t := *since.CheckOutTime
		info.Since = &t
	}
	return info
}
