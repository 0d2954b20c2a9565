package storage

import (
	"context"
	"errors"
	"venued/internal/models"
)

const (
	KeyCurrentVenue  = "venue.current"
	KeyVisitedVenues = "venue.visited"
)

type VenueRecordStoreInterface interface {
	GetCurrent(ctx context.Context) (*models.VenueRecord, error)
	SaveCurrent(ctx context.Context, record models.VenueRecord) error
	RemoveCurrent(ctx context.Context) error
	GetVisited(ctx context.Context) ([]models.VenueRecord, error)
	AppendVisited(ctx context.Context, record models.VenueRecord) error
	ReplaceVisited(ctx context.Context, records []models.VenueRecord) error
}

// VenueRecordStore holds at most one current check-in and the visit history.
// It applies no policy. ReplaceVisited is a full overwrite; callers own the
// read-modify-write sequence.
type VenueRecordStore struct {
	kv KeyValueStore
}

func NewVenueRecordStore(kv KeyValueStore) VenueRecordStoreInterface {
	return &VenueRecordStore{kv: kv}
}

// GetCurrent returns nil when nobody is checked in.
func (s *VenueRecordStore) GetCurrent(ctx context.Context) (*models.VenueRecord, error) {
	var rec models.VenueRecord
	err := s.kv.Get(ctx, KeyCurrentVenue, &rec)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *VenueRecordStore) SaveCurrent(ctx context.Context, record models.VenueRecord) error {
	return s.kv.Set(ctx, KeyCurrentVenue, record)
}

func (s *VenueRecordStore) RemoveCurrent(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyCurrentVenue)
}

// GetVisited returns an empty, non-nil slice when no history exists.
func (s *VenueRecordStore) GetVisited(ctx context.Context) ([]models.VenueRecord, error) {
	var records []models.VenueRecord
	err := s.kv.Get(ctx, KeyVisitedVenues, &records)
	if errors.Is(err, ErrNotFound) {
		return []models.VenueRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.VenueRecord{}
	}
	return records, nil
}

func (s *VenueRecordStore) AppendVisited(ctx context.Context, record models.VenueRecord) error {
	records, err := s.GetVisited(ctx)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, KeyVisitedVenues, append(records, record))
}

func (s *VenueRecordStore) ReplaceVisited(ctx context.Context, records []models.VenueRecord) error {
	if records == nil {
		records = []models.VenueRecord{}
	}
	return s.kv.Set(ctx, KeyVisitedVenues, records)
}
