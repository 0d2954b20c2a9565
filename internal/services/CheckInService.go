package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"venued/internal/models"
	"venued/internal/providers"
	"venued/internal/storage"
)

// CheckInService carries out the user's own check-in actions.
type CheckInService struct {
	store    storage.VenueRecordStoreInterface
	kv       storage.KeyValueStore
	resolver VenueInfoResolver
	tracker  EventTracker
	lock     *VenueLock
	logger   providers.Logger
	now      func() time.Time
}

func NewCheckInService(store storage.VenueRecordStoreInterface, kv storage.KeyValueStore, resolver VenueInfoResolver, tracker EventTracker, lock *VenueLock, logger providers.Logger) *CheckInService {
	return &CheckInService{
		store:    store,
		kv:       kv,
		resolver: resolver,
		tracker:  tracker,
		lock:     lock,
		logger:   logger,
		now:      time.Now,
	}
}

func (cs *CheckInService) CheckIn(ctx context.Context, qrPayload string, plusSelected bool) (*models.VenueRecord, error) {
	qrPayload = strings.TrimSpace(qrPayload)
	info, err := cs.resolver.GetInfo(qrPayload)
	if err != nil {
		return nil, fmt.Errorf("resolve venue info: %w", err)
	}

	cs.lock.Lock()
	defer cs.lock.Unlock()

	current, err := cs.store.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if current != nil {
		return nil, ErrAlreadyCheckedIn
	}

	rec := models.VenueRecord{
		QrPayload:    qrPayload,
		Name:         info.Name,
		CheckInTime:  cs.now(),
		PlusSelected: plusSelected,
	}
	if err := cs.kv.Delete(ctx, storage.KeyLastReminder); err != nil {
		return nil, err
	}
	if err := cs.store.SaveCurrent(ctx, rec); err != nil {
		return nil, err
	}
	cs.logger.Infof(providers.TypeCheckIn, "Checked in to %q", rec.Name)
	cs.tracker.Track(ctx, EventCheckIn)
	return &rec, nil
}

// CheckOut closes the current check-in at departure, or now when departure is nil.
func (cs *CheckInService) CheckOut(ctx context.Context, departure *time.Time) (*models.VenueRecord, error) {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	current, err := cs.store.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotCheckedIn
	}

	at := cs.now()
	if departure != nil {
		at = *departure
	}
	closed, err := closeCurrent(ctx, cs.store, cs.kv, cs.resolver, *current, at)
	if err != nil {
		return nil, err
	}
	cs.logger.Infof(providers.TypeCheckIn, "Checked out of %q", closed.Name)
	return closed, nil
}

func (cs *CheckInService) Current(ctx context.Context) (*models.VenueRecord, error) {
	return cs.store.GetCurrent(ctx)
}

func (cs *CheckInService) Visited(ctx context.Context, includeHidden bool) ([]models.VenueRecord, error) {
	visited, err := cs.store.GetVisited(ctx)
	if err != nil {
		return nil, err
	}
	if includeHidden {
		return visited, nil
	}
	out := make([]models.VenueRecord, 0, len(visited))
	for _, rec := range visited {
		if !rec.Hidden {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (cs *CheckInService) Hide(ctx context.Context, checkOutId string) error {
	cs.lock.Lock()
	defer cs.lock.Unlock()

	visited, err := cs.store.GetVisited(ctx)
	if err != nil {
		return err
	}
	for i := range visited {
		if visited[i].CheckOutId != checkOutId {
			continue
		}
		if visited[i].Hidden {
			return nil
		}
		visited[i].Hidden = true
		return cs.store.ReplaceVisited(ctx, visited)
	}
	return ErrRecordNotFound
}
