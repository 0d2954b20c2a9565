package services

import (
	"context"
	"fmt"
	"time"
	"venued/internal/models"
	"venued/internal/storage"
)

// closeCurrent moves the current check-in into history. The history append
// happens before the current record is removed, so an interrupted checkout
// never loses the visit.
func closeCurrent(ctx context.Context, store storage.VenueRecordStoreInterface, kv storage.KeyValueStore, resolver VenueInfoResolver, current models.VenueRecord, departure time.Time) (*models.VenueRecord, error) {
	if !departure.After(current.CheckInTime) {
		return nil, ErrInvalidCheckOut
	}

	info, err := resolver.GetInfo(current.QrPayload)
	if err != nil {
		return nil, fmt.Errorf("resolve venue info: %w", err)
	}
	checkOutId, err := resolver.CheckOut(ctx, *info, current.CheckInTime, departure)
	if err != nil {
		return nil, fmt.Errorf("derive checkout id: %w", err)
	}

	closed := current.Close(checkOutId, departure)
	if err := store.AppendVisited(ctx, closed); err != nil {
		return nil, fmt.Errorf("append visited: %w", err)
	}
	if err := store.RemoveCurrent(ctx); err != nil {
		return nil, fmt.Errorf("remove current venue: %w", err)
	}
	if err := kv.Delete(ctx, storage.KeyLastReminder); err != nil {
		return nil, fmt.Errorf("clear reminder timestamp: %w", err)
	}
	return &closed, nil
}
