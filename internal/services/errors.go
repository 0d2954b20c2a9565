package services

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyCheckedIn = errors.New("already checked in")
	ErrNotCheckedIn     = errors.New("not checked in")
	ErrRecordNotFound   = errors.New("venue record not found")
	ErrInvalidCheckOut  = errors.New("check-out must be after check-in")
	ErrSyncInProgress   = errors.New("sync already in progress")
)

type SyncStage string

const (
	StageFetch   SyncStage = "fetch"
	StageMatch   SyncStage = "match"
	StageContact SyncStage = "contact"
	StagePersist SyncStage = "persist"
)

// SyncError tells which stage of a problematic event sync failed.
type SyncError struct {
	Stage SyncStage
	Err   error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s: %s", e.Stage, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}
