package services

import (
	"context"
	"sync"
	"time"
	"venued/internal/models"
	"venued/internal/providers"
	"venued/internal/storage"
)

// ProblematicEventSync runs the fetch, match, prune and notify cycle against
// the problematic event feed.
type ProblematicEventSync struct {
	store     storage.VenueRecordStoreInterface
	kv        storage.KeyValueStore
	feed      ProblematicEventFeed
	matcher   Matcher
	notifier  Notifier
	infection InfectionChecker
	settings  SettingsProvider
	observer  ExposureObserver
	tracker   EventTracker
	lock      *VenueLock
	metrics   providers.MetricsProviderInterface
	logger    providers.Logger
	now       func() time.Time
	running   sync.Mutex
}

func NewProblematicEventSync(store storage.VenueRecordStoreInterface, kv storage.KeyValueStore, feed ProblematicEventFeed, matcher Matcher, notifier Notifier, infection InfectionChecker, settings SettingsProvider, observer ExposureObserver, tracker EventTracker, lock *VenueLock, metrics providers.MetricsProviderInterface, logger providers.Logger) *ProblematicEventSync {
	return &ProblematicEventSync{
		store:     store,
		kv:        kv,
		feed:      feed,
		matcher:   matcher,
		notifier:  notifier,
		infection: infection,
		settings:  settings,
		observer:  observer,
		tracker:   tracker,
		lock:      lock,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ProblematicEventSync) Sync(ctx context.Context) error {
	if !s.running.TryLock() {
		return ErrSyncInProgress
	}
	defer s.running.Unlock()

	start := time.Now()
	err := s.sync(ctx)
	s.metrics.ObserveSyncDuration(time.Since(start))
	if err != nil {
		s.metrics.IncSyncTotal("error")
		return err
	}
	s.metrics.IncSyncTotal("ok")
	s.tracker.Track(ctx, EventSync)
	return nil
}

func (s *ProblematicEventSync) sync(ctx context.Context) error {
	tag, err := storage.GetString(ctx, s.kv, storage.KeySyncTag)
	if err != nil {
		return &SyncError{Stage: StageFetch, Err: err}
	}

	batch, err := s.feed.Fetch(ctx, tag)
	if err != nil {
		return &SyncError{Stage: StageFetch, Err: err}
	}
	s.metrics.IncProblematicEvents(len(batch.Events))

	var matches []models.ExposureEvent
	if len(batch.Events) > 0 {
		matches, err = s.matcher.CheckForMatches(ctx, batch.Events)
		if err != nil {
			return &SyncError{Stage: StageMatch, Err: err}
		}
	}

	now := s.now()
	notified, changed, err := s.updateVisited(ctx, matches, now)
	if err != nil {
		return err
	}

	if len(notified) > 0 {
		s.notifier.NotifyExposure(ctx, notified)
		s.metrics.IncNotifications("exposure")
		s.tracker.Track(ctx, EventExposureNotification)
	}
	if changed && s.observer != nil {
		s.observer.ExposureChanged()
	}

	if batch.Tag != "" {
		if err := s.kv.Set(ctx, storage.KeySyncTag, batch.Tag); err != nil {
			return &SyncError{Stage: StagePersist, Err: err}
		}
	}
	if err := s.kv.Set(ctx, storage.KeyLastChecked, now); err != nil {
		return &SyncError{Stage: StagePersist, Err: err}
	}

	s.logger.Infof(providers.TypeSync, "Sync done: %d events, %d matches, tag %q", len(batch.Events), len(matches), batch.Tag)
	return nil
}

// updateVisited flags matched records, prunes records past the quarantine
// window and marks exposed records notified, then writes the history once.
// It returns the records the exposure notification is for (empty when no
// notification is due) and whether exposure state changed.
func (s *ProblematicEventSync) updateVisited(ctx context.Context, matches []models.ExposureEvent, now time.Time) ([]models.VenueRecord, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	visited, err := s.store.GetVisited(ctx)
	if err != nil {
		return nil, false, &SyncError{Stage: StagePersist, Err: err}
	}

	cutoff := now.Add(-s.settings.Settings().QuarantineWindow)
	flagged := flagExposed(visited, matches)
	kept, pruned := pruneOlderThan(visited, cutoff)

	var pending []models.VenueRecord
	for _, rec := range kept {
		if rec.Exposed && !rec.Notified {
			pending = append(pending, rec)
		}
	}

	notify := false
	if len(pending) > 0 {
		infected, err := s.infection.IsInfected(ctx)
		if err != nil {
			return nil, false, &SyncError{Stage: StageContact, Err: err}
		}
		// Someone already reported infected is not alerted again.
		notify = !infected
		for i := range kept {
			if kept[i].Exposed {
				kept[i].Notified = true
			}
		}
	}

	if flagged > 0 || pruned > 0 || len(pending) > 0 {
		if err := s.store.ReplaceVisited(ctx, kept); err != nil {
			return nil, false, &SyncError{Stage: StagePersist, Err: err}
		}
	}
	s.metrics.SetVisitedRecords(len(kept))
	if pruned > 0 {
		s.logger.Infof(providers.TypeSync, "Pruned %d venue records checked out before %s", pruned, cutoff.Format(time.RFC3339))
	}

	if !notify {
		pending = nil
	}
	return pending, flagged > 0 || pruned > 0, nil
}

// flagExposed sets Exposed on every record whose checkout id was matched and
// returns how many records changed.
func flagExposed(records []models.VenueRecord, matches []models.ExposureEvent) int {
	if len(matches) == 0 {
		return 0
	}
	ids := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		ids[m.CheckinId] = struct{}{}
	}
	changed := 0
	for i := range records {
		if records[i].CheckOutId == "" || records[i].Exposed {
			continue
		}
		if _, ok := ids[records[i].CheckOutId]; ok {
			records[i].Exposed = true
			changed++
		}
	}
	return changed
}

// pruneOlderThan drops records checked out before cutoff.
func pruneOlderThan(records []models.VenueRecord, cutoff time.Time) ([]models.VenueRecord, int) {
	kept := make([]models.VenueRecord, 0, len(records))
	for _, rec := range records {
		if rec.OlderThan(cutoff) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, len(records) - len(kept)
}
