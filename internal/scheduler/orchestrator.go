package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"venued/internal/providers"

	"go.uber.org/atomic"
)

const (
	BranchContact   = "contact"
	BranchAnalytics = "analytics"
	BranchFake      = "fake"
	BranchVenue     = "venue"
)

type ConfigRefresher interface {
	Refresh(ctx context.Context) error
	Reset()
}

type CheckInTicker interface {
	Tick(ctx context.Context) error
}

type EventSyncer interface {
	Sync(ctx context.Context) error
}

type BackToHealthyChecker interface {
	CheckBackToHealthy(ctx context.Context) (bool, error)
}

type AnalyticsUploader interface {
	Upload(ctx context.Context) (bool, error)
}

type FakeRequestRunner interface {
	Run(ctx context.Context) (bool, error)
}

type BranchResult struct {
	Name    string
	DidWork bool
	Err     error
}

// RunReport describes one background cycle. Branch errors are already logged.
type RunReport struct {
	Skipped  bool
	Branches []BranchResult
}

func (r RunReport) Branch(name string) (BranchResult, bool) {
	for _, b := range r.Branches {
		if b.Name == name {
			return b, true
		}
	}
	return BranchResult{}, false
}

// Orchestrator runs every periodic task of one background wake-up. The venue
// branch checks the current check-in before it syncs; the other branches run
// alongside it and a failure in one never affects the others.
type Orchestrator struct {
	config    ConfigRefresher
	contact   BackToHealthyChecker
	analytics AnalyticsUploader
	fake      FakeRequestRunner
	monitor   CheckInTicker
	syncer    EventSyncer
	metrics   providers.MetricsProviderInterface
	logger    providers.Logger
	inFlight  atomic.Bool
}

func NewOrchestrator(config ConfigRefresher, contact BackToHealthyChecker, analytics AnalyticsUploader, fake FakeRequestRunner, monitor CheckInTicker, syncer EventSyncer, metrics providers.MetricsProviderInterface, logger providers.Logger) *Orchestrator {
	return &Orchestrator{
		config:    config,
		contact:   contact,
		analytics: analytics,
		fake:      fake,
		monitor:   monitor,
		syncer:    syncer,
		metrics:   metrics,
		logger:    logger,
	}
}

// RunAll never fails. An overlapping call returns a skipped report at once.
func (o *Orchestrator) RunAll(ctx context.Context) RunReport {
	if !o.inFlight.CompareAndSwap(false, true) {
		o.logger.Warnf(providers.TypeScheduler, "Background run already in flight, skipping")
		return RunReport{Skipped: true}
	}
	defer o.inFlight.Store(false)

	start := time.Now()
	if err := o.config.Refresh(ctx); err != nil {
		o.logger.Warnf(providers.TypeScheduler, "Remote config refresh failed, using defaults: %s", err)
		o.config.Reset()
	}

	branches := []struct {
		name string
		fn   func(context.Context) (bool, error)
	}{
		{BranchContact, o.contact.CheckBackToHealthy},
		{BranchAnalytics, o.analytics.Upload},
		{BranchFake, o.fake.Run},
		{BranchVenue, o.runVenue},
	}

	results := make([]BranchResult, len(branches))
	var wg sync.WaitGroup
	for i, b := range branches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = o.runBranch(ctx, b.name, b.fn)
		}()
	}
	wg.Wait()

	o.logger.Infof(providers.TypeScheduler, "Background run finished in %s", time.Since(start).Round(time.Millisecond))
	return RunReport{Branches: results}
}

func (o *Orchestrator) runBranch(ctx context.Context, name string, fn func(context.Context) (bool, error)) (res BranchResult) {
	res.Name = name
	defer func() {
		if r := recover(); r != nil {
			res.DidWork = false
			res.Err = fmt.Errorf("panic: %v", r)
		}
		status := "ok"
		if res.Err != nil {
			status = "error"
			o.logger.Errorf(providers.GetLogTypeByComponent(name), "Background branch %s failed: %s", name, res.Err)
		}
		o.metrics.IncBranchTotal(name, status)
	}()

	res.DidWork, res.Err = fn(ctx)
	return res
}

// runVenue syncs even when the check-in tick failed, so a reminder or
// checkout problem never holds back exposure detection.
func (o *Orchestrator) runVenue(ctx context.Context) (bool, error) {
	tickErr := o.monitor.Tick(ctx)
	if tickErr != nil {
		tickErr = fmt.Errorf("check-in tick: %w", tickErr)
	}
	syncErr := o.syncer.Sync(ctx)
	if syncErr != nil {
		syncErr = fmt.Errorf("problematic event sync: %w", syncErr)
	}
	if err := errors.Join(tickErr, syncErr); err != nil {
		return false, err
	}
	return true, nil
}
