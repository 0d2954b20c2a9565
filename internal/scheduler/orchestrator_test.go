package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"venued/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (c *callLog) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, name)
}

func (c *callLog) has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.calls {
		if n == name {
			return true
		}
	}
	return false
}

func (c *callLog) indexOf(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.calls {
		if n == name {
			return i
		}
	}
	return -1
}

type stubConfig struct {
	log        *callLog
	refreshErr error
}

func (s *stubConfig) Refresh(context.Context) error {
	s.log.add("refresh")
	return s.refreshErr
}

func (s *stubConfig) Reset() { s.log.add("reset") }

type stubBranch struct {
	log   *callLog
	name  string
	err   error
	panic bool
	block chan struct{}
}

func (s *stubBranch) run() (bool, error) {
	if s.block != nil {
		<-s.block
	}
	s.log.add(s.name)
	if s.panic {
		panic(s.name + " exploded")
	}
	return s.err == nil, s.err
}

func (s *stubBranch) CheckBackToHealthy(context.Context) (bool, error) { return s.run() }
func (s *stubBranch) Upload(context.Context) (bool, error)             { return s.run() }
func (s *stubBranch) Run(context.Context) (bool, error)                { return s.run() }

func (s *stubBranch) Tick(context.Context) error {
	_, err := s.run()
	return err
}

func (s *stubBranch) Sync(context.Context) error {
	_, err := s.run()
	return err
}

type fixture struct {
	log       *callLog
	config    *stubConfig
	contact   *stubBranch
	analytics *stubBranch
	fake      *stubBranch
	tick      *stubBranch
	sync      *stubBranch
	metrics   *testutil.MockMetrics
	logger    *testutil.MockLogger
}

func newFixture() *fixture {
	log := &callLog{}
	return &fixture{
		log:       log,
		config:    &stubConfig{log: log},
		contact:   &stubBranch{log: log, name: "contact"},
		analytics: &stubBranch{log: log, name: "analytics"},
		fake:      &stubBranch{log: log, name: "fake"},
		tick:      &stubBranch{log: log, name: "tick"},
		sync:      &stubBranch{log: log, name: "sync"},
		metrics:   testutil.NewMockMetrics(),
		logger:    &testutil.MockLogger{},
	}
}

func (f *fixture) orchestrator() *Orchestrator {
	return NewOrchestrator(f.config, f.contact, f.analytics, f.fake, f.tick, f.sync, f.metrics, f.logger)
}

func TestRunAll_AllBranchesSucceed(t *testing.T) {
	f := newFixture()
	report := f.orchestrator().RunAll(context.Background())

	assert.False(t, report.Skipped)
	require.Len(t, report.Branches, 4)
	for _, name := range []string{BranchContact, BranchAnalytics, BranchFake, BranchVenue} {
		b, ok := report.Branch(name)
		require.True(t, ok, name)
		assert.NoError(t, b.Err)
		assert.True(t, b.DidWork)
		assert.Equal(t, "ok", f.metrics.Branch(name))
	}
	assert.Equal(t, 0, f.log.indexOf("refresh"))
	assert.False(t, f.log.has("reset"))
}

func TestRunAll_ConfigFailureFallsBackToDefaults(t *testing.T) {
	f := newFixture()
	f.config.refreshErr = errors.New("offline")

	report := f.orchestrator().RunAll(context.Background())

	assert.True(t, f.log.has("reset"))
	assert.Less(t, f.log.indexOf("reset"), f.log.indexOf("sync"))
	b, _ := report.Branch(BranchVenue)
	assert.NoError(t, b.Err)
}

func TestRunAll_FailingBranchDoesNotAffectOthers(t *testing.T) {
	f := newFixture()
	f.analytics.err = errors.New("upload failed")
	f.fake.panic = true

	report := f.orchestrator().RunAll(context.Background())

	analytics, _ := report.Branch(BranchAnalytics)
	assert.EqualError(t, analytics.Err, "upload failed")
	fake, _ := report.Branch(BranchFake)
	require.Error(t, fake.Err)
	assert.Contains(t, fake.Err.Error(), "panic")
	assert.False(t, fake.DidWork)

	contact, _ := report.Branch(BranchContact)
	assert.NoError(t, contact.Err)
	venue, _ := report.Branch(BranchVenue)
	assert.NoError(t, venue.Err)

	assert.Equal(t, "error", f.metrics.Branch(BranchAnalytics))
	assert.Equal(t, "error", f.metrics.Branch(BranchFake))
	assert.Equal(t, "ok", f.metrics.Branch(BranchVenue))
	assert.Equal(t, 2, f.logger.Count("error"))
}

func TestRunAll_VenueTicksBeforeSync(t *testing.T) {
	f := newFixture()
	f.orchestrator().RunAll(context.Background())

	assert.Less(t, f.log.indexOf("tick"), f.log.indexOf("sync"))
}

func TestRunAll_SyncRunsAfterTickFailure(t *testing.T) {
	f := newFixture()
	tickErr := errors.New("checkout failed")
	f.tick.err = tickErr

	report := f.orchestrator().RunAll(context.Background())

	assert.True(t, f.log.has("sync"))
	venue, _ := report.Branch(BranchVenue)
	assert.ErrorIs(t, venue.Err, tickErr)
	assert.False(t, venue.DidWork)
}

func TestRunAll_BothVenueErrorsReported(t *testing.T) {
	f := newFixture()
	tickErr := errors.New("tick")
	syncErr := errors.New("sync")
	f.tick.err = tickErr
	f.sync.err = syncErr

	venue, _ := f.orchestrator().RunAll(context.Background()).Branch(BranchVenue)
	assert.ErrorIs(t, venue.Err, tickErr)
	assert.ErrorIs(t, venue.Err, syncErr)
}

func TestRunAll_OverlappingRunIsSkipped(t *testing.T) {
	f := newFixture()
	f.contact.block = make(chan struct{})
	o := f.orchestrator()

	done := make(chan RunReport)
	go func() { done <- o.RunAll(context.Background()) }()

	require.Eventually(t, o.inFlight.Load, testTimeout, testTick)
	second := o.RunAll(context.Background())
	assert.True(t, second.Skipped)
	assert.Empty(t, second.Branches)

	close(f.contact.block)
	first := <-done
	assert.False(t, first.Skipped)

	third := o.RunAll(context.Background())
	assert.False(t, third.Skipped)
}

func TestRunReport_BranchMissing(t *testing.T) {
	_, ok := RunReport{}.Branch(BranchVenue)
	assert.False(t, ok)
}
