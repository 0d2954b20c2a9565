package scheduler

import (
	"context"
	"sync"
	"time"
	"venued/internal/providers"
	"venued/internal/structures"

	"github.com/roylee0704/gron"
)

type SchedulerInterface interface {
	Init()
	Stop()
	RunOnce(ctx context.Context) RunReport
}

type Runner interface {
	RunAll(ctx context.Context) RunReport
}

// Scheduler wakes the orchestrator on a fixed interval, standing in for the
// OS background scheduler.
type Scheduler struct {
	config *structures.Config
	logger providers.Logger
	runner Runner
	cron   *gron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	stopping bool
}

func (s *Scheduler) Init() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.cron = gron.New()
	interval := s.config.Scheduler.Interval

	s.cron.AddFunc(gron.Every(interval), s.fire)

	s.cron.Start()
	s.logger.Infof(providers.TypeScheduler, "Scheduler started, interval %s", interval)
}

// fire runs one cycle unless Stop has begun. A job gron dispatched before
// Stop must not join the WaitGroup while Stop is waiting on it.
func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.stopping {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	s.RunOnce(s.ctx)
}

func (s *Scheduler) RunOnce(ctx context.Context) RunReport {
	s.logger.Debugf(providers.TypeScheduler, "Background run started")
	return s.runner.RunAll(ctx)
}

// Stop halts the cron, cancels an in-flight run and waits for it to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopping = true
	s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		s.logger.Warnf(providers.TypeScheduler, "Background run did not stop in time")
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, runner Runner) SchedulerInterface {
	return &Scheduler{
		config: config,
		logger: logger,
		runner: runner,
	}
}
