package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	cron "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler runs named jobs on cron specs.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	jobs map[string]job
}

type job struct {
	id  cron.EntryID
	run func()
}

// New returns a scheduler that is not yet started.
// Overlapping runs of the same job are skipped and panics are recovered.
func New(logger *zap.Logger) *Scheduler {
	cl := cronLogger{sugar: logger.Sugar()}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]job),
	}
}

// Add installs fn under name on spec. An empty spec leaves the job unscheduled.
func (s *Scheduler) Add(name, spec string, fn Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("job %q already scheduled", name)
	}
	if spec == "" {
		s.logger.Info("Job has no schedule, skipping", zap.String("job", name))
		return nil
	}

	run := func() {
		start := time.Now()
		if err := fn(s.ctx); err != nil {
			s.logger.Error("Scheduled job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Info("Scheduled job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	}

	id, err := s.cron.AddFunc(spec, run)
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}
	s.jobs[name] = job{id: id, run: run}
	return nil
}

// Start begins running jobs. With runNow every job is also run once immediately,
// in the background.
func (s *Scheduler) Start(runNow bool) {
	s.cron.Start()
	if !runNow {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		go s.cron.Entry(j.id).WrappedJob.Run()
	}
}

// Jobs returns the names of the scheduled jobs.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	return names
}

// Stop halts the scheduler and waits for running jobs, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out, cancelling running jobs")
	}
	s.cancel()
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
