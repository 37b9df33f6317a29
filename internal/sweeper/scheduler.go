package sweeper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/adapter"
	"github.com/sonobay/sonobay-indexer/internal/logger"
)

// Job binds a sweeper to the interval it runs at
type Job struct {
	Sweeper  Sweeper
	Interval time.Duration
	// RunOnStart runs the sweeper once as soon as the scheduler starts
	RunOnStart bool
}

// Scheduler runs sweepers on fixed intervals
type Scheduler interface {
	// Start blocks until the context is canceled, then waits for running sweeps to finish
	Start(ctx context.Context) error
}

type scheduler struct {
	jobs  []Job
	clock adapter.Clock
}

func NewScheduler(clock adapter.Clock, jobs ...Job) Scheduler {
	return &scheduler{
		jobs:  jobs,
		clock: clock,
	}
}

func (s *scheduler) Start(ctx context.Context) error {
	cronLogger := logger.NewCronLogger()
	c := cron.New(cron.WithLogger(cronLogger))

	// overlapping ticks of the same sweeper are skipped
	chain := cron.NewChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))

	var startup []cron.Job
	for _, j := range s.jobs {
		if j.Interval <= 0 {
			return fmt.Errorf("sweeper %s: interval must be positive", j.Sweeper.Name())
		}

		job := chain.Then(cron.FuncJob(func() {
			s.run(ctx, j.Sweeper)
		}))
		c.Schedule(cron.Every(j.Interval), job)
		if j.RunOnStart {
			startup = append(startup, job)
		}

		logger.InfoCtx(ctx, "Scheduled sweeper",
			zap.String("sweeper", j.Sweeper.Name()),
			zap.Duration("interval", j.Interval),
			zap.Bool("runOnStart", j.RunOnStart))
	}

	c.Start()
	for _, job := range startup {
		go job.Run()
	}

	<-ctx.Done()
	logger.InfoCtx(ctx, "Stopping scheduler")
	<-c.Stop().Done()
	logger.InfoCtx(ctx, "Scheduler stopped")
	return nil
}

func (s *scheduler) run(ctx context.Context, sw Sweeper) {
	if ctx.Err() != nil {
		return
	}

	runID := ulid.Make().String()
	start := s.clock.Now()
	logger.InfoCtx(ctx, "Starting sweep",
		zap.String("sweeper", sw.Name()),
		zap.String("runID", runID))

	if err := sw.RunOnce(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.InfoCtx(ctx, "Sweep canceled", zap.String("sweeper", sw.Name()), zap.String("runID", runID))
			return
		}
		logger.ErrorCtx(ctx, fmt.Errorf("sweep %s failed: %w", sw.Name(), err), zap.String("runID", runID))
		return
	}

	logger.InfoCtx(ctx, "Sweep completed",
		zap.String("sweeper", sw.Name()),
		zap.String("runID", runID),
		zap.Duration("duration", s.clock.Since(start)))
}
