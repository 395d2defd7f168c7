// Package jobs runs periodic background work.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs registered jobs at fixed intervals. A run that is still in
// progress when its next tick arrives causes that tick to be skipped.
type Scheduler struct {
	cron   *cron.Cron
	chain  cron.Chain
	logger *slog.Logger
	jobs   []periodicJob
}

type periodicJob struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context)
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	adapter := cronLogger{logger: logger}
	chain := cron.NewChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter))

	return &Scheduler{
		cron:   cron.New(cron.WithLogger(adapter)),
		chain:  chain,
		logger: logger,
	}
}

// Every registers fn to run every interval, starting as soon as Run is called
func (s *Scheduler) Every(name string, interval time.Duration, fn func(ctx context.Context)) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", name)
	}
	s.jobs = append(s.jobs, periodicJob{name: name, interval: interval, run: fn})
	return nil
}

// Run starts every job and blocks until ctx is done, then waits for running
// jobs to return.
func (s *Scheduler) Run(ctx context.Context) {
	var initial sync.WaitGroup
	for _, j := range s.jobs {
		j := j
		job := s.chain.Then(cron.FuncJob(func() {
			if ctx.Err() != nil {
				return
			}
			start := time.Now()
			j.run(ctx)
			s.logger.Debug("Job finished", "job", j.name, "duration_ms", time.Since(start).Milliseconds())
		}))

		s.cron.Schedule(cron.Every(j.interval), job)
		initial.Add(1)
		go func() {
			defer initial.Done()
			job.Run()
		}()
		s.logger.Info("Job scheduled", "job", j.name, "interval", j.interval.String())
	}

	s.cron.Start()
	<-ctx.Done()

	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
	initial.Wait()
}

// cronLogger routes cron's logging to slog
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
