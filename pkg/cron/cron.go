// Package cron runs periodic jobs.
package cron

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// Scheduler is a cron-like job scheduler.
type Scheduler struct {
	*cron.Cron
	logger *log.Logger
}

// cronLogger is a wrapper around the logger to make it compatible with the
// cron logger.
type cronLogger struct {
	logger *log.Logger
}

// Info logs routine messages about cron's operation.
func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Error logs an error condition.
func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "err", err)...)
}

// NewScheduler returns a new Scheduler. Jobs that panic are recovered and a
// run is skipped while the previous one is still going.
func NewScheduler(ctx context.Context) *Scheduler {
	logger := log.FromContext(ctx).WithPrefix("cron")
	cl := cronLogger{logger}
	return &Scheduler{
		Cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// Shutdown stops the Scheduler and waits up to 30 seconds for running jobs.
func (s *Scheduler) Shutdown() {
	ctx, cancel := context.WithTimeout(s.Cron.Stop(), 30*time.Second)
	defer cancel()
	<-ctx.Done()
}

// Start starts the Scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
}

// AddFunc adds a named job to the Scheduler. Every run is logged with its
// duration.
func (s *Scheduler) AddFunc(name, spec string, fn func()) (int, error) {
	id, err := s.Cron.AddFunc(spec, func() {
		start := time.Now()
		fn()
		s.logger.Debug("job done", "job", name, "time", time.Since(start))
	})
	return int(id), err
}

// Remove removes a job from the Scheduler.
func (s *Scheduler) Remove(id int) {
	s.Cron.Remove(cron.EntryID(id))
}
