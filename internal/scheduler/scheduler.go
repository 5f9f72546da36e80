package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler wraps cron-based background jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *logrus.Logger
}

// New creates a scheduler running in the local time zone
func New(logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.Local)),
		logger: logger,
	}
}

// ScheduleInterval registers a periodic job every given duration. Each run
// gets its own bounded context.
func (s *Scheduler) ScheduleInterval(name string, interval time.Duration, job func(ctx context.Context)) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}

	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	return s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		s.logger.WithField("job", name).Debug("Scheduled job starting")
		job(ctx)
	})
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
