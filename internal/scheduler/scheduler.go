package scheduler

import (
	"time"

	"juntaai-backend/internal/jobs"
	"juntaai-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs()
	return s
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	_, err := s.cron.AddFunc(cfg.PendingReminders, s.jobs.SendPendingApprovalReminders)
	if err != nil {
		logger.Error("Failed to register SendPendingApprovalReminders job", "error", err)
	}

	_, err = s.cron.AddFunc(cfg.StaleUploadSweep, s.jobs.SweepStaleUploads)
	if err != nil {
		logger.Error("Failed to register SweepStaleUploads job", "error", err)
	}
}

// Start begins the scheduler loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started")
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Scheduler stopped")
}
