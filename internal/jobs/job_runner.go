package jobs

import (
	"github.com/Poscom2010/Fleetrack-sub000/internal/config"
	"github.com/Poscom2010/Fleetrack-sub000/internal/logger"
	"github.com/Poscom2010/Fleetrack-sub000/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	fleet  service.FleetService
	email  service.EmailService
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(fleet service.FleetService, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		fleet:  fleet,
		email:  email,
		config: cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.SendServiceDueDigests()
	jr.SendOverdueAlerts()
}
