package jobs

import (
	"github.com/akashad48/DnaikEquipRent-sub000/internal/config"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/logger"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/service"
)

// JobRunner coordinates all scheduled jobs.
type JobRunner struct {
	rentalRepo repository.RentalRepository
	email      service.EmailService
	config     *config.Config
}

func NewJobRunner(rentalRepo repository.RentalRepository, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		rentalRepo: rentalRepo,
		email:      email,
		config:     cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery.
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

// RunAllNightlyJobs runs every scheduled job once (for manual execution).
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.SendPaymentReminders()
	jr.SendLongRentalAlerts()
}
