package jobs

import (
	"context"
	"time"

	"toolrental-backend/internal/config"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	holidays service.Holidays
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(holidays service.Holidays, cfg *config.Config) *JobRunner {
	return &JobRunner{
		holidays: holidays,
		config:   cfg,
	}
}

// Config returns the application configuration for scheduling
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

// PrewarmHolidays resolves the holiday sets for the current and next
// calendar year so year-boundary checkouts never stampede the external
// provider.
func (jr *JobRunner) PrewarmHolidays() {
	jr.runWithRecovery("PrewarmHolidays", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		year := time.Now().UTC().Year()
		for _, y := range []int{year, year + 1} {
			holidays, err := jr.holidays.HolidaysFor(ctx, y)
			if err != nil {
				logger.Warn("Failed to prewarm holidays", "year", y, "error", err)
				continue
			}
			logger.Info("Prewarmed holidays", "year", y, "count", len(holidays))
		}
	})
}
