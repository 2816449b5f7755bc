package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/workflow"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderRefreshJob *OrderRefreshJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(wf *workflow.FulfillmentWorkflow, logger *slog.Logger) *JobManager {
	return &JobManager{
		orderRefreshJob: NewOrderRefreshJob(wf, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start order refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderRefreshJob.Stop()
}
