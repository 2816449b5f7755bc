package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/workflow"

	"github.com/robfig/cron/v3"
)

// orderRefreshSchedule reloads the pending-order list every five minutes.
const orderRefreshSchedule = "0 */5 * * * *"

// OrderRefreshJob periodically reloads the pending-order list from the
// marketplace so the operator's list does not go stale between manual
// refreshes.
//
// The refresh is skipped while an order is selected: applying a fresh list
// would clear the in-progress shipment out from under the operator.
type OrderRefreshJob struct {
	workflow *workflow.FulfillmentWorkflow
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderRefreshJob creates a job that refreshes the pending-order list of
// the given workflow session.
func NewOrderRefreshJob(wf *workflow.FulfillmentWorkflow, logger *slog.Logger) *OrderRefreshJob {
	return &OrderRefreshJob{
		workflow: wf,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_refresh_job"),
	}
}

// Start begins the periodic order refresh.
func (j *OrderRefreshJob) Start() error {
	_, err := j.cron.AddFunc(orderRefreshSchedule, func() {
		ctx := context.Background()

		if j.workflow.Snapshot().Stage.HasOrder() {
			j.logger.DebugContext(ctx, "Skipping order refresh, shipment in progress")
			return
		}

		if err := j.workflow.LoadPendingOrders(ctx, workflow.NewLoadPendingOrdersCommand()); err != nil {
			j.logger.ErrorContext(ctx, "Order refresh job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order refresh job started (running every five minutes)")
	return nil
}

// Stop stops the order refresh job.
func (j *OrderRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order refresh job stopped")
}
