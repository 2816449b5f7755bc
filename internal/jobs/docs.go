// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the fulfillment workflow.
//
// # Available Jobs
//
// 1. OrderRefreshJob - Reloads the pending-order list from the marketplace
// every five minutes, skipped while a shipment is in progress
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(workflowSession, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh leaves the workflow state untouched; the error is logged
// and the next scheduled run retries.
package jobs
