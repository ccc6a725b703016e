// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and only drive command handlers; they own no business rules.
//
// # Available Jobs
//
// OverdueOrdersJob runs FlagOverdueOrdersCommand on OVERDUE_SCAN_SCHEDULE
// (every five minutes by default). Each tick takes batches of
// OVERDUE_BATCH_SIZE until a batch comes back short.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(flagOverdueHandler, cfg.OverdueScanSchedule, cfg.OverdueBatchSize, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed batch is logged and the tick ends. Orders are stamped once, so the
// next tick resumes where the failed one stopped.
package jobs
