// Package jobs provides the scheduled background tasks that keep the
// procurement pipeline moving without external triggers.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. TenderDeadlineJob - Runs every minute to trigger quote evaluation for
// active tenders whose bid deadline has passed
// 2. TenderReminderJob - Runs every minute to remind non-responding suppliers
// of tenders approaching their deadline
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(orchestrator, remindHandler, tenderRepo, clock, registry, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs tolerate concurrency conflicts: when two replicas pick up the
// same tender, the loser's optimistic update fails with
// errs.ErrVersionIsInvalid and is skipped silently. All other errors are
// logged and the job moves on to the next tender.
package jobs
