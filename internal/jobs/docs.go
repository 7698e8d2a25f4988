// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// OutboxRelayJob publishes outbox messages written by order transactions to
// Kafka. Its schedule comes from OUTBOX_RELAY_SCHEDULE and defaults to every
// five seconds. Messages are locked with SKIP LOCKED, so several instances
// of the service can relay at the same time.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.NewOutboxRelayJob(handler, cmd, schedule, logger))
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Relay failures are logged and retried on the next tick; unpublished
// messages stay pending.
package jobs
