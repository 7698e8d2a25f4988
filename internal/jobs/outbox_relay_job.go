package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/pkg/metrics"
)

// DefaultOutboxRelaySchedule runs the relay every five seconds.
const DefaultOutboxRelaySchedule = "*/5 * * * * *"

// OutboxRelayJob publishes pending outbox messages on a cron schedule.
// A run that is still going when the next tick fires makes that tick a no-op.
type OutboxRelayJob struct {
	handler    commands.RelayOutboxCommandHandler
	cmd        commands.RelayOutboxCommand
	schedule   string
	runTimeout time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOutboxRelayJob creates the relay job. schedule is a six-field cron
// expression (seconds first).
func NewOutboxRelayJob(
	handler commands.RelayOutboxCommandHandler,
	cmd commands.RelayOutboxCommand,
	schedule string,
	logger *slog.Logger,
) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultOutboxRelaySchedule
	}
	return &OutboxRelayJob{
		handler:    handler,
		cmd:        cmd,
		schedule:   schedule,
		runTimeout: 30 * time.Second,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "outbox_relay_job"),
	}
}

// Start schedules the relay and starts the cron runner.
func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.RunOnce); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// RunOnce relays one batch.
func (j *OutboxRelayJob) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), j.runTimeout)
	defer cancel()

	sent, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay failed", "error", err)
		return
	}
	if sent > 0 {
		metrics.OutboxPublished.Add(float64(sent))
		j.logger.DebugContext(ctx, "Outbox messages published", "count", sent)
	}
}

// Stop stops the scheduler and waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}
