package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"dispatch/internal/core/application/usecases/commands"
)

// CodeCleanupJob periodically deletes dead handoff codes: consumed ones and
// those past expiry. Dead codes can never verify again, so the rows are pure
// bloat once the verification flows are done with them.
type CodeCleanupJob struct {
	handler commands.PurgeExpiredCodesCommandHandler
	cron    *cron.Cron
	spec    string
	logger  *slog.Logger
}

// NewCodeCleanupJob creates the cleanup job. The spec is a six-field cron
// expression; "0 * * * * *" runs it once a minute.
func NewCodeCleanupJob(
	handler commands.PurgeExpiredCodesCommandHandler,
	spec string,
	logger *slog.Logger,
) *CodeCleanupJob {
	return &CodeCleanupJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		spec:    spec,
		logger:  logger.With("component", "code_cleanup_job"),
	}
}

// Start schedules the job. A purge that deletes nothing is not worth a log line.
func (j *CodeCleanupJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		cmd := commands.NewPurgeExpiredCodesCommand()

		purged, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Code cleanup job failed", "error", err)
			return
		}

		if purged > 0 {
			j.logger.InfoContext(ctx, "Purged dead handoff codes", "count", purged)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Code cleanup job started", "spec", j.spec)
	return nil
}

// Stop stops the cleanup job.
func (j *CodeCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Code cleanup job stopped")
}
