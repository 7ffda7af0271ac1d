package tasks

import (
	"context"
	"fmt"
	"time"
)

// newSQLMaintenanceTask vacuums the message log and reports how many bytes it
// reclaimed. Size lookups are informational: a failed lookup is logged and the
// vacuum still runs.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sql_maintenance")

	return func(ctx context.Context) error {
		before, sizeErr := deps.Store.Size(ctx)
		if sizeErr != nil {
			log.WarnContext(ctx, "Could not read database size before vacuum", "error", sizeErr)
		}

		started := time.Now()
		if err := deps.Store.RunSQLMaintenance(ctx); err != nil {
			log.ErrorContext(ctx, "Message log vacuum failed", "error", err, "duration", time.Since(started))
			return fmt.Errorf("sql maintenance failed: %w", err)
		}
		elapsed := time.Since(started)

		after, err := deps.Store.Size(ctx)
		if err != nil || sizeErr != nil {
			log.InfoContext(ctx, "Message log vacuumed", "duration", elapsed)
			return nil
		}

		log.InfoContext(ctx, "Message log vacuumed",
			"duration", elapsed,
			"size_before", before,
			"size_after", after,
			"reclaimed", max(before-after, 0),
		)
		return nil
	}
}
