package tasks

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/edgard/supportbot/internal/voice"
)

// newVoiceCleanupTask removes voice session directories left behind by a
// process that died mid-transcription.
func newVoiceCleanupTask(deps TaskDeps, now func() time.Time) ScheduledTaskFunc {
	log := deps.Logger.With("task", "voice_cleanup")

	return func(ctx context.Context) error {
		dir := deps.Config.Voice.TempDir
		if dir == "" {
			dir = os.TempDir()
		}

		removed, err := voice.RemoveStaleSessions(dir, deps.Config.Voice.StaleAfter, now())
		if err != nil {
			log.ErrorContext(ctx, "Voice cleanup failed", "dir", dir, "removed", removed, "error", err)
			return fmt.Errorf("voice cleanup failed: %w", err)
		}

		log.InfoContext(ctx, "Voice cleanup completed", "dir", dir, "removed", removed)
		return nil
	}
}
