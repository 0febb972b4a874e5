package commands

import (
	"context"
	"fmt"

	"resuralph/internal/discord"
	"resuralph/internal/shared/telemetry"
)

// Clear deletes every stored resume for the user: records first, then the
// stored files. When file cleanup partially fails the records are already
// gone, so the user is told some files may remain.
func (d *Deps) Clear(ctx context.Context, in *discord.Interaction) Result {
	userID := in.UserID()
	if userID == "" {
		return genericError()
	}

	recs := d.Resumes.GetAll(ctx, userID)
	if len(recs) == 0 {
		return Result{Content: msgNoResume}
	}

	n, ok := d.Resumes.ClearAll(ctx, userID)
	if !ok {
		return genericError()
	}

	if err := d.Objects.ClearUser(ctx, userID); err != nil {
		telemetry.Error("commands.clear.objects", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return Result{Content: fmt.Sprintf("Successfully cleared %d resume records, but some files may remain in storage. Contact support if needed. ⚠️", n)}
	}

	return Result{Content: fmt.Sprintf("✅ Successfully cleared all %d of your resumes. You can upload a fresh one with /upload.", n)}
}
