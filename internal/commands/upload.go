package commands

import (
	"context"
	"errors"

	"resuralph/internal/discord"
	"resuralph/internal/hypothesis"
	"resuralph/internal/pdf"
	"resuralph/internal/shared/telemetry"
	"resuralph/internal/shared/util"
)

// Upload stores a user's first resume. Users with an existing resume are
// redirected to /update so the version trail stays linear.
func (d *Deps) Upload(ctx context.Context, in *discord.Interaction) Result {
	userID := in.UserID()
	if userID == "" {
		return genericError()
	}

	att, ok := in.ResolvedAttachment("file")
	if !ok {
		return errorEmbed("Upload Failed", "No file was attached. Please attach a PDF resume.")
	}

	if _, exists := d.Resumes.GetLatest(ctx, userID); exists {
		return Result{Content: "Hmm, it seems like you've already uploaded a resume before. Please use the /update command instead to update it."}
	}

	data, err := d.PDF.FetchAndValidate(ctx, att)
	if err != nil {
		var verr *pdf.ValidationError
		if errors.As(err, &verr) {
			return errorEmbed("Upload Failed", verr.Error())
		}
		telemetry.Error("commands.upload.validate", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return genericError()
	}

	saved, err := d.Objects.Save(ctx, userID, data)
	if err != nil {
		telemetry.Error("commands.upload.store", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return genericError()
	}

	name, err := util.SanitizeFileName(att.Filename)
	if err != nil {
		name = "resume.pdf"
	}

	if !d.Resumes.Save(ctx, userID, saved.URL, name, "v1") {
		// Metadata write failed; remove the orphaned object.
		if derr := d.Objects.Delete(ctx, saved.Key); derr != nil {
			telemetry.Error("commands.upload.cleanup", map[string]any{
				"user_id": userID, "key": saved.Key, "error": derr.Error(),
			})
		}
		return genericError()
	}

	return Result{Content: "📝 Your PDF is ready for annotation: " + hypothesis.ViaURL(saved.URL)}
}
