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

// Update stores a new resume version for a user who already uploaded one.
func (d *Deps) Update(ctx context.Context, in *discord.Interaction) Result {
	userID := in.UserID()
	if userID == "" {
		return genericError()
	}

	att, ok := in.ResolvedAttachment("file")
	if !ok {
		return errorEmbed("Update Failed", "No file was attached. Please attach a PDF resume.")
	}

	prev, exists := d.Resumes.GetLatest(ctx, userID)
	if !exists {
		return Result{Content: msgNoResume}
	}

	data, err := d.PDF.FetchAndValidate(ctx, att)
	if err != nil {
		var verr *pdf.ValidationError
		if errors.As(err, &verr) {
			return errorEmbed("Update Failed", verr.Error())
		}
		telemetry.Error("commands.update.validate", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return genericError()
	}

	saved, err := d.Objects.Save(ctx, userID, data)
	if err != nil {
		telemetry.Error("commands.update.store", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return genericError()
	}

	name, err := util.SanitizeFileName(att.Filename)
	if err != nil {
		name = "resume.pdf"
	}

	version := d.Resumes.Update(ctx, userID, saved.URL, name)
	if version == "" {
		if derr := d.Objects.Delete(ctx, saved.Key); derr != nil {
			telemetry.Error("commands.update.cleanup", map[string]any{
				"user_id": userID, "key": saved.Key, "error": derr.Error(),
			})
		}
		return genericError()
	}

	content := "📝 Your Resume has been updated! Here's the new link for review: " + hypothesis.ViaURL(saved.URL)
	if in.BoolOption("show_diff") {
		content += "\n" + updateDiff(ctx, d, userID, prev.URL, saved.URL)
	}
	return Result{Content: capContent(content)}
}

// updateDiff summarizes the text changes between the previous resume and
// the one just stored. Diff problems never fail the update; the link was
// already delivered.
func updateDiff(ctx context.Context, d *Deps, userID, oldURL, newURL string) string {
	diff, err := d.PDF.CompareTextDiff(ctx, hypothesis.StripViaPrefix(oldURL), newURL)
	if err != nil {
		telemetry.Error("commands.update.diff", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return "Could not compute the diff against your previous version."
	}
	if diff.Added == "" && diff.Removed == "" {
		return "No text changes detected from your previous version."
	}
	return "📊 Changes from your previous version:\n" + formatDiffBlocks(diff)
}
