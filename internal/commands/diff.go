package commands

import (
	"context"
	"strings"

	"resuralph/internal/discord"
	"resuralph/internal/hypothesis"
	"resuralph/internal/pdf"
	"resuralph/internal/shared/telemetry"
)

// Diff compares the text of two resume PDFs given by URL and reports the
// lines that changed between them.
func (d *Deps) Diff(ctx context.Context, in *discord.Interaction) Result {
	userID := in.UserID()
	if userID == "" {
		return genericError()
	}

	oldURL, _ := in.StringOption("old_resume_url")
	newURL, _ := in.StringOption("new_resume_url")
	if oldURL == "" || newURL == "" {
		return errorEmbed("Diff Failed", "Please provide both old_resume_url and new_resume_url.")
	}

	diff, err := d.PDF.CompareTextDiff(ctx,
		hypothesis.StripViaPrefix(oldURL),
		hypothesis.StripViaPrefix(newURL))
	if err != nil {
		telemetry.Error("commands.diff.compare", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return genericError()
	}

	if diff.Added == "" && diff.Removed == "" {
		return Result{Content: "No text changes detected between the two resumes."}
	}

	return Result{Content: capContent("📊 Changes between the two resumes:\n" + formatDiffBlocks(diff))}
}

// formatDiffBlocks renders added and removed text as code blocks, skipping
// empty sides.
func formatDiffBlocks(diff pdf.DiffResult) string {
	var b strings.Builder
	if diff.Added != "" {
		b.WriteString("\n**Added:**\n```\n" + diff.Added + "\n```")
	}
	if diff.Removed != "" {
		b.WriteString("\n**Removed:**\n```\n" + diff.Removed + "\n```")
	}
	return b.String()
}
