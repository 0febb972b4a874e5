package commands

import (
	"context"
	"fmt"
	"strings"

	"resuralph/internal/discord"
	"resuralph/internal/hypothesis"
	"resuralph/internal/llm"
	"resuralph/internal/pdf"
	"resuralph/internal/shared/telemetry"
)

// AIReview runs the full feedback pipeline on the resume at the given URL:
// extract text, analyze it, and attach each piece of feedback as a
// Hypothesis annotation. Limited to one run per user per day; usage is
// recorded only after at least one annotation was created, so a failed run
// does not burn the user's daily slot.
func (d *Deps) AIReview(ctx context.Context, in *discord.Interaction) Result {
	userID := in.UserID()
	if userID == "" {
		return genericError()
	}
	if d.LLM == nil || d.Hypothesis == nil {
		return Result{Embeds: []discord.Embed{discord.WarningEmbed("AI Review Unavailable", "AI review is not configured on this server.")}}
	}

	pdfURL, _ := in.StringOption("pdf_url")
	if pdfURL == "" {
		return errorEmbed("AI Review Failed", "Please provide the pdf_url of the resume to review.")
	}
	docURL := hypothesis.StripViaPrefix(pdfURL)

	allowed, remaining := d.Limiter.CanUseAIReview(ctx, userID)
	if !allowed {
		return Result{Content: fmt.Sprintf("⏳ You've already used your AI review today. Try again in %s.", remaining)}
	}

	text, err := d.PDF.ExtractTextFromURL(ctx, docURL)
	if err != nil {
		telemetry.Error("commands.ai_review.extract", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return genericError()
	}
	text = pdf.CleanResumeText(text)
	if !pdf.ValidateResumeContent(text) {
		return errorEmbed("AI Review Failed", "Your resume text could not be read, or it doesn't look like a resume. Try re-exporting the PDF with selectable text.")
	}

	items, err := d.LLM.AnalyzeResume(ctx, text)
	if err != nil {
		telemetry.Error("commands.ai_review.analyze", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return genericError()
	}

	annotations := buildAnnotations(docURL, items)
	if len(annotations) == 0 {
		return Result{Content: "The AI couldn't produce any feedback for your resume. Please try again later."}
	}

	bulk := d.Hypothesis.CreateBulk(ctx, annotations)
	telemetry.Info("commands.ai_review.annotated", map[string]any{
		"user_id": userID, "created": bulk.Created, "failed": bulk.Failed,
	})
	if bulk.Created == 0 {
		return genericError()
	}

	d.Limiter.RecordUsage(ctx, userID)

	description := fmt.Sprintf("Added %d feedback annotation(s) to your resume.\nView them here: %s",
		bulk.Created, hypothesis.ViaURL(docURL))
	if bulk.Failed > 0 {
		description += fmt.Sprintf("\n%d annotation(s) could not be created.", bulk.Failed)
	}
	return Result{Embeds: []discord.Embed{discord.SuccessEmbed("AI Review Complete", description)}}
}

// FormatFeedback renders one feedback item as annotation text.
func FormatFeedback(item llm.FeedbackItem) string {
	emoji, label := "🔧", "Improvement"
	if item.FeedbackType == "formatting" {
		emoji, label = "📝", "Formatting"
	}
	priority := item.Priority
	if priority == "" {
		priority = "medium"
	}
	return fmt.Sprintf("%s **%s** (%s priority)\n\n%s", emoji, label, priority, item.Comment)
}

func buildAnnotations(docURL string, items []llm.FeedbackItem) []hypothesis.Annotation {
	out := make([]hypothesis.Annotation, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.SelectedText) == "" || strings.TrimSpace(item.Comment) == "" {
			continue
		}
		out = append(out, hypothesis.Annotation{
			URI:  docURL,
			Text: FormatFeedback(item),
			Tags: []string{"resuralph", "ai-review", item.FeedbackType},
			Target: []hypothesis.Target{{
				Source: docURL,
				Selector: []hypothesis.TextQuoteSelector{{
					Type:  "TextQuoteSelector",
					Exact: item.SelectedText,
				}},
			}},
		})
	}
	return out
}
