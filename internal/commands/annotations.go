package commands

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"resuralph/internal/discord"
	"resuralph/internal/hypothesis"
	"resuralph/internal/shared/telemetry"
)

const (
	maxAnnotationsShown = 25
	maxQuoteChars       = 240

	// Discord caps message content at 2000 characters; truncate early
	// enough to append a notice.
	maxContentChars   = 2000
	contentTruncateAt = 1900
)

// Annotations lists the feedback left on the resume at the given URL.
func (d *Deps) Annotations(ctx context.Context, in *discord.Interaction) Result {
	userID := in.UserID()
	if userID == "" {
		return genericError()
	}
	if d.Hypothesis == nil {
		return Result{Embeds: []discord.Embed{discord.WarningEmbed("Annotations Unavailable", "Annotation lookup is not configured on this server.")}}
	}

	pdfURL, _ := in.StringOption("pdf_url")
	if pdfURL == "" {
		return errorEmbed("Annotations Failed", "Please provide the pdf_url of the resume to look up.")
	}
	docURL := hypothesis.StripViaPrefix(pdfURL)

	anns, err := d.Hypothesis.Search(ctx, docURL)
	if err != nil {
		telemetry.Error("commands.annotations.search", map[string]any{
			"user_id": userID, "error": err.Error(),
		})
		return genericError()
	}
	if len(anns) == 0 {
		return Result{Content: "No annotations found on this resume yet."}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📝 Found %d annotation(s) on this resume:\n", len(anns))
	for i, a := range anns {
		if i == maxAnnotationsShown {
			fmt.Fprintf(&b, "\n...and %d more.", len(anns)-maxAnnotationsShown)
			break
		}
		if quote := annotationQuote(a.Target); quote != "" {
			fmt.Fprintf(&b, "\n> %s\n%s\n", quote, a.Text)
		} else {
			fmt.Fprintf(&b, "\n%s\n", a.Text)
		}
		if author := a.AuthorName(); author != "" {
			fmt.Fprintf(&b, "by %s\n", author)
		}
	}

	return Result{Content: capContent(b.String())}
}

// capContent enforces the Discord content limit with a truncation notice.
func capContent(content string) string {
	if len(content) > maxContentChars {
		return truncateAt(content, contentTruncateAt) + "\n...(truncated)"
	}
	return content
}

// truncateAt cuts s at or just before byte index n, never splitting a rune.
func truncateAt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// annotationQuote pulls the first anchored quote out of an annotation's
// targets, shortened for chat display.
func annotationQuote(targets []hypothesis.Target) string {
	for _, t := range targets {
		for _, sel := range t.Selector {
			if sel.Exact == "" {
				continue
			}
			quote := strings.TrimSpace(sel.Exact)
			if len(quote) > maxQuoteChars {
				quote = truncateAt(quote, maxQuoteChars) + "..."
			}
			return quote
		}
	}
	return ""
}
