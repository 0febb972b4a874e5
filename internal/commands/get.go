package commands

import (
	"context"
	"fmt"
	"strings"

	"resuralph/internal/discord"
	"resuralph/internal/hypothesis"
)

// GetLatest returns the user's most recent resume link.
func (d *Deps) GetLatest(ctx context.Context, in *discord.Interaction) Result {
	userID := in.UserID()
	if userID == "" {
		return genericError()
	}

	rec, ok := d.Resumes.GetLatest(ctx, userID)
	if !ok {
		return Result{Content: msgNoResume}
	}

	return Result{Content: fmt.Sprintf("📄 Here's your latest resume (%s): %s",
		rec.Version, hypothesis.ViaURL(rec.URL))}
}

// GetAll lists every stored resume version, newest first.
func (d *Deps) GetAll(ctx context.Context, in *discord.Interaction) Result {
	userID := in.UserID()
	if userID == "" {
		return genericError()
	}

	recs := d.Resumes.GetAll(ctx, userID)
	if len(recs) == 0 {
		return Result{Content: msgNoResume}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📚 Here are all your resume versions (%d total):\n", len(recs))
	for _, rec := range recs {
		fmt.Fprintf(&b, "%s: %s\n", rec.Version, hypothesis.ViaURL(rec.URL))
	}
	return Result{Content: strings.TrimRight(b.String(), "\n")}
}
